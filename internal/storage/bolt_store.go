package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const expiryEncodingLen = 8

var (
	recordBucket     = []byte("records")
	errBucketMissing = errors.New("record bucket missing")
)

// boltStore keeps seen markers in a local BoltDB file. Each value is the
// big-endian unix second at which the key stops counting as seen.
type boltStore struct {
	db    *bolt.DB
	ttl   time.Duration
	sweep *sweepGate
	now   func() time.Time
}

func openBolt(path string, opts Options) (Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{
		db:    db,
		ttl:   opts.RecordTTL,
		sweep: newSweepGate(opts.CleanupInterval, time.Now()),
		now:   time.Now,
	}, nil
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenRecord reports whether key holds an unexpired marker. A stale marker is
// removed in the same transaction.
func (b *boltStore) SeenRecord(_ context.Context, key string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}
	now := b.now()
	if err := b.sweepExpired(now); err != nil {
		return false, err
	}

	var live bool
	err := b.withBucket(func(bkt *bolt.Bucket) error {
		k := []byte(key)
		v := bkt.Get(k)
		switch {
		case v == nil:
			return nil
		case expired(v, now):
			return bkt.Delete(k)
		default:
			live = true
			return nil
		}
	})
	return live, err
}

func (b *boltStore) MarkRecord(_ context.Context, key string) error {
	if b == nil || b.db == nil {
		return nil
	}
	now := b.now()
	if err := b.sweepExpired(now); err != nil {
		return err
	}
	return b.withBucket(func(bkt *bolt.Bucket) error {
		return bkt.Put([]byte(key), encodeExpiry(now.Add(b.ttl)))
	})
}

func (b *boltStore) sweepExpired(now time.Time) error {
	return b.sweep.run(now, func() error {
		return b.withBucket(func(bkt *bolt.Bucket) error {
			var stale [][]byte
			err := bkt.ForEach(func(k, v []byte) error {
				if expired(v, now) {
					stale = append(stale, bytes.Clone(k))
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, k := range stale {
				if err := bkt.Delete(k); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func (b *boltStore) withBucket(fn func(*bolt.Bucket) error) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(recordBucket)
		if bkt == nil {
			return errBucketMissing
		}
		return fn(bkt)
	})
}

func encodeExpiry(t time.Time) []byte {
	buf := make([]byte, expiryEncodingLen)
	binary.BigEndian.PutUint64(buf, uint64(t.Unix()))
	return buf
}

// expired treats undecodable values as expired so they get cleaned up.
func expired(value []byte, now time.Time) bool {
	if len(value) != expiryEncodingLen {
		return true
	}
	unix := int64(binary.BigEndian.Uint64(value))
	return unix <= 0 || !time.Unix(unix, 0).After(now)
}
