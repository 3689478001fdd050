package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Package storage remembers which records were already exported.

// Store tracks exported record keys (collection:id) with a retention window.
type Store interface {
	Close() error
	SeenRecord(ctx context.Context, key string) (bool, error)
	MarkRecord(ctx context.Context, key string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	RecordTTL       time.Duration
	CleanupInterval time.Duration
}

const (
	TypeNone     = "none"
	TypeBBolt    = "bbolt"
	TypePostgres = "postgres"

	defaultRecordTTL       = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend. target is a file path for
// bbolt and a DSN for postgres.
func NewStore(ctx context.Context, typ, target string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(target) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(target, opts)
	case TypePostgres:
		if strings.TrimSpace(target) == "" {
			return nil, fmt.Errorf("postgres storage requires a dsn")
		}
		return openPostgres(ctx, target, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// RecordKey builds the store key for one record of a collection.
func RecordKey(collection string, id int) string {
	return fmt.Sprintf("%s:%d", collection, id)
}

func normalizeOptions(opts Options) Options {
	if opts.RecordTTL <= 0 {
		opts.RecordTTL = defaultRecordTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                                     { return nil }
func (noopStore) SeenRecord(context.Context, string) (bool, error) { return false, nil }
func (noopStore) MarkRecord(context.Context, string) error         { return nil }
