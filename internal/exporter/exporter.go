package exporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/placeholder-client/internal/domain"
	"github.com/samvad-hq/placeholder-client/internal/logger"
	"github.com/samvad-hq/placeholder-client/internal/storage"
	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
	"github.com/samvad-hq/placeholder-client/pkg/publishers"
)

// Deduper remembers which records were already exported.
type Deduper interface {
	SeenRecord(ctx context.Context, key string) (bool, error)
	MarkRecord(ctx context.Context, key string) error
}

// EventPublisher publishes events downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Item is one record to export, keyed by its id within the collection.
type Item struct {
	ID     int
	Record any
}

// Result summarizes one export pass over a collection.
type Result struct {
	Collection string `json:"collection"`
	Total      int    `json:"total"`
	Skipped    int    `json:"skipped"`
	Published  int    `json:"published"`
	Failed     int    `json:"failed"`
}

// Exporter publishes records that have not been exported before.
type Exporter struct {
	pub    EventPublisher
	dedupe Deduper
	log    logger.Logger
}

// New wires an exporter. A nil dedupe publishes every record.
func New(pub EventPublisher, dedupe Deduper, log logger.Logger) *Exporter {
	return &Exporter{pub: pub, dedupe: dedupe, log: logger.Ensure(log)}
}

// Export publishes unseen items and marks them once at least one publisher
// accepted them. Publish failures are joined and returned after the pass.
func (e *Exporter) Export(ctx context.Context, collection string, items []Item) (Result, error) {
	res := Result{Collection: collection, Total: len(items)}
	if e == nil || e.pub == nil {
		return res, fmt.Errorf("exporter is not initialized")
	}

	var errs []error
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		key := storage.RecordKey(collection, item.ID)
		if e.seen(ctx, key) {
			res.Skipped++
			continue
		}

		evt := publishers.NewEvent(collection, item.ID, item.Record)
		delivered, err := e.pub.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", key, err))
		}
		if delivered == 0 {
			res.Failed++
			continue
		}

		res.Published++
		if e.dedupe != nil {
			if err := e.dedupe.MarkRecord(ctx, key); err != nil {
				e.log.WarnObj("mark record failed", "dedupe_error", map[string]any{
					"key":   key,
					"error": err.Error(),
				})
			}
		}
	}

	e.log.InfoObj("collection exported", "export_result", res)
	return res, errors.Join(errs...)
}

// seen treats lookup failures as unseen so a flaky store never drops records.
func (e *Exporter) seen(ctx context.Context, key string) bool {
	if e.dedupe == nil {
		return false
	}
	seen, err := e.dedupe.SeenRecord(ctx, key)
	if err != nil {
		e.log.WarnObj("dedupe lookup failed", "dedupe_error", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return seen
}

// PostItems adapts posts for Export.
func PostItems(posts []domain.Post) []Item {
	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, Item{ID: p.PostID, Record: p})
	}
	return items
}

// UserItems adapts users for Export.
func UserItems(users []domain.User) []Item {
	items := make([]Item, 0, len(users))
	for _, u := range users {
		items = append(items, Item{ID: u.UserID, Record: u})
	}
	return items
}

// ExportPosts exports posts under the posts collection name.
func (e *Exporter) ExportPosts(ctx context.Context, posts []domain.Post) (Result, error) {
	return e.Export(ctx, placeholder.EndpointPosts, PostItems(posts))
}

// ExportUsers exports users under the users collection name.
func (e *Exporter) ExportUsers(ctx context.Context, users []domain.User) (Result, error) {
	return e.Export(ctx, placeholder.EndpointUsers, UserItems(users))
}
