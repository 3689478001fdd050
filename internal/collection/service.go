package collection

import (
	"context"
	"fmt"

	"github.com/samvad-hq/placeholder-client/internal/domain"
	"github.com/samvad-hq/placeholder-client/internal/logger"
	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
	"github.com/samvad-hq/placeholder-client/pkg/records"
)

// Fetcher is the transport contract the service depends on.
type Fetcher interface {
	FetchCollection(ctx context.Context, endpoint string) ([]map[string]any, error)
}

// Service turns raw collections into ordered typed records.
// Every call re-issues a request; nothing is cached.
type Service struct {
	fetcher Fetcher
	log     logger.Logger
}

// New wires a service around fetcher. A nil log discards output.
func New(fetcher Fetcher, log logger.Logger) *Service {
	return &Service{fetcher: fetcher, log: logger.Ensure(log)}
}

// GetPosts fetches the posts collection. Transport and mapping errors are
// returned unchanged; the first malformed record fails the whole call.
func (s *Service) GetPosts(ctx context.Context) ([]domain.Post, error) {
	return fetchAll(ctx, s, placeholder.EndpointPosts, records.MapPost)
}

// GetUsers fetches the users collection with the same semantics as GetPosts.
func (s *Service) GetUsers(ctx context.Context) ([]domain.User, error) {
	return fetchAll(ctx, s, placeholder.EndpointUsers, records.MapUser)
}

func fetchAll[T any](ctx context.Context, s *Service, endpoint string, mapFn func(map[string]any) (T, error)) ([]T, error) {
	if s == nil || s.fetcher == nil {
		return nil, fmt.Errorf("collection service is not initialized")
	}

	raw, err := s.fetcher.FetchCollection(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raw))
	for _, obj := range raw {
		rec, err := mapFn(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	s.log.DebugObj("collection fetched", "collection_meta", map[string]any{
		"collection": endpoint,
		"count":      len(out),
	})
	return out, nil
}
