package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/samvad-hq/placeholder-client/internal/collection"
	"github.com/samvad-hq/placeholder-client/internal/config"
	"github.com/samvad-hq/placeholder-client/internal/domain"
	"github.com/samvad-hq/placeholder-client/internal/exporter"
	"github.com/samvad-hq/placeholder-client/internal/logger"
	"github.com/samvad-hq/placeholder-client/internal/storage"
	"github.com/samvad-hq/placeholder-client/pkg/httpclient"
	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
	"github.com/samvad-hq/placeholder-client/pkg/publishers"
)

// App is the placeholder client runtime. It owns the collection service and,
// when publishers are configured, the export pipeline with its store.
type App struct {
	cfg      *config.Config
	service  *collection.Service
	exporter *exporter.Exporter
	fanout   *publishers.Fanout
	store    storage.Store
	log      logger.Logger
}

// New builds the runtime from config. Export wiring is only set up when a
// publishers file is configured.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := placeholder.New(cfg.BaseURL,
		placeholder.WithHTTPClient(httpclient.NewRestyClient(cfg.HTTPTimeout)))
	if err != nil {
		return nil, fmt.Errorf("init placeholder client: %w", err)
	}

	a := &App{
		cfg:     cfg,
		service: collection.New(client, log),
		log:     log,
	}
	if !cfg.ExportEnabled() {
		return a, nil
	}

	if err := a.initExport(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) initExport(ctx context.Context) error {
	cfg := a.cfg

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()
	if len(enabled) == 0 {
		return fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, a.log)
	if err != nil {
		return fmt.Errorf("build publishers: %w", err)
	}
	a.fanout = publishers.NewFanout(pubClients)

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	a.log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})

	store, err := storage.NewStore(ctx, cfg.StorageType, cfg.StorageTarget(), storage.Options{
		RecordTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	a.store = store
	a.log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"record_ttl_seconds":       int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	a.exporter = exporter.New(a.fanout, store, a.log)
	return nil
}

// Show prints the first post and the first user.
func (a *App) Show(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "Fetching Posts...")
	posts, err := a.service.GetPosts(ctx)
	if err != nil {
		return fmt.Errorf("get posts: %w", err)
	}
	if len(posts) == 0 {
		fmt.Fprintln(w, "no posts returned")
	} else {
		fmt.Fprintln(w, posts[0])
	}

	fmt.Fprintln(w, "\nFetching Users...")
	users, err := a.service.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("get users: %w", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(w, "no users returned")
	} else {
		fmt.Fprintln(w, users[0])
	}
	return nil
}

// ListPosts prints up to limit posts; limit <= 0 prints all of them.
func (a *App) ListPosts(ctx context.Context, w io.Writer, limit int) error {
	posts, err := a.service.GetPosts(ctx)
	if err != nil {
		return fmt.Errorf("get posts: %w", err)
	}
	printRecords(w, posts, limit, "no posts returned")
	return nil
}

// ListUsers prints up to limit users; limit <= 0 prints all of them.
func (a *App) ListUsers(ctx context.Context, w io.Writer, limit int) error {
	users, err := a.service.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("get users: %w", err)
	}
	printRecords(w, users, limit, "no users returned")
	return nil
}

func printRecords[T fmt.Stringer](w io.Writer, items []T, limit int, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	for i, item := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, item)
	}
}

// Export fetches both collections concurrently and publishes unseen records.
func (a *App) Export(ctx context.Context) ([]exporter.Result, error) {
	if a == nil || a.exporter == nil {
		return nil, fmt.Errorf("export is not configured (set PUBLISHERS_FILE)")
	}

	var (
		posts []domain.Post
		users []domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = a.service.GetPosts(gctx)
		if err != nil {
			return fmt.Errorf("get posts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = a.service.GetUsers(gctx)
		if err != nil {
			return fmt.Errorf("get users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	postRes, postErr := a.exporter.ExportPosts(ctx, posts)
	userRes, userErr := a.exporter.ExportUsers(ctx, users)
	results := []exporter.Result{postRes, userRes}
	if postErr != nil || userErr != nil {
		return results, fmt.Errorf("export: %w", errors.Join(postErr, userErr))
	}
	return results, nil
}

// Close releases publishers and the store.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.fanout != nil {
		if err := a.fanout.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publishers: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.ErrorObj("storage close failed", "error", err)
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}
