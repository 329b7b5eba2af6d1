package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_page_view_source.go -package=mocks devfolio/internal/service PageViewSource
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_view_store.go -package=mocks devfolio/internal/service ViewStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_view_updater.go -package=mocks devfolio/internal/service ViewUpdater

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"devfolio/internal/contextutil"
)

// DefaultViewConcurrency bounds concurrent analytics requests.
const DefaultViewConcurrency = 4

// PageViewSource reports the total views of a page path.
// This interface is defined from the service layer's perspective (consumer-first).
type PageViewSource interface {
	PageViews(ctx context.Context, pagePath string) (int64, error)
}

// ViewStore lists published posts and records their view counts.
type ViewStore interface {
	PublishedSlugs(ctx context.Context) ([]string, error)
	SetViewCount(ctx context.Context, slug string, count int64) error
}

// ViewUpdateResult summarises a view count refresh.
type ViewUpdateResult struct {
	Updated int `json:"updated"`
	Total   int `json:"totalPosts"`
}

// Message is the human readable summary returned by the cron endpoint.
func (r ViewUpdateResult) Message() string {
	return fmt.Sprintf("%d / %d posts views updated successfully.", r.Updated, r.Total)
}

// ViewUpdater refreshes stored view counts from analytics.
type ViewUpdater interface {
	UpdateAll(ctx context.Context) (ViewUpdateResult, error)
}

type viewUpdater struct {
	source      PageViewSource
	store       ViewStore
	concurrency int
}

// NewViewUpdater creates a ViewUpdater running at most concurrency
// analytics requests at once.
func NewViewUpdater(source PageViewSource, store ViewStore, concurrency int) ViewUpdater {
	if concurrency <= 0 {
		concurrency = DefaultViewConcurrency
	}
	return &viewUpdater{
		source:      source,
		store:       store,
		concurrency: concurrency,
	}
}

// UpdateAll fetches views for /blog/<slug> of every published post and stores
// positive totals. Per-post failures are logged and leave that post as is.
func (u *viewUpdater) UpdateAll(ctx context.Context) (ViewUpdateResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	slugs, err := u.store.PublishedSlugs(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list published posts", "error", err)
		return ViewUpdateResult{}, WrapError(err, "failed to list published posts")
	}

	var updated atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	for _, slug := range slugs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			views, err := u.source.PageViews(gctx, "/blog/"+slug)
			if err != nil {
				logger.WarnContext(ctx, "failed to fetch page views", "slug", slug, "error", err)
				return nil
			}
			if views <= 0 {
				return nil
			}
			if err := u.store.SetViewCount(gctx, slug, views); err != nil {
				logger.WarnContext(ctx, "failed to store view count", "slug", slug, "error", err)
				return nil
			}
			updated.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ViewUpdateResult{}, err
	}

	result := ViewUpdateResult{Updated: int(updated.Load()), Total: len(slugs)}
	logger.InfoContext(ctx, "view counts updated", "updated", result.Updated, "total", result.Total)
	return result, nil
}
