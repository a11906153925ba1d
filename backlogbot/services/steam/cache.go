package steam

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
)

// CachedClient keeps the catalog for catalogTTL and recently viewed store pages for detailTTL.
// Concurrent misses for the same key share a single upstream request. A zero TTL disables
// the corresponding cache.
//
// A shared fetch is detached from the caller that started it, so one interaction hitting its
// deadline does not fail the others waiting on the same key.
type CachedClient struct {
	lookup     backlog.GameLookup
	catalogTTL time.Duration
	detailTTL  time.Duration
	group      singleflight.Group
	now        func() time.Time

	mu        sync.RWMutex
	catalog   []backlog.GameSummary
	catalogAt time.Time

	details *lru.Cache
}

type detailEntry struct {
	detail    backlog.GameDetail
	fetchedAt time.Time
}

func NewCachedClient(lookup backlog.GameLookup, catalogTTL, detailTTL time.Duration, detailCacheSize int) (*CachedClient, error) {
	c := &CachedClient{
		lookup:     lookup,
		catalogTTL: catalogTTL,
		detailTTL:  detailTTL,
		now:        time.Now,
	}

	if detailTTL > 0 && detailCacheSize > 0 {
		cache, err := lru.New(detailCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create detail cache: %w", err)
		}
		c.details = cache
	}
	return c, nil
}

func (c *CachedClient) FetchCatalog(ctx context.Context) ([]backlog.GameSummary, error) {
	if c.catalogTTL <= 0 {
		return c.lookup.FetchCatalog(ctx)
	}

	c.mu.RLock()
	if c.catalog != nil && c.now().Sub(c.catalogAt) < c.catalogTTL {
		catalog := c.catalog
		c.mu.RUnlock()
		return catalog, nil
	}
	c.mu.RUnlock()

	v, err, shared := c.group.Do("catalog", func() (any, error) {
		fetchCtx, cancel := sharedContext(ctx)
		defer cancel()

		catalog, err := c.lookup.FetchCatalog(fetchCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.catalog = catalog
		c.catalogAt = c.now()
		c.mu.Unlock()

		slog.Info("Steam catalog refreshed",
			slog.String("type", "sys"),
			slog.Int("apps", len(catalog)))
		return catalog, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		slog.Debug("Steam catalog fetch shared", slog.String("type", "sys"))
	}
	return v.([]backlog.GameSummary), nil
}

func (c *CachedClient) FetchDetail(ctx context.Context, appID int) (*backlog.GameDetail, error) {
	if c.details == nil {
		return c.lookup.FetchDetail(ctx, appID)
	}

	if cached, ok := c.details.Get(appID); ok {
		entry := cached.(detailEntry)
		if c.now().Sub(entry.fetchedAt) < c.detailTTL {
			detail := entry.detail
			return &detail, nil
		}
		c.details.Remove(appID)
	}

	v, err, _ := c.group.Do(fmt.Sprintf("detail:%d", appID), func() (any, error) {
		fetchCtx, cancel := sharedContext(ctx)
		defer cancel()

		detail, err := c.lookup.FetchDetail(fetchCtx, appID)
		if err != nil {
			return nil, err
		}
		c.details.Add(appID, detailEntry{detail: *detail, fetchedAt: c.now()})
		return detail, nil
	})
	if err != nil {
		return nil, err
	}

	detail := *v.(*backlog.GameDetail)
	return &detail, nil
}

func sharedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), config.DefaultHTTPTimeout)
}
