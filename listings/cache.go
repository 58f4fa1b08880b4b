package listings

import (
	"context"

	"realestate-agent/utils"
)

// CachedProvider memoizes another Provider per exact query parameters, so
// repeating an identical search within one session never issues a second
// upstream call. The cache is a bounded LRU; errors are never cached.
type CachedProvider struct {
	inner    Provider
	searches *utils.LRUCache
	trends   *utils.LRUCache
	logger   *utils.Logger
}

// NewCachedProvider wraps inner with an LRU memoization layer of the given
// capacity.
func NewCachedProvider(inner Provider, capacity int, logger *utils.Logger) *CachedProvider {
	return &CachedProvider{
		inner:    inner,
		searches: utils.NewLRUCache(capacity),
		trends:   utils.NewLRUCache(capacity),
		logger:   logger,
	}
}

func (p *CachedProvider) Search(ctx context.Context, q Query) ([]map[string]any, error) {
	key := q.Key()
	if v, ok := p.searches.Get(key); ok {
		p.logger.Debug("[cache] Search hit for %s", q.Location)
		return v.([]map[string]any), nil
	}

	records, err := p.inner.Search(ctx, q)
	if err != nil {
		return records, err
	}
	p.searches.Put(key, records)
	return records, nil
}

func (p *CachedProvider) Trends(ctx context.Context, q Query) ([]map[string]any, error) {
	key := q.Key()
	if v, ok := p.trends.Get(key); ok {
		p.logger.Debug("[cache] Trends hit for %s", q.Location)
		return v.([]map[string]any), nil
	}

	records, err := p.inner.Trends(ctx, q)
	if err != nil {
		return records, err
	}
	p.trends.Put(key, records)
	return records, nil
}
