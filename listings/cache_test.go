package listings

import (
	"context"
	"fmt"
	"testing"

	"realestate-agent/utils"
)

// countingProvider is a stub Provider with observable call counters.
type countingProvider struct {
	searchCalls int
	trendCalls  int
	fail        bool
}

func (p *countingProvider) Search(ctx context.Context, q Query) ([]map[string]any, error) {
	p.searchCalls++
	if p.fail {
		return nil, fmt.Errorf("stub: upstream down")
	}
	return []map[string]any{{"building_name": "A", "price": 100000}}, nil
}

func (p *countingProvider) Trends(ctx context.Context, q Query) ([]map[string]any, error) {
	p.trendCalls++
	return []map[string]any{{"neighborhood": "Hyde Park"}}, nil
}

func TestCachedProviderMemoizesIdenticalSearch(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 10, utils.NewSilentLogger())
	q := testQuery()

	for i := 0; i < 3; i++ {
		records, err := cached.Search(context.Background(), q)
		if err != nil {
			t.Fatalf("Search %d: %v", i, err)
		}
		if len(records) != 1 {
			t.Fatalf("Search %d: got %d records", i, len(records))
		}
	}

	if inner.searchCalls != 1 {
		t.Errorf("identical searches should hit upstream once, got %d calls", inner.searchCalls)
	}
}

func TestCachedProviderDistinguishesParameters(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 10, utils.NewSilentLogger())

	q1 := testQuery()
	q2 := testQuery()
	q2.MaxPrice = 500000

	cached.Search(context.Background(), q1)
	cached.Search(context.Background(), q2)

	if inner.searchCalls != 2 {
		t.Errorf("different parameters should each hit upstream, got %d calls", inner.searchCalls)
	}
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{fail: true}
	cached := NewCachedProvider(inner, 10, utils.NewSilentLogger())
	q := testQuery()

	cached.Search(context.Background(), q)
	cached.Search(context.Background(), q)

	if inner.searchCalls != 2 {
		t.Errorf("failed searches must not be cached, got %d calls", inner.searchCalls)
	}
}

func TestCachedProviderTrendsSeparateFromSearch(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 10, utils.NewSilentLogger())
	q := testQuery()

	cached.Search(context.Background(), q)
	cached.Trends(context.Background(), q)
	cached.Trends(context.Background(), q)

	if inner.searchCalls != 1 || inner.trendCalls != 1 {
		t.Errorf("got %d search / %d trend calls, want 1 / 1", inner.searchCalls, inner.trendCalls)
	}
}
