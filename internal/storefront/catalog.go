package storefront

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lumafood/storefront-api/internal/prices"
)

// CatalogState tracks the lifecycle of the one in-memory catalog snapshot.
type CatalogState int

const (
	CatalogNotLoaded CatalogState = iota
	CatalogLoading
	CatalogLoaded
	CatalogFailed
)

// CatalogLoader memoizes a single catalog fetch for the lifetime of the
// page view. Concurrent callers share the one in-flight request; the result
// (success or failure) is kept so later callers never trigger a refetch.
type CatalogLoader struct {
	fetch func(ctx context.Context) (prices.Catalog, error)
	group singleflight.Group

	mu       sync.Mutex
	state    CatalogState
	snapshot prices.Catalog
	err      error
}

func NewCatalogLoader(fetch func(ctx context.Context) (prices.Catalog, error)) *CatalogLoader {
	return &CatalogLoader{fetch: fetch}
}

// Load returns the catalog, fetching it at most once.
func (l *CatalogLoader) Load(ctx context.Context) (prices.Catalog, error) {
	l.mu.Lock()
	switch l.state {
	case CatalogLoaded:
		snapshot := l.snapshot
		l.mu.Unlock()
		return snapshot, nil
	case CatalogFailed:
		err := l.err
		l.mu.Unlock()
		return nil, err
	default:
		l.state = CatalogLoading
		l.mu.Unlock()
	}

	result, err, _ := l.group.Do("catalog", func() (any, error) {
		catalog, err := l.fetch(ctx)

		l.mu.Lock()
		if err != nil {
			l.state = CatalogFailed
			l.err = err
		} else {
			l.state = CatalogLoaded
			l.snapshot = catalog
		}
		l.mu.Unlock()

		return catalog, err
	})
	if err != nil {
		return nil, err
	}
	return result.(prices.Catalog), nil
}

// Snapshot returns the loaded catalog without triggering a fetch. The second
// return is false until a load has succeeded.
func (l *CatalogLoader) Snapshot() (prices.Catalog, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != CatalogLoaded {
		return nil, false
	}
	return l.snapshot, true
}

// State reports the loader's current lifecycle phase.
func (l *CatalogLoader) State() CatalogState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
