package prices

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lumafood/storefront-api/pkg/logger"
	"github.com/lumafood/storefront-api/pkg/money"
	"github.com/lumafood/storefront-api/pkg/redis"
	"github.com/lumafood/storefront-api/pkg/stripe"
)

// Record is one published catalog entry: a major-unit decimal amount with
// two fraction digits plus an upper-case ISO currency code.
type Record struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// Catalog maps price identifiers to their display records.
type Catalog map[string]Record

type priceLister interface {
	ListActivePrices(ctx context.Context) ([]stripe.Price, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey() string
}

// Service publishes the fixed-price catalog.
type Service interface {
	Catalog(ctx context.Context) (Catalog, error)
	MaxAge() time.Duration
}

type service struct {
	client priceLister
	cache  snapshotCache
	ttl    time.Duration
	logg   *logger.Logger
}

// NewService builds the catalog service. cache may be nil, in which case
// every call goes upstream and only the HTTP cache header throttles traffic.
// A nil concrete client counts as no cache, so callers can pass their
// possibly-unconfigured client straight through.
func NewService(client priceLister, cache snapshotCache, ttl time.Duration, logg *logger.Logger) Service {
	if c, ok := cache.(*redis.Client); ok && c == nil {
		cache = nil
	}
	return &service{client: client, cache: cache, ttl: ttl, logg: logg}
}

// MaxAge is the public cache lifetime advertised on the /prices response.
func (s *service) MaxAge() time.Duration {
	return s.ttl
}

// Catalog lists active prices and keeps only records with a fixed unit
// amount; tiered and usage-based prices have nothing displayable. Cache
// failures degrade to an upstream fetch, never to a request failure.
func (s *service) Catalog(ctx context.Context) (Catalog, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	upstream, err := s.client.ListActivePrices(ctx)
	if err != nil {
		return nil, err
	}

	catalog := Catalog{}
	for _, price := range upstream {
		if price.UnitAmount == nil {
			continue
		}
		catalog[price.ID] = Record{
			Amount:   money.MinorToMajor(*price.UnitAmount),
			Currency: money.NormalizeCurrency(price.Currency),
		}
	}

	s.toCache(ctx, catalog)
	return catalog, nil
}

func (s *service) fromCache(ctx context.Context) (Catalog, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.CatalogKey())
	if err != nil {
		if !redis.IsMiss(err) && s.logg != nil {
			s.logg.Warn(ctx, "price snapshot cache read failed")
		}
		return nil, false
	}
	var catalog Catalog
	if err := json.Unmarshal([]byte(raw), &catalog); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "price snapshot cache held invalid JSON")
		}
		return nil, false
	}
	return catalog, true
}

func (s *service) toCache(ctx context.Context, catalog Catalog) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(catalog)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CatalogKey(), string(raw), s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "price snapshot cache write failed")
	}
}
