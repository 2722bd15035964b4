// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrProductNotFound is returned when a product id does not exist.
var ErrProductNotFound = errors.New("product not found")

const (
	productsCacheKey = "catalog:products"
	promosCacheKey   = "catalog:promos"
	cacheTTL         = 5 * time.Minute
)

// Store is the document-store boundary for catalog reads.
type Store interface {
	Products(ctx context.Context, filter Filter) ([]Product, error)
	ProductByID(ctx context.Context, id string) (*Product, error)
	Promos(ctx context.Context, activeOnly bool) ([]Promo, error)
}

// Cache is the JSON cache boundary, satisfied by the Redis wrapper.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Filter narrows product listings.
type Filter struct {
	Category      string
	AvailableOnly bool
}

// Service handles catalog reads with a Redis read-through cache in front
// of the document store. The cache is advisory: any Redis failure falls
// back to the store.
type Service struct {
	store  Store
	cache  Cache
	logger *logrus.Logger
}

// NewService creates a new catalog service. cache may be nil, in which
// case caching is disabled.
func NewService(store Store, cache Cache, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// GetProducts returns available products, optionally filtered by category.
func (s *Service) GetProducts(ctx context.Context, category string) ([]Product, error) {
	filter := Filter{Category: strings.ToLower(strings.TrimSpace(category)), AvailableOnly: true}

	// Only the unfiltered listing is cached; category views are cheap
	// subsets of it.
	if filter.Category == "" {
		if cached, ok := s.cachedProducts(ctx); ok {
			return cached, nil
		}
	}

	products, err := s.store.Products(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	if filter.Category == "" {
		s.cacheProducts(ctx, products)
	}

	return products, nil
}

// GetProductByID returns a single product. Returns ErrProductNotFound if
// the id does not exist.
func (s *Service) GetProductByID(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductNotFound
	}

	product, err := s.store.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}

	return product, nil
}

// SearchProducts returns available products whose name or description
// contains the query, case-insensitive.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	products, err := s.GetProducts(ctx, "")
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products, nil
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			matched = append(matched, p)
		}
	}

	return matched, nil
}

// GetPromos returns active promos ordered by priority.
func (s *Service) GetPromos(ctx context.Context) ([]Promo, error) {
	if cached, ok := s.cachedPromos(ctx); ok {
		return cached, nil
	}

	promos, err := s.store.Promos(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch promos: %w", err)
	}

	s.cachePromos(ctx, promos)

	return promos, nil
}

// Cache helpers

func (s *Service) cachedProducts(ctx context.Context) ([]Product, bool) {
	if s.cache == nil {
		return nil, false
	}

	var products []Product
	if err := s.cache.GetJSON(ctx, productsCacheKey, &products); err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WithError(err).Debug("product cache read failed")
		}
		return nil, false
	}

	return products, true
}

func (s *Service) cacheProducts(ctx context.Context, products []Product) {
	if s.cache == nil {
		return
	}

	if err := s.cache.SetJSON(ctx, productsCacheKey, products, cacheTTL); err != nil {
		s.logger.WithError(err).Debug("product cache write failed")
	}
}

func (s *Service) cachedPromos(ctx context.Context) ([]Promo, bool) {
	if s.cache == nil {
		return nil, false
	}

	var promos []Promo
	if err := s.cache.GetJSON(ctx, promosCacheKey, &promos); err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WithError(err).Debug("promo cache read failed")
		}
		return nil, false
	}

	return promos, true
}

func (s *Service) cachePromos(ctx context.Context, promos []Promo) {
	if s.cache == nil {
		return
	}

	if err := s.cache.SetJSON(ctx, promosCacheKey, promos, cacheTTL); err != nil {
		s.logger.WithError(err).Debug("promo cache write failed")
	}
}
