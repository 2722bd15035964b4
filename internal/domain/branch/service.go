// internal/domain/branch/service.go
package branch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	branchesCacheKey = "branches:all"
	cacheTTL         = 10 * time.Minute

	earthRadiusMeters = 6371000.0
)

// Store is the document-store boundary for branch reads.
type Store interface {
	Branches(ctx context.Context, openOnly bool) ([]Branch, error)
}

// Cache is the JSON cache boundary, satisfied by the Redis wrapper.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Service handles branch listing and nearest-branch resolution.
type Service struct {
	store  Store
	cache  Cache
	logger *logrus.Logger
}

// NewService creates a new branch service. cache may be nil.
func NewService(store Store, cache Cache, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// GetBranches returns all branches, or only open ones when openOnly is set.
func (s *Service) GetBranches(ctx context.Context, openOnly bool) ([]Branch, error) {
	branches, err := s.allBranches(ctx)
	if err != nil {
		return nil, err
	}

	if !openOnly {
		return branches, nil
	}

	open := make([]Branch, 0, len(branches))
	for _, b := range branches {
		if b.IsOpen {
			open = append(open, b)
		}
	}

	return open, nil
}

// GetNearestBranch returns the branch closest to the given coordinate by
// great-circle distance. Returns nil (not an error) when no branches
// exist. The suggestion is advisory; callers may still pick any branch.
func (s *Service) GetNearestBranch(ctx context.Context, latitude, longitude float64) (*Branch, error) {
	branches, err := s.allBranches(ctx)
	if err != nil {
		return nil, err
	}

	return Nearest(latitude, longitude, branches), nil
}

// Nearest selects the minimum-distance branch from the given point.
// Ties are broken by first occurrence in input order. Returns nil for an
// empty slice.
func Nearest(latitude, longitude float64, branches []Branch) *Branch {
	if len(branches) == 0 {
		return nil
	}

	nearest := 0
	best := Distance(latitude, longitude, branches[0].Latitude, branches[0].Longitude)
	for i := 1; i < len(branches); i++ {
		d := Distance(latitude, longitude, branches[i].Latitude, branches[i].Longitude)
		if d < best {
			best = d
			nearest = i
		}
	}

	b := branches[nearest]
	return &b
}

// Distance returns the haversine great-circle distance in meters between
// two (latitude, longitude) pairs.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func (s *Service) allBranches(ctx context.Context) ([]Branch, error) {
	if cached, ok := s.cachedBranches(ctx); ok {
		return cached, nil
	}

	branches, err := s.store.Branches(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branches: %w", err)
	}

	s.cacheBranches(ctx, branches)

	return branches, nil
}

func (s *Service) cachedBranches(ctx context.Context) ([]Branch, bool) {
	if s.cache == nil {
		return nil, false
	}

	var branches []Branch
	if err := s.cache.GetJSON(ctx, branchesCacheKey, &branches); err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WithError(err).Debug("branch cache read failed")
		}
		return nil, false
	}

	return branches, true
}

func (s *Service) cacheBranches(ctx context.Context, branches []Branch) {
	if s.cache == nil {
		return
	}

	if err := s.cache.SetJSON(ctx, branchesCacheKey, branches, cacheTTL); err != nil {
		s.logger.WithError(err).Debug("branch cache write failed")
	}
}
