// internal/domain/favorites/service.go
package favorites

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

// Store is the document-store boundary for a user's favorites list.
type Store interface {
	Favorites(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

// Service handles the user's favorite products. Reads degrade to an
// empty list on store failure; writes always propagate errors.
type Service struct {
	store  Store
	logger *logrus.Logger
}

// NewService creates a new favorites service.
func NewService(store Store, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// GetFavorites returns the user's favorite product ids. A store failure
// logs and returns an empty list so the menu still renders.
func (s *Service) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}

	ids, err := s.store.Favorites(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("favorites fetch failed, returning empty list")
		return []string{}, nil
	}

	return ids, nil
}

// AddFavorite marks a product as a favorite. Idempotent.
func (s *Service) AddFavorite(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return auth.ErrUnauthenticated
	}

	if err := s.store.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

// RemoveFavorite unmarks a product. Idempotent.
func (s *Service) RemoveFavorite(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return auth.ErrUnauthenticated
	}

	if err := s.store.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}
