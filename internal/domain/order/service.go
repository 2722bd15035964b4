// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

// ErrOrderNotFound is returned when an order id does not exist or does
// not belong to the requesting user.
var ErrOrderNotFound = errors.New("order not found")

// Service handles order history reads. Orders are immutable once placed;
// status transitions happen store-side and are only observed here.
type Service struct {
	store Store
}

// NewService creates a new order service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetOrders returns the user's orders newest-first.
func (s *Service) GetOrders(ctx context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}

	orders, err := s.store.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, nil
}

// GetOrder returns a single order, owner-checked: another user's order
// id reads as not found.
func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*Order, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}

	o, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch order %s: %w", orderID, err)
	}

	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}

	return o, nil
}
