// internal/infrastructure/firestore/orders.go
package firestoreinfra

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/your-org/coffeebean-backend/internal/domain/order"
)

const ordersCollection = "orders"

// OrderStore persists placed orders in Firestore.
type OrderStore struct {
	client *Client
}

// NewOrderStore creates a new order store
func NewOrderStore(client *Client) *OrderStore {
	return &OrderStore{client: client}
}

// Create writes a new order document under its pre-assigned ID and
// returns that ID.
func (s *OrderStore) Create(ctx context.Context, o *order.Order) (string, error) {
	if _, err := s.client.Collection(ordersCollection).Doc(o.ID).Create(ctx, o); err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return o.ID, nil
}

// OrdersByUser returns the user's orders, newest first.
func (s *OrderStore) OrdersByUser(ctx context.Context, userID string) ([]order.Order, error) {
	iter := s.client.Collection(ordersCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	orders := make([]order.Order, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}

		var o order.Order
		if err := doc.DataTo(&o); err != nil {
			return nil, fmt.Errorf("failed to decode order %s: %w", doc.Ref.ID, err)
		}
		o.ID = doc.Ref.ID
		orders = append(orders, o)
	}

	return orders, nil
}

// OrderByID returns a single order by its document ID.
func (s *OrderStore) OrderByID(ctx context.Context, id string) (*order.Order, error) {
	doc, err := s.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}

	var o order.Order
	if err := doc.DataTo(&o); err != nil {
		return nil, fmt.Errorf("failed to decode order %s: %w", id, err)
	}
	o.ID = doc.Ref.ID
	return &o, nil
}
