// internal/infrastructure/firestore/cart.go
package firestoreinfra

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/your-org/coffeebean-backend/internal/domain/cart"
)

const (
	usersCollection   = "users"
	cartSubcollection = "cart"
)

// CartStore persists cart lines as documents under the per-user
// subcollection users/{uid}/cart.
type CartStore struct {
	client *Client
	logger *logrus.Logger
}

// NewCartStore creates a new cart store
func NewCartStore(client *Client, logger *logrus.Logger) *CartStore {
	return &CartStore{client: client, logger: logger}
}

func (s *CartStore) cartRef(userID string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(userID).Collection(cartSubcollection)
}

// Lines returns all cart lines for the user, newest first.
func (s *CartStore) Lines(ctx context.Context, userID string) ([]cart.Line, error) {
	iter := s.cartRef(userID).OrderBy("timestamp", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	lines := make([]cart.Line, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list cart lines: %w", err)
		}

		line, err := decodeLine(doc)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	return lines, nil
}

// Line returns a single cart line by its document ID.
func (s *CartStore) Line(ctx context.Context, userID, lineID string) (*cart.Line, error) {
	doc, err := s.cartRef(userID).Doc(lineID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, cart.ErrLineNotFound
		}
		return nil, fmt.Errorf("failed to get cart line %s: %w", lineID, err)
	}
	return decodeLine(doc)
}

// Add writes a new cart line under its pre-assigned document ID.
func (s *CartStore) Add(ctx context.Context, userID string, line cart.Line) error {
	if _, err := s.cartRef(userID).Doc(line.ID).Set(ctx, line); err != nil {
		return fmt.Errorf("failed to add cart line: %w", err)
	}
	return nil
}

// Update rewrites only the quantity and derived total of an existing
// line. The creation timestamp is left untouched so merged lines keep
// their original position in the cart.
func (s *CartStore) Update(ctx context.Context, userID, lineID string, quantity int, totalPrice int64) error {
	_, err := s.cartRef(userID).Doc(lineID).Update(ctx, []firestore.Update{
		{Path: "quantity", Value: quantity},
		{Path: "totalPrice", Value: totalPrice},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return cart.ErrLineNotFound
		}
		return fmt.Errorf("failed to update cart line %s: %w", lineID, err)
	}
	return nil
}

// Remove deletes a cart line. Deleting a line that no longer exists is
// not an error.
func (s *CartStore) Remove(ctx context.Context, userID, lineID string) error {
	if _, err := s.cartRef(userID).Doc(lineID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove cart line %s: %w", lineID, err)
	}
	return nil
}

// Clear deletes every line in the user's cart. Every delete outcome is
// checked so a rejected write surfaces as an error instead of leaving
// lines behind a nil return.
func (s *CartStore) Clear(ctx context.Context, userID string) error {
	iter := s.cartRef(userID).Documents(ctx)
	defer iter.Stop()

	bw := s.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	// End flushes but reports nothing; the per-write results carry the
	// RPC outcomes.
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
	}

	return nil
}

// Watch streams the full cart line set on every change until ctx is
// cancelled.
func (s *CartStore) Watch(ctx context.Context, userID string) (<-chan []cart.Line, error) {
	snapshots := s.cartRef(userID).OrderBy("timestamp", firestore.Desc).Snapshots(ctx)

	out := make(chan []cart.Line)
	go func() {
		defer close(out)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					s.logger.WithError(err).WithField("user_id", userID).Warn("Cart watch terminated")
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				s.logger.WithError(err).WithField("user_id", userID).Warn("Cart watch read failed")
				return
			}
			lines := make([]cart.Line, 0, len(docs))
			for _, doc := range docs {
				line, err := decodeLine(doc)
				if err != nil {
					s.logger.WithError(err).WithField("user_id", userID).Warn("Skipping undecodable cart line")
					continue
				}
				lines = append(lines, *line)
			}

			select {
			case out <- lines:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func decodeLine(doc *firestore.DocumentSnapshot) (*cart.Line, error) {
	var line cart.Line
	if err := doc.DataTo(&line); err != nil {
		return nil, fmt.Errorf("failed to decode cart line %s: %w", doc.Ref.ID, err)
	}
	line.ID = doc.Ref.ID
	if line.AddedAt.IsZero() {
		line.AddedAt = time.Now().UTC()
	}
	return &line, nil
}
