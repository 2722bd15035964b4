// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/coffeebean-backend/internal/domain/catalog"
	"github.com/your-org/coffeebean-backend/internal/domain/pricing"
	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

var (
	// ErrInvalidQuantity is returned when a requested quantity is below 1.
	// Rejected before any store write.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrLineNotFound is returned when an update targets a cart line id
	// that is no longer present. Callers should refresh and retry.
	ErrLineNotFound = errors.New("cart line not found")
)

// Store is the document-store boundary for a user's cart subcollection.
// Remove and Clear are idempotent: removing an absent line succeeds.
type Store interface {
	Lines(ctx context.Context, userID string) ([]Line, error)
	Line(ctx context.Context, userID, lineID string) (*Line, error)
	Add(ctx context.Context, userID string, line Line) error
	Update(ctx context.Context, userID, lineID string, quantity int, totalPrice int64) error
	Remove(ctx context.Context, userID, lineID string) error
	Clear(ctx context.Context, userID string) error
	Watch(ctx context.Context, userID string) (<-chan []Line, error)
}

// Service is the single mutation entry point for a user's cart. Every
// mutation re-reads the latest store state before writing so that adds
// from another device under the same account merge instead of
// duplicating. Totals are always derived from the lines.
type Service struct {
	store  Store
	logger *logrus.Logger
}

// NewService creates a new cart service.
func NewService(store Store, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// AddLineRequest represents an add-to-cart request with the product
// display snapshot captured at add time.
type AddLineRequest struct {
	ProductID    string               `json:"product_id" binding:"required"`
	ProductName  string               `json:"product_name" binding:"required"`
	ProductImage string               `json:"product_image"`
	BasePrice    int64                `json:"base_price" binding:"min=0"`
	Quantity     int                  `json:"quantity" binding:"required"`
	Size         *catalog.Size        `json:"size,omitempty"`
	Temperature  *catalog.Temperature `json:"temperature,omitempty"`
}

// AddLine adds a configured line to the user's cart. If a line with the
// same (product, size, temperature) configuration already exists, the
// quantities are summed onto the existing line and its total recomputed;
// the line keeps its id and creation timestamp. Otherwise a new line is
// created.
func (s *Service) AddLine(ctx context.Context, userID string, req *AddLineRequest) (*Snapshot, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// Read the latest lines rather than trusting any cached view, so a
	// concurrent add from another session merges instead of forking.
	lines, err := s.store.Lines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var existing *Line
	for i := range lines {
		if lines[i].MatchesSelection(req.ProductID, req.Size, req.Temperature) {
			existing = &lines[i]
			break
		}
	}

	if existing != nil {
		newQuantity := existing.Quantity + req.Quantity
		total := pricing.LineTotal(existing.BasePrice, existing.SizeModifier(), newQuantity)
		if err := s.store.Update(ctx, userID, existing.ID, newQuantity, total); err != nil {
			return nil, fmt.Errorf("failed to merge cart line: %w", err)
		}
	} else {
		line := Line{
			ID:           uuid.New().String(),
			ProductID:    req.ProductID,
			ProductName:  req.ProductName,
			ProductImage: req.ProductImage,
			BasePrice:    req.BasePrice,
			Quantity:     req.Quantity,
			Size:         req.Size,
			Temperature:  req.Temperature,
			AddedAt:      time.Now().UTC(),
		}
		line.TotalPrice = pricing.LineTotal(line.BasePrice, line.SizeModifier(), line.Quantity)
		if err := s.store.Add(ctx, userID, line); err != nil {
			return nil, fmt.Errorf("failed to add cart line: %w", err)
		}
	}

	return s.GetCart(ctx, userID)
}

// UpdateLineQuantity sets a line's quantity and recomputes its total.
// A quantity of zero or below removes the line instead. Returns
// ErrLineNotFound if the line id is absent.
func (s *Service) UpdateLineQuantity(ctx context.Context, userID, lineID string, quantity int) (*Snapshot, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}

	if quantity <= 0 {
		return s.RemoveLine(ctx, userID, lineID)
	}

	// Fetch the line fresh so the total is recomputed from current data,
	// not from whatever the caller last saw.
	line, err := s.store.Line(ctx, userID, lineID)
	if err != nil {
		if errors.Is(err, ErrLineNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read cart line: %w", err)
	}

	total := pricing.LineTotal(line.BasePrice, line.SizeModifier(), quantity)
	if err := s.store.Update(ctx, userID, lineID, quantity, total); err != nil {
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// RemoveLine removes a line from the cart. Removing an absent line is a
// no-op, which tolerates races with a concurrent removal.
func (s *Service) RemoveLine(ctx context.Context, userID, lineID string) (*Snapshot, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}

	if err := s.store.Remove(ctx, userID, lineID); err != nil {
		return nil, fmt.Errorf("failed to remove cart line: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// Clear empties the user's cart. Idempotent.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return auth.ErrUnauthenticated
	}

	if err := s.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// GetCart returns the current cart snapshot ordered newest-first with
// derived totals.
func (s *Service) GetCart(ctx context.Context, userID string) (*Snapshot, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}

	lines, err := s.store.Lines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	return newSnapshot(lines), nil
}

// GetItemCount returns the sum of quantities across the cart.
func (s *Service) GetItemCount(ctx context.Context, userID string) (int, error) {
	snapshot, err := s.GetCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	return snapshot.Totals.TotalQuantity, nil
}

// Watch streams cart snapshots from the store's live feed. Each snapshot
// pairs the observed lines with totals derived from exactly those lines,
// so observers never see totals from a different mutation generation.
// The channel closes when ctx is cancelled.
func (s *Service) Watch(ctx context.Context, userID string) (<-chan Snapshot, error) {
	if userID == "" {
		return nil, auth.ErrUnauthenticated
	}

	updates, err := s.store.Watch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to watch cart: %w", err)
	}

	out := make(chan Snapshot)
	go func() {
		defer close(out)
		for lines := range updates {
			select {
			case out <- *newSnapshot(lines):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func newSnapshot(lines []Line) *Snapshot {
	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AddedAt.After(sorted[j].AddedAt)
	})

	totals := Totals{ItemCount: len(sorted)}
	for _, l := range sorted {
		totals.TotalQuantity += l.Quantity
		totals.Subtotal += pricing.LineTotal(l.BasePrice, l.SizeModifier(), l.Quantity)
	}

	return &Snapshot{Lines: sorted, Totals: totals}
}
