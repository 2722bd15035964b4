// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/coffeebean-backend/internal/domain/cart"
	"github.com/your-org/coffeebean-backend/internal/domain/order"
	"github.com/your-org/coffeebean-backend/internal/domain/pricing"
	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

// ErrEmptyCart is returned when order placement is attempted with zero
// cart lines. No store write is attempted.
var ErrEmptyCart = errors.New("cart is empty")

// Service handles checkout: quoting totals for the current cart and
// assembling orders from it.
type Service struct {
	cartService *cart.Service
	orders      order.Store
	pricing     pricing.Config
	logger      *logrus.Logger
}

// NewService creates a new checkout service.
func NewService(cartService *cart.Service, orders order.Store, pricingCfg pricing.Config, logger *logrus.Logger) *Service {
	return &Service{
		cartService: cartService,
		orders:      orders,
		pricing:     pricingCfg,
		logger:      logger,
	}
}

// Quote is the pricing breakdown for the current cart under a
// fulfillment type. Recomputed server-side on request; never cached.
type Quote struct {
	Cart        *cart.Snapshot        `json:"cart"`
	Fulfillment order.FulfillmentType `json:"fulfillment_type"`
	Subtotal    int64                 `json:"subtotal"`
	DeliveryFee int64                 `json:"delivery_fee"`
	Total       int64                 `json:"total"`
}

// GetQuote computes subtotal, delivery fee, and grand total for the
// user's current cart and the given fulfillment type.
func (s *Service) GetQuote(ctx context.Context, userID string, fulfillment order.FulfillmentType) (*Quote, error) {
	if !fulfillment.Valid() {
		return nil, fmt.Errorf("unknown fulfillment type %q", fulfillment)
	}

	snapshot, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtotal := snapshot.Totals.Subtotal
	fee := s.pricing.DeliveryFeeFor(subtotal, fulfillment)

	return &Quote{
		Cart:        snapshot,
		Fulfillment: fulfillment,
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       pricing.GrandTotal(subtotal, fee),
	}, nil
}

// PlaceOrder validates the fulfillment state, snapshots the current cart,
// recomputes totals at the instant of placement, persists the order, and
// clears the cart. If persistence fails the cart is left untouched so the
// attempt is retry-safe; if the clear fails afterwards the cart is simply
// re-cleared on next load (clear is idempotent) rather than risking a
// duplicate order.
func (s *Service) PlaceOrder(ctx context.Context, userID string, state FulfillmentState, payment order.PaymentMethod) (string, error) {
	if userID == "" {
		return "", auth.ErrUnauthenticated
	}

	if err := state.Validate(); err != nil {
		return "", err
	}

	if payment == "" {
		payment = order.PaymentCash
	}
	if !payment.Valid() {
		return "", fmt.Errorf("unsupported payment method %q", payment)
	}

	snapshot, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(snapshot.Lines) == 0 {
		return "", ErrEmptyCart
	}

	subtotal := snapshot.Totals.Subtotal
	fee := s.pricing.DeliveryFeeFor(subtotal, state.Type)

	o := &order.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           orderItems(snapshot.Lines),
		FulfillmentType: state.Type,
		Subtotal:        subtotal,
		DeliveryFee:     fee,
		Total:           pricing.GrandTotal(subtotal, fee),
		PaymentMethod:   payment,
		Status:          order.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	switch state.Type {
	case order.FulfillmentDelivery:
		addr := *state.DeliveryAddress
		o.DeliveryAddress = &addr
	case order.FulfillmentPickup:
		b := *state.PickupBranch
		o.PickupBranch = &b
	}

	orderID, err := s.orders.Create(ctx, o)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cartService.Clear(ctx, userID); err != nil {
		// The order exists; the stale cart will be cleared on the next
		// load rather than failing the placement.
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"order_id": orderID,
		}).Warn("failed to clear cart after order creation")
	}

	return orderID, nil
}

// orderItems deep-copies cart lines into immutable order line items. Line
// totals are recomputed so they always sum to the order subtotal even if a
// stored total drifted.
func orderItems(lines []cart.Line) []order.LineItem {
	items := make([]order.LineItem, len(lines))
	for i, l := range lines {
		item := order.LineItem{
			LineID:       l.ID,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductImage: l.ProductImage,
			BasePrice:    l.BasePrice,
			Quantity:     l.Quantity,
			TotalPrice:   pricing.LineTotal(l.BasePrice, l.SizeModifier(), l.Quantity),
		}
		if l.Size != nil {
			size := *l.Size
			item.Size = &size
		}
		if l.Temperature != nil {
			temp := *l.Temperature
			item.Temperature = &temp
		}
		items[i] = item
	}
	return items
}
