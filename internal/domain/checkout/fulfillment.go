// internal/domain/checkout/fulfillment.go
package checkout

import (
	"errors"
	"fmt"

	"github.com/your-org/coffeebean-backend/internal/domain/branch"
	"github.com/your-org/coffeebean-backend/internal/domain/order"
)

// ErrMissingFulfillmentDetails is matched by errors.Is against any
// *MissingFulfillmentError.
var ErrMissingFulfillmentDetails = errors.New("missing fulfillment details")

// MissingFulfillmentError reports which fulfillment field is missing for
// the selected type.
type MissingFulfillmentError struct {
	Field string // "delivery_address" or "pickup_branch"
}

func (e *MissingFulfillmentError) Error() string {
	return fmt.Sprintf("missing fulfillment details: %s required", e.Field)
}

func (e *MissingFulfillmentError) Is(target error) bool {
	return target == ErrMissingFulfillmentDetails
}

// FulfillmentState holds the checkout screen's fulfillment selections.
// Switching Type keeps the other side's resolved value, so a user can
// toggle between delivery and pickup without re-entering data; only the
// field matching the current type gates order placement.
type FulfillmentState struct {
	Type            order.FulfillmentType  `json:"fulfillment_type"`
	DeliveryAddress *order.DeliveryAddress `json:"delivery_address,omitempty"`
	PickupBranch    *branch.Branch         `json:"pickup_branch,omitempty"`
}

// CanPlaceOrder reports whether the state is complete enough to place an
// order: delivery needs a resolved address, pickup a resolved branch.
// Re-evaluate on every relevant field change; this gates the checkout
// action's enabled state.
func (s *FulfillmentState) CanPlaceOrder() bool {
	switch s.Type {
	case order.FulfillmentDelivery:
		return s.DeliveryAddress != nil
	case order.FulfillmentPickup:
		return s.PickupBranch != nil
	default:
		return false
	}
}

// Validate returns a *MissingFulfillmentError naming the missing field,
// or nil when the state is complete.
func (s *FulfillmentState) Validate() error {
	switch s.Type {
	case order.FulfillmentDelivery:
		if s.DeliveryAddress == nil {
			return &MissingFulfillmentError{Field: "delivery_address"}
		}
	case order.FulfillmentPickup:
		if s.PickupBranch == nil {
			return &MissingFulfillmentError{Field: "pickup_branch"}
		}
	default:
		return fmt.Errorf("unknown fulfillment type %q", s.Type)
	}
	return nil
}
