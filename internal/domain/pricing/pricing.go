// internal/domain/pricing/pricing.go
package pricing

import (
	"github.com/your-org/coffeebean-backend/internal/domain/order"
)

// Pure pricing functions. All amounts are in centavos and non-negative;
// fixed-point arithmetic keeps repeated recomputation drift-free.

// Config holds the delivery-fee business constants. Values come from
// configuration; DefaultConfig matches the storefront defaults.
type Config struct {
	FreeDeliveryThreshold int64 // subtotal at or above which delivery is free
	DeliveryFee           int64 // flat fee below the threshold
}

// DefaultConfig returns the standard fee schedule: flat 50.00 delivery
// fee, waived at a 500.00 subtotal.
func DefaultConfig() Config {
	return Config{
		FreeDeliveryThreshold: 50000,
		DeliveryFee:           5000,
	}
}

// LineTotal computes a cart line's total price:
// (base price + size modifier) x quantity.
func LineTotal(basePrice, sizeModifier int64, quantity int) int64 {
	return (basePrice + sizeModifier) * int64(quantity)
}

// Subtotal sums line totals.
func Subtotal(lineTotals ...int64) int64 {
	var sum int64
	for _, t := range lineTotals {
		sum += t
	}
	return sum
}

// DeliveryFeeFor computes the delivery fee for a subtotal and fulfillment
// type. Pickup orders never carry a fee; delivery is free at or above the
// configured threshold.
func (c Config) DeliveryFeeFor(subtotal int64, fulfillment order.FulfillmentType) int64 {
	if fulfillment != order.FulfillmentDelivery {
		return 0
	}
	if subtotal >= c.FreeDeliveryThreshold {
		return 0
	}
	return c.DeliveryFee
}

// GrandTotal computes the order total.
func GrandTotal(subtotal, deliveryFee int64) int64 {
	return subtotal + deliveryFee
}
