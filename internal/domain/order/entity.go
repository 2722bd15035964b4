// internal/domain/order/entity.go
package order

import (
	"context"
	"time"

	"github.com/your-org/coffeebean-backend/internal/domain/branch"
	"github.com/your-org/coffeebean-backend/internal/domain/catalog"
)

// FulfillmentType represents how an order reaches the customer.
type FulfillmentType string

const (
	FulfillmentDelivery FulfillmentType = "delivery"
	FulfillmentPickup   FulfillmentType = "pickup"
)

// Valid reports whether the fulfillment type is a known value.
func (t FulfillmentType) Valid() bool {
	return t == FulfillmentDelivery || t == FulfillmentPickup
}

// PaymentMethod represents how the customer pays.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGCash PaymentMethod = "gcash"
	PaymentCard  PaymentMethod = "card"
)

// Valid reports whether the payment method is a known value.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentGCash || m == PaymentCard
}

// Status represents the order status. Orders are created PENDING; later
// transitions belong to the store-side fulfillment system, not this service.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

// Order is the immutable record created at checkout confirmation.
// Monetary amounts are in centavos.
type Order struct {
	ID                    string           `json:"id" firestore:"-"`
	UserID                string           `json:"user_id" firestore:"userId"`
	Items                 []LineItem       `json:"items" firestore:"items"`
	FulfillmentType       FulfillmentType  `json:"fulfillment_type" firestore:"fulfillmentType"`
	DeliveryAddress       *DeliveryAddress `json:"delivery_address,omitempty" firestore:"deliveryAddress"`
	PickupBranch          *branch.Branch   `json:"pickup_branch,omitempty" firestore:"pickupBranch"`
	Subtotal              int64            `json:"subtotal" firestore:"subtotal"`
	DeliveryFee           int64            `json:"delivery_fee" firestore:"deliveryFee"`
	Total                 int64            `json:"total" firestore:"total"`
	PaymentMethod         PaymentMethod    `json:"payment_method" firestore:"paymentMethod"`
	Status                Status           `json:"status" firestore:"status"`
	CreatedAt             time.Time        `json:"created_at" firestore:"createdAt"`
	EstimatedDeliveryTime *time.Time       `json:"estimated_delivery_time,omitempty" firestore:"estimatedDeliveryTime"`
}

// LineItem is a denormalized snapshot of a cart line at placement time.
// It never changes after the order is created, even if the catalog does.
type LineItem struct {
	LineID       string               `json:"line_id" firestore:"lineId"`
	ProductID    string               `json:"product_id" firestore:"productId"`
	ProductName  string               `json:"product_name" firestore:"productName"`
	ProductImage string               `json:"product_image" firestore:"productImage"`
	BasePrice    int64                `json:"base_price" firestore:"basePrice"`
	Quantity     int                  `json:"quantity" firestore:"quantity"`
	Size         *catalog.Size        `json:"size,omitempty" firestore:"selectedSize"`
	Temperature  *catalog.Temperature `json:"temperature,omitempty" firestore:"selectedTemperature"`
	TotalPrice   int64                `json:"total_price" firestore:"totalPrice"`
}

// DeliveryAddress is the customer-entered destination for delivery orders.
type DeliveryAddress struct {
	FullAddress  string  `json:"full_address" firestore:"fullAddress"`
	Landmark     string  `json:"landmark,omitempty" firestore:"landmark"`
	Latitude     float64 `json:"latitude" firestore:"latitude"`
	Longitude    float64 `json:"longitude" firestore:"longitude"`
	Instructions string  `json:"instructions,omitempty" firestore:"instructions"`
}

// Store is the document-store boundary for orders.
type Store interface {
	Create(ctx context.Context, o *Order) (string, error)
	OrdersByUser(ctx context.Context, userID string) ([]Order, error)
	OrderByID(ctx context.Context, id string) (*Order, error)
}
