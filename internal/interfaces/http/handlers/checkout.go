// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/coffeebean-backend/internal/domain/checkout"
	"github.com/your-org/coffeebean-backend/internal/domain/order"
	"github.com/your-org/coffeebean-backend/internal/interfaces/http/middleware"
	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// GetQuote handles GET /checkout/quote
func (h *CheckoutHandler) GetQuote(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	fulfillment := order.FulfillmentType(c.DefaultQuery("fulfillment_type", string(order.FulfillmentDelivery)))
	if !fulfillment.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fulfillment type"})
		return
	}

	quote, err := h.checkoutService.GetQuote(c.Request.Context(), userID, fulfillment)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quote computed successfully",
		"data":    quote,
	})
}

// PlaceOrderRequest represents the order placement payload
type PlaceOrderRequest struct {
	Fulfillment   checkout.FulfillmentState `json:"fulfillment" binding:"required"`
	PaymentMethod order.PaymentMethod       `json:"payment_method"`
}

// PlaceOrder handles POST /checkout/orders
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	orderID, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, req.Fulfillment, req.PaymentMethod)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    gin.H{"order_id": orderID},
	})
}

func respondCheckoutError(c *gin.Context, err error) {
	var missing *checkout.MissingFulfillmentError

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing fulfillment details",
			"field": missing.Field,
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process checkout request"})
	}
}
