// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/coffeebean-backend/internal/domain/catalog"
)

// Line represents one configured quantity of a product in a user's cart.
// Product display fields are denormalized at add-time so the cart renders
// stably even if the catalog changes afterwards. TotalPrice is derived:
// (basePrice + size modifier) x quantity, recomputed on every mutation.
type Line struct {
	ID           string               `json:"id" firestore:"-"`
	ProductID    string               `json:"product_id" firestore:"productId"`
	ProductName  string               `json:"product_name" firestore:"productName"`
	ProductImage string               `json:"product_image" firestore:"productImage"`
	BasePrice    int64                `json:"base_price" firestore:"basePrice"`
	Quantity     int                  `json:"quantity" firestore:"quantity"`
	Size         *catalog.Size        `json:"size,omitempty" firestore:"selectedSize"`
	Temperature  *catalog.Temperature `json:"temperature,omitempty" firestore:"selectedTemperature"`
	TotalPrice   int64                `json:"total_price" firestore:"totalPrice"`
	AddedAt      time.Time            `json:"added_at" firestore:"timestamp"`
}

// SizeModifier returns the selected size's price modifier, or 0 when no
// size is selected.
func (l *Line) SizeModifier() int64 {
	if l.Size == nil {
		return 0
	}
	return l.Size.PriceModifier
}

// MatchesSelection reports whether the line has the given
// (product, size, temperature) configuration. An absent selection only
// matches another absent selection.
func (l *Line) MatchesSelection(productID string, size *catalog.Size, temperature *catalog.Temperature) bool {
	if l.ProductID != productID {
		return false
	}
	if !sameSizeID(l.Size, size) {
		return false
	}
	return sameTemperatureID(l.Temperature, temperature)
}

func sameSizeID(a, b *catalog.Size) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}

func sameTemperatureID(a, b *catalog.Temperature) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}

// Totals represents derived cart totals. Always recomputed from the
// lines, never stored.
type Totals struct {
	ItemCount     int   `json:"item_count"`     // number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // sum of all quantities
	Subtotal      int64 `json:"subtotal"`       // sum of line totals, centavos
}

// Snapshot is one consistent observation of a user's cart: the lines
// ordered newest-first plus the totals derived from exactly those lines.
type Snapshot struct {
	Lines  []Line `json:"lines"`
	Totals Totals `json:"totals"`
}
