// internal/domain/branch/entity.go
package branch

// Branch represents a physical store branch. Read-only reference data.
type Branch struct {
	ID             string  `json:"id" firestore:"-"`
	Name           string  `json:"name" firestore:"name"`
	Address        string  `json:"address" firestore:"address"`
	Latitude       float64 `json:"latitude" firestore:"latitude"`
	Longitude      float64 `json:"longitude" firestore:"longitude"`
	Phone          string  `json:"phone" firestore:"phone"`
	OperatingHours string  `json:"operating_hours" firestore:"operatingHours"`
	IsOpen         bool    `json:"is_open" firestore:"isOpen"`
	ImageURL       string  `json:"image_url" firestore:"imageUrl"`
}
