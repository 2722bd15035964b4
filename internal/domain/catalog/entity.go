// internal/domain/catalog/entity.go
package catalog

// Product represents a menu product fetched from the document store.
// Products are read-only reference data; prices are in centavos.
type Product struct {
	ID              string         `json:"id" firestore:"-"`
	Name            string         `json:"name" firestore:"name"`
	Description     string         `json:"description" firestore:"description"`
	LongDescription string         `json:"long_description,omitempty" firestore:"longDescription"`
	Price           int64          `json:"price" firestore:"price"`
	ImageURL        string         `json:"image_url" firestore:"imageUrl"`
	Category        string         `json:"category" firestore:"category"`
	Subcategory     string         `json:"subcategory,omitempty" firestore:"subcategory"`
	Available       bool           `json:"available" firestore:"available"`
	Sizes           []Size         `json:"sizes,omitempty" firestore:"sizes"`
	Temperatures    []Temperature  `json:"temperatures,omitempty" firestore:"temperatures"`
	Nutrition       *NutritionInfo `json:"nutrition,omitempty" firestore:"nutritionInfo"`
	Allergens       []string       `json:"allergens,omitempty" firestore:"allergens"`
}

// Size is a configurable size option. PriceModifier is added to the
// product's base price when the size is selected.
type Size struct {
	ID            string `json:"id" firestore:"id"`
	Name          string `json:"name" firestore:"name"`
	PriceModifier int64  `json:"price_modifier" firestore:"priceModifier"`
}

// Temperature is a configurable serving temperature option ("Hot", "Iced", "Blended").
type Temperature struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name"`
}

// NutritionInfo holds optional per-product nutrition facts.
type NutritionInfo struct {
	Calories int  `json:"calories" firestore:"calories"`
	Caffeine *int `json:"caffeine,omitempty" firestore:"caffeine"`
	Sugar    *int `json:"sugar,omitempty" firestore:"sugar"`
}

// Promo represents a home-screen promotion banner.
type Promo struct {
	ID           string `json:"id" firestore:"-"`
	Title        string `json:"title" firestore:"title"`
	Description  string `json:"description" firestore:"description"`
	ImageURL     string `json:"image_url" firestore:"imageUrl"`
	TargetScreen string `json:"target_screen,omitempty" firestore:"targetScreen"`
	Priority     int    `json:"priority" firestore:"priority"`
	Active       bool   `json:"active" firestore:"active"`
}

// SizeByID returns the size option with the given id, or nil.
func (p *Product) SizeByID(id string) *Size {
	for i := range p.Sizes {
		if p.Sizes[i].ID == id {
			return &p.Sizes[i]
		}
	}
	return nil
}

// TemperatureByID returns the temperature option with the given id, or nil.
func (p *Product) TemperatureByID(id string) *Temperature {
	for i := range p.Temperatures {
		if p.Temperatures[i].ID == id {
			return &p.Temperatures[i]
		}
	}
	return nil
}
