// internal/infrastructure/firestore/products.go
package firestoreinfra

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/your-org/coffeebean-backend/internal/domain/catalog"
)

const (
	productsCollection = "products"
	promosCollection   = "promos"
)

// ProductStore persists products and promos in Firestore.
type ProductStore struct {
	client *Client
}

// NewProductStore creates a new product store
func NewProductStore(client *Client) *ProductStore {
	return &ProductStore{client: client}
}

// Products returns the products matching the given filter.
func (s *ProductStore) Products(ctx context.Context, filter catalog.Filter) ([]catalog.Product, error) {
	query := s.client.Collection(productsCollection).Query
	if filter.AvailableOnly {
		query = query.Where("available", "==", true)
	}
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	products := make([]catalog.Product, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}

		var product catalog.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, fmt.Errorf("failed to decode product %s: %w", doc.Ref.ID, err)
		}
		product.ID = doc.Ref.ID
		products = append(products, product)
	}

	return products, nil
}

// ProductByID returns a single product by its document ID.
func (s *ProductStore) ProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	doc, err := s.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	var product catalog.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	product.ID = doc.Ref.ID
	return &product, nil
}

// Promos returns promo banners, highest priority first.
func (s *ProductStore) Promos(ctx context.Context, activeOnly bool) ([]catalog.Promo, error) {
	query := s.client.Collection(promosCollection).Query
	if activeOnly {
		query = query.Where("active", "==", true)
	}
	query = query.OrderBy("priority", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	promos := make([]catalog.Promo, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list promos: %w", err)
		}

		var promo catalog.Promo
		if err := doc.DataTo(&promo); err != nil {
			return nil, fmt.Errorf("failed to decode promo %s: %w", doc.Ref.ID, err)
		}
		promo.ID = doc.Ref.ID
		promos = append(promos, promo)
	}

	return promos, nil
}
