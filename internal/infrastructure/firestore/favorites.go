// internal/infrastructure/firestore/favorites.go
package firestoreinfra

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const favoritesField = "favorites"

// FavoriteStore keeps the user's favorite product IDs as an array field
// on the users/{uid} document.
type FavoriteStore struct {
	client *Client
}

// NewFavoriteStore creates a new favorite store
func NewFavoriteStore(client *Client) *FavoriteStore {
	return &FavoriteStore{client: client}
}

// Favorites returns the user's favorite product IDs. A missing user
// document means no favorites yet.
func (s *FavoriteStore) Favorites(ctx context.Context, userID string) ([]string, error) {
	doc, err := s.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	raw, err := doc.DataAt(favoritesField)
	if err != nil {
		// Field absent on an existing document.
		return []string{}, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return []string{}, nil
	}

	favorites := make([]string, 0, len(items))
	for _, item := range items {
		if id, ok := item.(string); ok {
			favorites = append(favorites, id)
		}
	}
	return favorites, nil
}

// Add appends a product ID to the favorites array, creating the user
// document if it does not exist yet.
func (s *FavoriteStore) Add(ctx context.Context, userID, productID string) error {
	_, err := s.client.Collection(usersCollection).Doc(userID).Set(ctx, map[string]interface{}{
		favoritesField: firestore.ArrayUnion(productID),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a product ID from the favorites array. Removing from a
// missing document is not an error.
func (s *FavoriteStore) Remove(ctx context.Context, userID, productID string) error {
	_, err := s.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: favoritesField, Value: firestore.ArrayRemove(productID)},
	})
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
