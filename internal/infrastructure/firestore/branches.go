// internal/infrastructure/firestore/branches.go
package firestoreinfra

import (
	"context"
	"fmt"

	"google.golang.org/api/iterator"

	"github.com/your-org/coffeebean-backend/internal/domain/branch"
)

const branchesCollection = "branches"

// BranchStore reads store branches from Firestore.
type BranchStore struct {
	client *Client
}

// NewBranchStore creates a new branch store
func NewBranchStore(client *Client) *BranchStore {
	return &BranchStore{client: client}
}

// Branches returns all branches, optionally only those currently open.
func (s *BranchStore) Branches(ctx context.Context, openOnly bool) ([]branch.Branch, error) {
	query := s.client.Collection(branchesCollection).Query
	if openOnly {
		query = query.Where("isOpen", "==", true)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	branches := make([]branch.Branch, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list branches: %w", err)
		}

		var b branch.Branch
		if err := doc.DataTo(&b); err != nil {
			return nil, fmt.Errorf("failed to decode branch %s: %w", doc.Ref.ID, err)
		}
		b.ID = doc.Ref.ID
		branches = append(branches, b)
	}

	return branches, nil
}
