package favorites

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

type fakeStore struct {
	favorites map[string][]string
	err       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{favorites: make(map[string][]string)}
}

func (f *fakeStore) Favorites(_ context.Context, userID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.favorites[userID], nil
}

func (f *fakeStore) Add(_ context.Context, userID, productID string) error {
	if f.err != nil {
		return f.err
	}
	for _, id := range f.favorites[userID] {
		if id == productID {
			return nil
		}
	}
	f.favorites[userID] = append(f.favorites[userID], productID)
	return nil
}

func (f *fakeStore) Remove(_ context.Context, userID, productID string) error {
	if f.err != nil {
		return f.err
	}
	kept := f.favorites[userID][:0]
	for _, id := range f.favorites[userID] {
		if id != productID {
			kept = append(kept, id)
		}
	}
	f.favorites[userID] = kept
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestAddAndListFavorites(t *testing.T) {
	svc := NewService(newFakeStore(), testLogger())
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, "user-1", "latte"))
	require.NoError(t, svc.AddFavorite(ctx, "user-1", "mocha"))

	ids, err := svc.GetFavorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"latte", "mocha"}, ids)
}

func TestRemoveFavorite(t *testing.T) {
	svc := NewService(newFakeStore(), testLogger())
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, "user-1", "latte"))
	require.NoError(t, svc.RemoveFavorite(ctx, "user-1", "latte"))

	ids, err := svc.GetFavorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetFavoritesDegradesOnStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("firestore unavailable")
	svc := NewService(store, testLogger())

	// Reads degrade to an empty list rather than failing the caller.
	ids, err := svc.GetFavorites(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestWritesPropagateStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("firestore unavailable")
	svc := NewService(store, testLogger())
	ctx := context.Background()

	assert.Error(t, svc.AddFavorite(ctx, "user-1", "latte"))
	assert.Error(t, svc.RemoveFavorite(ctx, "user-1", "latte"))
}

func TestFavoritesRequireUser(t *testing.T) {
	svc := NewService(newFakeStore(), testLogger())
	ctx := context.Background()

	_, err := svc.GetFavorites(ctx, "")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.ErrorIs(t, svc.AddFavorite(ctx, "", "latte"), auth.ErrUnauthenticated)
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, "", "latte"), auth.ErrUnauthenticated)
}
