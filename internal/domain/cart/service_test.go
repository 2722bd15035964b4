package cart

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/coffeebean-backend/internal/domain/catalog"
	"github.com/your-org/coffeebean-backend/internal/pkg/auth"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeStore is an in-memory cart.Store for tests.
type fakeStore struct {
	mu      sync.Mutex
	lines   map[string]map[string]Line // userID -> lineID -> Line
	watch   chan []Line
	failAll bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{lines: make(map[string]map[string]Line)}
}

var errStoreDown = errors.New("store unavailable")

func (f *fakeStore) userLines(userID string) map[string]Line {
	if f.lines[userID] == nil {
		f.lines[userID] = make(map[string]Line)
	}
	return f.lines[userID]
}

func (f *fakeStore) Lines(_ context.Context, userID string) ([]Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	out := make([]Line, 0, len(f.userLines(userID)))
	for _, l := range f.userLines(userID) {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) Line(_ context.Context, userID, lineID string) (*Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	l, ok := f.userLines(userID)[lineID]
	if !ok {
		return nil, ErrLineNotFound
	}
	return &l, nil
}

func (f *fakeStore) Add(_ context.Context, userID string, line Line) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	f.userLines(userID)[line.ID] = line
	return nil
}

func (f *fakeStore) Update(_ context.Context, userID, lineID string, quantity int, totalPrice int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	l, ok := f.userLines(userID)[lineID]
	if !ok {
		return ErrLineNotFound
	}
	l.Quantity = quantity
	l.TotalPrice = totalPrice
	f.userLines(userID)[lineID] = l
	return nil
}

func (f *fakeStore) Remove(_ context.Context, userID, lineID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	delete(f.userLines(userID), lineID)
	return nil
}

func (f *fakeStore) Clear(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	f.lines[userID] = make(map[string]Line)
	return nil
}

func (f *fakeStore) Watch(_ context.Context, _ string) (<-chan []Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	f.watch = make(chan []Line)
	return f.watch, nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store, testLogger()), store
}

func sizeGrande() *catalog.Size {
	return &catalog.Size{ID: "grande", Name: "Grande", PriceModifier: 2000}
}

func sizeTall() *catalog.Size {
	return &catalog.Size{ID: "tall", Name: "Tall", PriceModifier: 0}
}

func tempHot() *catalog.Temperature {
	return &catalog.Temperature{ID: "hot", Name: "Hot"}
}

func tempIced() *catalog.Temperature {
	return &catalog.Temperature{ID: "iced", Name: "Iced"}
}

func latteRequest(quantity int) *AddLineRequest {
	return &AddLineRequest{
		ProductID:    "latte",
		ProductName:  "Caffe Latte",
		ProductImage: "https://example.com/latte.jpg",
		BasePrice:    10000,
		Quantity:     quantity,
		Size:         sizeGrande(),
		Temperature:  tempHot(),
	}
}

func TestAddLineCreatesNewLine(t *testing.T) {
	svc, _ := newTestService()

	snapshot, err := svc.AddLine(context.Background(), "user-1", latteRequest(2))
	require.NoError(t, err)

	require.Len(t, snapshot.Lines, 1)
	line := snapshot.Lines[0]
	assert.NotEmpty(t, line.ID)
	assert.Equal(t, "latte", line.ProductID)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, int64(24000), line.TotalPrice) // (10000 + 2000) x 2
	assert.False(t, line.AddedAt.IsZero())
}

func TestAddLineMergesIdenticalSelection(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.AddLine(ctx, "user-1", latteRequest(2))
	require.NoError(t, err)
	require.Len(t, first.Lines, 1)
	originalID := first.Lines[0].ID
	originalAddedAt := first.Lines[0].AddedAt

	second, err := svc.AddLine(ctx, "user-1", latteRequest(1))
	require.NoError(t, err)

	require.Len(t, second.Lines, 1, "identical selection must merge, not fork")
	merged := second.Lines[0]
	assert.Equal(t, originalID, merged.ID)
	assert.Equal(t, originalAddedAt, merged.AddedAt)
	assert.Equal(t, 3, merged.Quantity)
	assert.Equal(t, int64(36000), merged.TotalPrice)
}

func TestAddLineDifferentSizeDoesNotMerge(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "user-1", latteRequest(1))
	require.NoError(t, err)

	req := latteRequest(1)
	req.Size = sizeTall()
	snapshot, err := svc.AddLine(ctx, "user-1", req)
	require.NoError(t, err)

	assert.Len(t, snapshot.Lines, 2)
}

func TestAddLineDifferentTemperatureDoesNotMerge(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "user-1", latteRequest(1))
	require.NoError(t, err)

	req := latteRequest(1)
	req.Temperature = tempIced()
	snapshot, err := svc.AddLine(ctx, "user-1", req)
	require.NoError(t, err)

	assert.Len(t, snapshot.Lines, 2)
}

func TestAddLineNilSelectionOnlyMatchesNil(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	noSize := latteRequest(1)
	noSize.Size = nil
	noSize.Temperature = nil
	_, err := svc.AddLine(ctx, "user-1", noSize)
	require.NoError(t, err)

	withSize := latteRequest(1)
	withSize.Temperature = nil
	snapshot, err := svc.AddLine(ctx, "user-1", withSize)
	require.NoError(t, err)
	assert.Len(t, snapshot.Lines, 2)

	// A second no-selection add merges with the first.
	again := latteRequest(1)
	again.Size = nil
	again.Temperature = nil
	snapshot, err = svc.AddLine(ctx, "user-1", again)
	require.NoError(t, err)
	assert.Len(t, snapshot.Lines, 2)
}

func TestAddLineRejectsInvalidQuantity(t *testing.T) {
	svc, _ := newTestService()

	for _, quantity := range []int{0, -1} {
		_, err := svc.AddLine(context.Background(), "user-1", latteRequest(quantity))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestAddLineRequiresUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddLine(context.Background(), "", latteRequest(1))
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestUpdateLineQuantityRecomputesTotal(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	snapshot, err := svc.AddLine(ctx, "user-1", latteRequest(2))
	require.NoError(t, err)
	lineID := snapshot.Lines[0].ID

	snapshot, err = svc.UpdateLineQuantity(ctx, "user-1", lineID, 5)
	require.NoError(t, err)

	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 5, snapshot.Lines[0].Quantity)
	assert.Equal(t, int64(60000), snapshot.Lines[0].TotalPrice)
}

func TestUpdateLineQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	snapshot, err := svc.AddLine(ctx, "user-1", latteRequest(2))
	require.NoError(t, err)
	lineID := snapshot.Lines[0].ID

	snapshot, err = svc.UpdateLineQuantity(ctx, "user-1", lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
}

func TestUpdateLineQuantityNegativeRemovesLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	snapshot, err := svc.AddLine(ctx, "user-1", latteRequest(2))
	require.NoError(t, err)
	lineID := snapshot.Lines[0].ID

	snapshot, err = svc.UpdateLineQuantity(ctx, "user-1", lineID, -5)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
}

func TestUpdateLineQuantityUnknownLine(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateLineQuantity(context.Background(), "user-1", "no-such-line", 3)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveLineIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	snapshot, err := svc.AddLine(ctx, "user-1", latteRequest(1))
	require.NoError(t, err)
	lineID := snapshot.Lines[0].ID

	snapshot, err = svc.RemoveLine(ctx, "user-1", lineID)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)

	// Removing again is a no-op.
	snapshot, err = svc.RemoveLine(ctx, "user-1", lineID)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
}

func TestClearEmptiesCart(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "user-1", latteRequest(1))
	require.NoError(t, err)

	req := latteRequest(1)
	req.ProductID = "mocha"
	_, err = svc.AddLine(ctx, "user-1", req)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "user-1"))

	snapshot, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
	assert.Equal(t, Totals{}, snapshot.Totals)
}

func TestGetCartDerivesTotals(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.Add(ctx, "user-1", Line{
		ID: "a", ProductID: "latte", BasePrice: 10000, Quantity: 2,
		Size: sizeGrande(), TotalPrice: 24000, AddedAt: now.Add(-time.Minute),
	}))
	require.NoError(t, store.Add(ctx, "user-1", Line{
		ID: "b", ProductID: "mocha", BasePrice: 15000, Quantity: 1,
		TotalPrice: 15000, AddedAt: now,
	}))

	snapshot, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)

	require.Len(t, snapshot.Lines, 2)
	assert.Equal(t, "b", snapshot.Lines[0].ID, "lines are ordered newest first")
	assert.Equal(t, "a", snapshot.Lines[1].ID)
	assert.Equal(t, 2, snapshot.Totals.ItemCount)
	assert.Equal(t, 3, snapshot.Totals.TotalQuantity)
	assert.Equal(t, int64(39000), snapshot.Totals.Subtotal)
}

func TestGetItemCount(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	count, err := svc.GetItemCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = svc.AddLine(ctx, "user-1", latteRequest(2))
	require.NoError(t, err)

	req := latteRequest(3)
	req.ProductID = "mocha"
	_, err = svc.AddLine(ctx, "user-1", req)
	require.NoError(t, err)

	count, err = svc.GetItemCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "user-1", latteRequest(1))
	require.NoError(t, err)

	snapshot, err := svc.GetCart(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
}

func TestWatchDerivesConsistentSnapshots(t *testing.T) {
	svc, store := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := svc.Watch(ctx, "user-1")
	require.NoError(t, err)

	store.watch <- []Line{
		{ID: "a", ProductID: "latte", BasePrice: 10000, Quantity: 2, Size: sizeGrande(), AddedAt: time.Now().UTC()},
	}

	select {
	case snapshot := <-updates:
		require.Len(t, snapshot.Lines, 1)
		assert.Equal(t, 2, snapshot.Totals.TotalQuantity)
		assert.Equal(t, int64(24000), snapshot.Totals.Subtotal)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cart snapshot")
	}

	// Closing the feed closes the snapshot channel.
	close(store.watch)
	select {
	case _, open := <-updates:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestStoreFailuresPropagate(t *testing.T) {
	svc, store := newTestService()
	store.failAll = true

	_, err := svc.GetCart(context.Background(), "user-1")
	assert.ErrorIs(t, err, errStoreDown)

	_, err = svc.AddLine(context.Background(), "user-1", latteRequest(1))
	assert.ErrorIs(t, err, errStoreDown)

	// A rejected clear must surface; a nil return here would leave stale
	// lines behind without anyone knowing.
	err = svc.Clear(context.Background(), "user-1")
	assert.ErrorIs(t, err, errStoreDown)
}
