package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	products []Product
	promos   []Promo
	err      error
}

func (f *fakeStore) Products(_ context.Context, filter Filter) ([]Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Product, 0)
	for _, p := range f.products {
		if filter.AvailableOnly && !p.Available {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) ProductByID(_ context.Context, id string) (*Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

func (f *fakeStore) Promos(_ context.Context, activeOnly bool) ([]Promo, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Promo, 0)
	for _, p := range f.promos {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// fakeCache is an in-memory Cache that mimics the Redis wrapper's JSON
// round-trip, returning redis.Nil on miss.
type fakeCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	data, ok := f.entries[key]
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	f.sets++
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testStore() *fakeStore {
	return &fakeStore{
		products: []Product{
			{ID: "latte", Name: "Caffe Latte", Description: "Espresso with steamed milk", Category: "coffee", Available: true},
			{ID: "mocha", Name: "Caffe Mocha", Description: "Chocolate and espresso", Category: "coffee", Available: true},
			{ID: "matcha", Name: "Matcha Latte", Description: "Stone-ground green tea", Category: "tea", Available: true},
			{ID: "retired", Name: "Pumpkin Spice", Description: "Seasonal", Category: "coffee", Available: false},
		},
		promos: []Promo{
			{ID: "p1", Title: "Buy One Get One", Active: true},
			{ID: "p2", Title: "Expired Promo", Active: false},
		},
	}
}

func TestGetProductsFiltersUnavailable(t *testing.T) {
	svc := NewService(testStore(), nil, testLogger())

	products, err := svc.GetProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, products, 3)
	for _, p := range products {
		assert.True(t, p.Available)
	}
}

func TestGetProductsByCategory(t *testing.T) {
	svc := NewService(testStore(), nil, testLogger())

	products, err := svc.GetProducts(context.Background(), "Tea")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "matcha", products[0].ID)
}

func TestGetProductByID(t *testing.T) {
	svc := NewService(testStore(), nil, testLogger())

	product, err := svc.GetProductByID(context.Background(), "latte")
	require.NoError(t, err)
	assert.Equal(t, "Caffe Latte", product.Name)
}

func TestGetProductByIDNotFound(t *testing.T) {
	svc := NewService(testStore(), nil, testLogger())

	_, err := svc.GetProductByID(context.Background(), "no-such-product")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.GetProductByID(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSearchProducts(t *testing.T) {
	svc := NewService(testStore(), nil, testLogger())
	ctx := context.Background()

	// Case-insensitive name match.
	results, err := svc.SearchProducts(ctx, "LATTE")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Description match.
	results, err = svc.SearchProducts(ctx, "chocolate")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "mocha", results[0].ID)

	// No match.
	results, err = svc.SearchProducts(ctx, "espresso tonic")
	require.NoError(t, err)
	assert.Empty(t, results)

	// Blank query returns the full listing.
	results, err = svc.SearchProducts(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestGetPromosActiveOnly(t *testing.T) {
	svc := NewService(testStore(), nil, testLogger())

	promos, err := svc.GetPromos(context.Background())
	require.NoError(t, err)
	require.Len(t, promos, 1)
	assert.Equal(t, "p1", promos[0].ID)
}

func TestProductListingIsServedFromCache(t *testing.T) {
	cache := newFakeCache()
	ctx := context.Background()

	// First read misses the cache and populates it from the store.
	svc := NewService(testStore(), cache, testLogger())
	products, err := svc.GetProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Equal(t, 1, cache.sets)

	promos, err := svc.GetPromos(ctx)
	require.NoError(t, err)
	require.Len(t, promos, 1)
	require.Equal(t, 2, cache.sets)

	// A second service sharing the cache never needs its store: the
	// listing and promos come back even though every store call fails.
	cachedSvc := NewService(&fakeStore{err: errors.New("firestore unavailable")}, cache, testLogger())

	products, err = cachedSvc.GetProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, products, 3)

	promos, err = cachedSvc.GetPromos(ctx)
	require.NoError(t, err)
	assert.Len(t, promos, 1)
}

func TestStoreErrorsPropagate(t *testing.T) {
	storeErr := errors.New("firestore unavailable")
	svc := NewService(&fakeStore{err: storeErr}, nil, testLogger())
	ctx := context.Background()

	_, err := svc.GetProducts(ctx, "")
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.GetProductByID(ctx, "latte")
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.GetPromos(ctx)
	assert.ErrorIs(t, err, storeErr)
}

func TestSizeAndTemperatureLookup(t *testing.T) {
	product := Product{
		Sizes: []Size{
			{ID: "tall", Name: "Tall", PriceModifier: 0},
			{ID: "grande", Name: "Grande", PriceModifier: 2000},
		},
		Temperatures: []Temperature{
			{ID: "hot", Name: "Hot"},
			{ID: "iced", Name: "Iced"},
		},
	}

	size := product.SizeByID("grande")
	require.NotNil(t, size)
	assert.Equal(t, int64(2000), size.PriceModifier)
	assert.Nil(t, product.SizeByID("venti"))

	temp := product.TemperatureByID("iced")
	require.NotNil(t, temp)
	assert.Equal(t, "Iced", temp.Name)
	assert.Nil(t, product.TemperatureByID("lukewarm"))
}
