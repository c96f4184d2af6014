package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/softshop/internal/catalog"
)

func newTestService(store *memStore, opts ...catalog.AssignerOption) *catalog.Service {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return catalog.NewService(store, catalog.NewSlugAssigner(store, opts...),
		catalog.WithIDGenerator(func() string { return testID }),
		catalog.WithServiceClock(func() time.Time { return at }),
	)
}

func TestService_CreateProduct(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.add("p1", "Office 365", "office-365")
	svc := newTestService(store)

	p, err := svc.CreateProduct(context.Background(), catalog.CreateProductInput{
		Name:      "  Office 365 ",
		CPSLink:   "https://partner.example.com/office",
		SalePrice: 49.9,
	})
	require.NoError(t, err)
	assert.Equal(t, testID, p.ID)
	assert.Equal(t, "Office 365", p.Name)
	assert.Equal(t, "office-365-1", p.Slug)
	assert.True(t, p.IsActive)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, "office-365-1", store.get(testID).Slug)
}

func TestService_CreateProduct_Override(t *testing.T) {
	t.Parallel()

	inactive := false
	svc := newTestService(newMemStore())

	p, err := svc.CreateProduct(context.Background(), catalog.CreateProductInput{
		Name:     "Whatever",
		Slug:     "My Cool Slug!!",
		CPSLink:  "https://partner.example.com/x",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "my-cool-slug", p.Slug)
	assert.False(t, p.IsActive)
}

func TestService_CreateProduct_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := map[string]catalog.CreateProductInput{
		"missing name":  {CPSLink: "https://partner.example.com"},
		"blank name":    {Name: "   ", CPSLink: "https://partner.example.com"},
		"missing link":  {Name: "Office"},
		"missing every": {},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := newMemStore()
			_, err := newTestService(store).CreateProduct(context.Background(), in)
			require.ErrorIs(t, err, catalog.ErrInvalidInput)
			assert.Empty(t, store.order)
		})
	}
}

func TestService_CreateProduct_ConflictRetry(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on retry", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.createConflicts = 1
		p, err := newTestService(store).CreateProduct(context.Background(), catalog.CreateProductInput{
			Name: "Office", CPSLink: "https://partner.example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "office", p.Slug)
	})

	t.Run("gives up after second conflict", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.createConflicts = 2
		_, err := newTestService(store).CreateProduct(context.Background(), catalog.CreateProductInput{
			Name: "Office", CPSLink: "https://partner.example.com",
		})
		require.ErrorIs(t, err, catalog.ErrSlugUnavailable)
		assert.ErrorIs(t, err, catalog.ErrSlugConflict)
		assert.Empty(t, store.order)
	})
}

func TestService_CreateProduct_Exhausted(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.add("p1", "Office", "office")
	svc := newTestService(store, catalog.WithMaxAttempts(1))

	_, err := svc.CreateProduct(context.Background(), catalog.CreateProductInput{
		Name: "Office", CPSLink: "https://partner.example.com",
	})
	require.ErrorIs(t, err, catalog.ErrSlugUnavailable)
	assert.ErrorIs(t, err, catalog.ErrUniquenessExhausted)
}

func TestService_ProductBySlug(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.add("p1", "Office 365", "office-365")
	store.add("p2", "Retired", "retired")
	store.products["p2"].IsActive = false
	svc := newTestService(store)

	t.Run("active product counts view", func(t *testing.T) {
		p, err := svc.ProductBySlug(context.Background(), "office-365")
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, int64(1), p.ViewCount)
		assert.Equal(t, int64(1), store.get("p1").ViewCount)
	})

	for _, s := range []string{"retired", "unknown", "Office 365", "", "office--365"} {
		t.Run("not found "+s, func(t *testing.T) {
			_, err := svc.ProductBySlug(context.Background(), s)
			assert.ErrorIs(t, err, catalog.ErrNotFound)
		})
	}
}

func TestService_ProductBySlug_NilProduct(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.nilFinds = true

	_, err := newTestService(store).ProductBySlug(context.Background(), "office-365")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestService_ProductBySlug_ViewCountFailureIgnored(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.add("p1", "Office 365", "office-365")
	store.incrementErr = errors.New("deadlock detected")

	p, err := newTestService(store).ProductBySlug(context.Background(), "office-365")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.ViewCount)
}

func TestService_ChangeSlug(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.add("p1", "Office 365", "office-365")
	store.add("p2", "Office 2021", "office-2021")
	svc := newTestService(store)

	got, err := svc.ChangeSlug(context.Background(), "p2", "Office Pro")
	require.NoError(t, err)
	assert.Equal(t, "office-pro", got)
	assert.Equal(t, "office-pro", store.get("p2").Slug)

	_, err = svc.ProductBySlug(context.Background(), "office-2021")
	require.ErrorIs(t, err, catalog.ErrNotFound)

	got, err = svc.ChangeSlug(context.Background(), "p2", "office-365")
	require.NoError(t, err)
	assert.Equal(t, "office-365-1", got)

	_, err = svc.ChangeSlug(context.Background(), "p2", "  ")
	require.ErrorIs(t, err, catalog.ErrInvalidInput)

	_, err = svc.ChangeSlug(context.Background(), "", "x")
	require.ErrorIs(t, err, catalog.ErrInvalidInput)

	_, err = svc.ChangeSlug(context.Background(), "missing", "fresh")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
