package catalog_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/softshop/internal/catalog"
	"github.com/dmitrymomot/softshop/pkg/slug"
)

const testID = "0b8f6a52-3f1e-4c8e-9d2a-7e5b4c3a2f1d"

func TestAssignSlugForName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		product   string
		preferred string
		expected  string
	}{
		{name: "latin name", product: "Microsoft Office 365", expected: "microsoft-office-365"},
		{name: "chinese with digits", product: "微软365", expected: "wei-ruan-365"},
		{name: "mixed scripts", product: "Office 中文版", expected: "office-zhong-wen-ban"},
		{name: "accented latin kept unfolded", product: "Café Pro", expected: "caf-pro"},
		{name: "sharp s", product: "Straße 2024", expected: "stra-e-2024"},
		{name: "nordic letters", product: "Ærø Suite", expected: "r-suite"},
		{name: "surrounding whitespace", product: "  Adobe Photoshop  ", expected: "adobe-photoshop"},
		{name: "explicit override", product: "Anything", preferred: "My Cool Slug!!", expected: "my-cool-slug"},
		{name: "blank override ignored", product: "Office 365", preferred: "   ", expected: "office-365"},
		{name: "punctuation only", product: "!!!", expected: "product-3a2f1d"},
		{name: "whitespace only", product: "   ", expected: "product-3a2f1d"},
		{name: "unusable override falls back", product: "Office", preferred: "???", expected: "product-3a2f1d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := catalog.NewSlugAssigner(newMemStore())
			got, err := a.AssignSlugForName(context.Background(), testID, tt.product, tt.preferred)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.True(t, slug.Valid(got), got)
		})
	}
}

func TestAssignSlugForName_FallbackUsesClockWithoutAlnumID(t *testing.T) {
	t.Parallel()

	at := time.UnixMilli(1_700_000_000_000)
	a := catalog.NewSlugAssigner(newMemStore(), catalog.WithClock(func() time.Time { return at }))

	got, err := a.AssignSlugForName(context.Background(), "---", "!!!", "")
	require.NoError(t, err)
	assert.Equal(t, "product-"+strconv.FormatInt(at.UnixMilli(), 36), got)
}

func TestAssignSlugForName_Deterministic(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.add("p1", "Office 365", "office-365")
	a := catalog.NewSlugAssigner(store)

	first, err := a.AssignSlugForName(context.Background(), "p2", "Office 365", "")
	require.NoError(t, err)
	for range 10 {
		again, err := a.AssignSlugForName(context.Background(), "p2", "Office 365", "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "office-365-1", first)
}

func TestAssignSlugForName_Collisions(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.add("p1", "Office 365", "office-365")
	store.add("p2", "Office 365", "office-365-1")
	a := catalog.NewSlugAssigner(store)

	t.Run("next free suffix", func(t *testing.T) {
		got, err := a.AssignSlugForName(context.Background(), "p3", "Office 365", "")
		require.NoError(t, err)
		assert.Equal(t, "office-365-2", got)
	})

	t.Run("own slug is not a collision", func(t *testing.T) {
		got, err := a.AssignSlugForName(context.Background(), "p1", "Office 365", "")
		require.NoError(t, err)
		assert.Equal(t, "office-365", got)
	})

	t.Run("override collides with other product", func(t *testing.T) {
		got, err := a.AssignSlugForName(context.Background(), "p3", "x", "Office-365")
		require.NoError(t, err)
		assert.Equal(t, "office-365-2", got)
	})
}

func TestAssignSlugForName_Exhausted(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.add("p1", "A", "a")
	store.add("p2", "A", "a-1")
	store.add("p3", "A", "a-2")
	a := catalog.NewSlugAssigner(store, catalog.WithMaxAttempts(3))

	_, err := a.AssignSlugForName(context.Background(), "p4", "A", "")
	require.ErrorIs(t, err, catalog.ErrUniquenessExhausted)
	assert.Equal(t, 3, store.findCalls)
}

func TestAssignSlugForName_StoreError(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.findErr = errors.New("connection refused")
	a := catalog.NewSlugAssigner(store)

	_, err := a.AssignSlugForName(context.Background(), "p1", "Office", "")
	require.ErrorIs(t, err, catalog.ErrStoreUnavailable)
	assert.ErrorIs(t, err, store.findErr)
}

func TestAssignSlugForName_TransliterationFailureUsesRawName(t *testing.T) {
	t.Parallel()

	failing := slug.TransliteratorFunc(func(string) ([]string, error) {
		return nil, slug.ErrUnsupportedCharacter
	})
	a := catalog.NewSlugAssigner(newMemStore(), catalog.WithTransliterator(failing))

	got, err := a.AssignSlugForName(context.Background(), "p1", "Hello World", "")
	require.NoError(t, err)
	assert.Equal(t, "hello-world", got)
}

func TestAssignAndStore(t *testing.T) {
	t.Parallel()

	t.Run("persists slug", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.add("p1", "微软365", "")
		a := catalog.NewSlugAssigner(store)

		got, err := a.AssignAndStore(context.Background(), "p1", "微软365")
		require.NoError(t, err)
		assert.Equal(t, "wei-ruan-365", got)
		assert.Equal(t, "wei-ruan-365", store.get("p1").Slug)
	})

	t.Run("retries once after losing a race", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.add("p1", "Office 365", "office-365")
		store.add("p2", "Office 365", "")
		store.staleFinds = 1
		a := catalog.NewSlugAssigner(store)

		got, err := a.AssignAndStore(context.Background(), "p2", "Office 365")
		require.NoError(t, err)
		assert.Equal(t, "office-365-1", got)
		assert.Equal(t, 2, store.assignCalls)
	})

	t.Run("second conflict is returned", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.add("p1", "Office 365", "office-365")
		store.add("p2", "Office 365", "")
		store.staleFinds = 2
		a := catalog.NewSlugAssigner(store)

		_, err := a.AssignAndStore(context.Background(), "p2", "Office 365")
		require.ErrorIs(t, err, catalog.ErrSlugConflict)
		assert.Equal(t, 2, store.assignCalls)
		assert.Empty(t, store.get("p2").Slug)
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()

		a := catalog.NewSlugAssigner(newMemStore())
		_, err := a.AssignAndStore(context.Background(), "missing", "Office")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestReassignSlug(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.add("p1", "Office 365", "office-365")
	store.add("p2", "Office 2021", "office-2021")
	a := catalog.NewSlugAssigner(store)

	got, err := a.ReassignSlug(context.Background(), "p2", "Office 365")
	require.NoError(t, err)
	assert.Equal(t, "office-365-1", got)

	got, err = a.ReassignSlug(context.Background(), "p1", "office-365")
	require.NoError(t, err)
	assert.Equal(t, "office-365", got)

	_, err = a.ReassignSlug(context.Background(), "p1", "!!!")
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}
