package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/softshop/internal/catalog"
)

func seededStore() *memStore {
	store := newMemStore()
	store.add("a", "Office 365", "")
	store.add("b", "Office 365", "")
	store.add("c", "微软365", "")
	store.add("d", "Windows 11", "windows-11")
	return store
}

func TestBackfillAllMissingSlugs(t *testing.T) {
	t.Parallel()

	store := seededStore()
	a := catalog.NewSlugAssigner(store)

	report, err := a.BackfillAllMissingSlugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Found)
	assert.Equal(t, 3, report.Processed)
	assert.Zero(t, report.Skipped)
	assert.Empty(t, report.Failures)

	assert.Equal(t, "office-365", store.get("a").Slug)
	assert.Equal(t, "office-365-1", store.get("b").Slug)
	assert.Equal(t, "wei-ruan-365", store.get("c").Slug)
	assert.Equal(t, "windows-11", store.get("d").Slug)
}

func TestBackfillAllMissingSlugs_Idempotent(t *testing.T) {
	t.Parallel()

	store := seededStore()
	a := catalog.NewSlugAssigner(store)

	_, err := a.BackfillAllMissingSlugs(context.Background())
	require.NoError(t, err)
	before := []string{store.get("a").Slug, store.get("b").Slug, store.get("c").Slug}

	report, err := a.BackfillAllMissingSlugs(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Found)
	assert.Zero(t, report.Processed)
	assert.Equal(t, before, []string{store.get("a").Slug, store.get("b").Slug, store.get("c").Slug})
}

func TestBackfillAllMissingSlugs_FailureIsolation(t *testing.T) {
	t.Parallel()

	store := seededStore()
	boom := errors.New("check constraint violated")
	store.assignErr["b"] = boom
	a := catalog.NewSlugAssigner(store)

	report, err := a.BackfillAllMissingSlugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "b", report.Failures[0].ProductID)
	assert.Equal(t, "Office 365", report.Failures[0].Name)
	assert.ErrorIs(t, report.Failures[0].Err, boom)

	assert.Equal(t, "office-365", store.get("a").Slug)
	assert.Empty(t, store.get("b").Slug)
	assert.Equal(t, "wei-ruan-365", store.get("c").Slug)
}

func TestBackfillAllMissingSlugs_StoreUnavailableAborts(t *testing.T) {
	t.Parallel()

	store := seededStore()
	store.unavailableAfter = 1
	a := catalog.NewSlugAssigner(store)

	report, err := a.BackfillAllMissingSlugs(context.Background())
	require.ErrorIs(t, err, catalog.ErrStoreUnavailable)
	assert.Equal(t, 1, report.Processed)
	assert.Zero(t, report.Skipped)
	assert.Equal(t, 2, store.assignCalls)
	assert.Empty(t, store.get("c").Slug)
}

func TestBackfillAllMissingSlugs_ListFails(t *testing.T) {
	t.Parallel()

	store := seededStore()
	store.listErr = errors.New("dial tcp: connection refused")
	a := catalog.NewSlugAssigner(store)

	report, err := a.BackfillAllMissingSlugs(context.Background())
	require.ErrorIs(t, err, catalog.ErrStoreUnavailable)
	assert.ErrorIs(t, err, store.listErr)
	assert.Zero(t, report.Found)
}

func TestBackfillAllMissingSlugs_CancelledWhileListing(t *testing.T) {
	t.Parallel()

	store := seededStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.onList = func(ctx context.Context) error {
		cancel()
		return fmt.Errorf("query products: %w", ctx.Err())
	}
	a := catalog.NewSlugAssigner(store)

	report, err := a.BackfillAllMissingSlugs(ctx)
	require.ErrorIs(t, err, catalog.ErrBackfillAborted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, catalog.ErrStoreUnavailable)
	assert.Zero(t, report.Found)
	assert.Zero(t, store.assignCalls)
}

func TestBackfillAllMissingSlugs_CancelFinishesCurrentProduct(t *testing.T) {
	t.Parallel()

	store := seededStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.onAssign = func(string) { cancel() }
	a := catalog.NewSlugAssigner(store)

	report, err := a.BackfillAllMissingSlugs(ctx)
	require.ErrorIs(t, err, catalog.ErrBackfillAborted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, report.Processed)

	assert.Equal(t, "office-365", store.get("a").Slug)
	assert.Empty(t, store.get("b").Slug)
	assert.Empty(t, store.get("c").Slug)
}

func TestBackfillAllMissingSlugs_AlreadyCancelled(t *testing.T) {
	t.Parallel()

	store := seededStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := catalog.NewSlugAssigner(store)

	report, err := a.BackfillAllMissingSlugs(ctx)
	require.ErrorIs(t, err, catalog.ErrBackfillAborted)
	assert.Equal(t, 3, report.Found)
	assert.Zero(t, report.Processed)
	assert.Zero(t, store.assignCalls)
}
