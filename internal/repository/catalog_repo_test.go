package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palteria/palteria_api/internal/models"
	"github.com/palteria/palteria_api/internal/storage"
)

func newTestCatalogRepo(t *testing.T) *CatalogRepository {
	t.Helper()
	repo := NewCatalogRepository(storage.New(storage.NewMemoryKV()))
	repo.now = func() time.Time {
		return time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	}
	return repo
}

func TestEnsureSeedProducts_Idempotent(t *testing.T) {
	repo := newTestCatalogRepo(t)

	require.NoError(t, repo.EnsureSeedProducts())
	first := repo.ListProducts()
	require.NotEmpty(t, first)

	require.NoError(t, repo.EnsureSeedProducts())
	assert.Equal(t, first, repo.ListProducts())
}

func TestUpsertStock_ReplacesByDateAndProduct(t *testing.T) {
	repo := newTestCatalogRepo(t)

	require.NoError(t, repo.UpsertStock(1, 10, 25000, true))
	require.NoError(t, repo.UpsertStock(1, 4, 26000, true))

	rows := repo.StockForToday()
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].StockCrates)
	assert.Equal(t, 26000.0, rows[0].PricePerCrate)
	assert.Equal(t, "2026-08-29", rows[0].Date)
}

func TestUpsertStock_KeepsOtherDates(t *testing.T) {
	repo := newTestCatalogRepo(t)

	require.NoError(t, repo.UpsertStock(1, 10, 25000, true))

	// Next day: yesterday's record stays in storage but out of scope.
	repo.now = func() time.Time {
		return time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	}
	require.NoError(t, repo.UpsertStock(1, 7, 24000, true))

	rows := repo.StockForToday()
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-30", rows[0].Date)
	assert.Equal(t, 7, rows[0].StockCrates)
}

func TestPublishToday_RecomputesPublication(t *testing.T) {
	repo := newTestCatalogRepo(t)
	require.NoError(t, repo.EnsureSeedProducts())

	require.NoError(t, repo.UpsertStock(1, 10, 25000, false)) // becomes published
	require.NoError(t, repo.UpsertStock(2, 0, 20000, true))   // force-unpublished: no stock
	require.NoError(t, repo.UpsertStock(3, 5, 0, true))       // force-unpublished: no price

	require.NoError(t, repo.PublishToday())

	byProduct := map[int]models.DailyStock{}
	for _, s := range repo.StockForToday() {
		byProduct[s.ProductID] = s
	}
	assert.True(t, byProduct[1].Published)
	assert.False(t, byProduct[2].Published)
	assert.False(t, byProduct[3].Published)
}

func TestPublishToday_CreatesRowsForMissingActiveProducts(t *testing.T) {
	repo := newTestCatalogRepo(t)
	require.NoError(t, repo.EnsureSeedProducts())

	require.NoError(t, repo.UpsertStock(1, 10, 25000, false))
	require.NoError(t, repo.PublishToday())

	rows := repo.StockForToday()
	require.Len(t, rows, 3)
	for _, s := range rows {
		if s.ProductID == 1 {
			assert.True(t, s.Published)
			continue
		}
		assert.False(t, s.Published)
		assert.Equal(t, 0, s.StockCrates)
		assert.Equal(t, 0.0, s.PricePerCrate)
	}
}

func TestPublishedCatalogToday_ExcludesIneligibleAndInactive(t *testing.T) {
	repo := newTestCatalogRepo(t)

	products := []models.Product{
		{ID: 1, Name: "Cajón 10kg", KilosPerCrate: 10, Active: true},
		{ID: 2, Name: "Cajón 8kg", KilosPerCrate: 8, Active: true},
		{ID: 3, Name: "Cajón retirado", KilosPerCrate: 18, Active: false},
	}
	require.NoError(t, repo.store.Write(keyProducts, products))

	require.NoError(t, repo.UpsertStock(1, 10, 25000, true)) // eligible
	require.NoError(t, repo.UpsertStock(2, 0, 20000, true))  // zero stock
	require.NoError(t, repo.UpsertStock(3, 5, 30000, true))  // inactive product

	entries := repo.PublishedCatalogToday()
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Product.ID)
	assert.Equal(t, 25000.0, entries[0].PricePerCrate)
	assert.Equal(t, 10, entries[0].StockCrates)
}

func TestPublishedCatalogToday_IgnoresOtherDates(t *testing.T) {
	repo := newTestCatalogRepo(t)
	require.NoError(t, repo.EnsureSeedProducts())
	require.NoError(t, repo.UpsertStock(1, 10, 25000, true))

	repo.now = func() time.Time {
		return time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	}
	assert.Empty(t, repo.PublishedCatalogToday())
}
