package nutrition

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repositories under test share one behavioral contract.
func testRepositories(t *testing.T) map[string]Repository {
	t.Helper()

	sqlite, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "foods.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Repository{
		"memory": NewMemoryRepository(),
		"sqlite": sqlite,
	}
}

func TestSearchExactName(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			food, ok, err := repo.Search(context.Background(), "바나나")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "바나나", food.Name)
			assert.Equal(t, 23, food.CarbsGrams)
		})
	}
}

func TestSearchBidirectional(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// Food name inside a longer query.
			food, ok, err := repo.Search(ctx, "현미밥 100g 먹었어")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "현미밥", food.Name)

			// Query that is a prefix of a food name.
			food, ok, err = repo.Search(ctx, "김치")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "김치찌개", food.Name)
		})
	}
}

func TestSearchNotFound(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			food, ok, err := repo.Search(context.Background(), "UnknownFood")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, food)
		})
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := repo.Search(context.Background(), "   ")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestListReturnsSeedTable(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			foods, err := repo.List(context.Background())
			require.NoError(t, err)
			require.Len(t, foods, len(BuiltinFoods()))
			assert.Equal(t, "현미밥", foods[0].Name)
			assert.Equal(t, "김치찌개", foods[len(foods)-1].Name)
		})
	}
}

func TestUpsertAddsAndReplaces(t *testing.T) {
	for name, repo := range testRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			err := repo.Upsert(ctx, Food{Name: "군고구마", CarbsGrams: 31, ServingUnit: "100g", Description: "식은 고구마가 혈당에 유리"})
			require.NoError(t, err)

			food, ok, err := repo.Search(ctx, "군고구마")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 31, food.CarbsGrams)

			err = repo.Upsert(ctx, Food{Name: "군고구마", CarbsGrams: 33, ServingUnit: "100g", Description: "식은 고구마가 혈당에 유리"})
			require.NoError(t, err)

			food, _, err = repo.Search(ctx, "군고구마")
			require.NoError(t, err)
			assert.Equal(t, 33, food.CarbsGrams)

			foods, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Len(t, foods, len(BuiltinFoods())+1)
		})
	}
}

func TestSQLiteSeedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foods.db")

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), Food{Name: "우유", CarbsGrams: 6, ServingUnit: "100ml"}))
	require.NoError(t, repo.Close())

	// Reopening seeds again; existing rows must survive.
	repo, err = NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	food, ok, err := repo.Search(context.Background(), "우유")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 6, food.CarbsGrams)

	foods, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, foods, len(BuiltinFoods()))
}
