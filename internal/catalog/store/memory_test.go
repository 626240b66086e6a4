package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/catalog/models"
)

func seedItem(t *testing.T, s *InMemory, id, name, code string, tags ...models.Tag) *models.Item {
	t.Helper()
	now := time.Now()
	item := &models.Item{
		ID:        id,
		Name:      name,
		Code:      code,
		Category:  models.CategoryFiction,
		Price:     10,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.Insert(context.Background(), item)
	require.NoError(t, err)
	return item
}

func TestInMemory_PointLookups(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	seedItem(t, s, "id-1", "Alpha", "978-3897225831")

	t.Run("by id", func(t *testing.T) {
		item, err := s.FindByID(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, "Alpha", item.Name)

		_, err = s.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("by name is exact and case-sensitive", func(t *testing.T) {
		_, err := s.FindByName(ctx, "Alpha")
		require.NoError(t, err)

		_, err = s.FindByName(ctx, "alpha")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("by code", func(t *testing.T) {
		item, err := s.FindByCode(ctx, "978-3897225831")
		require.NoError(t, err)
		assert.Equal(t, "id-1", item.ID)

		_, err = s.FindByCode(ctx, "978-0000000000")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestInMemory_Find(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	seedItem(t, s, "id-1", "Alpha Centauri", "c1", models.TagNew)
	seedItem(t, s, "id-2", "Beta Pictoris", "c2", models.TagUsed)
	seedItem(t, s, "id-3", "Gamma Draconis", "c3", models.TagNew, models.TagSigned)

	t.Run("zero filter returns everything", func(t *testing.T) {
		items, err := s.Find(ctx, models.Filter{})
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("name substring is case-insensitive", func(t *testing.T) {
		items, err := s.Find(ctx, models.Filter{Name: "CENTAURI"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "id-1", items[0].ID)
	})

	t.Run("tag membership matches any of the given tags", func(t *testing.T) {
		items, err := s.Find(ctx, models.Filter{Tags: []models.Tag{models.TagNew}})
		require.NoError(t, err)
		assert.Len(t, items, 2)

		items, err = s.Find(ctx, models.Filter{Tags: []models.Tag{models.TagAudio}})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("filters combine", func(t *testing.T) {
		items, err := s.Find(ctx, models.Filter{Name: "gamma", Tags: []models.Tag{models.TagNew}})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "id-3", items[0].ID)
	})
}

func TestInMemory_ReplaceByID(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	original := seedItem(t, s, "id-1", "Alpha", "c1", models.TagNew)

	t.Run("replaces wholesale and increments version", func(t *testing.T) {
		replacement := &models.Item{
			Name:     "Alpha2",
			Code:     "c1",
			Category: models.CategoryFiction,
		}
		updated, err := s.ReplaceByID(ctx, "id-1", replacement)
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.Version)
		assert.Equal(t, "Alpha2", updated.Name)
		assert.Empty(t, updated.Tags, "omitted fields are cleared, not merged")
		assert.Equal(t, original.CreatedAt, updated.CreatedAt, "creation time survives a replace")

		stored, err := s.FindByID(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.Version)
	})

	t.Run("vanished id reports not found", func(t *testing.T) {
		_, err := s.ReplaceByID(ctx, "missing", &models.Item{Name: "X"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("candidate version is ignored by the store", func(t *testing.T) {
		replacement := &models.Item{Name: "Alpha3", Code: "c1", Version: 99}
		updated, err := s.ReplaceByID(ctx, "id-1", replacement)
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.Version)
	})
}

func TestInMemory_DeleteByID(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	seedItem(t, s, "id-1", "Alpha", "c1")

	existed, err := s.DeleteByID(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = s.FindByID(ctx, "id-1")
	assert.ErrorIs(t, err, ErrNotFound)

	existed, err = s.DeleteByID(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestInMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	seedItem(t, s, "id-1", "Alpha", "c1", models.TagNew)

	item, err := s.FindByID(ctx, "id-1")
	require.NoError(t, err)
	item.Name = "Mutated"
	item.Tags[0] = models.TagSigned

	fresh, err := s.FindByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", fresh.Name)
	assert.Equal(t, models.TagNew, fresh.Tags[0])
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	Seed(ctx, s)

	items, err := s.Find(ctx, models.Filter{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	for _, item := range items {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, int64(0), item.Version)
	}
}
