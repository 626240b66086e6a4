//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"catalog/internal/catalog/models"
	"catalog/internal/catalog/store"
	"catalog/pkg/testutil/containers"
)

// ============================================================================
// Test Suite
// ============================================================================

type PostgresStoreSuite struct {
	suite.Suite
	ctx   context.Context
	pg    *containers.PostgresContainer
	store *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.pg.DB)
	s.Require().NoError(s.store.EnsureSchema(s.ctx))
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.DB.ExecContext(s.ctx, "TRUNCATE items")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) insert(name, code string, tags ...models.Tag) *models.Item {
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := &models.Item{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      code,
		Category:  models.CategoryFiction,
		Price:     9.99,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.store.Insert(s.ctx, item)
	s.Require().NoError(err)
	return item
}

// ============================================================================
// Tests
// ============================================================================

func (s *PostgresStoreSuite) TestInsertAndPointLookups() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := &models.Item{
		ID:           uuid.NewString(),
		Name:         "Station Eleven",
		Code:         "978-0804172448",
		Category:     models.CategoryFiction,
		Price:        14.99,
		Tags:         []models.Tag{models.TagNew},
		Contributors: []models.Contributor{{FirstName: "Emily", LastName: "Mandel"}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := s.store.Insert(s.ctx, item)
	s.Require().NoError(err)

	s.Run("by id round-trips the document", func() {
		got, err := s.store.FindByID(s.ctx, item.ID)
		s.Require().NoError(err)
		s.Equal(item.Name, got.Name)
		s.Equal(item.Code, got.Code)
		s.Equal(item.Category, got.Category)
		s.Equal(item.Price, got.Price)
		s.Equal(item.Tags, got.Tags)
		s.Equal(item.Contributors, got.Contributors)
		s.Equal(int64(0), got.Version)
	})

	s.Run("by name", func() {
		got, err := s.store.FindByName(s.ctx, "Station Eleven")
		s.Require().NoError(err)
		s.Equal(item.ID, got.ID)
	})

	s.Run("by code", func() {
		got, err := s.store.FindByCode(s.ctx, "978-0804172448")
		s.Require().NoError(err)
		s.Equal(item.ID, got.ID)
	})

	s.Run("misses map to the sentinel", func() {
		_, err := s.store.FindByID(s.ctx, uuid.NewString())
		s.ErrorIs(err, store.ErrNotFound)
		_, err = s.store.FindByName(s.ctx, "nope")
		s.ErrorIs(err, store.ErrNotFound)
		_, err = s.store.FindByCode(s.ctx, "nope")
		s.ErrorIs(err, store.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestFind() {
	s.insert("Station Eleven", "9780000000002", models.TagNew)
	s.insert("Sea of Tranquility", "9780000000019", models.TagSigned)
	s.insert("The Glass Hotel", "9780000000026", models.TagNew, models.TagUsed)

	s.Run("name filter is case-insensitive substring", func() {
		items, err := s.store.Find(s.ctx, models.Filter{Name: "station"})
		s.Require().NoError(err)
		s.Require().Len(items, 1)
		s.Equal("Station Eleven", items[0].Name)
	})

	s.Run("tag filter matches membership", func() {
		items, err := s.store.Find(s.ctx, models.Filter{Tags: []models.Tag{models.TagNew}})
		s.Require().NoError(err)
		s.Len(items, 2)
	})

	s.Run("filters combine", func() {
		items, err := s.store.Find(s.ctx, models.Filter{Name: "glass", Tags: []models.Tag{models.TagUsed}})
		s.Require().NoError(err)
		s.Require().Len(items, 1)
		s.Equal("The Glass Hotel", items[0].Name)
	})

	s.Run("zero filter returns everything", func() {
		items, err := s.store.Find(s.ctx, models.Filter{})
		s.Require().NoError(err)
		s.Len(items, 3)
	})
}

func (s *PostgresStoreSuite) TestReplaceByID() {
	item := s.insert("Last Night in Montreal", "9780000000033", models.TagNew)

	s.Run("bumps the version and replaces the document", func() {
		next := *item
		next.Name = "The Singer's Gun"
		next.Tags = nil
		updated, err := s.store.ReplaceByID(s.ctx, item.ID, &next)
		s.Require().NoError(err)
		s.Equal(int64(1), updated.Version)
		s.Equal("The Singer's Gun", updated.Name)
		s.Empty(updated.Tags)

		got, err := s.store.FindByID(s.ctx, item.ID)
		s.Require().NoError(err)
		s.Equal(int64(1), got.Version)
		s.Equal("The Singer's Gun", got.Name)
	})

	s.Run("each replacement adds exactly one", func() {
		for want := int64(2); want <= 4; want++ {
			updated, err := s.store.ReplaceByID(s.ctx, item.ID, item)
			s.Require().NoError(err)
			s.Equal(want, updated.Version)
		}
	})

	s.Run("unknown id maps to the sentinel", func() {
		_, err := s.store.ReplaceByID(s.ctx, uuid.NewString(), item)
		s.ErrorIs(err, store.ErrNotFound)
	})
}

func (s *PostgresStoreSuite) TestDeleteByID() {
	item := s.insert("The Lola Quartet", "9780000000040")

	existed, err := s.store.DeleteByID(s.ctx, item.ID)
	s.Require().NoError(err)
	s.True(existed)

	existed, err = s.store.DeleteByID(s.ctx, item.ID)
	s.Require().NoError(err)
	s.False(existed)

	_, err = s.store.FindByID(s.ctx, item.ID)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUniqueIndexes() {
	s.insert("Station Eleven", "9780000000057")

	dup := &models.Item{
		ID:        uuid.NewString(),
		Name:      "Station Eleven",
		Code:      "9780000000064",
		Category:  models.CategoryFiction,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.store.Insert(s.ctx, dup)
	s.Error(err)
}
