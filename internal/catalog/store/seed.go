package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"catalog/internal/catalog/models"
)

// Seed loads a small set of fixture items so a fresh instance has data to
// browse. Insert errors are ignored on purpose: reseeding an already-seeded
// store is a no-op, not a failure.
func Seed(ctx context.Context, s Store) {
	now := time.Now()
	fixtures := []models.Item{
		{
			Name:        "The Go Workshop",
			Code:        "978-1838647940",
			Category:    models.CategoryReference,
			Producer:    "Packt",
			Price:       34.99,
			Discount:    0.1,
			Available:   true,
			ReleaseDate: time.Date(2019, time.December, 27, 0, 0, 0, 0, time.UTC),
			Homepage:    "https://www.packtpub.com/product/the-go-workshop/9781838647940",
			Tags:        []models.Tag{models.TagNew, models.TagDigital},
			Contributors: []models.Contributor{
				{FirstName: "Delio", LastName: "D'Anna"},
				{FirstName: "Sam", LastName: "Hennessy"},
			},
		},
		{
			Name:        "Station Eleven",
			Code:        "978-0804172448",
			Category:    models.CategoryFiction,
			Producer:    "Vintage",
			Price:       11.1,
			Discount:    0.011,
			Available:   true,
			ReleaseDate: time.Date(2015, time.June, 2, 0, 0, 0, 0, time.UTC),
			Tags:        []models.Tag{models.TagUsed},
			Contributors: []models.Contributor{
				{FirstName: "Emily", LastName: "St. John Mandel"},
			},
		},
		{
			Name:        "The Very Hungry Caterpillar",
			Code:        "0-399-22690-7",
			Category:    models.CategoryChildren,
			Producer:    "Philomel Books",
			Price:       8.95,
			Available:   false,
			ReleaseDate: time.Date(1994, time.March, 23, 0, 0, 0, 0, time.UTC),
			Contributors: []models.Contributor{
				{FirstName: "Eric", LastName: "Carle"},
			},
		},
	}

	for _, item := range fixtures {
		item.ID = uuid.NewString()
		item.CreatedAt = now
		item.UpdatedAt = now
		_, _ = s.Insert(ctx, &item)
	}
}
