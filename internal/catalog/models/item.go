package models

import (
	"time"

	"catalog/pkg/strutil"
)

// Category classifies an item into one of a fixed set of shelves.
type Category string

const (
	CategoryFiction    Category = "fiction"
	CategoryNonfiction Category = "nonfiction"
	CategoryReference  Category = "reference"
	CategoryChildren   Category = "children"
)

// Tag is an optional label attached to an item. Tags form a lowercase set;
// normalization lowercases submitted values and drops duplicates.
type Tag string

const (
	TagNew     Tag = "new"
	TagUsed    Tag = "used"
	TagDigital Tag = "digital"
	TagAudio   Tag = "audio"
	TagSigned  Tag = "signed"
)

// Contributor is a single first/last name pair attached to an item. The
// slice on Item is ordered; position matters for display.
type Contributor struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// Item is the catalog entity under management.
//
// Invariants:
//   - ID uniquely identifies an item for its lifetime and never changes
//   - Name and Code are each globally unique among live items
//   - Version starts at 0 and increases by exactly 1 per accepted update
//   - Price >= 0, Discount in [0, 1)
//
// CreatedAt/UpdatedAt are server-assigned and stripped from API responses
// (json:"-"); stores persist them in dedicated columns.
type Item struct {
	ID           string        `json:"id,omitempty"`
	Version      int64         `json:"version"`
	Name         string        `json:"name" validate:"required"`
	Code         string        `json:"code" validate:"required,isbn"`
	Category     Category      `json:"category" validate:"required,oneof=fiction nonfiction reference children"`
	Producer     string        `json:"producer,omitempty"`
	Price        float64       `json:"price" validate:"gte=0"`
	Discount     float64       `json:"discount" validate:"gte=0,lt=1"`
	Available    bool          `json:"available"`
	ReleaseDate  time.Time     `json:"releaseDate,omitempty"`
	Homepage     string        `json:"homepage,omitempty" validate:"omitempty,url"`
	Tags         []Tag         `json:"tags,omitempty" validate:"dive,oneof=new used digital audio signed"`
	Contributors []Contributor `json:"contributors,omitempty" validate:"dive"`
	CreatedAt    time.Time     `json:"-"`
	UpdatedAt    time.Time     `json:"-"`
}

// Normalize trims the unique fields and folds tags to a lowercase set.
// Called by the pipeline before validation so a candidate compares
// consistently against stored items.
func (i *Item) Normalize() {
	i.Name = trim(i.Name)
	i.Code = trim(i.Code)
	i.Tags = dedupeTags(i.Tags)
}

func trim(s string) string {
	return strutil.Trim(s)
}

func dedupeTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return tags
	}
	raw := make([]string, len(tags))
	for n, t := range tags {
		raw[n] = string(t)
	}
	deduped := strutil.DedupeAndTrimLower(raw)
	out := make([]Tag, len(deduped))
	for n, s := range deduped {
		out[n] = Tag(s)
	}
	return out
}

// Filter narrows a listing. Zero value matches everything.
type Filter struct {
	// Name matches via case-insensitive substring.
	Name string
	// Tags matches items carrying at least one of the given tags.
	Tags []Tag
}

// IsZero reports whether the filter imposes no constraints.
func (f Filter) IsZero() bool {
	return f.Name == "" && len(f.Tags) == 0
}
