package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"catalog/internal/catalog/models"
)

// Postgres persists items as JSONB documents with the identity, uniqueness,
// and versioning fields extracted into dedicated columns so point lookups
// and the atomic version increment stay plain SQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed item store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the items table and unique indexes when missing.
// Kept here instead of a migration tool; the schema is a single table.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS items (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	code        TEXT NOT NULL,
	version     BIGINT NOT NULL DEFAULT 0,
	doc         JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS items_name_key ON items (name);
CREATE UNIQUE INDEX IF NOT EXISTS items_code_key ON items (code);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure items schema: %w", err)
	}
	return nil
}

// doc is the JSONB document shape. Identity, version, and timestamps live in
// columns; everything else is document payload replaced wholesale on update.
type doc struct {
	Name         string               `json:"name"`
	Code         string               `json:"code"`
	Category     models.Category      `json:"category"`
	Producer     string               `json:"producer,omitempty"`
	Price        float64              `json:"price"`
	Discount     float64              `json:"discount"`
	Available    bool                 `json:"available"`
	ReleaseDate  time.Time            `json:"releaseDate"`
	Homepage     string               `json:"homepage,omitempty"`
	Tags         []models.Tag         `json:"tags,omitempty"`
	Contributors []models.Contributor `json:"contributors,omitempty"`
}

func toDoc(item *models.Item) doc {
	return doc{
		Name:         item.Name,
		Code:         item.Code,
		Category:     item.Category,
		Producer:     item.Producer,
		Price:        item.Price,
		Discount:     item.Discount,
		Available:    item.Available,
		ReleaseDate:  item.ReleaseDate,
		Homepage:     item.Homepage,
		Tags:         item.Tags,
		Contributors: item.Contributors,
	}
}

func (d doc) toItem(id string, version int64, createdAt, updatedAt time.Time) *models.Item {
	return &models.Item{
		ID:           id,
		Version:      version,
		Name:         d.Name,
		Code:         d.Code,
		Category:     d.Category,
		Producer:     d.Producer,
		Price:        d.Price,
		Discount:     d.Discount,
		Available:    d.Available,
		ReleaseDate:  d.ReleaseDate,
		Homepage:     d.Homepage,
		Tags:         d.Tags,
		Contributors: d.Contributors,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

const selectColumns = `id, version, doc, created_at, updated_at`

func (s *Postgres) scanItem(row *sql.Row) (*models.Item, error) {
	var (
		id                   string
		version              int64
		raw                  []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &version, &raw, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var d doc
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode item document: %w", err)
	}
	return d.toItem(id, version, createdAt, updatedAt), nil
}

func (s *Postgres) FindByID(ctx context.Context, id string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM items WHERE id = $1`, id)
	item, err := s.scanItem(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find item by id: %w", err)
	}
	return item, nil
}

func (s *Postgres) FindByName(ctx context.Context, name string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM items WHERE name = $1`, name)
	item, err := s.scanItem(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find item by name: %w", err)
	}
	return item, nil
}

func (s *Postgres) FindByCode(ctx context.Context, code string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM items WHERE code = $1`, code)
	item, err := s.scanItem(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find item by code: %w", err)
	}
	return item, nil
}

func (s *Postgres) Find(ctx context.Context, filter models.Filter) ([]*models.Item, error) {
	query := `SELECT ` + selectColumns + ` FROM items`
	var (
		clauses []string
		args    []any
	)
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if len(filter.Tags) > 0 {
		tags := make([]string, len(filter.Tags))
		for n, t := range filter.Tags {
			tags[n] = string(t)
		}
		args = append(args, pq.Array(tags))
		clauses = append(clauses, fmt.Sprintf("doc->'tags' ?| $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		var (
			id                   string
			version              int64
			raw                  []byte
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &version, &raw, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		var d doc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode item document: %w", err)
		}
		items = append(items, d.toItem(id, version, createdAt, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (s *Postgres) Insert(ctx context.Context, item *models.Item) (string, error) {
	raw, err := json.Marshal(toDoc(item))
	if err != nil {
		return "", fmt.Errorf("encode item document: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO items (id, name, code, version, doc, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.Name, item.Code, item.Version, raw, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("insert item: %w", err)
	}
	return item.ID, nil
}

// ReplaceByID overwrites the document and bumps the version in one UPDATE,
// so concurrent replacements on the same id serialize inside PostgreSQL.
func (s *Postgres) ReplaceByID(ctx context.Context, id string, item *models.Item) (*models.Item, error) {
	raw, err := json.Marshal(toDoc(item))
	if err != nil {
		return nil, fmt.Errorf("encode item document: %w", err)
	}
	row := s.db.QueryRowContext(ctx,
		`UPDATE items
		 SET name = $2, code = $3, doc = $4, version = version + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING `+selectColumns,
		id, item.Name, item.Code, raw)
	updated, err := s.scanItem(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("replace item: %w", err)
	}
	return updated, nil
}

func (s *Postgres) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete item rows affected: %w", err)
	}
	return n > 0, nil
}
