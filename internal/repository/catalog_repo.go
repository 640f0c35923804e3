package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/indiverse/heritagebot/internal/domain"
)

// CatalogRepository handles monument, blog, state and tour lookups
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type row struct {
	key  any
	name string
	data []byte
}

// replace swaps the contents of a table inside one transaction and returns
// the number of rows stored. Rows with an already seen key are skipped.
func (r *CatalogRepository) replace(ctx context.Context, table, keyCol, nameCol string, rows []row) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT OR IGNORE INTO %s (%s, %s, data, created_at) VALUES (?, ?, ?, ?)`, table, keyCol, nameCol))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()
	stored := 0
	for _, rw := range rows {
		res, err := stmt.ExecContext(ctx, rw.key, rw.name, string(rw.data), now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		stored += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return stored, nil
}

// ReplaceMonuments replaces all monuments. The first entry wins on duplicate ids.
func (r *CatalogRepository) ReplaceMonuments(ctx context.Context, monuments []domain.Monument) (int, error) {
	rows := make([]row, len(monuments))
	for i, m := range monuments {
		rows[i] = row{key: m.ID, name: m.Name, data: m.Raw}
	}
	return r.replace(ctx, "monuments", "id", "name", rows)
}

// ReplaceBlogs replaces all blogs
func (r *CatalogRepository) ReplaceBlogs(ctx context.Context, blogs []domain.Blog) (int, error) {
	rows := make([]row, len(blogs))
	for i, b := range blogs {
		rows[i] = row{key: b.ID, name: b.Title, data: b.Raw}
	}
	return r.replace(ctx, "blogs", "id", "title", rows)
}

// ReplaceStates replaces all states
func (r *CatalogRepository) ReplaceStates(ctx context.Context, states []domain.State) (int, error) {
	rows := make([]row, len(states))
	for i, s := range states {
		rows[i] = row{key: s.Key, name: s.Name, data: s.Raw}
	}
	return r.replace(ctx, "states", "key", "name", rows)
}

// ReplaceTours replaces all tours
func (r *CatalogRepository) ReplaceTours(ctx context.Context, tours []domain.Tour) (int, error) {
	rows := make([]row, len(tours))
	for i, t := range tours {
		rows[i] = row{key: t.ID, name: t.Title, data: t.Raw}
	}
	return r.replace(ctx, "tours", "id", "title", rows)
}

func (r *CatalogRepository) lookup(ctx context.Context, query string, key any) (string, bool, error) {
	var name string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// Monument returns a monument's name by id
func (r *CatalogRepository) Monument(ctx context.Context, id string) (string, bool, error) {
	return r.lookup(ctx, `SELECT name FROM monuments WHERE id = ?`, id)
}

// Blog returns a blog's title by id
func (r *CatalogRepository) Blog(ctx context.Context, id int) (string, bool, error) {
	return r.lookup(ctx, `SELECT title FROM blogs WHERE id = ?`, id)
}

// State returns a state's name by key
func (r *CatalogRepository) State(ctx context.Context, key string) (string, bool, error) {
	return r.lookup(ctx, `SELECT name FROM states WHERE key = ?`, key)
}

// Tour returns a tour's title by id
func (r *CatalogRepository) Tour(ctx context.Context, id string) (string, bool, error) {
	return r.lookup(ctx, `SELECT title FROM tours WHERE id = ?`, id)
}

// Counts returns the number of entries per dataset
func (r *CatalogRepository) Counts(ctx context.Context) (domain.CatalogCounts, error) {
	var counts domain.CatalogCounts
	targets := []struct {
		table string
		dst   *int
	}{
		{"monuments", &counts.Monuments},
		{"blogs", &counts.Blogs},
		{"states", &counts.States},
		{"tours", &counts.Tours},
	}
	for _, t := range targets {
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+t.table).Scan(t.dst); err != nil {
			return counts, fmt.Errorf("failed to count %s: %w", t.table, err)
		}
	}
	return counts, nil
}
