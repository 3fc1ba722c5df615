// Package sqlite provides a SQLite-backed tag source.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/harbormail/pagekit/internal/storage/sqlitemigrate"
	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/tags"
	"github.com/harbormail/pagekit/pkg/tags/sqlite/migrations"
)

// Store persists tag metadata in SQLite and serves the two sidebar queries.
type Store struct {
	sqlDB *sql.DB
}

var _ tags.Source = (*Store)(nil)

// Open opens a SQLite tag store and applies embedded migrations. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		// _pragma is the modernc.org/sqlite driver's DSN parameter syntax.
		dsn = filepath.Clean(path) +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=foreign_keys(ON)" +
			"&_pragma=busy_timeout(5000)" +
			"&_pragma=synchronous(NORMAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts or replaces one tag row in the given display group at the
// given position.
func (s *Store) Save(ctx context.Context, tag model.Tag, display tags.Display, position int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slug := strings.TrimSpace(tag.Slug)
	if slug == "" {
		return fmt.Errorf("tag slug is required")
	}
	if strings.TrimSpace(tag.Name) == "" {
		return fmt.Errorf("tag name is required")
	}
	if !display.Valid() {
		return fmt.Errorf("unknown display %q", display)
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO tags (
		   slug, name, url, display, display_order,
		   count_all, stats_new, stats_all, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
		   name = excluded.name,
		   url = excluded.url,
		   display = excluded.display,
		   display_order = excluded.display_order,
		   count_all = excluded.count_all,
		   stats_new = excluded.stats_new,
		   stats_all = excluded.stats_all,
		   updated_at = excluded.updated_at`,
		slug,
		tag.Name,
		tag.URL,
		string(display),
		position,
		tag.All,
		tag.Stats.New,
		tag.Stats.All,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save tag %q: %w", slug, err)
	}
	return nil
}

// SetStats updates the counters for one tag without touching its position.
func (s *Store) SetStats(ctx context.Context, slug string, stats model.TagStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return fmt.Errorf("tag slug is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE tags SET stats_new = ?, stats_all = ?, updated_at = ? WHERE slug = ?`,
		stats.New,
		stats.All,
		time.Now().UTC().UnixMilli(),
		slug,
	)
	if err != nil {
		return fmt.Errorf("update tag stats %q: %w", slug, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tag stats %q: %w", slug, err)
	}
	if affected == 0 {
		return fmt.Errorf("tag %q not found", slug)
	}
	return nil
}

// ListByDisplay returns the requested sidebar group ordered by display_order,
// with slug as the tiebreaker so the order is total and stable.
func (s *Store) ListByDisplay(ctx context.Context, display tags.Display) ([]model.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if !display.Valid() {
		return nil, fmt.Errorf("unknown display %q", display)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT slug, name, url, count_all, stats_new, stats_all
		   FROM tags
		  WHERE display = ?
		  ORDER BY display_order, slug`,
		string(display),
	)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var out []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.Slug, &tag.Name, &tag.URL, &tag.All, &tag.Stats.New, &tag.Stats.All); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return out, nil
}
