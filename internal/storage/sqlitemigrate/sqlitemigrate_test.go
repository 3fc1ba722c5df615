package sqlitemigrate_test

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/harbormail/pagekit/internal/storage/sqlitemigrate"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApply_RunsMigrationsInOrder(t *testing.T) {
	sqlDB := openDB(t)

	fsys := fstest.MapFS{
		"002_add_column.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
ALTER TABLE things ADD COLUMN label TEXT;
-- +migrate Down
`)},
		"001_create.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
CREATE TABLE things (id INTEGER PRIMARY KEY);
-- +migrate Down
DROP TABLE things;
`)},
	}

	if err := sqlitemigrate.Apply(sqlDB, fsys, ""); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := sqlDB.Exec("INSERT INTO things (id, label) VALUES (1, 'a')"); err != nil {
		t.Fatalf("expected migrated schema to accept insert: %v", err)
	}
}

func TestApply_IsIdempotent(t *testing.T) {
	sqlDB := openDB(t)

	fsys := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
CREATE TABLE things (id INTEGER PRIMARY KEY);
`)},
	}

	if err := sqlitemigrate.Apply(sqlDB, fsys, ""); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, fsys, ""); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", count)
	}
}

func TestExtractUp(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE a (id INTEGER);
-- +migrate Down
DROP TABLE a;
`
	up := sqlitemigrate.ExtractUp(content)
	if up == content {
		t.Fatal("expected up section to be extracted")
	}
	if want := "CREATE TABLE a (id INTEGER);"; !strings.Contains(up, want) {
		t.Fatalf("expected up SQL, got: %q", up)
	}
	if strings.Contains(up, "DROP TABLE") {
		t.Fatal("down section must not leak into up SQL")
	}

	plain := "CREATE TABLE b (id INTEGER);"
	if got := sqlitemigrate.ExtractUp(plain); got != plain {
		t.Fatalf("expected unmarked file to pass through, got %q", got)
	}
}
