package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMigrations(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"002_terms.sql": "CREATE TABLE terms (id BIGSERIAL PRIMARY KEY);",
		"001_init.sql":  "CREATE TABLE sessions (id BIGSERIAL PRIMARY KEY);",
		"notes.txt":     "not a migration",
		"noversion.sql": "SELECT 1;",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	migrations, err := loadMigrations(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(migrations) != 2 {
		t.Fatalf("Expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].version != "001" || migrations[1].version != "002" {
		t.Errorf("Versions out of order: %s, %s", migrations[0].version, migrations[1].version)
	}
	if migrations[0].name != "001_init.sql" {
		t.Errorf("Name = %q, expected 001_init.sql", migrations[0].name)
	}
	if migrations[0].sql != files["001_init.sql"] {
		t.Errorf("SQL = %q", migrations[0].sql)
	}
}

func TestMigratorSQLiteIsNoOp(t *testing.T) {
	db := newTestDB(t)
	migrator := NewMigrator(db.Conn(), "sqlite")

	if err := migrator.Run(t.TempDir()); err != nil {
		t.Errorf("Run on sqlite must be a no-op, got %v", err)
	}
	if _, err := migrator.Status(t.TempDir()); err == nil {
		t.Error("Expected Status to report that sqlite is untracked")
	}
}
