package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Migrator applies versioned .sql files to a postgres deployment. SQLite
// bootstraps its schema directly on open, so Run is a no-op there.
type Migrator struct {
	db     *sql.DB
	dbType string
}

type migration struct {
	version string
	name    string
	sql     string
}

// MigrationStatus is one migration file's applied state.
type MigrationStatus struct {
	Version string
	Name    string
	Applied bool
}

func NewMigrator(db *sql.DB, dbType string) *Migrator {
	return &Migrator{db: db, dbType: dbType}
}

// Run applies every pending migration from dir in version order, each inside
// its own transaction.
func (m *Migrator) Run(dir string) error {
	if m.dbType != "postgres" {
		log.Println("Skipping migrations for non-postgres database")
		return nil
	}
	if err := m.ensureTable(); err != nil {
		return err
	}
	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}
	migrations, err := loadMigrations(dir)
	if err != nil {
		return err
	}

	pending := 0
	for _, mig := range migrations {
		if applied[mig.version] {
			continue
		}
		if err := m.apply(mig); err != nil {
			return err
		}
		pending++
	}
	if pending == 0 {
		log.Println("No pending migrations")
	} else {
		log.Printf("Applied %d migration(s)", pending)
	}
	return nil
}

// Status reports each migration file in dir with whether it has been applied.
func (m *Migrator) Status(dir string) ([]MigrationStatus, error) {
	if m.dbType != "postgres" {
		return nil, fmt.Errorf("migration status is only tracked for postgres")
	}
	if err := m.ensureTable(); err != nil {
		return nil, err
	}
	applied, err := m.appliedVersions()
	if err != nil {
		return nil, err
	}
	migrations, err := loadMigrations(dir)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, mig := range migrations {
		statuses = append(statuses, MigrationStatus{
			Version: mig.version,
			Name:    mig.name,
			Applied: applied[mig.version],
		})
	}
	return statuses, nil
}

func (m *Migrator) ensureTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := m.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions() (map[string]bool, error) {
	rows, err := m.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// loadMigrations reads dir's .sql files, versioned by filename prefix
// ("001_init.sql" -> "001") and sorted by version.
func loadMigrations(dir string) ([]migration, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		version, _, ok := strings.Cut(file.Name(), "_")
		if !ok {
			log.Printf("Skipping migration without a version prefix: %s", file.Name())
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}
		migrations = append(migrations, migration{
			version: version,
			name:    file.Name(),
			sql:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})
	return migrations, nil
}

func (m *Migrator) apply(mig migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(mig.sql); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", mig.name, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", mig.version); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", mig.name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", mig.name, err)
	}

	log.Printf("Applied migration: %s", mig.name)
	return nil
}
