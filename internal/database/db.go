package database

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn   *sql.DB
	dbType string
}

type Config struct {
	Type       string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SQLitePath string
}

func NewDB(config Config) (*DB, error) {
	var conn *sql.DB
	var err error

	switch config.Type {
	case "sqlite":
		conn, err = sql.Open("sqlite3", config.SQLitePath)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			config.Host, config.Port, config.User, config.Password, config.Name)
		conn, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, dbType: config.Type}

	// Only create tables for SQLite; postgres deployments run migrations.
	if config.Type == "sqlite" {
		if err := db.createTables(); err != nil {
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return db, nil
}

func (db *DB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		date_started DATETIME NOT NULL,
		date_ended DATETIME
	);

	CREATE TABLE IF NOT EXISTS bills (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES sessions(id),
		number TEXT NOT NULL,
		chamber TEXT NOT NULL,
		UNIQUE (session_id, chamber, number)
	);

	CREATE TABLE IF NOT EXISTS people (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		formal_name TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		person_id INTEGER NOT NULL REFERENCES people(id),
		chamber TEXT NOT NULL,
		party TEXT NOT NULL DEFAULT '',
		district TEXT NOT NULL DEFAULT '',
		date_started DATETIME NOT NULL,
		date_ended DATETIME
	);

	CREATE TABLE IF NOT EXISTS video_files (
		id TEXT PRIMARY KEY,
		capture_date DATETIME NOT NULL,
		chamber TEXT NOT NULL,
		metadata TEXT
	);

	CREATE TABLE IF NOT EXISTS video_index (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_id TEXT NOT NULL REFERENCES video_files(id),
		time TEXT NOT NULL DEFAULT '',
		screenshot TEXT NOT NULL,
		raw_text TEXT NOT NULL,
		type TEXT NOT NULL,
		linked_id INTEGER,
		ignored INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_video_index_file ON video_index(file_id);
	CREATE INDEX IF NOT EXISTS idx_video_index_unresolved ON video_index(file_id) WHERE linked_id IS NULL;
	`

	_, err := db.conn.Exec(query)
	return err
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) RunMigrations(migrationsPath string) error {
	return NewMigrator(db.conn, db.dbType).Run(migrationsPath)
}
