package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/capitolclips/legislink/internal/models"
)

type VideoIndexRepo struct {
	db *DB
}

func NewVideoIndexRepo(db *DB) *VideoIndexRepo {
	return &VideoIndexRepo{db: db}
}

func (r *VideoIndexRepo) Insert(ctx context.Context, entry *models.VideoIndexEntry) error {
	query := `
		INSERT INTO video_index (file_id, time, screenshot, raw_text, type, linked_id, ignored)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var linked sql.NullInt64
	if entry.LinkedID != nil {
		linked = sql.NullInt64{Int64: *entry.LinkedID, Valid: true}
	}
	err := r.db.conn.QueryRowContext(ctx, query,
		entry.FileID,
		entry.Time,
		entry.Screenshot,
		entry.RawText,
		string(entry.Type),
		linked,
		boolToInt(entry.Ignored),
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert video index entry: %w", err)
	}
	return nil
}

// ListForResolution returns a file's non-ignored entries ordered by
// screenshot ordinal. Already-linked entries are excluded unless the caller
// is forcing re-resolution; entryType narrows to one type when non-empty.
func (r *VideoIndexRepo) ListForResolution(ctx context.Context, fileID string, entryType models.EntryType, includeLinked bool) ([]models.VideoIndexEntry, error) {
	query := `
		SELECT id, file_id, time, screenshot, raw_text, type, linked_id, ignored
		FROM video_index
		WHERE file_id = $1 AND ignored = 0`
	args := []interface{}{fileID}

	if !includeLinked {
		query += " AND linked_id IS NULL"
	}
	if entryType != "" {
		args = append(args, string(entryType))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY CAST(screenshot AS INTEGER) ASC"

	return r.queryEntries(ctx, query, args...)
}

// ListNearby returns the other entries of the same file whose screenshot
// ordinal falls in [loOrdinal, hiOrdinal].
func (r *VideoIndexRepo) ListNearby(ctx context.Context, fileID string, loOrdinal, hiOrdinal int, excludeID int64) ([]models.VideoIndexEntry, error) {
	query := `
		SELECT id, file_id, time, screenshot, raw_text, type, linked_id, ignored
		FROM video_index
		WHERE file_id = $1 AND id != $2 AND ignored = 0
		  AND CAST(screenshot AS INTEGER) BETWEEN $3 AND $4
		ORDER BY CAST(screenshot AS INTEGER) ASC`

	return r.queryEntries(ctx, query, fileID, excludeID, loOrdinal, hiOrdinal)
}

// SetLinkedID commits a resolved link. Each call is an independent write;
// there is no per-file transaction, so a crash mid-file leaves a consistent
// partial result.
func (r *VideoIndexRepo) SetLinkedID(ctx context.Context, entryID, linkedID int64) error {
	query := `UPDATE video_index SET linked_id = $1 WHERE id = $2`
	if _, err := r.db.conn.ExecContext(ctx, query, linkedID, entryID); err != nil {
		return fmt.Errorf("failed to set linked id: %w", err)
	}
	return nil
}

// FilesWithUnresolved lists distinct file IDs that still have unresolved
// entries. A limit of 0 means no cap.
func (r *VideoIndexRepo) FilesWithUnresolved(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT DISTINCT file_id
		FROM video_index
		WHERE linked_id IS NULL AND ignored = 0
		ORDER BY file_id`
	args := []interface{}{}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $1"
	}

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query unresolved files: %w", err)
	}
	defer rows.Close()

	var fileIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan file id: %w", err)
		}
		fileIDs = append(fileIDs, id)
	}
	return fileIDs, rows.Err()
}

// IndexStats summarizes link coverage across the whole video index.
type IndexStats struct {
	Total             int64 `json:"total"`
	Linked            int64 `json:"linked"`
	Unresolved        int64 `json:"unresolved"`
	LinkedBills       int64 `json:"linked_bills"`
	LinkedLegislators int64 `json:"linked_legislators"`
}

func (r *VideoIndexRepo) Stats(ctx context.Context) (*IndexStats, error) {
	query := `
		SELECT
			COUNT(*),
			SUM(CASE WHEN linked_id IS NOT NULL THEN 1 ELSE 0 END),
			SUM(CASE WHEN linked_id IS NULL THEN 1 ELSE 0 END),
			SUM(CASE WHEN linked_id IS NOT NULL AND type = 'bill' THEN 1 ELSE 0 END),
			SUM(CASE WHEN linked_id IS NOT NULL AND type = 'legislator' THEN 1 ELSE 0 END)
		FROM video_index
		WHERE ignored = 0`

	stats := &IndexStats{}
	var linked, unresolved, bills, legislators sql.NullInt64
	err := r.db.conn.QueryRowContext(ctx, query).Scan(&stats.Total, &linked, &unresolved, &bills, &legislators)
	if err != nil {
		return nil, fmt.Errorf("failed to query index stats: %w", err)
	}
	stats.Linked = linked.Int64
	stats.Unresolved = unresolved.Int64
	stats.LinkedBills = bills.Int64
	stats.LinkedLegislators = legislators.Int64
	return stats, nil
}

func (r *VideoIndexRepo) queryEntries(ctx context.Context, query string, args ...interface{}) ([]models.VideoIndexEntry, error) {
	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query video index: %w", err)
	}
	defer rows.Close()

	var entries []models.VideoIndexEntry
	for rows.Next() {
		var e models.VideoIndexEntry
		var linked sql.NullInt64
		var entryType string
		var ignored int
		if err := rows.Scan(&e.ID, &e.FileID, &e.Time, &e.Screenshot, &e.RawText, &entryType, &linked, &ignored); err != nil {
			return nil, fmt.Errorf("failed to scan video index entry: %w", err)
		}
		e.Type = models.EntryType(entryType)
		e.Ignored = ignored != 0
		if linked.Valid {
			id := linked.Int64
			e.LinkedID = &id
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
