package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/capitolclips/legislink/internal/models"
)

type FileRepo struct {
	db *DB
}

func NewFileRepo(db *DB) *FileRepo {
	return &FileRepo{db: db}
}

func (r *FileRepo) Insert(ctx context.Context, file *models.VideoFile) error {
	query := `INSERT INTO video_files (id, capture_date, chamber, metadata) VALUES ($1, $2, $3, $4)`
	metadata := sql.NullString{String: file.Metadata, Valid: file.Metadata != ""}
	if _, err := r.db.conn.ExecContext(ctx, query, file.ID, file.CaptureDate, file.Chamber, metadata); err != nil {
		return fmt.Errorf("failed to insert video file: %w", err)
	}
	return nil
}

func (r *FileRepo) GetByID(ctx context.Context, id string) (*models.VideoFile, error) {
	query := `SELECT id, capture_date, chamber, metadata FROM video_files WHERE id = $1`

	file := &models.VideoFile{}
	var metadata sql.NullString
	err := r.db.conn.QueryRowContext(ctx, query, id).Scan(&file.ID, &file.CaptureDate, &file.Chamber, &metadata)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video file: %w", err)
	}
	if metadata.Valid {
		file.Metadata = metadata.String
	}
	return file, nil
}
