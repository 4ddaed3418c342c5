package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/capitolclips/legislink/internal/models"
)

type SessionRepo struct {
	db *DB
}

func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Insert(ctx context.Context, session *models.Session) error {
	query := `INSERT INTO sessions (name, date_started, date_ended) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.conn.QueryRowContext(ctx, query, session.Name, session.DateStarted, session.DateEnded).Scan(&session.ID)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// FindByDate returns the session whose window contains the given date, or
// nil when no session was active then.
func (r *SessionRepo) FindByDate(ctx context.Context, date time.Time) (*models.Session, error) {
	query := `
		SELECT id, name, date_started, date_ended
		FROM sessions
		WHERE date_started <= $1 AND (date_ended IS NULL OR date_ended >= $2)
		ORDER BY date_started DESC
		LIMIT 1`

	session := &models.Session{}
	var ended sql.NullTime
	err := r.db.conn.QueryRowContext(ctx, query, date, date).Scan(
		&session.ID,
		&session.Name,
		&session.DateStarted,
		&ended,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if ended.Valid {
		session.DateEnded = &ended.Time
	}
	return session, nil
}
