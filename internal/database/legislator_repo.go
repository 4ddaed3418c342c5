package database

import (
	"context"
	"fmt"
	"time"

	"github.com/capitolclips/legislink/internal/models"
)

type LegislatorRepo struct {
	db *DB
}

func NewLegislatorRepo(db *DB) *LegislatorRepo {
	return &LegislatorRepo{db: db}
}

func (r *LegislatorRepo) InsertPerson(ctx context.Context, name, formalName string) (int64, error) {
	var id int64
	query := `INSERT INTO people (name, formal_name) VALUES ($1, $2) RETURNING id`
	if err := r.db.conn.QueryRowContext(ctx, query, name, formalName).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert person: %w", err)
	}
	return id, nil
}

func (r *LegislatorRepo) InsertTerm(ctx context.Context, personID int64, chamber, party, district string, started time.Time, ended *time.Time) error {
	query := `
		INSERT INTO terms (person_id, chamber, party, district, date_started, date_ended)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.conn.ExecContext(ctx, query, personID, chamber, party, district, started, ended); err != nil {
		return fmt.Errorf("failed to insert term: %w", err)
	}
	return nil
}

// farFuture stands in for the end date of an ongoing session or term when
// computing window overlap.
var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// ListBySession returns every person whose term of service overlaps the
// session window, with party and district taken from the term record.
func (r *LegislatorRepo) ListBySession(ctx context.Context, session *models.Session) ([]models.LegislatorCandidate, error) {
	sessionEnd := farFuture
	if session.DateEnded != nil {
		sessionEnd = *session.DateEnded
	}

	query := `
		SELECT DISTINCT p.id, p.name, p.formal_name, t.party, t.district
		FROM people p
		JOIN terms t ON t.person_id = p.id
		WHERE t.date_started <= $1
		  AND (t.date_ended IS NULL OR t.date_ended >= $2)
		ORDER BY p.id`

	rows, err := r.db.conn.QueryContext(ctx, query, sessionEnd, session.DateStarted)
	if err != nil {
		return nil, fmt.Errorf("failed to query legislators: %w", err)
	}
	defer rows.Close()

	var candidates []models.LegislatorCandidate
	for rows.Next() {
		var c models.LegislatorCandidate
		if err := rows.Scan(&c.ID, &c.Name, &c.FormalName, &c.Party, &c.District); err != nil {
			return nil, fmt.Errorf("failed to scan legislator: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
