package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/capitolclips/legislink/internal/models"
)

type BillRepo struct {
	db *DB
}

func NewBillRepo(db *DB) *BillRepo {
	return &BillRepo{db: db}
}

func (r *BillRepo) Insert(ctx context.Context, bill *models.BillCandidate) error {
	query := `INSERT INTO bills (session_id, number, chamber) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.conn.QueryRowContext(ctx, query, bill.SessionID, bill.Number, bill.Chamber).Scan(&bill.ID)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// ListBySessionChamber loads the candidate pool for one session and chamber.
// The resolver caches the result for the rest of the run.
func (r *BillRepo) ListBySessionChamber(ctx context.Context, sessionID int64, chamber string) ([]models.BillCandidate, error) {
	query := `
		SELECT id, session_id, number, chamber
		FROM bills
		WHERE session_id = $1 AND chamber = $2
		ORDER BY id`

	rows, err := r.db.conn.QueryContext(ctx, query, sessionID, chamber)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []models.BillCandidate
	for rows.Next() {
		var b models.BillCandidate
		if err := rows.Scan(&b.ID, &b.SessionID, &b.Number, &b.Chamber); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *BillRepo) GetByID(ctx context.Context, id int64) (*models.BillCandidate, error) {
	query := `SELECT id, session_id, number, chamber FROM bills WHERE id = $1`

	bill := &models.BillCandidate{}
	err := r.db.conn.QueryRowContext(ctx, query, id).Scan(&bill.ID, &bill.SessionID, &bill.Number, &bill.Chamber)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}
