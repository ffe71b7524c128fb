package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/engconnect/classtools/core/roster"
	"github.com/engconnect/classtools/core/seating"
)

type seatingRepository struct {
	db *sqlx.DB
}

var _ seating.Repository = (*seatingRepository)(nil) // interface compliance check

func NewSeatingRepository(db *sqlx.DB) *seatingRepository {
	return &seatingRepository{db: db}
}

type (
	seatRow struct {
		ClassID   string `db:"class_id"`
		StudentID string `db:"student_id"`
		Row       int    `db:"row"`
		Col       int    `db:"col"`
	}

	gridConfigRow struct {
		ClassID      string    `db:"class_id"`
		Rows         int       `db:"rows"`
		Cols         int       `db:"cols"`
		PairMode     bool      `db:"pair_mode"`
		ViewFromBack bool      `db:"view_from_back"`
		ZoomLevel    float64   `db:"zoom_level"`
		UpdatedAt    time.Time `db:"updated_at"`
	}
)

func (repo seatingRepository) GetSeats(ctx context.Context, classID string) ([]seating.Seat, error) {
	var rows []seatRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM seat WHERE class_id = $1 ORDER BY row, col`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying seats")
	}
	seats := make([]seating.Seat, 0, len(rows))
	for _, r := range rows {
		seats = append(seats, seating.Seat{StudentID: r.StudentID, Row: r.Row, Col: r.Col})
	}
	return seats, nil
}

// ReplaceSeats swaps the class's stored layout for the given one: delete plus
// bulk insert inside one transaction, so readers never observe a half-saved
// chart.
func (repo seatingRepository) ReplaceSeats(ctx context.Context, classID string, seats []seating.Seat) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning seat tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM seat WHERE class_id = $1`, classID); err != nil {
		return errors.Wrap(err, "clearing seats")
	}
	for _, s := range seats {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO seat (class_id, student_id, row, col) VALUES ($1, $2, $3, $4)`,
			classID, s.StudentID, s.Row, s.Col,
		)
		if err != nil {
			return errors.Wrap(err, "inserting seat")
		}
	}
	return errors.Wrap(tx.Commit(), "committing seat tx")
}

func (repo seatingRepository) GetGridConfig(ctx context.Context, classID string) (seating.GridConfig, error) {
	var row gridConfigRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM grid_config WHERE class_id = $1`, classID)
	if err != nil {
		return seating.GridConfig{}, trapNoRowsErr(err, roster.ErrNotFound, "getting grid config")
	}
	return seating.GridConfig{
		Rows:         row.Rows,
		Cols:         row.Cols,
		PairMode:     row.PairMode,
		ViewFromBack: row.ViewFromBack,
		ZoomLevel:    row.ZoomLevel,
	}, nil
}

func (repo seatingRepository) SaveGridConfig(ctx context.Context, classID string, gc seating.GridConfig, savedAt time.Time) error {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO grid_config (class_id, rows, cols, pair_mode, view_from_back, zoom_level, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (class_id) DO UPDATE
		 SET rows = $2, cols = $3, pair_mode = $4, view_from_back = $5, zoom_level = $6, updated_at = $7`,
		classID, gc.Rows, gc.Cols, gc.PairMode, gc.ViewFromBack, gc.ZoomLevel, savedAt,
	)
	return errors.Wrap(err, "saving grid config")
}
