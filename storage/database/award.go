package database

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/engconnect/classtools/core/award"
	"github.com/engconnect/classtools/core/roster"
)

type awardRepository struct {
	db *sqlx.DB
}

var _ award.Repository = (*awardRepository)(nil) // interface compliance check

func NewAwardRepository(db *sqlx.DB) *awardRepository {
	return &awardRepository{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type awardRow struct {
	ID         string    `db:"id"`
	ClassID    string    `db:"class_id"`
	StudentID  string    `db:"student_id"`
	BehaviorID string    `db:"behavior_id"`
	Points     int       `db:"points"`
	RecordedBy string    `db:"recorded_by"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r awardRow) unmap() award.Award {
	return award.Award{
		ID: r.ID, ClassID: r.ClassID, StudentID: r.StudentID, BehaviorID: r.BehaviorID,
		Points: r.Points, RecordedBy: r.RecordedBy, CreatedAt: r.CreatedAt,
	}
}

// CreateAwards writes the batch and bumps each student's running total in one
// transaction. A failure on any row rolls the whole batch back.
func (repo awardRepository) CreateAwards(ctx context.Context, awards []award.Award) ([]award.Award, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning award tx")
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]award.Award, 0, len(awards))
	for _, a := range awards {
		a.ID = uuid.New().String()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO point_award (id, class_id, student_id, behavior_id, points, recorded_by, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.ID, a.ClassID, a.StudentID, a.BehaviorID, a.Points, a.RecordedBy, a.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "inserting award")
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE student SET total_points = total_points + $2, updated_at = $3 WHERE id = $1`,
			a.StudentID, a.Points, a.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "updating student total")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, roster.ErrNotFound
		}
		out = append(out, a)
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing award tx")
	}
	return out, nil
}

// sortableAwardColumns whitelists `ordering` fields; anything else never
// reaches the SQL.
var sortableAwardColumns = map[string]struct{}{
	"created_at": {},
	"points":     {},
}

func (repo awardRepository) FilterAwards(ctx context.Context, filter award.Filter) ([]award.Award, error) {
	orderings := make([]string, 0, len(filter.Orderings))
	for _, ord := range filter.Orderings {
		if _, ok := sortableAwardColumns[ord.Field]; ok {
			orderings = append(orderings, ord.String())
		}
	}
	if len(orderings) == 0 {
		orderings = append(orderings, "created_at DESC")
	}

	q := psql.Select("*").From("point_award").OrderBy(orderings...)
	if filter.ClassID != "" {
		q = q.Where(sq.Eq{"class_id": filter.ClassID})
	}
	if filter.StudentID != "" {
		q = q.Where(sq.Eq{"student_id": filter.StudentID})
	}
	if filter.BehaviorID != "" {
		q = q.Where(sq.Eq{"behavior_id": filter.BehaviorID})
	}
	if !filter.From.IsZero() {
		q = q.Where(sq.GtOrEq{"created_at": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(sq.LtOrEq{"created_at": filter.To})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building awards query")
	}
	var rows []awardRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering awards")
	}
	awards := make([]award.Award, 0, len(rows))
	for _, r := range rows {
		awards = append(awards, r.unmap())
	}
	return awards, nil
}

func (repo awardRepository) Leaderboard(ctx context.Context, classID string, limit int) ([]roster.Student, error) {
	q := psql.Select("*").From("student").
		Where(sq.Eq{"class_id": classID}).
		OrderBy("total_points DESC", "name ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building leaderboard query")
	}
	var rows []studentRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying leaderboard")
	}
	students := make([]roster.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.unmap())
	}
	return students, nil
}
