package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/engconnect/classtools/core/roster"
)

type rosterRepository struct {
	db *sqlx.DB
}

var _ roster.Repository = (*rosterRepository)(nil) // interface compliance check

func NewRosterRepository(db *sqlx.DB) *rosterRepository {
	return &rosterRepository{db: db}
}

type (
	classRow struct {
		ID        string    `db:"id"`
		OwnerID   string    `db:"owner_id"`
		Name      string    `db:"name"`
		Code      string    `db:"code"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	studentRow struct {
		ID            string    `db:"id"`
		ClassID       string    `db:"class_id"`
		Name          string    `db:"name"`
		AvatarURL     string    `db:"avatar_url"`
		GuardianEmail string    `db:"guardian_email"`
		TotalPoints   int       `db:"total_points"`
		CreatedAt     time.Time `db:"created_at"`
		UpdatedAt     time.Time `db:"updated_at"`
	}

	behaviorRow struct {
		ID        string    `db:"id"`
		ClassID   string    `db:"class_id"`
		Name      string    `db:"name"`
		Icon      string    `db:"icon"`
		Points    int       `db:"points"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
)

func (r classRow) unmap() roster.Class {
	return roster.Class{ID: r.ID, OwnerID: r.OwnerID, Name: r.Name, Code: r.Code, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func (r studentRow) unmap() roster.Student {
	return roster.Student{
		ID: r.ID, ClassID: r.ClassID, Name: r.Name, AvatarURL: r.AvatarURL,
		GuardianEmail: r.GuardianEmail, TotalPoints: r.TotalPoints,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (r behaviorRow) unmap() roster.Behavior {
	return roster.Behavior{
		ID: r.ID, ClassID: r.ClassID, Name: r.Name, Icon: r.Icon, Points: r.Points,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

// Classes

func (repo rosterRepository) CreateClass(ctx context.Context, cls roster.Class) (roster.Class, error) {
	cls.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO class (id, owner_id, name, code, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		cls.ID, cls.OwnerID, cls.Name, cls.Code, cls.CreatedAt, cls.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return roster.Class{}, roster.ErrCodeExists
		}
		return roster.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo rosterRepository) GetClass(ctx context.Context, id string) (roster.Class, error) {
	var row classRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM class WHERE id = $1`, id); err != nil {
		return roster.Class{}, trapNoRowsErr(err, roster.ErrNotFound, "getting class")
	}
	return row.unmap(), nil
}

func (repo rosterRepository) QueryClassesByOwner(ctx context.Context, ownerID string) ([]roster.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM class WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	classes := make([]roster.Class, 0, len(rows))
	for _, r := range rows {
		classes = append(classes, r.unmap())
	}
	return classes, nil
}

// Students

func (repo rosterRepository) CreateStudent(ctx context.Context, std roster.Student) (roster.Student, error) {
	std.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO student (id, class_id, name, avatar_url, guardian_email, total_points, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		std.ID, std.ClassID, std.Name, std.AvatarURL, std.GuardianEmail, std.TotalPoints, std.CreatedAt, std.UpdatedAt,
	)
	if err != nil {
		return roster.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo rosterRepository) GetStudent(ctx context.Context, id string) (roster.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		return roster.Student{}, trapNoRowsErr(err, roster.ErrNotFound, "getting student")
	}
	return row.unmap(), nil
}

func (repo rosterRepository) GetStudents(ctx context.Context, ids []string) ([]roster.Student, error) {
	query, args, err := sqlx.In(`SELECT * FROM student WHERE id IN (?) ORDER BY name`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "building students query")
	}
	var rows []studentRow
	if err = repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "getting students")
	}
	students := make([]roster.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.unmap())
	}
	return students, nil
}

func (repo rosterRepository) QueryStudentsByClass(ctx context.Context, classID string) ([]roster.Student, error) {
	var rows []studentRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM student WHERE class_id = $1 ORDER BY name, id`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]roster.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.unmap())
	}
	return students, nil
}

func (repo rosterRepository) UpdateStudent(ctx context.Context, std roster.Student) (roster.Student, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE student SET name = $2, avatar_url = $3, guardian_email = $4, updated_at = $5 WHERE id = $1`,
		std.ID, std.Name, std.AvatarURL, std.GuardianEmail, std.UpdatedAt,
	)
	if err != nil {
		return roster.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.Student{}, roster.ErrNotFound
	}
	return repo.GetStudent(ctx, std.ID)
}

// Behaviors

func (repo rosterRepository) CreateBehavior(ctx context.Context, bhv roster.Behavior) (roster.Behavior, error) {
	bhv.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO behavior (id, class_id, name, icon, points, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		bhv.ID, bhv.ClassID, bhv.Name, bhv.Icon, bhv.Points, bhv.CreatedAt, bhv.UpdatedAt,
	)
	if err != nil {
		return roster.Behavior{}, errors.Wrap(err, "inserting behavior")
	}
	return bhv, nil
}

func (repo rosterRepository) GetBehavior(ctx context.Context, id string) (roster.Behavior, error) {
	var row behaviorRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM behavior WHERE id = $1`, id); err != nil {
		return roster.Behavior{}, trapNoRowsErr(err, roster.ErrNotFound, "getting behavior")
	}
	return row.unmap(), nil
}

func (repo rosterRepository) QueryBehaviorsByClass(ctx context.Context, classID string) ([]roster.Behavior, error) {
	var rows []behaviorRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM behavior WHERE class_id = $1 ORDER BY points DESC, name`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying behaviors")
	}
	behaviors := make([]roster.Behavior, 0, len(rows))
	for _, r := range rows {
		behaviors = append(behaviors, r.unmap())
	}
	return behaviors, nil
}

func (repo rosterRepository) UpdateBehavior(ctx context.Context, bhv roster.Behavior) (roster.Behavior, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE behavior SET name = $2, icon = $3, points = $4, updated_at = $5 WHERE id = $1`,
		bhv.ID, bhv.Name, bhv.Icon, bhv.Points, bhv.UpdatedAt,
	)
	if err != nil {
		return roster.Behavior{}, errors.Wrap(err, "updating behavior")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.Behavior{}, roster.ErrNotFound
	}
	return repo.GetBehavior(ctx, bhv.ID)
}

func (repo rosterRepository) BehaviorReferenced(ctx context.Context, behaviorID string) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM point_award WHERE behavior_id = $1)`, behaviorID)
	if err != nil {
		return false, errors.Wrap(err, "checking behavior references")
	}
	return exists, nil
}
