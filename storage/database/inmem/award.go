package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/award"
	"github.com/engconnect/classtools/core/roster"
)

type AwardRepository struct {
	db *DB

	// FailNext makes the next CreateAwards call fail with the given error,
	// for exercising persistence-failure paths in tests.
	FailNext error
}

var _ award.Repository = (*AwardRepository)(nil)

func NewAwardRepository(db *DB) *AwardRepository {
	return &AwardRepository{db: db}
}

func (repo *AwardRepository) CreateAwards(_ context.Context, awards []award.Award) ([]award.Award, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.FailNext != nil {
		err := repo.FailNext
		repo.FailNext = nil
		return nil, err
	}

	// all-or-nothing: verify every target before touching anything
	for _, a := range awards {
		if _, ok := repo.db.students[a.StudentID]; !ok {
			return nil, roster.ErrNotFound
		}
	}

	out := make([]award.Award, 0, len(awards))
	for _, a := range awards {
		a.ID = uuid.New().String()
		repo.db.students[a.StudentID].TotalPoints += a.Points
		repo.db.awards = append(repo.db.awards, a)
		out = append(out, a)
	}
	return out, nil
}

func (repo *AwardRepository) FilterAwards(_ context.Context, filter award.Filter) ([]award.Award, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	awards := make([]award.Award, 0)
	for _, a := range repo.db.awards {
		if filter.ClassID != "" && a.ClassID != filter.ClassID {
			continue
		}
		if filter.StudentID != "" && a.StudentID != filter.StudentID {
			continue
		}
		if filter.BehaviorID != "" && a.BehaviorID != filter.BehaviorID {
			continue
		}
		if !filter.From.IsZero() && a.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && a.CreatedAt.After(filter.To) {
			continue
		}
		awards = append(awards, a)
	}
	sort.Slice(awards, awardLess(awards, filter.Orderings))
	if filter.Limit > 0 && len(awards) > filter.Limit {
		awards = awards[:filter.Limit]
	}
	return awards, nil
}

// awardLess applies the filter's orderings, newest first by default. Same
// sortable columns as the SQL repository.
func awardLess(awards []award.Award, orderings []core.DBOrdering) func(i, j int) bool {
	cmp := make([]core.DBOrdering, 0, len(orderings))
	for _, ord := range orderings {
		if ord.Field == "created_at" || ord.Field == "points" {
			cmp = append(cmp, ord)
		}
	}
	if len(cmp) == 0 {
		cmp = append(cmp, core.DBOrdering{Field: "created_at"})
	}
	return func(i, j int) bool {
		for _, ord := range cmp {
			switch ord.Field {
			case "points":
				if awards[i].Points != awards[j].Points {
					if ord.Ascending {
						return awards[i].Points < awards[j].Points
					}
					return awards[i].Points > awards[j].Points
				}
			case "created_at":
				if !awards[i].CreatedAt.Equal(awards[j].CreatedAt) {
					if ord.Ascending {
						return awards[i].CreatedAt.Before(awards[j].CreatedAt)
					}
					return awards[i].CreatedAt.After(awards[j].CreatedAt)
				}
			}
		}
		return false
	}
}

func (repo *AwardRepository) Leaderboard(_ context.Context, classID string, limit int) ([]roster.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]roster.Student, 0)
	for _, std := range repo.db.students {
		if std.ClassID == classID {
			students = append(students, *std)
		}
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].TotalPoints != students[j].TotalPoints {
			return students[i].TotalPoints > students[j].TotalPoints
		}
		return students[i].Name < students[j].Name
	})
	if limit > 0 && len(students) > limit {
		students = students[:limit]
	}
	return students, nil
}
