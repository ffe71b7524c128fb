package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/engconnect/classtools/core/roster"
)

type rosterRepository struct {
	db *DB
}

var _ roster.Repository = (*rosterRepository)(nil)

func NewRosterRepository(db *DB) *rosterRepository {
	return &rosterRepository{db: db}
}

func (repo *rosterRepository) CreateClass(_ context.Context, cls roster.Class) (roster.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, c := range repo.db.classes {
		if c.Code == cls.Code {
			return roster.Class{}, roster.ErrCodeExists
		}
	}
	cls.ID = uuid.New().String()
	repo.db.classes[cls.ID] = &cls
	return cls, nil
}

func (repo *rosterRepository) GetClass(_ context.Context, id string) (roster.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return *cls, nil
	}
	return roster.Class{}, roster.ErrNotFound
}

func (repo *rosterRepository) QueryClassesByOwner(_ context.Context, ownerID string) ([]roster.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	classes := make([]roster.Class, 0)
	for _, cls := range repo.db.classes {
		if cls.OwnerID == ownerID {
			classes = append(classes, *cls)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].CreatedAt.Before(classes[j].CreatedAt) })
	return classes, nil
}

func (repo *rosterRepository) CreateStudent(_ context.Context, std roster.Student) (roster.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	std.ID = uuid.New().String()
	repo.db.students[std.ID] = &std
	return std, nil
}

func (repo *rosterRepository) GetStudent(_ context.Context, id string) (roster.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if std, ok := repo.db.students[id]; ok {
		return *std, nil
	}
	return roster.Student{}, roster.ErrNotFound
}

func (repo *rosterRepository) GetStudents(_ context.Context, ids []string) ([]roster.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]roster.Student, 0, len(ids))
	for _, id := range ids {
		if std, ok := repo.db.students[id]; ok {
			students = append(students, *std)
		}
	}
	sortStudents(students)
	return students, nil
}

func (repo *rosterRepository) QueryStudentsByClass(_ context.Context, classID string) ([]roster.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]roster.Student, 0)
	for _, std := range repo.db.students {
		if std.ClassID == classID {
			students = append(students, *std)
		}
	}
	sortStudents(students)
	return students, nil
}

func (repo *rosterRepository) UpdateStudent(_ context.Context, std roster.Student) (roster.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	curr, ok := repo.db.students[std.ID]
	if !ok {
		return roster.Student{}, roster.ErrNotFound
	}
	curr.Name = std.Name
	curr.AvatarURL = std.AvatarURL
	curr.GuardianEmail = std.GuardianEmail
	curr.UpdatedAt = std.UpdatedAt
	return *curr, nil
}

func (repo *rosterRepository) CreateBehavior(_ context.Context, bhv roster.Behavior) (roster.Behavior, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	bhv.ID = uuid.New().String()
	repo.db.behaviors[bhv.ID] = &bhv
	return bhv, nil
}

func (repo *rosterRepository) GetBehavior(_ context.Context, id string) (roster.Behavior, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if bhv, ok := repo.db.behaviors[id]; ok {
		return *bhv, nil
	}
	return roster.Behavior{}, roster.ErrNotFound
}

func (repo *rosterRepository) QueryBehaviorsByClass(_ context.Context, classID string) ([]roster.Behavior, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	behaviors := make([]roster.Behavior, 0)
	for _, bhv := range repo.db.behaviors {
		if bhv.ClassID == classID {
			behaviors = append(behaviors, *bhv)
		}
	}
	sort.Slice(behaviors, func(i, j int) bool {
		if behaviors[i].Points != behaviors[j].Points {
			return behaviors[i].Points > behaviors[j].Points
		}
		return behaviors[i].Name < behaviors[j].Name
	})
	return behaviors, nil
}

func (repo *rosterRepository) UpdateBehavior(_ context.Context, bhv roster.Behavior) (roster.Behavior, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	curr, ok := repo.db.behaviors[bhv.ID]
	if !ok {
		return roster.Behavior{}, roster.ErrNotFound
	}
	curr.Name = bhv.Name
	curr.Icon = bhv.Icon
	curr.Points = bhv.Points
	curr.UpdatedAt = bhv.UpdatedAt
	return *curr, nil
}

func (repo *rosterRepository) BehaviorReferenced(_ context.Context, behaviorID string) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, a := range repo.db.awards {
		if a.BehaviorID == behaviorID {
			return true, nil
		}
	}
	return false, nil
}

func sortStudents(students []roster.Student) {
	sort.Slice(students, func(i, j int) bool {
		if students[i].Name != students[j].Name {
			return students[i].Name < students[j].Name
		}
		return students[i].ID < students[j].ID
	})
}
