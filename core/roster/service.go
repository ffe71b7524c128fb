package roster

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/engconnect/classtools/core"
)

var (
	// errors
	ErrNotFound      = errors.New("not found")
	ErrCodeExists    = errors.New("a class with this code already exists")
	ErrBehaviorInUse = errors.New("point value cannot change once the behavior has been awarded")
	ErrClassMismatch = errors.New("record does not belong to this class")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		GetClass(ctx context.Context, id string) (Class, error)
		QueryClassesByOwner(ctx context.Context, ownerID string) ([]Class, error)

		CreateStudent(ctx context.Context, std Student) (Student, error)
		GetStudent(ctx context.Context, id string) (Student, error)
		GetStudents(ctx context.Context, ids []string) ([]Student, error)
		QueryStudentsByClass(ctx context.Context, classID string) ([]Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)

		CreateBehavior(ctx context.Context, bhv Behavior) (Behavior, error)
		GetBehavior(ctx context.Context, id string) (Behavior, error)
		QueryBehaviorsByClass(ctx context.Context, classID string) ([]Behavior, error)
		UpdateBehavior(ctx context.Context, bhv Behavior) (Behavior, error)
		// BehaviorReferenced reports whether any award references the behavior.
		BehaviorReferenced(ctx context.Context, behaviorID string) (bool, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateClass(ctx context.Context, ownerID string, nc NewClass) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		OwnerID:   ownerID,
		Name:      nc.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// regenerate on the rare code collision
	var (
		created Class
		err     error
	)
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		cls.Code = newJoinCode()
		created, err = svc.repo.CreateClass(ctx, cls)
		if !errors.Is(err, ErrCodeExists) {
			break
		}
	}
	return created, err
}

func (svc *Service) GetClass(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClass(ctx, id)
}

func (svc *Service) QueryClasses(ctx context.Context, ownerID string) ([]Class, error) {
	return svc.repo.QueryClassesByOwner(ctx, ownerID)
}

func (svc *Service) Enroll(ctx context.Context, classID string, ns NewStudent) (Student, error) {
	if _, err := svc.repo.GetClass(ctx, classID); err != nil {
		return Student{}, err
	}
	now := time.Now().UTC()
	std := Student{
		ClassID:       classID,
		Name:          ns.Name,
		AvatarURL:     ns.AvatarURL,
		GuardianEmail: ns.GuardianEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) GetStudent(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudent(ctx, id)
}

func (svc *Service) QueryStudents(ctx context.Context, classID string) ([]Student, error) {
	return svc.repo.QueryStudentsByClass(ctx, classID)
}

func (svc *Service) UpdateStudent(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudent(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if err = us.Validate(std); err != nil {
		return Student{}, err
	}
	std.Name = us.Name
	std.AvatarURL = us.AvatarURL
	std.GuardianEmail = us.GuardianEmail
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) CreateBehavior(ctx context.Context, classID string, nb NewBehavior) (Behavior, error) {
	if _, err := svc.repo.GetClass(ctx, classID); err != nil {
		return Behavior{}, err
	}
	now := time.Now().UTC()
	bhv := Behavior{
		ClassID:   classID,
		Name:      nb.Name,
		Icon:      nb.Icon,
		Points:    nb.Points,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateBehavior(ctx, bhv)
}

func (svc *Service) QueryBehaviors(ctx context.Context, classID string) ([]Behavior, error) {
	return svc.repo.QueryBehaviorsByClass(ctx, classID)
}

func (svc *Service) UpdateBehavior(ctx context.Context, id string, ub UpdateBehavior) (Behavior, error) {
	bhv, err := svc.repo.GetBehavior(ctx, id)
	if err != nil {
		return Behavior{}, err
	}
	if err = ub.Validate(bhv); err != nil {
		return Behavior{}, err
	}

	if *ub.Points != bhv.Points {
		referenced, err := svc.repo.BehaviorReferenced(ctx, bhv.ID)
		if err != nil {
			return Behavior{}, err
		}
		if referenced {
			return Behavior{}, core.NewValidationError(
				ErrBehaviorInUse,
				core.FieldError{Field: "points", Error: ErrBehaviorInUse.Error()},
			)
		}
	}

	bhv.Name = ub.Name
	bhv.Icon = ub.Icon
	bhv.Points = *ub.Points
	bhv.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateBehavior(ctx, bhv)
}

// joinCodeAttempts bounds collision retries; with 16^6 codes one retry is
// already unlikely.
const joinCodeAttempts = 3

// newJoinCode derives a short, human-typeable class join code.
func newJoinCode() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(id[:6])
}
