package seating

import (
	"context"
	"time"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/roster"
)

type (
	Repository interface {
		GetSeats(ctx context.Context, classID string) ([]Seat, error)
		// ReplaceSeats swaps the class's whole seat list atomically.
		ReplaceSeats(ctx context.Context, classID string, seats []Seat) error
		// GetGridConfig returns roster.ErrNotFound when the class has never saved one.
		GetGridConfig(ctx context.Context, classID string) (GridConfig, error)
		SaveGridConfig(ctx context.Context, classID string, gc GridConfig, savedAt time.Time) error
	}

	Service struct {
		repo   Repository
		roster roster.Repository
	}
)

func NewService(repo Repository, rosterRepo roster.Repository) *Service {
	return &Service{repo: repo, roster: rosterRepo}
}

// Tools assembles the live-class snapshot: behaviors, seats, students with
// current totals and the class's grid configuration.
func (svc *Service) Tools(ctx context.Context, classID string) (ClassTools, error) {
	if _, err := svc.roster.GetClass(ctx, classID); err != nil {
		return ClassTools{}, err
	}
	behaviors, err := svc.roster.QueryBehaviorsByClass(ctx, classID)
	if err != nil {
		return ClassTools{}, err
	}
	students, err := svc.roster.QueryStudentsByClass(ctx, classID)
	if err != nil {
		return ClassTools{}, err
	}
	seats, err := svc.repo.GetSeats(ctx, classID)
	if err != nil {
		return ClassTools{}, err
	}
	grid, err := svc.Config(ctx, classID)
	if err != nil {
		return ClassTools{}, err
	}
	return ClassTools{
		Behaviors: behaviors,
		Seats:     seats,
		Students:  students,
		Grid:      grid,
	}, nil
}

// SaveLayout validates and persists a class's full seat list, replacing
// whatever was stored. Last write wins between concurrent editors.
func (svc *Service) SaveLayout(ctx context.Context, classID string, seats Layout) error {
	if err := seats.Validate(); err != nil {
		return err
	}

	// every seat must reference a student of this class
	students, err := svc.roster.QueryStudentsByClass(ctx, classID)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(students))
	for _, s := range students {
		known[s.ID] = struct{}{}
	}
	for _, s := range seats {
		if _, ok := known[s.StudentID]; !ok {
			return core.NewValidationError(roster.ErrClassMismatch, core.FieldError{
				Field: "seats", Error: "student " + s.StudentID + " is not in this class",
			})
		}
	}

	return svc.repo.ReplaceSeats(ctx, classID, seats)
}

func (svc *Service) Layout(ctx context.Context, classID string) (Layout, error) {
	seats, err := svc.repo.GetSeats(ctx, classID)
	if err != nil {
		return nil, err
	}
	return Layout(seats), nil
}

// Config returns the class's grid configuration, falling back to the default
// chart when none has been saved yet.
func (svc *Service) Config(ctx context.Context, classID string) (GridConfig, error) {
	gc, err := svc.repo.GetGridConfig(ctx, classID)
	if err == roster.ErrNotFound {
		return DefaultGridConfig(), nil
	}
	if err != nil {
		return GridConfig{}, err
	}
	return gc, nil
}

func (svc *Service) SaveConfig(ctx context.Context, classID string, gc GridConfig) (GridConfig, error) {
	if err := gc.Validate(); err != nil {
		return GridConfig{}, err
	}
	if _, err := svc.roster.GetClass(ctx, classID); err != nil {
		return GridConfig{}, err
	}
	if err := svc.repo.SaveGridConfig(ctx, classID, gc, time.Now().UTC()); err != nil {
		return GridConfig{}, err
	}
	return gc, nil
}
