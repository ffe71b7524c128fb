package inmem

import (
	"context"
	"time"

	"github.com/engconnect/classtools/core/roster"
	"github.com/engconnect/classtools/core/seating"
)

type seatingRepository struct {
	db *DB
}

var _ seating.Repository = (*seatingRepository)(nil)

func NewSeatingRepository(db *DB) *seatingRepository {
	return &seatingRepository{db: db}
}

func (repo *seatingRepository) GetSeats(_ context.Context, classID string) ([]seating.Seat, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	seats := make([]seating.Seat, len(repo.db.seats[classID]))
	copy(seats, repo.db.seats[classID])
	return seats, nil
}

func (repo *seatingRepository) ReplaceSeats(_ context.Context, classID string, seats []seating.Seat) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	stored := make([]seating.Seat, len(seats))
	copy(stored, seats)
	repo.db.seats[classID] = stored
	return nil
}

func (repo *seatingRepository) GetGridConfig(_ context.Context, classID string) (seating.GridConfig, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if gc, ok := repo.db.grids[classID]; ok {
		return *gc, nil
	}
	return seating.GridConfig{}, roster.ErrNotFound
}

func (repo *seatingRepository) SaveGridConfig(_ context.Context, classID string, gc seating.GridConfig, _ time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.grids[classID] = &gc
	return nil
}
