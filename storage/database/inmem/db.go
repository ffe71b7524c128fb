// Package inmem provides map-backed repositories with the exact contracts of
// the Postgres ones. Used by tests and local development.
package inmem

import (
	"sync"

	"github.com/engconnect/classtools/core/award"
	"github.com/engconnect/classtools/core/roster"
	"github.com/engconnect/classtools/core/seating"
)

type (
	DB struct {
		mutex sync.RWMutex

		classes   map[string]*roster.Class
		students  map[string]*roster.Student
		behaviors map[string]*roster.Behavior
		seats     map[string][]seating.Seat // classID -> layout
		grids     map[string]*seating.GridConfig
		awards    []award.Award
	}
)

func Open() (*DB, error) {
	db := &DB{
		classes:   make(map[string]*roster.Class),
		students:  make(map[string]*roster.Student),
		behaviors: make(map[string]*roster.Behavior),
		seats:     make(map[string][]seating.Seat),
		grids:     make(map[string]*seating.GridConfig),
	}
	return db, nil
}
