package seating

import (
	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/roster"
)

// Seat binds one student to one grid cell.
type Seat struct {
	StudentID string `json:"student_id" validate:"required"`
	Row       int    `json:"row" validate:"gte=0"`
	Col       int    `json:"col" validate:"gte=0"`
}

// GridConfig holds a class's seating-chart display preferences.
// Persisted per class so the layout travels with the class rather than the
// teacher's browser.
type GridConfig struct {
	Rows         int     `json:"rows" validate:"required,gt=0"`
	Cols         int     `json:"cols" validate:"required,gt=0"`
	PairMode     bool    `json:"pair_mode"`
	ViewFromBack bool    `json:"view_from_back"`
	ZoomLevel    float64 `json:"zoom_level" validate:"gte=0"`
}

func (gc *GridConfig) Validate() error {
	if gc.ZoomLevel == 0 {
		gc.ZoomLevel = defaultZoom
	}
	return core.Validate.Struct(gc)
}

// DefaultGridConfig mirrors a fresh classroom: 4 rows of 6 single desks.
func DefaultGridConfig() GridConfig {
	return GridConfig{Rows: 4, Cols: 6, ZoomLevel: defaultZoom}
}

// Contains reports whether the cell at (row, col) lies inside the grid.
func (gc GridConfig) Contains(row, col int) bool {
	return row >= 0 && row < gc.Rows && col >= 0 && col < gc.Cols
}

// RowOrder returns row indices in render order: front-of-room first, or
// reversed when the teacher views the chart from the back of the room.
func (gc GridConfig) RowOrder() []int {
	rows := make([]int, gc.Rows)
	for i := range rows {
		if gc.ViewFromBack {
			rows[i] = gc.Rows - 1 - i
		} else {
			rows[i] = i
		}
	}
	return rows
}

// ClassTools is the one-call snapshot the live-class screen renders from.
type ClassTools struct {
	Behaviors []roster.Behavior `json:"behaviors"`
	Seats     []Seat            `json:"seats"`
	Students  []roster.Student  `json:"students"`
	Grid      GridConfig        `json:"grid"`
}
