package seating

import (
	"fmt"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/roster"
)

// Layout is a class's full seat list. The zero value is an empty chart.
//
// Invariants (maintained by Assign, checked by Validate on untrusted input):
// a student occupies at most one cell, and a cell holds at most one student.
type Layout []Seat

// Assign seats studentID at (row, col). Any existing seat of that student and
// any existing occupant of the cell are removed first: last write wins, the
// teacher's intent is authoritative.
func (l Layout) Assign(studentID string, row, col int) Layout {
	next := make(Layout, 0, len(l)+1)
	for _, s := range l {
		if s.StudentID == studentID {
			continue
		}
		if s.Row == row && s.Col == col {
			continue
		}
		next = append(next, s)
	}
	return append(next, Seat{StudentID: studentID, Row: row, Col: col})
}

// Unassign removes the student's seat, if any. Calling it for an unseated
// student is a no-op.
func (l Layout) Unassign(studentID string) Layout {
	next := make(Layout, 0, len(l))
	for _, s := range l {
		if s.StudentID != studentID {
			next = append(next, s)
		}
	}
	return next
}

// SeatOf returns the student's seat.
func (l Layout) SeatOf(studentID string) (Seat, bool) {
	for _, s := range l {
		if s.StudentID == studentID {
			return s, true
		}
	}
	return Seat{}, false
}

// At returns the seat occupying (row, col).
func (l Layout) At(row, col int) (Seat, bool) {
	for _, s := range l {
		if s.Row == row && s.Col == col {
			return s, true
		}
	}
	return Seat{}, false
}

// Unassigned returns the students without a seat, in roster order. Feeds the
// "students to place" panel while editing the chart.
func (l Layout) Unassigned(students []roster.Student) []roster.Student {
	seated := make(map[string]struct{}, len(l))
	for _, s := range l {
		seated[s.StudentID] = struct{}{}
	}
	out := make([]roster.Student, 0, len(students))
	for _, std := range students {
		if _, ok := seated[std.ID]; !ok {
			out = append(out, std)
		}
	}
	return out
}

// Within returns the seats that fall inside the grid. Seats left out of bounds
// by a shrink are retained in the layout (a later re-expansion restores them)
// but are not rendered and do not count as "seated" for the picker.
func (l Layout) Within(gc GridConfig) Layout {
	out := make(Layout, 0, len(l))
	for _, s := range l {
		if gc.Contains(s.Row, s.Col) {
			out = append(out, s)
		}
	}
	return out
}

// Orphans returns the seats stranded outside the grid after a shrink.
func (l Layout) Orphans(gc GridConfig) Layout {
	out := make(Layout, 0)
	for _, s := range l {
		if !gc.Contains(s.Row, s.Col) {
			out = append(out, s)
		}
	}
	return out
}

// Validate rejects layouts breaking the occupancy invariants. Used on seat
// lists arriving over the wire before they replace the stored chart.
func (l Layout) Validate() error {
	students := make(map[string]struct{}, len(l))
	cells := make(map[[2]int]struct{}, len(l))
	for _, s := range l {
		if s.StudentID == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "seats", Error: "seat without a student"})
		}
		if s.Row < 0 || s.Col < 0 {
			return core.NewValidationError(nil, core.FieldError{Field: "seats", Error: "negative seat coordinates"})
		}
		if _, dup := students[s.StudentID]; dup {
			return core.NewValidationError(nil, core.FieldError{
				Field: "seats", Error: fmt.Sprintf("student %s seated twice", s.StudentID),
			})
		}
		students[s.StudentID] = struct{}{}

		cell := [2]int{s.Row, s.Col}
		if _, dup := cells[cell]; dup {
			return core.NewValidationError(nil, core.FieldError{
				Field: "seats", Error: fmt.Sprintf("cell (%d,%d) occupied twice", s.Row, s.Col),
			})
		}
		cells[cell] = struct{}{}
	}
	return nil
}
