package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/engconnect/classtools/core"
	"github.com/engconnect/classtools/core/roster"
)

func checkInvariants(t *testing.T, l Layout) {
	t.Helper()
	students := make(map[string]int)
	cells := make(map[[2]int]int)
	for _, s := range l {
		students[s.StudentID]++
		cells[[2]int{s.Row, s.Col}]++
	}
	for id, n := range students {
		if n > 1 {
			t.Errorf("student %s holds %d seats", id, n)
		}
	}
	for cell, n := range cells {
		if n > 1 {
			t.Errorf("cell %v holds %d students", cell, n)
		}
	}
}

func Test_Layout_Assign(t *testing.T) {
	var l Layout

	// arbitrary sequence of assignments keeps the invariants
	seq := []struct {
		id       string
		row, col int
	}{
		{"s1", 0, 0},
		{"s2", 0, 1},
		{"s3", 1, 0},
		{"s1", 2, 2}, // move s1
		{"s2", 2, 2}, // bump s1 off (2,2)
		{"s4", 0, 0},
		{"s4", 0, 0}, // same spot again
	}
	for _, step := range seq {
		l = l.Assign(step.id, step.row, step.col)
		checkInvariants(t, l)
	}

	if seat, ok := l.SeatOf("s2"); !ok || seat.Row != 2 || seat.Col != 2 {
		t.Errorf("SeatOf(s2) = %v, %v; want (2,2)", seat, ok)
	}
	// s1 was bumped; it no longer has a seat
	if _, ok := l.SeatOf("s1"); ok {
		t.Error("s1 still seated after being bumped")
	}
}

func Test_Layout_Assign_lastWriteWins(t *testing.T) {
	// two students dropped on the same cell: the later drop is authoritative
	var l Layout
	l = l.Assign("s1", 0, 0)
	l = l.Assign("s2", 0, 0)
	checkInvariants(t, l)

	seat, ok := l.At(0, 0)
	if !ok || seat.StudentID != "s2" {
		t.Errorf("At(0,0) = %v, %v; want s2", seat, ok)
	}
	if _, ok = l.SeatOf("s1"); ok {
		t.Error("s1 should have been displaced")
	}
}

func Test_Layout_Unassign(t *testing.T) {
	var l Layout
	l = l.Assign("s1", 0, 0)
	l = l.Assign("s2", 1, 1)

	l = l.Unassign("s1")
	if _, ok := l.SeatOf("s1"); ok {
		t.Error("s1 still seated after Unassign")
	}
	if len(l) != 1 {
		t.Errorf("len = %d; want 1", len(l))
	}

	// repeating is a no-op
	l2 := l.Unassign("s1")
	assert.Equal(t, l, l2)

	// unknown student is a no-op too
	l3 := l.Unassign("nope")
	assert.Equal(t, l, l3)
}

func Test_Layout_Unassigned(t *testing.T) {
	students := []roster.Student{
		{ID: "s1", Name: "Amy"},
		{ID: "s2", Name: "Ben"},
		{ID: "s3", Name: "Cy"},
	}
	var l Layout
	l = l.Assign("s2", 0, 0)

	got := l.Unassigned(students)
	if len(got) != 2 || got[0].ID != "s1" || got[1].ID != "s3" {
		t.Errorf("Unassigned() = %v; want s1, s3 in roster order", got)
	}
}

func Test_Layout_resizeRetention(t *testing.T) {
	var l Layout
	l = l.Assign("s1", 0, 0)
	l = l.Assign("s2", 3, 5)
	l = l.Assign("s3", 1, 2)

	shrunk := GridConfig{Rows: 2, Cols: 3}
	within := l.Within(shrunk)
	orphans := l.Orphans(shrunk)

	if len(within) != 2 {
		t.Fatalf("Within() kept %d seats; want 2", len(within))
	}
	if len(orphans) != 1 || orphans[0].StudentID != "s2" {
		t.Fatalf("Orphans() = %v; want s2 only", orphans)
	}

	// the orphan survives in the full layout; re-expanding restores it
	restored := GridConfig{Rows: 4, Cols: 6}
	if got := l.Within(restored); len(got) != 3 {
		t.Errorf("re-expanded Within() = %d seats; want all 3", len(got))
	}
}

func Test_Layout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{name: "empty ok", layout: Layout{}},
		{name: "ok", layout: Layout{{StudentID: "s1", Row: 0, Col: 0}, {StudentID: "s2", Row: 0, Col: 1}}},
		{name: "missing student", layout: Layout{{Row: 0, Col: 0}}, wantErr: true},
		{name: "negative coords", layout: Layout{{StudentID: "s1", Row: -1, Col: 0}}, wantErr: true},
		{name: "student seated twice", layout: Layout{{StudentID: "s1", Row: 0, Col: 0}, {StudentID: "s1", Row: 1, Col: 1}}, wantErr: true},
		{name: "cell occupied twice", layout: Layout{{StudentID: "s1", Row: 0, Col: 0}, {StudentID: "s2", Row: 0, Col: 0}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*core.ValidationError); !ok {
					t.Errorf("Validate() error type = %T; want *core.ValidationError", err)
				}
			}
		})
	}
}
