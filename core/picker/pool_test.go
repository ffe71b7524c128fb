package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/engconnect/classtools/core/roster"
	"github.com/engconnect/classtools/core/seating"
)

func rosterFixture() []roster.Student {
	return []roster.Student{
		{ID: "s1", Name: "Amy"},
		{ID: "s2", Name: "Ben"},
		{ID: "s3", Name: "Cy"},
		{ID: "s4", Name: "Dee"},
	}
}

func Test_Pool_explicitSelection(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("s3")
	sel.Toggle("s1")

	got := Pool(sel, rosterFixture(), nil)
	// roster order, not toggle order
	assert.Equal(t, []Candidate{{ID: "s1", Name: "Amy"}, {ID: "s3", Name: "Cy"}}, got)
}

func Test_Pool_fallbackToSeated(t *testing.T) {
	var seats seating.Layout
	seats = seats.Assign("s2", 0, 0)
	seats = seats.Assign("s4", 1, 1)

	tests := []struct {
		name string
		sel  *Selection
	}{
		{name: "empty selection", sel: NewSelection()},
		{name: "nil selection", sel: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pool(tt.sel, rosterFixture(), seats)
			assert.Equal(t, []Candidate{{ID: "s2", Name: "Ben"}, {ID: "s4", Name: "Dee"}}, got)
		})
	}
}

func Test_Pool_unseatedExcludedFromFallback(t *testing.T) {
	// nobody seated, nobody selected: the pool is empty, never the full roster
	got := Pool(NewSelection(), rosterFixture(), nil)
	assert.Empty(t, got)
}
