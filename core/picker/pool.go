package picker

import (
	"github.com/engconnect/classtools/core/roster"
	"github.com/engconnect/classtools/core/seating"
)

// Candidate is a game participant. The engine never needs more than an
// identity and a display name.
type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Pool resolves the candidate pool for a game: the explicit selection when one
// exists, otherwise every seated student. Unseated students have no visual
// home on the chart to animate from, so the fallback excludes them. Order
// follows the roster so draws are reproducible under a seeded RNG.
func Pool(sel *Selection, students []roster.Student, seats seating.Layout) []Candidate {
	var keep func(roster.Student) bool
	if sel != nil && sel.Len() > 0 {
		keep = func(s roster.Student) bool { return sel.Has(s.ID) }
	} else {
		seated := make(map[string]struct{}, len(seats))
		for _, seat := range seats {
			seated[seat.StudentID] = struct{}{}
		}
		keep = func(s roster.Student) bool {
			_, ok := seated[s.ID]
			return ok
		}
	}

	out := make([]Candidate, 0, len(students))
	for _, s := range students {
		if keep(s) {
			out = append(out, Candidate{ID: s.ID, Name: s.Name})
		}
	}
	return out
}
