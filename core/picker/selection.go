package picker

// Selection is the ephemeral set of students chosen for a bulk action.
// UI-session scoped, never persisted. When Pinned (multi-select mode stays
// on), a successful award keeps the selection; otherwise it is cleared.
type Selection struct {
	Pinned bool

	ids   map[string]struct{}
	order []string
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds the student if absent, removes them if present.
// Toggling twice restores the prior state.
func (s *Selection) Toggle(studentID string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[studentID]; ok {
		delete(s.ids, studentID)
		for i, id := range s.order {
			if id == studentID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.ids[studentID] = struct{}{}
	s.order = append(s.order, studentID)
}

// Pick replaces the selection with a single student (plain tap outside
// multi-select mode).
func (s *Selection) Pick(studentID string) {
	s.Clear()
	s.Toggle(studentID)
}

func (s *Selection) Has(studentID string) bool {
	_, ok := s.ids[studentID]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected student ids in toggle order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
	s.order = nil
}

// ClearAfterAward resets the selection after a successful point award unless
// multi-select mode is pinned on.
func (s *Selection) ClearAfterAward() {
	if !s.Pinned {
		s.Clear()
	}
}
