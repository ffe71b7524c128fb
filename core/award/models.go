package award

import (
	"time"

	"github.com/engconnect/classtools/core"
)

// ManualBehaviorID tags quick adjustments not tied to a named behavior.
const ManualBehaviorID = "manual"

// Award is one recorded point event. A batch award to several students is
// persisted as one Award per student, written in a single transaction.
type Award struct {
	ID         string    `json:"id"`
	ClassID    string    `json:"class_id"`
	StudentID  string    `json:"student_id"`
	BehaviorID string    `json:"behavior_id"` // "manual" for quick adjustments
	Points     int       `json:"points"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"` // UTC
}

func (a Award) IsManual() bool { return a.BehaviorID == ManualBehaviorID }

// Request is a batch point award: the same delta and behavior applied to every
// target as one semantic action.
type Request struct {
	TargetIDs  []string `json:"target_ids" validate:"required,min=1,dive,required"`
	BehaviorID string   `json:"behavior_id" validate:"required"`
	// Points is only read for manual awards; named behaviors are authoritative
	// for their own point value.
	Points int `json:"points"`
}

func (r *Request) Validate() error {
	if err := core.Validate.Struct(r); err != nil {
		return err
	}
	if r.BehaviorID == ManualBehaviorID && r.Points == 0 {
		return core.NewValidationError(nil, core.FieldError{
			Field: "points", Error: "manual adjustments need a non-zero point value",
		})
	}
	return nil
}

// QuickAdjust is the ad-hoc ± points form. The magnitude is a positive
// integer; the sign comes from the chosen action, never from the magnitude.
type QuickAdjust struct {
	TargetIDs []string `json:"target_ids" validate:"required,min=1,dive,required"`
	Magnitude int      `json:"magnitude" validate:"required,gt=0"`
	Penalty   bool     `json:"penalty"`
}

func (q *QuickAdjust) Validate() error { return core.Validate.Struct(q) }

// Request converts the quick adjustment into a manual award request.
func (q QuickAdjust) Request() Request {
	pts := q.Magnitude
	if q.Penalty {
		pts = -pts
	}
	return Request{TargetIDs: q.TargetIDs, BehaviorID: ManualBehaviorID, Points: pts}
}

// Filter narrows award history queries. Zero fields are ignored.
type Filter struct {
	ClassID    string    `query:"-"`
	StudentID  string    `query:"student_id"`
	BehaviorID string    `query:"behavior_id"`
	From       time.Time `query:"from"`
	To         time.Time `query:"to"`
	Limit      int       `query:"limit"`

	// Orderings beyond the sortable columns are ignored by the repositories.
	// Empty means newest first.
	Orderings []core.DBOrdering `query:"-"`
}
