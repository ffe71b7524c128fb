package roster

import (
	"time"

	"github.com/engconnect/classtools/core"
)

// Class is a teacher-owned classroom. Code is the short join code students use.
type Class struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type Student struct {
	ID            string    `json:"id"`
	ClassID       string    `json:"class_id"`
	Name          string    `json:"name"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	GuardianEmail string    `json:"guardian_email,omitempty"`
	TotalPoints   int       `json:"total_points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Behavior is a named, point-valued classroom event definition.
// Points > 0 is a reward; zero or negative is a penalty.
type Behavior struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b Behavior) IsReward() bool { return b.Points > 0 }

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name string `json:"name" validate:"required"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name          string `json:"name" validate:"required"`
	AvatarURL     string `json:"avatar_url" validate:"omitempty,url"`
	GuardianEmail string `json:"guardian_email" validate:"omitempty,email"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.GuardianEmail = core.CleanString(ns.GuardianEmail, true /* lower */)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Empty fields keep their current values.
type UpdateStudent struct {
	Name          string `json:"name"`
	AvatarURL     string `json:"avatar_url" validate:"omitempty,url"`
	GuardianEmail string `json:"guardian_email" validate:"omitempty,email"`
}

func (us *UpdateStudent) Validate(orig Student) error {
	name := core.CleanString(us.Name)
	if name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}

	email := core.CleanString(us.GuardianEmail, true /* lower */)
	if email != "" {
		us.GuardianEmail = email
	} else {
		us.GuardianEmail = orig.GuardianEmail
	}

	if us.AvatarURL == "" {
		us.AvatarURL = orig.AvatarURL
	}
	return core.Validate.Struct(us)
}

// NewBehavior contains information needed to create a new Behavior.
type NewBehavior struct {
	Name   string `json:"name" validate:"required"`
	Icon   string `json:"icon"`
	Points int    `json:"points"`
}

func (nb *NewBehavior) Validate() error {
	nb.Name = core.CleanString(nb.Name)
	return core.Validate.Struct(nb)
}

// UpdateBehavior defines what information may be provided to modify an existing
// Behavior. Point values are frozen once the behavior has been referenced by an
// award; the service enforces that.
type UpdateBehavior struct {
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Points *int   `json:"points"`
}

func (ub *UpdateBehavior) Validate(orig Behavior) error {
	name := core.CleanString(ub.Name)
	if name != "" {
		ub.Name = name
	} else {
		ub.Name = orig.Name
	}
	if ub.Icon == "" {
		ub.Icon = orig.Icon
	}
	if ub.Points == nil {
		pts := orig.Points
		ub.Points = &pts
	}
	return core.Validate.Struct(ub)
}
