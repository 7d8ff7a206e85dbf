package campus

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/alfurqan/campusreg/core"
)

// Campus is a physical institution location, the top-level organizational unit.
type Campus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewCampus contains information needed to create a new Campus.
type NewCampus struct {
	Name     string `json:"name" validate:"notblank"`
	Location string `json:"location" validate:"notblank"`
}

func (nc *NewCampus) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Location = core.CleanString(nc.Location)
	return validate.Struct(nc)
}

// UpdateCampus defines what information may be provided to modify an existing Campus.
// Only the provided fields are written.
type UpdateCampus struct {
	Name     null.String `json:"name" validate:"omitempty,notblank"`
	Location null.String `json:"location" validate:"omitempty,notblank"`
}

func (uc *UpdateCampus) Validate(validate *validator.Validate) error {
	if uc.Name.Valid {
		uc.Name.String = core.CleanString(uc.Name.String)
	}
	if uc.Location.Valid {
		uc.Location.String = core.CleanString(uc.Location.String)
	}
	return validate.Struct(uc)
}

func (uc UpdateCampus) IsEmpty() bool {
	return !uc.Name.Valid && !uc.Location.Valid
}

// Apply overwrites the provided fields of c.
func (uc UpdateCampus) Apply(c *Campus) {
	if uc.Name.Valid {
		c.Name = uc.Name.String
	}
	if uc.Location.Valid {
		c.Location = uc.Location.String
	}
}
