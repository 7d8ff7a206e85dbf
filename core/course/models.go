package course

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/alfurqan/campusreg/core"
)

type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Duration    string    `json:"duration"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string `json:"name" validate:"notblank"`
	Duration    string `json:"duration" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Duration = core.CleanString(nc.Duration)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Name        null.String `json:"name" validate:"omitempty,notblank"`
	Duration    null.String `json:"duration" validate:"omitempty,notblank"`
	Description null.String `json:"description" validate:"omitempty,notblank"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	for _, fld := range []*null.String{&uc.Name, &uc.Duration, &uc.Description} {
		if fld.Valid {
			fld.String = core.CleanString(fld.String)
		}
	}
	return validate.Struct(uc)
}

func (uc UpdateCourse) IsEmpty() bool {
	return !uc.Name.Valid && !uc.Duration.Valid && !uc.Description.Valid
}

// Apply overwrites the provided fields of c.
func (uc UpdateCourse) Apply(c *Course) {
	if uc.Name.Valid {
		c.Name = uc.Name.String
	}
	if uc.Duration.Valid {
		c.Duration = uc.Duration.String
	}
	if uc.Description.Valid {
		c.Description = uc.Description.String
	}
}
