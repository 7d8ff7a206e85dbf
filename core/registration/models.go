package registration

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/alfurqan/campusreg/core"
)

// Registration is a student enrollment record.
type Registration struct {
	ID             string    `json:"id"`
	RegistrationNo string    `json:"registration_no"`
	Name           string    `json:"name"`
	FatherName     string    `json:"father_name"`
	Cnic           string    `json:"cnic"`
	Address        string    `json:"address"`
	Mobile         string    `json:"mobile"`
	CourseID       string    `json:"course_id"`
	Course         string    `json:"course"` // course name
	CampusID       string    `json:"campus_id"`
	Campus         string    `json:"campus"` // campus name at registration time
	Age            string    `json:"age"`
	Gender         string    `json:"gender"`
	City           string    `json:"city"`
	Province       string    `json:"province"`
	CreatedAt      time.Time `json:"created_at"` // UTC
}

// NewRegistration is the public registration form.
type NewRegistration struct {
	Name       string `json:"name" validate:"notblank"`
	FatherName string `json:"father_name" validate:"notblank"`
	Cnic       string `json:"cnic" validate:"notblank"`
	Address    string `json:"address" validate:"notblank"`
	Mobile     string `json:"mobile" validate:"notblank"`
	CourseID   string `json:"course_id" validate:"notblank"`
	CampusID   string `json:"campus_id" validate:"notblank"`
	Age        string `json:"age" validate:"notblank"`
	Gender     string `json:"gender" validate:"notblank"`
	City       string `json:"city" validate:"notblank"`
	Province   string `json:"province" validate:"notblank"`
}

func (nr *NewRegistration) Validate(validate *validator.Validate) error {
	for _, fld := range []*string{
		&nr.Name, &nr.FatherName, &nr.Cnic, &nr.Address, &nr.Mobile,
		&nr.CourseID, &nr.CampusID, &nr.Age, &nr.Gender, &nr.City, &nr.Province,
	} {
		*fld = core.CleanString(*fld)
	}
	return validate.Struct(nr)
}

// UpdateRegistration defines what information may be provided to modify an existing
// Registration. The registration number, the campus and the creation time never change.
type UpdateRegistration struct {
	Name       null.String `json:"name" validate:"omitempty,notblank"`
	FatherName null.String `json:"father_name" validate:"omitempty,notblank"`
	Cnic       null.String `json:"cnic" validate:"omitempty,notblank"`
	Address    null.String `json:"address" validate:"omitempty,notblank"`
	Mobile     null.String `json:"mobile" validate:"omitempty,notblank"`
	CourseID   null.String `json:"course_id" validate:"omitempty,notblank"`
	Age        null.String `json:"age" validate:"omitempty,notblank"`
	Gender     null.String `json:"gender" validate:"omitempty,notblank"`
	City       null.String `json:"city" validate:"omitempty,notblank"`
	Province   null.String `json:"province" validate:"omitempty,notblank"`

	// Course is resolved from CourseID by the service.
	Course null.String `json:"-"`
}

func (ur *UpdateRegistration) fields() []*null.String {
	return []*null.String{
		&ur.Name, &ur.FatherName, &ur.Cnic, &ur.Address, &ur.Mobile,
		&ur.CourseID, &ur.Age, &ur.Gender, &ur.City, &ur.Province,
	}
}

func (ur *UpdateRegistration) Validate(validate *validator.Validate) error {
	for _, fld := range ur.fields() {
		if fld.Valid {
			fld.String = core.CleanString(fld.String)
		}
	}
	return validate.Struct(ur)
}

func (ur UpdateRegistration) IsEmpty() bool {
	for _, fld := range ur.fields() {
		if fld.Valid {
			return false
		}
	}
	return !ur.Course.Valid
}

// Apply overwrites the provided fields of r.
func (ur UpdateRegistration) Apply(r *Registration) {
	set := func(dst *string, src null.String) {
		if src.Valid {
			*dst = src.String
		}
	}
	set(&r.Name, ur.Name)
	set(&r.FatherName, ur.FatherName)
	set(&r.Cnic, ur.Cnic)
	set(&r.Address, ur.Address)
	set(&r.Mobile, ur.Mobile)
	set(&r.CourseID, ur.CourseID)
	set(&r.Course, ur.Course)
	set(&r.Age, ur.Age)
	set(&r.Gender, ur.Gender)
	set(&r.City, ur.City)
	set(&r.Province, ur.Province)
}

// QueryFilter is the coarse, storage-side selection.
type QueryFilter struct {
	CampusID string
}
