package campusadmin

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/alfurqan/campusreg/core"
)

// CampusAdmin is the credential granting management rights over exactly one campus.
type CampusAdmin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CampusID     string    `json:"campus_id"`
	CreatedAt    time.Time `json:"created_at"` // UTC
}

func (a *CampusAdmin) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *CampusAdmin) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

// NewCampusAdmin contains information needed to assign an admin to a campus.
type NewCampusAdmin struct {
	CampusID string `json:"campus_id" validate:"notblank"`
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

func (na *NewCampusAdmin) Validate(validate *validator.Validate) error {
	na.CampusID = core.CleanString(na.CampusID)
	na.Email = core.CleanString(na.Email, true /* lower */)
	return validate.Struct(na)
}

// UpdateCampusAdmin defines what information may be provided to modify an existing CampusAdmin.
type UpdateCampusAdmin struct {
	CampusID null.String `json:"campus_id" validate:"omitempty,notblank"`
	Email    null.String `json:"email" validate:"omitempty,notblank"`
	Password null.String `json:"password" validate:"omitempty,notblank"`
}

func (ua *UpdateCampusAdmin) Validate(validate *validator.Validate) error {
	if ua.CampusID.Valid {
		ua.CampusID.String = core.CleanString(ua.CampusID.String)
	}
	if ua.Email.Valid {
		ua.Email.String = core.CleanString(ua.Email.String, true /* lower */)
	}
	return validate.Struct(ua)
}
