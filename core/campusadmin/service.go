package campusadmin

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/campus"
)

var (
	ErrNotFound       = core.NewNotFoundError("campus admin")
	ErrCampusAssigned = errors.New("an admin is already assigned to this campus")
	ErrEmailTaken     = errors.New("an admin with this email already exists")
)

const welcomeTemplate = "campus_admin_welcome"

type (
	// Repository persists campus admins. CreateCampusAdmin and UpdateCampusAdmin must
	// enforce both uniqueness rules themselves and report violations as ErrCampusAssigned
	// or ErrEmailTaken.
	Repository interface {
		// CheckUniqueness reports the first rule the given pair would break.
		// The admin with ID excludeID (if any) is ignored.
		CheckUniqueness(ctx context.Context, campusID, email, excludeID string) error
		CreateCampusAdmin(ctx context.Context, adm CampusAdmin) (CampusAdmin, error)
		QueryCampusAdmins(ctx context.Context) ([]CampusAdmin, error)
		GetCampusAdmin(ctx context.Context, id string) (CampusAdmin, error)
		GetCampusAdminByEmail(ctx context.Context, email string) (CampusAdmin, error)
		UpdateCampusAdmin(ctx context.Context, adm CampusAdmin) (CampusAdmin, error)
		DeleteCampusAdmin(ctx context.Context, id string) error
	}

	// CampusFinder resolves campuses; satisfied by *campus.Service.
	CampusFinder interface {
		GetByID(ctx context.Context, id string) (campus.Campus, error)
	}

	Service struct {
		repo     Repository
		campuses CampusFinder
		mailSvc  core.EmailService
	}
)

func NewService(repo Repository, campuses CampusFinder, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, campuses: campuses, mailSvc: mailSvc}
}

// asFieldError turns a uniqueness violation into a validation error on the offending field.
func asFieldError(err error) error {
	var field string
	switch errors.Cause(err) {
	case ErrCampusAssigned:
		field = "campus_id"
	case ErrEmailTaken:
		field = "email"
	default:
		return err
	}
	cause := errors.Cause(err)
	return core.NewValidationError(cause, core.FieldError{Field: field, Error: cause.Error()})
}

func (svc *Service) getCampus(ctx context.Context, id string) (campus.Campus, error) {
	cmp, err := svc.campuses.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFound(err) {
			return campus.Campus{}, core.NewValidationError(err, core.FieldError{Field: "campus_id", Error: err.Error()})
		}
		return campus.Campus{}, err
	}
	return cmp, nil
}

// Assign creates the admin of a campus. A campus has at most one admin and an email
// identifies at most one admin.
func (svc *Service) Assign(ctx context.Context, na NewCampusAdmin) (CampusAdmin, error) {
	cmp, err := svc.getCampus(ctx, na.CampusID)
	if err != nil {
		return CampusAdmin{}, err
	}
	if err := svc.repo.CheckUniqueness(ctx, na.CampusID, na.Email, ""); err != nil {
		return CampusAdmin{}, asFieldError(err)
	}

	adm := CampusAdmin{
		Email:    na.Email,
		CampusID: na.CampusID,
	}
	if err := adm.SetPassword(na.Password); err != nil {
		return CampusAdmin{}, errors.Wrap(err, "hashing password")
	}
	adm, err = svc.repo.CreateCampusAdmin(ctx, adm)
	if err != nil {
		return CampusAdmin{}, asFieldError(err)
	}

	svc.sendWelcome(adm, cmp)
	return adm, nil
}

func (svc *Service) sendWelcome(adm CampusAdmin, cmp campus.Campus) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: adm.Email}},
		Subject:      fmt.Sprintf("You manage the %s campus", cmp.Name),
		TemplateName: welcomeTemplate,
		TemplateData: map[string]string{"CampusName": cmp.Name, "Email": adm.Email},
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]CampusAdmin, error) {
	return svc.repo.QueryCampusAdmins(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (CampusAdmin, error) {
	return svc.repo.GetCampusAdmin(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (CampusAdmin, error) {
	return svc.repo.GetCampusAdminByEmail(ctx, core.CleanString(email, true /* lower */))
}

// Update overwrites the provided fields under the same uniqueness rules as Assign.
func (svc *Service) Update(ctx context.Context, id string, ua UpdateCampusAdmin) (CampusAdmin, error) {
	adm, err := svc.repo.GetCampusAdmin(ctx, id)
	if err != nil {
		return CampusAdmin{}, err
	}

	if ua.CampusID.Valid && ua.CampusID.String != adm.CampusID {
		if _, err := svc.getCampus(ctx, ua.CampusID.String); err != nil {
			return CampusAdmin{}, err
		}
		adm.CampusID = ua.CampusID.String
	}
	if ua.Email.Valid {
		adm.Email = ua.Email.String
	}
	if err := svc.repo.CheckUniqueness(ctx, adm.CampusID, adm.Email, adm.ID); err != nil {
		return CampusAdmin{}, asFieldError(err)
	}
	if ua.Password.Valid {
		if err := adm.SetPassword(ua.Password.String); err != nil {
			return CampusAdmin{}, errors.Wrap(err, "hashing password")
		}
	}

	adm, err = svc.repo.UpdateCampusAdmin(ctx, adm)
	if err != nil {
		return CampusAdmin{}, asFieldError(err)
	}
	return adm, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCampusAdmin(ctx, id)
}

// ResetPassword sets a new password for the admin identified by email.
func (svc *Service) ResetPassword(ctx context.Context, email, pwd string) error {
	adm, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := adm.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	_, err = svc.repo.UpdateCampusAdmin(ctx, adm)
	return err
}
