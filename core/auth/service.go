package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/campusadmin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("you do not have permission to perform this action")
)

type (
	// RevocationStore remembers the IDs of logged-out tokens until they expire.
	RevocationStore interface {
		Revoke(ctx context.Context, tokenID string, until time.Time) error
		IsRevoked(ctx context.Context, tokenID string) (bool, error)
	}

	// AdminFinder resolves campus admins; satisfied by *campusadmin.Service.
	AdminFinder interface {
		GetByEmail(ctx context.Context, email string) (campusadmin.CampusAdmin, error)
	}

	Service struct {
		superAdmin  core.SuperAdminConfig
		admins      AdminFinder
		revocations RevocationStore
	}
)

func NewService(conf *core.Config, admins AdminFinder, revocations RevocationStore) *Service {
	return &Service{superAdmin: conf.SuperAdmin, admins: admins, revocations: revocations}
}

func equalConstantTime(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (svc *Service) isSuperAdmin(email, pwd string) bool {
	if svc.superAdmin.Password == "" {
		return false // disabled
	}
	emailOK := equalConstantTime(email, svc.superAdmin.Email)
	pwdOK := equalConstantTime(pwd, svc.superAdmin.Password)
	return emailOK && pwdOK
}

// Login resolves the role of a credential pair. Unknown emails and wrong passwords
// fail the same way.
func (svc *Service) Login(ctx context.Context, email, pwd string) (Session, error) {
	email = core.CleanString(email, true /* lower */)
	if email == "" || pwd == "" {
		return Session{}, ErrInvalidCredentials
	}

	if svc.isSuperAdmin(email, pwd) {
		return Session{Role: RoleSuperAdmin, Email: email}, nil
	}

	adm, err := svc.admins.GetByEmail(ctx, email)
	if err != nil {
		if core.IsNotFound(err) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, errors.Wrap(err, "finding campus admin by email")
	}
	if err := adm.CheckPassword(pwd); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return Session{
		Role:     RoleCampusAdmin,
		Email:    adm.Email,
		AdminID:  adm.ID,
		CampusID: adm.CampusID,
	}, nil
}

// Logout revokes the token identified by tokenID until it would have expired anyway.
func (svc *Service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	return svc.revocations.Revoke(ctx, tokenID, expiresAt)
}

func (svc *Service) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return svc.revocations.IsRevoked(ctx, tokenID)
}
