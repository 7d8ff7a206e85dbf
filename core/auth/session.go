package auth

import "github.com/alfurqan/campusreg/core"

// Roles
const (
	RoleSuperAdmin  = "super_admin"
	RoleCampusAdmin = "campus_admin"
)

// Session is the authenticated identity, created on login and carried by the access token.
type Session struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	AdminID  string `json:"admin_id,omitempty"`
	CampusID string `json:"campus_id,omitempty"`
}

func (s Session) IsSuperAdmin() bool {
	return s.Role == RoleSuperAdmin
}

// CanAccessCampus reports whether s may manage the students of campusID.
func (s Session) CanAccessCampus(campusID string) bool {
	if s.IsSuperAdmin() {
		return true
	}
	return s.Role == RoleCampusAdmin && s.CampusID != "" && s.CampusID == campusID
}

// ScopeCampus returns the campus a list query is restricted to.
// A campus admin is always pinned to their own campus.
func (s Session) ScopeCampus(requested string) (string, error) {
	if s.IsSuperAdmin() {
		return requested, nil
	}
	if s.Role != RoleCampusAdmin || s.CampusID == "" {
		return "", ErrPermissionDenied
	}
	return s.CampusID, nil
}

func (s Session) Identity() core.Identity {
	id := s.AdminID
	if id == "" {
		id = s.Role
	}
	return core.Identity{ID: id, Email: s.Email, Role: s.Role}
}
