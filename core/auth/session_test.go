package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_CanAccessCampus(t *testing.T) {
	super := Session{Role: RoleSuperAdmin, Email: "super@test.pk"}
	admin := Session{Role: RoleCampusAdmin, Email: "main@test.pk", AdminID: "a1", CampusID: "c1"}
	unbound := Session{Role: RoleCampusAdmin, Email: "lost@test.pk", AdminID: "a2"}

	assert.True(t, super.CanAccessCampus("c1"))
	assert.True(t, super.CanAccessCampus(""))
	assert.True(t, admin.CanAccessCampus("c1"))
	assert.False(t, admin.CanAccessCampus("c2"))
	assert.False(t, admin.CanAccessCampus(""))
	assert.False(t, unbound.CanAccessCampus(""))
	assert.False(t, Session{}.CanAccessCampus("c1"))
}

func TestSession_ScopeCampus(t *testing.T) {
	tests := []struct {
		name      string
		sess      Session
		requested string
		want      string
		wantErr   error
	}{
		{name: "super admin, all", sess: Session{Role: RoleSuperAdmin}, want: ""},
		{name: "super admin, one", sess: Session{Role: RoleSuperAdmin}, requested: "c2", want: "c2"},
		{name: "campus admin pinned", sess: Session{Role: RoleCampusAdmin, CampusID: "c1"}, want: "c1"},
		{name: "campus admin asks other", sess: Session{Role: RoleCampusAdmin, CampusID: "c1"}, requested: "c2", want: "c1"},
		{name: "campus admin without campus", sess: Session{Role: RoleCampusAdmin}, wantErr: ErrPermissionDenied},
		{name: "no role", sess: Session{}, requested: "c1", wantErr: ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sess.ScopeCampus(tt.requested)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSession_Identity(t *testing.T) {
	assert.Equal(t, "super_admin", Session{Role: RoleSuperAdmin, Email: "s@test.pk"}.Identity().ID)
	assert.Equal(t, "a1", Session{Role: RoleCampusAdmin, AdminID: "a1"}.Identity().ID)
}
