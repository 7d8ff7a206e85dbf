package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/alfurqan/campusreg/apps/api/echo"
	"github.com/alfurqan/campusreg/core/auth"
	"github.com/alfurqan/campusreg/core/campusadmin"
	tu "github.com/alfurqan/campusreg/tests"
)

func Test_authApi_login(t *testing.T) {
	app := setup(t)

	cmp := tu.CreateCampus(t, app.Campus, "Main", "City A")
	adm := tu.CreateCampusAdmin(t, app.CampusAdmin, cmp.ID, "main@test.pk", "pwd")

	type creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	badCreds := marshallObj(t, httpErr{Error: "invalid credentials"})

	app.run(t, []httpTest{
		{
			name: "blank", method: http.MethodPost, path: "/v1/auth/login", body: marshallObj(t, creds{}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown email", method: http.MethodPost, path: "/v1/auth/login",
			body: marshallObj(t, creds{Email: "lol@test.pk", Password: "pwd"}), wantCode: http.StatusBadRequest, wantData: badCreds,
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/v1/auth/login",
			body: marshallObj(t, creds{Email: "main@test.pk", Password: "lol"}), wantCode: http.StatusBadRequest, wantData: badCreds,
		},
	})
	assert.Equal(t, float64(2), testutil.ToFloat64(app.Metrics.Logins.WithLabelValues("failed")))

	tests := []struct {
		name string
		body creds
		want auth.Session
	}{
		{
			name: "super admin", body: creds{Email: "SUPER@test.pk", Password: "super-secret"},
			want: auth.Session{Role: auth.RoleSuperAdmin, Email: "super@test.pk"},
		},
		{
			name: "campus admin", body: creds{Email: "main@test.pk", Password: "pwd"},
			want: auth.Session{Role: auth.RoleCampusAdmin, Email: "main@test.pk", AdminID: adm.ID, CampusID: cmp.ID},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(httpTest{method: http.MethodPost, path: "/v1/auth/login", body: marshallObj(t, tt.body)})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp LoginResponse
			decode(t, rec, &resp)
			assert.NotEmpty(t, resp.Token)
			assert.WithinDuration(t, time.Now().Add(app.Conf.Server.JWTExpirationDelta), resp.ExpiresAt, time.Minute)
			assert.Equal(t, tt.want, resp.Session)

			// the token opens the session endpoint
			rec = app.do(httpTest{path: "/v1/auth/session", token: resp.Token})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var sess auth.Session
			decode(t, rec, &sess)
			assert.Equal(t, tt.want, sess)
		})
	}
}

func Test_authApi_logout(t *testing.T) {
	app := setup(t)

	cmp := tu.CreateCampus(t, app.Campus, "Main", "City A")
	adm := tu.CreateCampusAdmin(t, app.CampusAdmin, cmp.ID, "main@test.pk", "pwd")
	token := campusAdminToken(t, app, adm)
	other := campusAdminToken(t, app, adm)

	app.run(t, []httpTest{
		{name: "auth required", method: http.MethodPost, path: "/v1/auth/logout", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "invalid token", path: "/v1/auth/session", token: "lol", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, httpErr{Error: "invalid or expired jwt"})},
		{name: "session before", path: "/v1/auth/session", token: token, wantData: marshallObj(t, auth.Session{Role: auth.RoleCampusAdmin, Email: adm.Email, AdminID: adm.ID, CampusID: cmp.ID})},
		{name: "logout", method: http.MethodPost, path: "/v1/auth/logout", token: token, wantData: marshallObj(t, SuccessResponse{Success: "logged out"})},
		{name: "session after", path: "/v1/auth/session", token: token, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, httpErr{Error: "token has been revoked"})},
		{name: "revoked token on other routes", path: "/v1/campuses", token: token, wantCode: http.StatusUnauthorized, wantData: marshallObj(t, httpErr{Error: "token has been revoked"})},
		{name: "other tokens still valid", path: "/v1/campuses", token: other, wantData: marshallList(t, cmp)},
	})
}

func Test_authApi_staleCampusAdminToken(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	main := tu.CreateCampus(t, app.Campus, "Main", "City A")
	north := tu.CreateCampus(t, app.Campus, "North", "City B")
	web := tu.CreateCourse(t, app.Course, "Web Dev")
	adm := tu.CreateCampusAdmin(t, app.CampusAdmin, main.ID, "main@test.pk", "pwd")
	ali := tu.CreateRegistration(t, app.Registration, "Ali", main.ID, web.ID)
	sara := tu.CreateRegistration(t, app.Registration, "Sara", north.ID, web.ID)
	token := campusAdminToken(t, app, adm)

	var ua campusadmin.UpdateCampusAdmin
	ua.CampusID.SetValid(north.ID)
	_, err := app.CampusAdmin.Update(ctx, adm.ID, ua)
	require.NoError(t, err)

	app.run(t, []httpTest{
		{
			name: "reassigned admin token: session", path: "/v1/auth/session", token: token,
			wantData: marshallObj(t, auth.Session{Role: auth.RoleCampusAdmin, Email: adm.Email, AdminID: adm.ID, CampusID: north.ID}),
		},
		{name: "reassigned admin token: new campus only", path: "/v1/registrations", token: token, wantData: marshallList(t, sara)},
		{
			name: "reassigned admin token: old campus record", path: "/v1/registrations/" + ali.ID, token: token,
			wantCode: http.StatusForbidden, wantData: marshallObj(t, httpErr{Error: "permission denied"}),
		},
	})

	require.NoError(t, app.CampusAdmin.Delete(ctx, adm.ID))
	notAuthenticated := marshallObj(t, httpErr{Error: "user not authenticated"})

	app.run(t, []httpTest{
		{name: "deleted admin token: session", path: "/v1/auth/session", token: token, wantCode: http.StatusUnauthorized, wantData: notAuthenticated},
		{name: "deleted admin token: registrations", path: "/v1/registrations", token: token, wantCode: http.StatusUnauthorized, wantData: notAuthenticated},
		{
			name: "deleted admin token: update", method: http.MethodPut, path: "/v1/registrations/" + sara.ID, token: token,
			body: []byte(`{"mobile":"03009998877"}`), wantCode: http.StatusUnauthorized, wantData: notAuthenticated,
		},
	})
}
