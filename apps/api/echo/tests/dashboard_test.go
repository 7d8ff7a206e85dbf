package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alfurqan/campusreg/core/dashboard"
	"github.com/alfurqan/campusreg/core/registration"
	tu "github.com/alfurqan/campusreg/tests"
)

func Test_dashboardApi(t *testing.T) {
	app := setup(t)

	main := tu.CreateCampus(t, app.Campus, "Main", "City A")
	north := tu.CreateCampus(t, app.Campus, "North", "City B")
	web := tu.CreateCourse(t, app.Course, "Web Dev")
	mainAdm := tu.CreateCampusAdmin(t, app.CampusAdmin, main.ID, "main@test.pk", "pwd")
	tu.CreateRegistration(t, app.Registration, "Ali", main.ID, web.ID)
	tu.CreateRegistration(t, app.Registration, "Alina", main.ID, web.ID)
	sara := tu.CreateRegistration(t, app.Registration, "Sara", north.ID, web.ID)

	superToken := superAdminToken(t, app)
	adminToken := campusAdminToken(t, app, mainAdm)

	mainCard := dashboard.CampusCard{Campus: main, AdminEmail: "main@test.pk", Total: 2, CourseCounts: map[string]int{"Web Dev": 2}}
	northCard := dashboard.CampusCard{Campus: north, Total: 1, CourseCounts: map[string]int{"Web Dev": 1}}

	app.run(t, []httpTest{
		{name: "auth required", path: "/v1/dashboard/campuses", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "super admin: every campus", path: "/v1/dashboard/campuses", token: superToken, wantData: marshallList(t, mainCard, northCard)},
		{name: "super admin: one campus", path: "/v1/dashboard/campuses?campus_id=" + north.ID, token: superToken, wantData: marshallList(t, northCard)},
		{name: "campus admin: own campus", path: "/v1/dashboard/campuses?campus_id=" + north.ID, token: adminToken, wantData: marshallList(t, mainCard)},
		{
			name: "audit: super admin only", path: "/v1/dashboard/audit", token: adminToken,
			wantCode: http.StatusForbidden, wantData: marshallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "audit: clean", path: "/v1/dashboard/audit", token: superToken,
			wantData: marshallObj(t, dashboard.AuditReport{}),
		},
	})

	require.NoError(t, app.Campus.Delete(context.Background(), north.ID))

	app.run(t, []httpTest{
		{
			name: "audit: dangling registration", path: "/v1/dashboard/audit", token: superToken,
			wantData: marshallObj(t, dashboard.AuditReport{OrphanRegistrations: []registration.Registration{sara}}),
		},
		{name: "cards skip deleted campuses", path: "/v1/dashboard/campuses", token: superToken, wantData: marshallList(t, mainCard)},
	})
}
