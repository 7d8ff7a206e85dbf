package tests

import (
	"net/http"
	"testing"

	"github.com/alfurqan/campusreg/core/campus"
	"github.com/alfurqan/campusreg/core/course"
	tu "github.com/alfurqan/campusreg/tests"
)

func Test_campusApi(t *testing.T) {
	app := setup(t)

	main := tu.CreateCampus(t, app.Campus, "Main", "City A")
	north := tu.CreateCampus(t, app.Campus, "North", "City B")
	adm := tu.CreateCampusAdmin(t, app.CampusAdmin, main.ID, "main@test.pk", "pwd")

	superToken := superAdminToken(t, app)
	adminToken := campusAdminToken(t, app, adm)
	forbidden := marshallObj(t, httpErr{Error: "permission denied"})
	notFound := marshallObj(t, httpErr{Error: "not found"})

	renamed := north
	renamed.Name = "North Campus"

	app.run(t, []httpTest{
		{name: "auth required", path: "/v1/campuses", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "list oldest first", path: "/v1/campuses", token: adminToken, wantData: marshallList(t, main, north)},
		{name: "list newest first", path: "/v1/campuses?ordering=-created_at", token: adminToken, wantData: marshallList(t, north, main)},
		{name: "retrieve", path: "/v1/campuses/" + main.ID, token: adminToken, wantData: marshallObj(t, main)},
		{name: "retrieve unknown", path: "/v1/campuses/lol", token: adminToken, wantCode: http.StatusNotFound, wantData: notFound},
		{
			name: "create: super admin only", method: http.MethodPost, path: "/v1/campuses", token: adminToken,
			body: marshallObj(t, campus.NewCampus{Name: "South", Location: "City C"}), wantCode: http.StatusForbidden, wantData: forbidden,
		},
		{
			name: "create: blank fields", method: http.MethodPost, path: "/v1/campuses", token: superToken,
			body: marshallObj(t, campus.NewCampus{Name: "  "}), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"name": "this field is required", "location": "this field is required"}),
		},
		{
			name: "update: super admin only", method: http.MethodPut, path: "/v1/campuses/" + north.ID, token: adminToken,
			body: []byte(`{"name": "North Campus"}`), wantCode: http.StatusForbidden, wantData: forbidden,
		},
		{
			name: "update: blank name", method: http.MethodPut, path: "/v1/campuses/" + north.ID, token: superToken,
			body: []byte(`{"name": " "}`), wantCode: http.StatusBadRequest, wantData: marshallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "update: partial", method: http.MethodPut, path: "/v1/campuses/" + north.ID, token: superToken,
			body: []byte(`{"name": "North Campus"}`), wantData: marshallObj(t, renamed),
		},
		{
			name: "update: unknown", method: http.MethodPut, path: "/v1/campuses/lol", token: superToken,
			body: []byte(`{"name": "lol"}`), wantCode: http.StatusNotFound, wantData: notFound,
		},
		{name: "delete: super admin only", method: http.MethodDelete, path: "/v1/campuses/" + north.ID, token: adminToken, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "delete", method: http.MethodDelete, path: "/v1/campuses/" + north.ID, token: superToken, wantCode: http.StatusNoContent},
		{name: "delete again", method: http.MethodDelete, path: "/v1/campuses/" + north.ID, token: superToken, wantCode: http.StatusNotFound, wantData: notFound},
		{name: "list after delete", path: "/v1/campuses", token: superToken, wantData: marshallList(t, main)},
	})

	rec := app.do(httpTest{
		method: http.MethodPost, path: "/v1/campuses", token: superToken,
		body: marshallObj(t, campus.NewCampus{Name: " South ", Location: "City C"}),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var created campus.Campus
	decode(t, rec, &created)
	if created.ID == "" || created.Name != "South" || created.CreatedAt.IsZero() {
		t.Errorf("create: unexpected campus %+v", created)
	}
}

func Test_courseApi(t *testing.T) {
	app := setup(t)

	cmp := tu.CreateCampus(t, app.Campus, "Main", "City A")
	web := tu.CreateCourse(t, app.Course, "Web Dev")
	adm := tu.CreateCampusAdmin(t, app.CampusAdmin, cmp.ID, "main@test.pk", "pwd")

	superToken := superAdminToken(t, app)
	adminToken := campusAdminToken(t, app, adm)

	updated := web
	updated.Duration = "1 year"

	app.run(t, []httpTest{
		{name: "auth required", path: "/v1/courses", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "list", path: "/v1/courses", token: adminToken, wantData: marshallList(t, web)},
		{name: "retrieve", path: "/v1/courses/" + web.ID, token: adminToken, wantData: marshallObj(t, web)},
		{
			name: "create: super admin only", method: http.MethodPost, path: "/v1/courses", token: adminToken,
			body: marshallObj(t, course.NewCourse{Name: "Data", Duration: "3 months", Description: "data"}),
			wantCode: http.StatusForbidden, wantData: marshallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "create: blank fields", method: http.MethodPost, path: "/v1/courses", token: superToken,
			body: marshallObj(t, course.NewCourse{Name: "Data"}), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{"duration": "this field is required", "description": "this field is required"}),
		},
		{
			name: "update", method: http.MethodPut, path: "/v1/courses/" + web.ID, token: superToken,
			body: []byte(`{"duration": "1 year"}`), wantData: marshallObj(t, updated),
		},
		{name: "delete", method: http.MethodDelete, path: "/v1/courses/" + web.ID, token: superToken, wantCode: http.StatusNoContent},
		{name: "list after delete", path: "/v1/courses", token: superToken, wantData: marshallList(t)},
	})
}
