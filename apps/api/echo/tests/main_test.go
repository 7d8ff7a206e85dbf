package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/alfurqan/campusreg/apps/api/echo"
	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/auth"
	"github.com/alfurqan/campusreg/core/campusadmin"
	"github.com/alfurqan/campusreg/services/metrics"
	"github.com/alfurqan/campusreg/services/session"
	"github.com/alfurqan/campusreg/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	*Server
	testutil.Services
	Metrics *metrics.Metrics
}

func setup(t *testing.T) testApp {
	s := testutil.NewServices(t)

	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	m := metrics.New()

	srv := NewServer(ServerDeps{
		Conf:            s.Conf,
		Logger:          s.Logger,
		Validate:        validate,
		Translator:      translator,
		Metrics:         m,
		AuthSvc:         auth.NewService(s.Conf, s.CampusAdmin, sessionsvc.NewMemoryStore()),
		CampusSvc:       s.Campus,
		CourseSvc:       s.Course,
		CampusAdminSvc:  s.CampusAdmin,
		RegistrationSvc: s.Registration,
		DashboardSvc:    s.Dashboard,
	})
	return testApp{Server: srv, Services: s, Metrics: m}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func (app testApp) do(tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

func (app testApp) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(tt))
		})
	}
}

func superAdminToken(t *testing.T, app testApp) string {
	return getToken(t, app, auth.Session{Role: auth.RoleSuperAdmin, Email: app.Conf.SuperAdmin.Email})
}

func campusAdminToken(t *testing.T, app testApp, adm campusadmin.CampusAdmin) string {
	return getToken(t, app, auth.Session{Role: auth.RoleCampusAdmin, Email: adm.Email, AdminID: adm.ID, CampusID: adm.CampusID})
}

func getToken(t *testing.T, app testApp, sess auth.Session) string {
	token, err := app.GenerateToken(sess)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func marshallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marshallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		assert.Empty(t, rec.Body.String())
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode(%s) failed: %v", rec.Body.String(), err)
	}
}
