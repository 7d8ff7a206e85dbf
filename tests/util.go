package testutil

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/campus"
	"github.com/alfurqan/campusreg/core/campusadmin"
	"github.com/alfurqan/campusreg/core/course"
	"github.com/alfurqan/campusreg/core/dashboard"
	"github.com/alfurqan/campusreg/core/registration"
	appfs "github.com/alfurqan/campusreg/fs"
	emailsvc "github.com/alfurqan/campusreg/services/email"
	logsvc "github.com/alfurqan/campusreg/services/logger"
	inmemdb "github.com/alfurqan/campusreg/storage/database/inmem"
)

// Services bundles the domain services over one in-memory store.
type Services struct {
	Conf         *core.Config
	Logger       core.Logger
	DB           *inmemdb.DB
	Campus       *campus.Service
	Course       *course.Service
	CampusAdmin  *campusadmin.Service
	Registration *registration.Service
	Dashboard    *dashboard.Service
}

func NewLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
}

// NewServices wires every service on a fresh in-memory store. Sent emails are
// recorded in emailsvc.SentMessages.
func NewServices(t *testing.T) Services {
	t.Helper()
	conf := core.NewTestConfig()
	logger := NewLogger(conf)
	db := inmemdb.Open()
	core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, logger)
	emailsvc.ResetSentMessages()

	s := Services{Conf: conf, Logger: logger, DB: db}
	s.Campus = campus.NewService(inmemdb.NewCampusRepository(db))
	s.Course = course.NewService(inmemdb.NewCourseRepository(db))
	s.CampusAdmin = campusadmin.NewService(
		inmemdb.NewCampusAdminRepository(db),
		s.Campus,
		emailsvc.NewConsoleServiceMock(conf, logger),
	)
	s.Registration = registration.NewService(inmemdb.NewRegistrationRepository(db), s.Campus, s.Course)
	s.Dashboard = dashboard.NewService(s.Campus, s.CampusAdmin, s.Registration)
	return s
}

func CreateCampus(t *testing.T, svc *campus.Service, name, location string) campus.Campus {
	t.Helper()
	cmp, err := svc.Create(context.Background(), campus.NewCampus{Name: name, Location: location})
	if err != nil {
		t.Fatalf("createCampus() failed: %v", err)
	}
	return cmp
}

func CreateCourse(t *testing.T, svc *course.Service, name string) course.Course {
	t.Helper()
	crs, err := svc.Create(context.Background(), course.NewCourse{Name: name, Duration: "6 months", Description: name + " course"})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return crs
}

func CreateCampusAdmin(t *testing.T, svc *campusadmin.Service, campusID, email, pwd string) campusadmin.CampusAdmin {
	t.Helper()
	adm, err := svc.Assign(context.Background(), campusadmin.NewCampusAdmin{CampusID: campusID, Email: email, Password: pwd})
	if err != nil {
		t.Fatalf("createCampusAdmin() failed: %v", err)
	}
	return adm
}

// NewRegistrationForm returns a complete registration form for the given student.
func NewRegistrationForm(name, campusID, courseID string) registration.NewRegistration {
	return registration.NewRegistration{
		Name:       name,
		FatherName: "Father of " + name,
		Cnic:       "35202-1234567-1",
		Address:    "1 Mall Road",
		Mobile:     "03001234567",
		CourseID:   courseID,
		CampusID:   campusID,
		Age:        "20",
		Gender:     "Male",
		City:       "Lahore",
		Province:   "Punjab",
	}
}

func CreateRegistration(t *testing.T, svc *registration.Service, name, campusID, courseID string) registration.Registration {
	t.Helper()
	reg, err := svc.Create(context.Background(), NewRegistrationForm(name, campusID, courseID))
	if err != nil {
		t.Fatalf("createRegistration() failed: %v", err)
	}
	return reg
}
