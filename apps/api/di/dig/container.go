package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/alfurqan/campusreg/apps/api/echo"
	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/auth"
	"github.com/alfurqan/campusreg/core/campus"
	"github.com/alfurqan/campusreg/core/campusadmin"
	"github.com/alfurqan/campusreg/core/course"
	"github.com/alfurqan/campusreg/core/dashboard"
	"github.com/alfurqan/campusreg/core/registration"
	appfs "github.com/alfurqan/campusreg/fs"
	emailsvc "github.com/alfurqan/campusreg/services/email"
	"github.com/alfurqan/campusreg/services/jobs"
	logsvc "github.com/alfurqan/campusreg/services/logger"
	"github.com/alfurqan/campusreg/services/metrics"
	sessionsvc "github.com/alfurqan/campusreg/services/session"
	"github.com/alfurqan/campusreg/storage/database"
	inmemdb "github.com/alfurqan/campusreg/storage/database/inmem"
	"github.com/alfurqan/campusreg/storage/database/sqlxrepos"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// Repositories groups the storage of every collection, backed by one storage backend.
	Repositories struct {
		dig.Out
		Campuses      campus.Repository
		Courses       course.Repository
		CampusAdmins  campusadmin.Repository
		Registrations registration.Repository
		Closer        Closer
	}

	// Closer releases the storage backend.
	Closer func() error

	serverParams struct {
		dig.In
		Conf            *core.Config
		Logger          core.Logger
		Validate        *validator.Validate
		Translator      ut.Translator
		Metrics         *metrics.Metrics
		AuthSvc         *auth.Service
		CampusSvc       *campus.Service
		CourseSvc       *course.Service
		CampusAdminSvc  *campusadmin.Service
		RegistrationSvc *registration.Service
		DashboardSvc    *dashboard.Service
	}
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newRepositories(conf *core.Config, loggerParam DBLoggerParam) Repositories {
	if conf.Database.Backend == core.BackendMemory {
		loggerParam.Logger.Warn("using the in-memory storage: data is lost on exit")
		db := inmemdb.Open()
		return Repositories{
			Campuses:      inmemdb.NewCampusRepository(db),
			Courses:       inmemdb.NewCourseRepository(db),
			CampusAdmins:  inmemdb.NewCampusAdminRepository(db),
			Registrations: inmemdb.NewRegistrationRepository(db),
			Closer:        func() error { return nil },
		}
	}

	if err := database.CreateIfNotExist(conf); err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	if err = database.Migrate(db.DB); err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}
	return Repositories{
		Campuses:      sqlxrepos.NewCampusRepository(db),
		Courses:       sqlxrepos.NewCourseRepository(db),
		CampusAdmins:  sqlxrepos.NewCampusAdminRepository(db),
		Registrations: sqlxrepos.NewRegistrationRepository(db),
		Closer:        db.Close,
	}
}

func newRevocationStore(conf *core.Config, logger core.Logger) auth.RevocationStore {
	if conf.Redis.URL == "" {
		return sessionsvc.NewMemoryStore()
	}
	store, err := sessionsvc.NewRedisStore(context.Background(), conf.Redis.URL)
	if err != nil {
		logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
	}
	return store
}

func newValidator(translator ut.Translator, logger core.Logger) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, logger)
	return validate
}

func newCampusAdminService(repo campusadmin.Repository, campuses *campus.Service, mailSvc core.EmailService) *campusadmin.Service {
	return campusadmin.NewService(repo, campuses, mailSvc)
}

func newRegistrationService(repo registration.Repository, campuses *campus.Service, courses *course.Service) *registration.Service {
	return registration.NewService(repo, campuses, courses)
}

func newAuthService(conf *core.Config, admins *campusadmin.Service, store auth.RevocationStore) *auth.Service {
	return auth.NewService(conf, admins, store)
}

func newDashboardService(campuses *campus.Service, admins *campusadmin.Service, regs *registration.Service) *dashboard.Service {
	return dashboard.NewService(campuses, admins, regs)
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:            p.Conf,
		Logger:          p.Logger,
		Validate:        p.Validate,
		Translator:      p.Translator,
		Metrics:         p.Metrics,
		AuthSvc:         p.AuthSvc,
		CampusSvc:       p.CampusSvc,
		CourseSvc:       p.CourseSvc,
		CampusAdminSvc:  p.CampusAdminSvc,
		RegistrationSvc: p.RegistrationSvc,
		DashboardSvc:    p.DashboardSvc,
	})
}

// New returns a new dependency injection dig.Container
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(emailsvc.NewService))
	must(c.Provide(newRevocationStore))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(metrics.New))

	must(c.Provide(campus.NewService))
	must(c.Provide(course.NewService))
	must(c.Provide(newCampusAdminService))
	must(c.Provide(newRegistrationService))
	must(c.Provide(newAuthService))
	must(c.Provide(newDashboardService))

	must(c.Provide(jobs.NewAuditor))
	must(c.Provide(jobs.NewScheduler))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
