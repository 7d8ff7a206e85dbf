package main

import (
	"log"
	"os"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/campus"
	"github.com/alfurqan/campusreg/core/campusadmin"
	"github.com/alfurqan/campusreg/core/course"
	"github.com/alfurqan/campusreg/core/dashboard"
	"github.com/alfurqan/campusreg/core/registration"
	"github.com/alfurqan/campusreg/services/jobs"
	logsvc "github.com/alfurqan/campusreg/services/logger"
	"github.com/alfurqan/campusreg/services/metrics"
	"github.com/alfurqan/campusreg/storage/database"
	inmemdb "github.com/alfurqan/campusreg/storage/database/inmem"
	"github.com/alfurqan/campusreg/storage/database/sqlxrepos"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	cli := commandLine{out: os.Stdout}
	var (
		campusRepo campus.Repository
		courseRepo course.Repository
		adminRepo  campusadmin.Repository
		regRepo    registration.Repository
	)
	if conf.Database.Backend == core.BackendMemory {
		logger.Println("warning: in-memory storage, changes are not persisted")
		db := inmemdb.Open()
		campusRepo = inmemdb.NewCampusRepository(db)
		courseRepo = inmemdb.NewCourseRepository(db)
		adminRepo = inmemdb.NewCampusAdminRepository(db)
		regRepo = inmemdb.NewRegistrationRepository(db)
	} else {
		db, err := database.Open(conf)
		errAndDie(err)
		defer db.Close()
		cli.db = db.DB
		campusRepo = sqlxrepos.NewCampusRepository(db)
		courseRepo = sqlxrepos.NewCourseRepository(db)
		adminRepo = sqlxrepos.NewCampusAdminRepository(db)
		regRepo = sqlxrepos.NewRegistrationRepository(db)
	}

	campusSvc := campus.NewService(campusRepo)
	courseSvc := course.NewService(courseRepo)
	cli.adminSvc = campusadmin.NewService(adminRepo, campusSvc, nil)
	cli.regSvc = registration.NewService(regRepo, campusSvc, courseSvc)
	dash := dashboard.NewService(campusSvc, cli.adminSvc, cli.regSvc)
	cli.auditor = jobs.NewAuditor(dash, metrics.New(), logsvc.NewRollbarLogger(logger, conf))

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
