// Package jobs runs the background maintenance tasks of the API.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/dashboard"
	"github.com/alfurqan/campusreg/services/metrics"
)

const auditTimeout = 2 * time.Minute

// Auditor reports the records left pointing at deleted campuses.
type Auditor struct {
	dash    *dashboard.Service
	metrics *metrics.Metrics
	logger  core.Logger
}

func NewAuditor(dash *dashboard.Service, m *metrics.Metrics, logger core.Logger) *Auditor {
	return &Auditor{dash: dash, metrics: m, logger: logger}
}

// Run audits once, logs every dangling record as a warning and updates the gauges.
func (a *Auditor) Run(ctx context.Context) (dashboard.AuditReport, error) {
	report, err := a.dash.Audit(ctx)
	if err != nil {
		a.metrics.AuditRuns.WithLabelValues("failed").Inc()
		return dashboard.AuditReport{}, errors.Wrap(err, "auditing references")
	}
	a.metrics.AuditRuns.WithLabelValues("ok").Inc()
	a.metrics.OrphanRegistrations.Set(float64(len(report.OrphanRegistrations)))
	a.metrics.OrphanAdmins.Set(float64(len(report.OrphanAdmins)))

	for _, reg := range report.OrphanRegistrations {
		a.logger.Warn(fmt.Sprintf("registration %s (%s) references missing campus %s", reg.ID, reg.RegistrationNo, reg.CampusID))
	}
	for _, adm := range report.OrphanAdmins {
		a.logger.Warn(fmt.Sprintf("campus admin %s (%s) references missing campus %s", adm.ID, adm.Email, adm.CampusID))
	}
	return report, nil
}

// Scheduler runs the jobs on their cron schedules.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler schedules the auditor. An empty schedule disables it.
func NewScheduler(conf *core.Config, auditor *Auditor, logger core.Logger) (*Scheduler, error) {
	cl := cronLogger{logger: logger}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	if conf.Audit.Schedule != "" {
		_, err := c.AddFunc(conf.Audit.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
			defer cancel()
			if _, err := auditor.Run(ctx); err != nil {
				logger.Error(err.Error(), err)
			}
		})
		if err != nil {
			return nil, errors.Wrapf(err, "scheduling audit %q", conf.Audit.Schedule)
		}
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for the running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
