// Package metrics holds the prometheus collectors of the API and the jobs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "campusreg"

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec // method, route, status
	Logins              *prometheus.CounterVec // role or "failed"
	Registrations       prometheus.Counter
	AdminAssignments    prometheus.Counter
	OrphanRegistrations prometheus.Gauge
	OrphanAdmins        prometheus.Gauge
	AuditRuns           *prometheus.CounterVec // ok, failed
}

// New registers the collectors on a fresh registry, so that several instances can live in one process.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests"},
			[]string{"method", "route", "status"},
		),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "logins_total", Help: "Total login attempts by outcome"},
			[]string{"outcome"},
		),
		Registrations: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "registrations_created_total", Help: "Total student registrations created"},
		),
		AdminAssignments: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "campus_admin_assignments_total", Help: "Total campus admins assigned"},
		),
		OrphanRegistrations: prometheus.NewGauge(
			prometheus.GaugeOpts{Namespace: namespace, Name: "orphan_registrations", Help: "Registrations whose campus no longer exists"},
		),
		OrphanAdmins: prometheus.NewGauge(
			prometheus.GaugeOpts{Namespace: namespace, Name: "orphan_campus_admins", Help: "Campus admins whose campus no longer exists"},
		),
		AuditRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "audit_runs_total", Help: "Total integrity audit runs by result"},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests, m.Logins, m.Registrations, m.AdminAssignments,
		m.OrphanRegistrations, m.OrphanAdmins, m.AuditRuns,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
