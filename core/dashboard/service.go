package dashboard

import (
	"context"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/campus"
	"github.com/alfurqan/campusreg/core/campusadmin"
	"github.com/alfurqan/campusreg/core/registration"
)

type (
	// CampusCard summarizes one campus: its admin and its students per course.
	CampusCard struct {
		Campus       campus.Campus  `json:"campus"`
		AdminEmail   string         `json:"admin_email"`
		Total        int            `json:"total"`
		CourseCounts map[string]int `json:"course_counts"`
	}

	// AuditReport lists the records left pointing at a deleted campus.
	AuditReport struct {
		OrphanRegistrations []registration.Registration `json:"orphan_registrations"`
		OrphanAdmins        []campusadmin.CampusAdmin   `json:"orphan_admins"`
	}

	CampusLister interface {
		QueryAll(ctx context.Context, ordering string) ([]campus.Campus, error)
		GetByID(ctx context.Context, id string) (campus.Campus, error)
	}

	AdminLister interface {
		QueryAll(ctx context.Context) ([]campusadmin.CampusAdmin, error)
	}

	RegistrationQuerier interface {
		Query(ctx context.Context, filter registration.QueryFilter) ([]registration.Registration, error)
	}

	Service struct {
		campuses      CampusLister
		admins        AdminLister
		registrations RegistrationQuerier
	}
)

func NewService(campuses CampusLister, admins AdminLister, registrations RegistrationQuerier) *Service {
	return &Service{campuses: campuses, admins: admins, registrations: registrations}
}

func (r AuditReport) IsClean() bool {
	return len(r.OrphanRegistrations) == 0 && len(r.OrphanAdmins) == 0
}

// CampusCards builds the card of campusID, or of every campus when campusID is empty.
func (svc *Service) CampusCards(ctx context.Context, campusID string) ([]CampusCard, error) {
	var campuses []campus.Campus
	if campusID = core.CleanString(campusID); campusID != "" {
		cmp, err := svc.campuses.GetByID(ctx, campusID)
		if err != nil {
			return nil, err
		}
		campuses = []campus.Campus{cmp}
	} else {
		var err error
		if campuses, err = svc.campuses.QueryAll(ctx, core.OrderOldestFirst); err != nil {
			return nil, err
		}
	}

	admins, err := svc.admins.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	adminEmails := make(map[string]string, len(admins))
	for _, adm := range admins {
		adminEmails[adm.CampusID] = adm.Email
	}

	regs, err := svc.registrations.Query(ctx, registration.QueryFilter{CampusID: campusID})
	if err != nil {
		return nil, err
	}

	cards := make([]CampusCard, 0, len(campuses))
	idx := make(map[string]int, len(campuses))
	for i, cmp := range campuses {
		idx[cmp.ID] = i
		cards = append(cards, CampusCard{
			Campus:       cmp,
			AdminEmail:   adminEmails[cmp.ID],
			CourseCounts: make(map[string]int),
		})
	}
	for _, reg := range regs {
		i, ok := idx[reg.CampusID]
		if !ok {
			continue // dangling, reported by Audit
		}
		cards[i].Total++
		cards[i].CourseCounts[reg.Course]++
	}
	return cards, nil
}

// Audit finds registrations and admins whose campus no longer exists.
func (svc *Service) Audit(ctx context.Context) (AuditReport, error) {
	campuses, err := svc.campuses.QueryAll(ctx, core.OrderOldestFirst)
	if err != nil {
		return AuditReport{}, err
	}
	exists := make(map[string]bool, len(campuses))
	for _, cmp := range campuses {
		exists[cmp.ID] = true
	}

	var report AuditReport
	regs, err := svc.registrations.Query(ctx, registration.QueryFilter{})
	if err != nil {
		return AuditReport{}, err
	}
	for _, reg := range regs {
		if !exists[reg.CampusID] {
			report.OrphanRegistrations = append(report.OrphanRegistrations, reg)
		}
	}

	admins, err := svc.admins.QueryAll(ctx)
	if err != nil {
		return AuditReport{}, err
	}
	for _, adm := range admins {
		if !exists[adm.CampusID] {
			report.OrphanAdmins = append(report.OrphanAdmins, adm)
		}
	}
	return report, nil
}
