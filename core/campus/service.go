package campus

import (
	"context"
	"slices"

	"github.com/alfurqan/campusreg/core"
)

var ErrNotFound = core.NewNotFoundError("campus")

type (
	Repository interface {
		CreateCampus(ctx context.Context, c Campus) (Campus, error)
		// QueryCampuses returns all campuses, oldest first.
		QueryCampuses(ctx context.Context) ([]Campus, error)
		GetCampus(ctx context.Context, id string) (Campus, error)
		UpdateCampus(ctx context.Context, id string, uc UpdateCampus) (Campus, error)
		DeleteCampus(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCampus) (Campus, error) {
	return svc.repo.CreateCampus(ctx, Campus{
		Name:     nc.Name,
		Location: nc.Location,
	})
}

// QueryAll returns every campus, oldest first unless ordering is core.OrderNewestFirst.
func (svc *Service) QueryAll(ctx context.Context, ordering string) ([]Campus, error) {
	items, err := svc.repo.QueryCampuses(ctx)
	if err != nil {
		return nil, err
	}
	if ordering == core.OrderNewestFirst {
		slices.Reverse(items)
	}
	return items, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Campus, error) {
	return svc.repo.GetCampus(ctx, core.CleanString(id))
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateCampus) (Campus, error) {
	if uc.IsEmpty() {
		return svc.repo.GetCampus(ctx, id)
	}
	return svc.repo.UpdateCampus(ctx, id, uc)
}

// Delete removes the campus only; its registrations and admin are left untouched.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCampus(ctx, id)
}

// NameIndex maps campus IDs to names, for display of foreign references.
func NameIndex(campuses []Campus) map[string]string {
	idx := make(map[string]string, len(campuses))
	for _, c := range campuses {
		idx[c.ID] = c.Name
	}
	return idx
}
