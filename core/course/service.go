package course

import (
	"context"
	"slices"

	"github.com/alfurqan/campusreg/core"
)

var ErrNotFound = core.NewNotFoundError("course")

type (
	Repository interface {
		CreateCourse(ctx context.Context, c Course) (Course, error)
		// QueryCourses returns all courses, oldest first.
		QueryCourses(ctx context.Context) ([]Course, error)
		GetCourse(ctx context.Context, id string) (Course, error)
		UpdateCourse(ctx context.Context, id string, uc UpdateCourse) (Course, error)
		DeleteCourse(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	return svc.repo.CreateCourse(ctx, Course{
		Name:        nc.Name,
		Duration:    nc.Duration,
		Description: nc.Description,
	})
}

// QueryAll returns every course, oldest first unless ordering is core.OrderNewestFirst.
func (svc *Service) QueryAll(ctx context.Context, ordering string) ([]Course, error) {
	items, err := svc.repo.QueryCourses(ctx)
	if err != nil {
		return nil, err
	}
	if ordering == core.OrderNewestFirst {
		slices.Reverse(items)
	}
	return items, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourse(ctx, core.CleanString(id))
}

func (svc *Service) Update(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	if uc.IsEmpty() {
		return svc.repo.GetCourse(ctx, id)
	}
	return svc.repo.UpdateCourse(ctx, id, uc)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCourse(ctx, id)
}
