package registration

import (
	"context"

	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/campus"
	"github.com/alfurqan/campusreg/core/course"
)

var (
	ErrNotFound      = core.NewNotFoundError("registration")
	ErrRegNoNotFound = core.NewNotFoundError("registration number")
	ErrRegNoRequired = errors.New("registration number is required")
)

type (
	Repository interface {
		CreateRegistration(ctx context.Context, r Registration) (Registration, error)
		// QueryRegistrations returns the registrations selected by filter, oldest first.
		QueryRegistrations(ctx context.Context, filter QueryFilter) ([]Registration, error)
		GetRegistration(ctx context.Context, id string) (Registration, error)
		// GetRegistrationByNo returns the oldest registration carrying regNo.
		GetRegistrationByNo(ctx context.Context, regNo string) (Registration, error)
		UpdateRegistration(ctx context.Context, id string, ur UpdateRegistration) (Registration, error)
		DeleteRegistration(ctx context.Context, id string) error
	}

	// CampusFinder resolves campuses; satisfied by *campus.Service.
	CampusFinder interface {
		GetByID(ctx context.Context, id string) (campus.Campus, error)
	}

	// CourseFinder resolves courses; satisfied by *course.Service.
	CourseFinder interface {
		GetByID(ctx context.Context, id string) (course.Course, error)
		QueryAll(ctx context.Context, ordering string) ([]course.Course, error)
	}

	Service struct {
		repo     Repository
		campuses CampusFinder
		courses  CourseFinder
	}
)

func NewService(repo Repository, campuses CampusFinder, courses CourseFinder) *Service {
	return &Service{repo: repo, campuses: campuses, courses: courses}
}

func fieldErr(field string, err error) error {
	return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
}

func (svc *Service) getCampus(ctx context.Context, id string) (campus.Campus, error) {
	cmp, err := svc.campuses.GetByID(ctx, id)
	if err != nil && core.IsNotFound(err) {
		return campus.Campus{}, fieldErr("campus_id", err)
	}
	return cmp, err
}

func (svc *Service) getCourse(ctx context.Context, id string) (course.Course, error) {
	crs, err := svc.courses.GetByID(ctx, id)
	if err != nil && core.IsNotFound(err) {
		return course.Course{}, fieldErr("course_id", err)
	}
	return crs, err
}

// Preview returns the registration number a form shows once the campus is selected.
// Create always computes its own.
func (svc *Service) Preview(ctx context.Context, campusID string) (string, error) {
	campusID = core.CleanString(campusID)
	if campusID == "" {
		return "", fieldErr("campus_id", errors.New("this field is required"))
	}
	cmp, err := svc.getCampus(ctx, campusID)
	if err != nil {
		return "", err
	}
	return NewRegistrationNo(cmp.Name, NowFunc()), nil
}

// Create stores a registration for an existing campus and course, with its registration
// number derived from the campus name.
func (svc *Service) Create(ctx context.Context, nr NewRegistration) (Registration, error) {
	cmp, err := svc.getCampus(ctx, nr.CampusID)
	if err != nil {
		return Registration{}, err
	}
	crs, err := svc.getCourse(ctx, nr.CourseID)
	if err != nil {
		return Registration{}, err
	}

	return svc.repo.CreateRegistration(ctx, Registration{
		RegistrationNo: NewRegistrationNo(cmp.Name, NowFunc()),
		Name:           nr.Name,
		FatherName:     nr.FatherName,
		Cnic:           nr.Cnic,
		Address:        nr.Address,
		Mobile:         nr.Mobile,
		CourseID:       crs.ID,
		Course:         crs.Name,
		CampusID:       cmp.ID,
		Campus:         cmp.Name,
		Age:            nr.Age,
		Gender:         nr.Gender,
		City:           nr.City,
		Province:       nr.Province,
	})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Registration, error) {
	return svc.repo.GetRegistration(ctx, core.CleanString(id))
}

// GetByRegistrationNo finds a registration by exact registration number.
func (svc *Service) GetByRegistrationNo(ctx context.Context, regNo string) (Registration, error) {
	regNo = core.CleanString(regNo)
	if regNo == "" {
		return Registration{}, fieldErr("registration_no", ErrRegNoRequired)
	}
	reg, err := svc.repo.GetRegistrationByNo(ctx, regNo)
	if err != nil && core.IsNotFound(err) {
		return Registration{}, ErrRegNoNotFound
	}
	return reg, err
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Registration, error) {
	filter.CampusID = core.CleanString(filter.CampusID)
	return svc.repo.QueryRegistrations(ctx, filter)
}

// List runs the coarse query then narrows the result with f.
func (svc *Service) List(ctx context.Context, qf QueryFilter, f Filter) ([]Registration, error) {
	regs, err := svc.Query(ctx, qf)
	if err != nil {
		return nil, err
	}
	return f.Apply(regs), nil
}

// Update overwrites the provided fields. A new course ID also rewrites the course name.
// Concurrent updates are last-write-wins per field.
func (svc *Service) Update(ctx context.Context, id string, ur UpdateRegistration) (Registration, error) {
	if ur.CourseID.Valid {
		crs, err := svc.getCourse(ctx, ur.CourseID.String)
		if err != nil {
			return Registration{}, err
		}
		ur.Course.SetValid(crs.Name)
	}
	if ur.IsEmpty() {
		return svc.repo.GetRegistration(ctx, id)
	}
	return svc.repo.UpdateRegistration(ctx, id, ur)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteRegistration(ctx, id)
}

// NormalizeCourses rewrites legacy registrations whose course field holds a course ID
// so that course holds the name and course_id the ID. It returns the number of rewritten records.
func (svc *Service) NormalizeCourses(ctx context.Context) (int, error) {
	courses, err := svc.courses.QueryAll(ctx, core.OrderOldestFirst)
	if err != nil {
		return 0, err
	}
	byID := make(map[string]course.Course, len(courses))
	for _, crs := range courses {
		byID[crs.ID] = crs
	}

	regs, err := svc.repo.QueryRegistrations(ctx, QueryFilter{})
	if err != nil {
		return 0, err
	}
	var n int
	for _, reg := range regs {
		crs, ok := byID[reg.Course]
		if !ok {
			continue
		}
		var ur UpdateRegistration
		ur.CourseID.SetValid(crs.ID)
		ur.Course.SetValid(crs.Name)
		if _, err := svc.repo.UpdateRegistration(ctx, reg.ID, ur); err != nil {
			return n, errors.Wrapf(err, "normalizing registration %s", reg.ID)
		}
		n++
	}
	return n, nil
}
