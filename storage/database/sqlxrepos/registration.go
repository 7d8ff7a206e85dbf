package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/registration"
)

const registrationColumns = "id, registration_no, name, father_name, cnic, address, mobile, " +
	"course_id, course, campus_id, campus, age, gender, city, province, created_at"

type registrationRow struct {
	ID             string    `db:"id"`
	RegistrationNo string    `db:"registration_no"`
	Name           string    `db:"name"`
	FatherName     string    `db:"father_name"`
	Cnic           string    `db:"cnic"`
	Address        string    `db:"address"`
	Mobile         string    `db:"mobile"`
	CourseID       string    `db:"course_id"`
	Course         string    `db:"course"`
	CampusID       string    `db:"campus_id"`
	Campus         string    `db:"campus"`
	Age            string    `db:"age"`
	Gender         string    `db:"gender"`
	City           string    `db:"city"`
	Province       string    `db:"province"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r registrationRow) toDomain() registration.Registration {
	return registration.Registration{
		ID:             r.ID,
		RegistrationNo: r.RegistrationNo,
		Name:           r.Name,
		FatherName:     r.FatherName,
		Cnic:           r.Cnic,
		Address:        r.Address,
		Mobile:         r.Mobile,
		CourseID:       r.CourseID,
		Course:         r.Course,
		CampusID:       r.CampusID,
		Campus:         r.Campus,
		Age:            r.Age,
		Gender:         r.Gender,
		City:           r.City,
		Province:       r.Province,
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

func toRegistrations(rows []registrationRow) []registration.Registration {
	regs := make([]registration.Registration, 0, len(rows))
	for _, r := range rows {
		regs = append(regs, r.toDomain())
	}
	return regs
}

type registrationRepository struct {
	exec core.DBExecutor
}

var _ registration.Repository = (*registrationRepository)(nil) // interface compliance check

func NewRegistrationRepository(exec core.DBExecutor) *registrationRepository {
	return &registrationRepository{exec: exec}
}

func (repo registrationRepository) CreateRegistration(ctx context.Context, r registration.Registration) (registration.Registration, error) {
	if !validID(r.CampusID) {
		return registration.Registration{}, errors.Errorf("invalid campus id %q", r.CampusID)
	}
	var row registrationRow
	err := repo.exec.GetContext(ctx, &row,
		`INSERT INTO registration (id, registration_no, name, father_name, cnic, address, mobile,
		 course_id, course, campus_id, campus, age, gender, city, province)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING `+registrationColumns,
		uuid.New().String(), r.RegistrationNo, r.Name, r.FatherName, r.Cnic, r.Address, r.Mobile,
		r.CourseID, r.Course, r.CampusID, r.Campus, r.Age, r.Gender, r.City, r.Province)
	if err != nil {
		return registration.Registration{}, errors.Wrap(err, "inserting registration")
	}
	return row.toDomain(), nil
}

func (repo registrationRepository) QueryRegistrations(ctx context.Context, filter registration.QueryFilter) ([]registration.Registration, error) {
	var rows []registrationRow
	var err error
	if filter.CampusID == "" {
		err = repo.exec.SelectContext(ctx, &rows,
			"SELECT "+registrationColumns+" FROM registration ORDER BY created_at, id")
	} else {
		if !validID(filter.CampusID) {
			return []registration.Registration{}, nil
		}
		err = repo.exec.SelectContext(ctx, &rows,
			"SELECT "+registrationColumns+" FROM registration WHERE campus_id = $1 ORDER BY created_at, id",
			filter.CampusID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "selecting registrations")
	}
	return toRegistrations(rows), nil
}

func (repo registrationRepository) GetRegistration(ctx context.Context, id string) (registration.Registration, error) {
	if !validID(id) {
		return registration.Registration{}, registration.ErrNotFound
	}
	var row registrationRow
	if err := repo.exec.GetContext(ctx, &row, "SELECT "+registrationColumns+" FROM registration WHERE id = $1", id); err != nil {
		return registration.Registration{}, trapNoRowsErr(err, registration.ErrNotFound, "selecting registration")
	}
	return row.toDomain(), nil
}

func (repo registrationRepository) GetRegistrationByNo(ctx context.Context, regNo string) (registration.Registration, error) {
	var row registrationRow
	err := repo.exec.GetContext(ctx, &row,
		"SELECT "+registrationColumns+" FROM registration WHERE registration_no = $1 ORDER BY created_at, id LIMIT 1",
		regNo)
	if err != nil {
		return registration.Registration{}, trapNoRowsErr(err, registration.ErrNotFound, "selecting registration")
	}
	return row.toDomain(), nil
}

func (repo registrationRepository) UpdateRegistration(ctx context.Context, id string, ur registration.UpdateRegistration) (registration.Registration, error) {
	if !validID(id) {
		return registration.Registration{}, registration.ErrNotFound
	}
	q, args, ok := buildUpdate("registration", id, []assignment{
		{"name", ur.Name},
		{"father_name", ur.FatherName},
		{"cnic", ur.Cnic},
		{"address", ur.Address},
		{"mobile", ur.Mobile},
		{"course_id", ur.CourseID},
		{"course", ur.Course},
		{"age", ur.Age},
		{"gender", ur.Gender},
		{"city", ur.City},
		{"province", ur.Province},
	}, registrationColumns)
	if !ok {
		return repo.GetRegistration(ctx, id)
	}
	var row registrationRow
	if err := repo.exec.GetContext(ctx, &row, q, args...); err != nil {
		return registration.Registration{}, trapNoRowsErr(err, registration.ErrNotFound, "updating registration")
	}
	return row.toDomain(), nil
}

func (repo registrationRepository) DeleteRegistration(ctx context.Context, id string) error {
	if !validID(id) {
		return registration.ErrNotFound
	}
	return deleteByID(ctx, repo.exec, "registration", id, registration.ErrNotFound)
}
