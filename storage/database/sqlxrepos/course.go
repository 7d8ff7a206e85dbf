package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/course"
)

const courseColumns = "id, name, duration, description, created_at"

type courseRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Duration    string    `db:"duration"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r courseRow) toDomain() course.Course {
	return course.Course{
		ID:          r.ID,
		Name:        r.Name,
		Duration:    r.Duration,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type courseRepository struct {
	exec core.DBExecutor
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(exec core.DBExecutor) *courseRepository {
	return &courseRepository{exec: exec}
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	var row courseRow
	err := repo.exec.GetContext(ctx, &row,
		"INSERT INTO course (id, name, duration, description) VALUES ($1, $2, $3, $4) RETURNING "+courseColumns,
		uuid.New().String(), c.Name, c.Duration, c.Description)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return row.toDomain(), nil
}

func (repo courseRepository) QueryCourses(ctx context.Context) ([]course.Course, error) {
	var rows []courseRow
	if err := repo.exec.SelectContext(ctx, &rows, "SELECT "+courseColumns+" FROM course ORDER BY created_at, id"); err != nil {
		return nil, errors.Wrap(err, "selecting courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.toDomain())
	}
	return courses, nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id string) (course.Course, error) {
	if !validID(id) {
		return course.Course{}, course.ErrNotFound
	}
	var row courseRow
	if err := repo.exec.GetContext(ctx, &row, "SELECT "+courseColumns+" FROM course WHERE id = $1", id); err != nil {
		return course.Course{}, trapNoRowsErr(err, course.ErrNotFound, "selecting course")
	}
	return row.toDomain(), nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, id string, uc course.UpdateCourse) (course.Course, error) {
	if !validID(id) {
		return course.Course{}, course.ErrNotFound
	}
	q, args, ok := buildUpdate("course", id, []assignment{
		{"name", uc.Name},
		{"duration", uc.Duration},
		{"description", uc.Description},
	}, courseColumns)
	if !ok {
		return repo.GetCourse(ctx, id)
	}
	var row courseRow
	if err := repo.exec.GetContext(ctx, &row, q, args...); err != nil {
		return course.Course{}, trapNoRowsErr(err, course.ErrNotFound, "updating course")
	}
	return row.toDomain(), nil
}

func (repo courseRepository) DeleteCourse(ctx context.Context, id string) error {
	if !validID(id) {
		return course.ErrNotFound
	}
	return deleteByID(ctx, repo.exec, "course", id, course.ErrNotFound)
}
