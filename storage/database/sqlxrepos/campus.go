package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/campus"
)

const campusColumns = "id, name, location, created_at"

type campusRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Location  string    `db:"location"`
	CreatedAt time.Time `db:"created_at"`
}

func (r campusRow) toDomain() campus.Campus {
	return campus.Campus{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type campusRepository struct {
	exec core.DBExecutor
}

var _ campus.Repository = (*campusRepository)(nil) // interface compliance check

func NewCampusRepository(exec core.DBExecutor) *campusRepository {
	return &campusRepository{exec: exec}
}

func (repo campusRepository) CreateCampus(ctx context.Context, c campus.Campus) (campus.Campus, error) {
	var row campusRow
	err := repo.exec.GetContext(ctx, &row,
		"INSERT INTO campus (id, name, location) VALUES ($1, $2, $3) RETURNING "+campusColumns,
		uuid.New().String(), c.Name, c.Location)
	if err != nil {
		return campus.Campus{}, errors.Wrap(err, "inserting campus")
	}
	return row.toDomain(), nil
}

func (repo campusRepository) QueryCampuses(ctx context.Context) ([]campus.Campus, error) {
	var rows []campusRow
	if err := repo.exec.SelectContext(ctx, &rows, "SELECT "+campusColumns+" FROM campus ORDER BY created_at, id"); err != nil {
		return nil, errors.Wrap(err, "selecting campuses")
	}
	campuses := make([]campus.Campus, 0, len(rows))
	for _, r := range rows {
		campuses = append(campuses, r.toDomain())
	}
	return campuses, nil
}

func (repo campusRepository) GetCampus(ctx context.Context, id string) (campus.Campus, error) {
	if !validID(id) {
		return campus.Campus{}, campus.ErrNotFound
	}
	var row campusRow
	if err := repo.exec.GetContext(ctx, &row, "SELECT "+campusColumns+" FROM campus WHERE id = $1", id); err != nil {
		return campus.Campus{}, trapNoRowsErr(err, campus.ErrNotFound, "selecting campus")
	}
	return row.toDomain(), nil
}

func (repo campusRepository) UpdateCampus(ctx context.Context, id string, uc campus.UpdateCampus) (campus.Campus, error) {
	if !validID(id) {
		return campus.Campus{}, campus.ErrNotFound
	}
	q, args, ok := buildUpdate("campus", id, []assignment{
		{"name", uc.Name},
		{"location", uc.Location},
	}, campusColumns)
	if !ok {
		return repo.GetCampus(ctx, id)
	}
	var row campusRow
	if err := repo.exec.GetContext(ctx, &row, q, args...); err != nil {
		return campus.Campus{}, trapNoRowsErr(err, campus.ErrNotFound, "updating campus")
	}
	return row.toDomain(), nil
}

func (repo campusRepository) DeleteCampus(ctx context.Context, id string) error {
	if !validID(id) {
		return campus.ErrNotFound
	}
	return deleteByID(ctx, repo.exec, "campus", id, campus.ErrNotFound)
}
