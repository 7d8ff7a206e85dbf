package inmemdb

import (
	"context"

	"github.com/alfurqan/campusreg/core/campus"
)

type campusRepository struct {
	db *DB
}

var _ campus.Repository = (*campusRepository)(nil)

func NewCampusRepository(db *DB) *campusRepository {
	return &campusRepository{db: db}
}

func (repo *campusRepository) CreateCampus(_ context.Context, c campus.Campus) (campus.Campus, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c.ID = newID()
	c.CreatedAt = now()
	repo.db.campuses.insert(c.ID, c)
	return c, nil
}

func (repo *campusRepository) QueryCampuses(context.Context) ([]campus.Campus, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.campuses.all(), nil
}

func (repo *campusRepository) GetCampus(_ context.Context, id string) (campus.Campus, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if c, ok := repo.db.campuses.get(id); ok {
		return c, nil
	}
	return campus.Campus{}, campus.ErrNotFound
}

func (repo *campusRepository) UpdateCampus(_ context.Context, id string, uc campus.UpdateCampus) (campus.Campus, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c, ok := repo.db.campuses.rows[id]
	if !ok {
		return campus.Campus{}, campus.ErrNotFound
	}
	uc.Apply(c)
	return *c, nil
}

func (repo *campusRepository) DeleteCampus(_ context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if !repo.db.campuses.delete(id) {
		return campus.ErrNotFound
	}
	return nil
}
