package inmemdb

import (
	"context"

	"github.com/alfurqan/campusreg/core/registration"
)

type registrationRepository struct {
	db *DB
}

var _ registration.Repository = (*registrationRepository)(nil)

func NewRegistrationRepository(db *DB) *registrationRepository {
	return &registrationRepository{db: db}
}

func (repo *registrationRepository) CreateRegistration(_ context.Context, r registration.Registration) (registration.Registration, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	r.ID = newID()
	r.CreatedAt = now()
	repo.db.registrations.insert(r.ID, r)
	return r, nil
}

func (repo *registrationRepository) QueryRegistrations(_ context.Context, filter registration.QueryFilter) ([]registration.Registration, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	all := repo.db.registrations.all()
	if filter.CampusID == "" {
		return all, nil
	}
	regs := make([]registration.Registration, 0, len(all))
	for _, r := range all {
		if r.CampusID == filter.CampusID {
			regs = append(regs, r)
		}
	}
	return regs, nil
}

func (repo *registrationRepository) GetRegistration(_ context.Context, id string) (registration.Registration, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if r, ok := repo.db.registrations.get(id); ok {
		return r, nil
	}
	return registration.Registration{}, registration.ErrNotFound
}

func (repo *registrationRepository) GetRegistrationByNo(_ context.Context, regNo string) (registration.Registration, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, r := range repo.db.registrations.all() {
		if r.RegistrationNo == regNo {
			return r, nil
		}
	}
	return registration.Registration{}, registration.ErrNotFound
}

func (repo *registrationRepository) UpdateRegistration(_ context.Context, id string, ur registration.UpdateRegistration) (registration.Registration, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	r, ok := repo.db.registrations.rows[id]
	if !ok {
		return registration.Registration{}, registration.ErrNotFound
	}
	ur.Apply(r)
	return *r, nil
}

func (repo *registrationRepository) DeleteRegistration(_ context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if !repo.db.registrations.delete(id) {
		return registration.ErrNotFound
	}
	return nil
}
