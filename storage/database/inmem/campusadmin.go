package inmemdb

import (
	"context"

	"github.com/alfurqan/campusreg/core/campusadmin"
)

type campusAdminRepository struct {
	db *DB
}

var _ campusadmin.Repository = (*campusAdminRepository)(nil)

func NewCampusAdminRepository(db *DB) *campusAdminRepository {
	return &campusAdminRepository{db: db}
}

// checkUniqueness must be called with the lock held.
// The campus rule is reported before the email rule, whatever the row order.
func (repo *campusAdminRepository) checkUniqueness(campusID, email, excludeID string) error {
	admins := repo.db.campusAdmins.all()
	for _, adm := range admins {
		if adm.ID != excludeID && adm.CampusID == campusID {
			return campusadmin.ErrCampusAssigned
		}
	}
	for _, adm := range admins {
		if adm.ID != excludeID && adm.Email == email {
			return campusadmin.ErrEmailTaken
		}
	}
	return nil
}

func (repo *campusAdminRepository) CheckUniqueness(_ context.Context, campusID, email, excludeID string) error {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.checkUniqueness(campusID, email, excludeID)
}

func (repo *campusAdminRepository) CreateCampusAdmin(_ context.Context, adm campusadmin.CampusAdmin) (campusadmin.CampusAdmin, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	// checked and inserted under the same write lock
	if err := repo.checkUniqueness(adm.CampusID, adm.Email, ""); err != nil {
		return campusadmin.CampusAdmin{}, err
	}
	adm.ID = newID()
	adm.CreatedAt = now()
	repo.db.campusAdmins.insert(adm.ID, adm)
	return adm, nil
}

func (repo *campusAdminRepository) QueryCampusAdmins(context.Context) ([]campusadmin.CampusAdmin, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.campusAdmins.all(), nil
}

func (repo *campusAdminRepository) GetCampusAdmin(_ context.Context, id string) (campusadmin.CampusAdmin, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if adm, ok := repo.db.campusAdmins.get(id); ok {
		return adm, nil
	}
	return campusadmin.CampusAdmin{}, campusadmin.ErrNotFound
}

func (repo *campusAdminRepository) GetCampusAdminByEmail(_ context.Context, email string) (campusadmin.CampusAdmin, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, adm := range repo.db.campusAdmins.all() {
		if adm.Email == email {
			return adm, nil
		}
	}
	return campusadmin.CampusAdmin{}, campusadmin.ErrNotFound
}

func (repo *campusAdminRepository) UpdateCampusAdmin(_ context.Context, adm campusadmin.CampusAdmin) (campusadmin.CampusAdmin, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	stored, ok := repo.db.campusAdmins.rows[adm.ID]
	if !ok {
		return campusadmin.CampusAdmin{}, campusadmin.ErrNotFound
	}
	if err := repo.checkUniqueness(adm.CampusID, adm.Email, adm.ID); err != nil {
		return campusadmin.CampusAdmin{}, err
	}
	stored.Email = adm.Email
	stored.CampusID = adm.CampusID
	stored.PasswordHash = adm.PasswordHash
	return *stored, nil
}

func (repo *campusAdminRepository) DeleteCampusAdmin(_ context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if !repo.db.campusAdmins.delete(id) {
		return campusadmin.ErrNotFound
	}
	return nil
}
