package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/alfurqan/campusreg/core"
	"github.com/alfurqan/campusreg/core/campusadmin"
)

const campusAdminColumns = "id, email, password_hash, campus_id, created_at"

// unique constraints of the campus_admin table
var campusAdminConstraints = map[string]error{
	"campus_admin_campus_id_key": campusadmin.ErrCampusAssigned,
	"campus_admin_email_key":     campusadmin.ErrEmailTaken,
}

type campusAdminRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CampusID     string    `db:"campus_id"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r campusAdminRow) toDomain() campusadmin.CampusAdmin {
	return campusadmin.CampusAdmin{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CampusID:     r.CampusID,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

type campusAdminRepository struct {
	exec core.DBExecutor
}

var _ campusadmin.Repository = (*campusAdminRepository)(nil) // interface compliance check

func NewCampusAdminRepository(exec core.DBExecutor) *campusAdminRepository {
	return &campusAdminRepository{exec: exec}
}

// trapUniqueErr maps the unique constraint violations to the domain errors.
func (repo campusAdminRepository) trapUniqueErr(err error, msg string) error {
	if constraint, ok := violatedConstraint(err); ok {
		if domainErr, ok := campusAdminConstraints[constraint]; ok {
			return domainErr
		}
	}
	return errors.Wrap(err, msg)
}

func (repo campusAdminRepository) CheckUniqueness(ctx context.Context, campusID, email, excludeID string) error {
	var rows []struct {
		CampusID string `db:"campus_id"`
		Email    string `db:"email"`
	}
	err := repo.exec.SelectContext(ctx, &rows,
		`SELECT campus_id, email FROM campus_admin
		 WHERE (campus_id::text = $1 OR email = $2) AND ($3 = '' OR id::text <> $3)`,
		campusID, email, excludeID)
	if err != nil {
		return errors.Wrap(err, "checking campus admin uniqueness")
	}
	for _, r := range rows {
		if r.CampusID == campusID {
			return campusadmin.ErrCampusAssigned
		}
	}
	if len(rows) > 0 {
		return campusadmin.ErrEmailTaken
	}
	return nil
}

func (repo campusAdminRepository) CreateCampusAdmin(ctx context.Context, adm campusadmin.CampusAdmin) (campusadmin.CampusAdmin, error) {
	if !validID(adm.CampusID) {
		return campusadmin.CampusAdmin{}, errors.Errorf("invalid campus id %q", adm.CampusID)
	}
	var row campusAdminRow
	err := repo.exec.GetContext(ctx, &row,
		"INSERT INTO campus_admin (id, email, password_hash, campus_id) VALUES ($1, $2, $3, $4) RETURNING "+campusAdminColumns,
		uuid.New().String(), adm.Email, adm.PasswordHash, adm.CampusID)
	if err != nil {
		return campusadmin.CampusAdmin{}, repo.trapUniqueErr(err, "inserting campus admin")
	}
	return row.toDomain(), nil
}

func (repo campusAdminRepository) QueryCampusAdmins(ctx context.Context) ([]campusadmin.CampusAdmin, error) {
	var rows []campusAdminRow
	if err := repo.exec.SelectContext(ctx, &rows, "SELECT "+campusAdminColumns+" FROM campus_admin ORDER BY created_at, id"); err != nil {
		return nil, errors.Wrap(err, "selecting campus admins")
	}
	admins := make([]campusadmin.CampusAdmin, 0, len(rows))
	for _, r := range rows {
		admins = append(admins, r.toDomain())
	}
	return admins, nil
}

func (repo campusAdminRepository) get(ctx context.Context, where string, arg interface{}) (campusadmin.CampusAdmin, error) {
	var row campusAdminRow
	if err := repo.exec.GetContext(ctx, &row, "SELECT "+campusAdminColumns+" FROM campus_admin WHERE "+where, arg); err != nil {
		return campusadmin.CampusAdmin{}, trapNoRowsErr(err, campusadmin.ErrNotFound, "selecting campus admin")
	}
	return row.toDomain(), nil
}

func (repo campusAdminRepository) GetCampusAdmin(ctx context.Context, id string) (campusadmin.CampusAdmin, error) {
	if !validID(id) {
		return campusadmin.CampusAdmin{}, campusadmin.ErrNotFound
	}
	return repo.get(ctx, "id = $1", id)
}

func (repo campusAdminRepository) GetCampusAdminByEmail(ctx context.Context, email string) (campusadmin.CampusAdmin, error) {
	return repo.get(ctx, "email = $1", email)
}

func (repo campusAdminRepository) UpdateCampusAdmin(ctx context.Context, adm campusadmin.CampusAdmin) (campusadmin.CampusAdmin, error) {
	if !validID(adm.ID) {
		return campusadmin.CampusAdmin{}, campusadmin.ErrNotFound
	}
	var row campusAdminRow
	err := repo.exec.GetContext(ctx, &row,
		"UPDATE campus_admin SET email = $1, password_hash = $2, campus_id = $3 WHERE id = $4 RETURNING "+campusAdminColumns,
		adm.Email, adm.PasswordHash, adm.CampusID, adm.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return campusadmin.CampusAdmin{}, campusadmin.ErrNotFound
		}
		return campusadmin.CampusAdmin{}, repo.trapUniqueErr(err, "updating campus admin")
	}
	return row.toDomain(), nil
}

func (repo campusAdminRepository) DeleteCampusAdmin(ctx context.Context, id string) error {
	if !validID(id) {
		return campusadmin.ErrNotFound
	}
	return deleteByID(ctx, repo.exec, "campus_admin", id, campusadmin.ErrNotFound)
}
