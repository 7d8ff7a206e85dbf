// Package sqlxrepos implements the repositories on PostgreSQL with sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/alfurqan/campusreg/core"
)

const uniqueViolation = "23505"

// assignment is one "column = value" of a partial update; skipped unless val is valid.
type assignment struct {
	col string
	val null.String
}

// buildUpdate returns "UPDATE table SET ... WHERE id = $n RETURNING returning".
// ok is false when no assignment is valid.
func buildUpdate(table, id string, assigns []assignment, returning string) (query string, args []interface{}, ok bool) {
	sets := make([]string, 0, len(assigns))
	for _, a := range assigns {
		if !a.val.Valid {
			continue
		}
		args = append(args, a.val.String)
		sets = append(sets, fmt.Sprintf("%s = $%d", a.col, len(args)))
	}
	if len(sets) == 0 {
		return "", nil, false
	}
	args = append(args, id)
	query = fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(sets, ", "), len(args), returning)
	return query, args, true
}

// validID reports whether id can be compared against a UUID column.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// trapNoRowsErr maps "no rows" to notFound and wraps anything else.
func trapNoRowsErr(err, notFound error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// violatedConstraint returns the name of the unique constraint err reports, if any.
func violatedConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// deleteByID deletes exactly one row; notFound is returned when none matched.
func deleteByID(ctx context.Context, exec core.DBExecutor, table, id string, notFound error) error {
	res, err := exec.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting "+table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting "+table)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
