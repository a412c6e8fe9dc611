package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/kumarvvr/salesnisha-server/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes this layer cares about. The full class listing lives in
// the Postgres docs, appendix A.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"

	// Class 08 covers connection exceptions; class 57 covers operator
	// intervention such as shutdown and crash recovery.
	classConnectionException  = "08"
	classOperatorIntervention = "57"
)

// Handle converts a low-level database error into an application error.
//
// Behavior:
//   - nil stays nil
//   - errors already classified by errs are returned unchanged
//   - pgconn.PgError is mapped by SQLSTATE
//   - pgx.ErrNoRows / sql.ErrNoRows become a not-found error for entity
//   - connection-level faults become store-unavailable
//   - anything else becomes an internal error
//
// entity names what was being queried ("item", "location", "sale event")
// and only shapes messages, never control flow.
func Handle(err error, entity string) error {
	if err == nil {
		return nil
	}

	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return convertPgError(pgErr, entity)
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.NotFound, entity+" not found", err)
	}

	if isConnectionFault(err) {
		return errs.Wrap(errs.Unavailable, "store unavailable", err)
	}

	return errs.Wrap(errs.Internal, fmt.Sprintf("%s query failed", entity), err)
}

func convertPgError(pgErr *pgconn.PgError, entity string) error {
	switch pgErr.Code {
	case codeUniqueViolation:
		msg := fmt.Sprintf("%s already exists", entity)
		if pgErr.ConstraintName != "" {
			msg = fmt.Sprintf("%s already exists (constraint %s)", entity, pgErr.ConstraintName)
		}
		return errs.Wrap(errs.DuplicateKey, msg, pgErr)

	case codeForeignKeyViolation:
		return errs.Wrap(errs.MalformedRecord,
			fmt.Sprintf("%s references a row that does not exist", entity), pgErr)

	case codeNotNullViolation:
		return errs.Wrap(errs.MalformedRecord,
			fmt.Sprintf("%s is missing required column %s", entity, pgErr.ColumnName), pgErr)

	case codeCheckViolation:
		return errs.Wrap(errs.MalformedRecord,
			fmt.Sprintf("%s violates check constraint %s", entity, pgErr.ConstraintName), pgErr)
	}

	switch sqlstateClass(pgErr.Code) {
	case classConnectionException, classOperatorIntervention:
		return errs.Wrap(errs.Unavailable, "store unavailable", pgErr)
	}

	return errs.Wrap(errs.Internal, fmt.Sprintf("%s query failed", entity), pgErr)
}

func sqlstateClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}

// isConnectionFault catches faults raised before the server could answer
// with a SQLSTATE: dial errors, closed pools, cancelled contexts.
func isConnectionFault(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	// pgxpool reports acquiring from a closed pool as a plain error.
	return strings.Contains(err.Error(), "closed pool")
}
