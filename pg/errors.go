package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE of a unique constraint violation.
const sqlStateUniqueViolation = "23505"

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := errors.As(err, &pgErr)
	return pgErr, ok
}

// IsConflict reports whether err is a unique constraint violation.
func IsConflict(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == sqlStateUniqueViolation
}

// IsNotFound reports whether a single-row scan found nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ConstraintName returns the constraint violated by err, or "" for errors that
// did not come from the server.
func ConstraintName(err error) string {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}

// QueryError wraps err raised by q with ErrorDetails. opts are applied after
// the details, so callers may still set a code or type.
func QueryError(err error, q fmt.Stringer, opts ...errx.OptionFunc) error {
	if err == nil {
		return nil
	}
	return errx.Wrap(err, append([]errx.OptionFunc{errx.WithDetails(ErrorDetails(err, q))}, opts...)...)
}

// ErrorDetails describes a failed statement: the SQL text without identifier
// quotes, plus the non-empty fields of the server error under "pg.*" keys.
func ErrorDetails(err error, q fmt.Stringer) errx.D {
	details := make(errx.D)
	if sqlText := queryString(q); sqlText != "" {
		details["query"] = strings.ReplaceAll(sqlText, `"`, ``)
	}

	pgErr, ok := asPgError(err)
	if !ok {
		return details
	}

	for key, value := range map[string]string{
		"code":       pgErr.Code,
		"severity":   pgErr.Severity,
		"message":    pgErr.Message,
		"detail":     pgErr.Detail,
		"hint":       pgErr.Hint,
		"schema":     pgErr.SchemaName,
		"table":      pgErr.TableName,
		"column":     pgErr.ColumnName,
		"data_type":  pgErr.DataTypeName,
		"constraint": pgErr.ConstraintName,
	} {
		if value != "" {
			details["pg."+key] = value
		}
	}
	return details
}

// queryString renders q, returning "" when q is nil or String panics, which
// bun queries do when their model could not be resolved.
func queryString(q fmt.Stringer) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()

	if q == nil {
		return ""
	}
	return q.String()
}
