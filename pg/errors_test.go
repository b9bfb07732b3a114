package pg_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/cqrskit/pg"
)

type rawQuery string

func (q rawQuery) String() string { return string(q) }

func TestErrorClassification(t *testing.T) {
	conflict := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	assert.True(t, pg.IsConflict(conflict))
	assert.Equal(t, "users_email_key", pg.ConstraintName(conflict))

	assert.False(t, pg.IsConflict(errors.New("plain")))
	assert.Empty(t, pg.ConstraintName(errors.New("plain")))

	assert.True(t, pg.IsNotFound(fmt.Errorf("select: %w", sql.ErrNoRows)))
}

type panickyQuery struct{}

func (panickyQuery) String() string { panic("model is nil") }

func TestErrorDetails(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"}

	details := pg.ErrorDetails(err, rawQuery(`SELECT "u"."id" FROM users`))

	assert.Equal(t, errx.D{
		"query":         "SELECT u.id FROM users",
		"pg.code":       "23505",
		"pg.table":      "users",
		"pg.constraint": "users_email_key",
	}, details)

	assert.Empty(t, pg.ErrorDetails(errors.New("plain"), nil))
	assert.Empty(t, pg.ErrorDetails(errors.New("plain"), panickyQuery{}))
}

func TestQueryError(t *testing.T) {
	require.NoError(t, pg.QueryError(nil, rawQuery("SELECT 1")))

	cause := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	err := pg.QueryError(cause, rawQuery("INSERT INTO users"), errx.WithCode("EMAIL_ALREADY_EXISTS"))

	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, "EMAIL_ALREADY_EXISTS"))
	assert.Equal(t, "INSERT INTO users", errx.AsErrorX(err).Details()["query"])
	assert.Equal(t, "duplicate key", errx.AsErrorX(err).Details()["pg.message"])
}
