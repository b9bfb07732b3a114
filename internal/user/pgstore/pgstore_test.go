package pgstore_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/code19m/errx"
	"github.com/spf13/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/cqrskit/internal/user"
	"github.com/rise-and-shine/cqrskit/internal/user/pgstore"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/pagination"
	"github.com/rise-and-shine/cqrskit/pg"
)

// openDB connects to the database named by the PG_TEST_* variables and runs
// the test inside a transaction that is rolled back afterwards.
func openDB(t *testing.T) bun.IDB {
	t.Helper()

	host := os.Getenv("PG_TEST_HOST")
	if host == "" {
		t.Skip("PG_TEST_HOST is not set")
	}

	db, err := pg.NewBunDB(t.Context(), pg.Config{
		Host:         host,
		Port:         cast.ToInt(os.Getenv("PG_TEST_PORT")),
		User:         os.Getenv("PG_TEST_USER"),
		Password:     os.Getenv("PG_TEST_PASSWORD"),
		Database:     os.Getenv("PG_TEST_DATABASE"),
		SSLMode:      "disable",
		SearchPath:   "public",
		PoolMaxConns: 2,
		PoolMinConns: 1,
	}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tx, err := db.BeginTx(t.Context(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })

	require.NoError(t, pgstore.CreateSchema(t.Context(), tx))
	return tx
}

func TestRepository(t *testing.T) {
	ctx := t.Context()
	repo := pgstore.New(openDB(t))

	ann, err := user.NewUser("ann@example.com", "Ann")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, ann))

	got, err := repo.FindByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, got.ID)
	assert.True(t, got.IsActive)

	require.NoError(t, ann.Deactivate())
	require.NoError(t, repo.Save(ctx, ann))

	got, err = repo.FindByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	other, err := user.NewUser("ann@example.com", "Other")
	require.NoError(t, err)
	assert.True(t, errx.IsCodeIn(repo.Save(ctx, other), user.CodeEmailAlreadyExists))

	require.NoError(t, repo.Delete(ctx, ann.ID))
	_, err = repo.FindByID(ctx, ann.ID)
	assert.True(t, errx.IsCodeIn(err, user.CodeUserNotFound))
}

func TestRepositoryListing(t *testing.T) {
	ctx := t.Context()
	repo := pgstore.New(openDB(t))

	for i := range 12 {
		u, err := user.NewUser(fmt.Sprintf("user%02d@example.com", i), fmt.Sprintf("User %02d", i))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, u))
	}

	total, err := repo.Count(ctx, user.Filter{Search: "USER0"})
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)

	items, err := repo.List(ctx, user.Filter{}, pagination.Params{Page: 2, Limit: 5, SortBy: "email", SortDir: "desc"})
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "user06@example.com", items[0].Email)
}
