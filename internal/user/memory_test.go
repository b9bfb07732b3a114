package user_test

import (
	"fmt"
	"testing"

	"github.com/code19m/errx"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/cqrskit/internal/user"
	"github.com/rise-and-shine/cqrskit/pagination"
)

func mustUser(t *testing.T, email, name string) user.User {
	t.Helper()
	u, err := user.NewUser(email, name)
	require.NoError(t, err)
	return u
}

func TestMemoryRepositoryCRUD(t *testing.T) {
	ctx := t.Context()
	repo := user.NewMemoryRepository()
	ann := mustUser(t, "ann@example.com", "Ann")

	require.NoError(t, repo.Save(ctx, ann))

	got, err := repo.FindByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, ann, got)

	got, err = repo.FindByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, got.ID)

	err = repo.Save(ctx, mustUser(t, "ann@example.com", "Other Ann"))
	assert.True(t, errx.IsCodeIn(err, user.CodeEmailAlreadyExists))

	require.NoError(t, repo.Delete(ctx, ann.ID))
	_, err = repo.FindByID(ctx, ann.ID)
	assert.True(t, errx.IsCodeIn(err, user.CodeUserNotFound))
	assert.True(t, errx.IsCodeIn(repo.Delete(ctx, ann.ID), user.CodeUserNotFound))
}

func TestMemoryRepositoryListing(t *testing.T) {
	ctx := t.Context()
	repo := user.NewMemoryRepository()

	for i := range 5 {
		u := mustUser(t, fmt.Sprintf("user%d@example.com", i), fmt.Sprintf("User %d", i))
		if i%2 == 1 {
			require.NoError(t, u.Deactivate())
		}
		require.NoError(t, repo.Save(ctx, u))
	}

	active := true
	count, err := repo.Count(ctx, user.Filter{Active: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = repo.Count(ctx, user.Filter{Search: "user 3"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	page, err := repo.List(ctx, user.Filter{}, pagination.Params{Page: 1, Limit: 2, SortBy: "name", SortDir: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"User 4", "User 3"}, lo.Map(page, func(u user.User, _ int) string { return u.Name }))

	page, err = repo.List(ctx, user.Filter{}, pagination.Params{Page: 4, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
}
