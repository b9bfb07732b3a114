package user

import (
	"context"

	"github.com/rise-and-shine/cqrskit/pagination"
)

// SortFields are the keys a listing may be ordered by.
//
//nolint:gochecknoglobals // read-only list
var SortFields = []string{"created_at", "updated_at", "name", "email"}

// Filter narrows a user listing.
type Filter struct {
	Active *bool
	Search string
}

// Repository stores users.
//
// FindByID and FindByEmail fail with USER_NOT_FOUND when nothing matches.
// Save inserts or replaces by id and fails with EMAIL_ALREADY_EXISTS when the
// email belongs to another user.
type Repository interface {
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Save(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter, p pagination.Params) ([]User, error)
	Count(ctx context.Context, f Filter) (int64, error)
}
