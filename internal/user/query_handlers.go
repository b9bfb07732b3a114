package user

import (
	"context"

	"github.com/rise-and-shine/cqrskit/cqrs/query"
	"github.com/rise-and-shine/cqrskit/pagination"
	"github.com/rise-and-shine/cqrskit/result"
)

// QueryHandlers serves the user queries.
type QueryHandlers struct {
	repo  Repository
	pages pagination.Config
}

func NewQueryHandlers(repo Repository, pages pagination.Config) *QueryHandlers {
	return &QueryHandlers{repo: repo, pages: pages}
}

// Register routes every user query on bus.
func (h *QueryHandlers) Register(bus *query.Bus) error {
	return bus.Register(
		query.NewHandler(h.GetByID),
		query.NewHandler(h.List),
	)
}

func (h *QueryHandlers) GetByID(ctx context.Context, q GetUserByID) (result.Result[User], error) {
	u, err := h.repo.FindByID(ctx, q.UserID)
	if err != nil {
		return fail[User](err)
	}
	return result.Success(u), nil
}

// List returns one page of users. Missing page and limit fall back to the
// configured defaults; negative values are rejected.
func (h *QueryHandlers) List(ctx context.Context, q GetUsers) (result.Result[pagination.Page[User]], error) {
	params := q.Params
	if params.Page < 0 || params.Limit < 0 {
		return result.Failure[pagination.Page[User]](params.Validate()), nil
	}
	params.Normalize(h.pages)

	f := q.filter()
	total, err := h.repo.Count(ctx, f)
	if err != nil {
		return fail[pagination.Page[User]](err)
	}

	items, err := h.repo.List(ctx, f, params)
	if err != nil {
		return fail[pagination.Page[User]](err)
	}

	return result.Success(pagination.NewPage(items, total, params)), nil
}
