package user

import (
	"github.com/rise-and-shine/cqrskit/cqrs/query"
	"github.com/rise-and-shine/cqrskit/pagination"
)

// Query type tags.
const (
	QueryGetByID = "user.get_by_id"
	QueryList    = "user.list"
)

type GetUserByID struct {
	query.Meta

	UserID string `json:"user_id"`
}

func NewGetUserByID(userID string) GetUserByID {
	return GetUserByID{Meta: query.NewMeta(), UserID: userID}
}

func (GetUserByID) QueryType() string { return QueryGetByID }

// GetUsers lists users page by page. Active narrows the listing to active or
// inactive users when set; Search matches name or email case-insensitively.
type GetUsers struct {
	query.Meta

	Params pagination.Params `json:"params"`
	Active *bool             `json:"active,omitempty"`
	Search string            `json:"search,omitempty"`
}

func NewGetUsers(params pagination.Params, active *bool, search string) GetUsers {
	return GetUsers{Meta: query.NewMeta(), Params: params, Active: active, Search: search}
}

func (GetUsers) QueryType() string { return QueryList }

func (q GetUsers) filter() Filter {
	return Filter{Active: q.Active, Search: q.Search}
}
