package user

import (
	"context"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
	"github.com/rise-and-shine/cqrskit/cqrs/query"
	"github.com/rise-and-shine/cqrskit/pagination"
	"github.com/rise-and-shine/cqrskit/result"
)

type CreateUserInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"required,notblank,max=100"`
}

type UpdateUserInput struct {
	ID    string `json:"id"    validate:"required,uuid"`
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name"  validate:"omitempty,notblank,max=100"`
}

type ListUsersInput struct {
	Params pagination.Params `json:"params"`
	Active *bool             `json:"active"`
	Search string            `json:"search" validate:"max=100"`
}

// Service is the entry point of the user feature.
type Service interface {
	CreateUser(ctx context.Context, in CreateUserInput) (result.Result[User], error)
	UpdateUser(ctx context.Context, in UpdateUserInput) (result.Result[User], error)
	DeactivateUser(ctx context.Context, id string) (result.Result[User], error)
	ActivateUser(ctx context.Context, id string) (result.Result[User], error)
	DeleteUser(ctx context.Context, id string) (result.Result[command.EmptyResult], error)
	GetUser(ctx context.Context, id string) (result.Result[User], error)
	ListUsers(ctx context.Context, in ListUsersInput) (result.Result[pagination.Page[User]], error)
}

// BusService implements Service by turning each call into a command or query.
type BusService struct {
	commands command.Dispatcher
	queries  query.Dispatcher
}

var _ Service = (*BusService)(nil)

func NewService(commands command.Dispatcher, queries query.Dispatcher) *BusService {
	return &BusService{commands: commands, queries: queries}
}

func (s *BusService) CreateUser(ctx context.Context, in CreateUserInput) (result.Result[User], error) {
	return command.Execute[result.Result[User]](ctx, s.commands, NewCreateUser(in.Email, in.Name))
}

func (s *BusService) UpdateUser(ctx context.Context, in UpdateUserInput) (result.Result[User], error) {
	return command.Execute[result.Result[User]](ctx, s.commands, NewUpdateUser(in.ID, in.Email, in.Name))
}

func (s *BusService) DeactivateUser(ctx context.Context, id string) (result.Result[User], error) {
	return command.Execute[result.Result[User]](ctx, s.commands, NewDeactivateUser(id))
}

func (s *BusService) ActivateUser(ctx context.Context, id string) (result.Result[User], error) {
	return command.Execute[result.Result[User]](ctx, s.commands, NewActivateUser(id))
}

func (s *BusService) DeleteUser(ctx context.Context, id string) (result.Result[command.EmptyResult], error) {
	return command.Execute[result.Result[command.EmptyResult]](ctx, s.commands, NewDeleteUser(id))
}

func (s *BusService) GetUser(ctx context.Context, id string) (result.Result[User], error) {
	return query.Execute[result.Result[User]](ctx, s.queries, NewGetUserByID(id))
}

func (s *BusService) ListUsers(ctx context.Context, in ListUsersInput) (result.Result[pagination.Page[User]], error) {
	return query.Execute[result.Result[pagination.Page[User]]](ctx, s.queries, NewGetUsers(in.Params, in.Active, in.Search))
}
