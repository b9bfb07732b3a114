package user

import (
	"context"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
	"github.com/rise-and-shine/cqrskit/pagination"
	"github.com/rise-and-shine/cqrskit/result"
	"github.com/rise-and-shine/cqrskit/val"
)

type idInput struct {
	ID string `json:"id" validate:"required,uuid"`
}

// ValidatedService checks inputs before handing them to the wrapped Service.
// Invalid input becomes a failure result and never reaches the buses.
type ValidatedService struct {
	next Service
}

var _ Service = (*ValidatedService)(nil)

func NewValidatedService(next Service) *ValidatedService {
	return &ValidatedService{next: next}
}

func (s *ValidatedService) CreateUser(ctx context.Context, in CreateUserInput) (result.Result[User], error) {
	if err := val.ValidateSchema(in); err != nil {
		return result.Failure[User](err), nil
	}
	return s.next.CreateUser(ctx, in)
}

func (s *ValidatedService) UpdateUser(ctx context.Context, in UpdateUserInput) (result.Result[User], error) {
	if err := val.ValidateSchema(in); err != nil {
		return result.Failure[User](err), nil
	}
	return s.next.UpdateUser(ctx, in)
}

func (s *ValidatedService) DeactivateUser(ctx context.Context, id string) (result.Result[User], error) {
	if err := val.ValidateSchema(idInput{ID: id}); err != nil {
		return result.Failure[User](err), nil
	}
	return s.next.DeactivateUser(ctx, id)
}

func (s *ValidatedService) ActivateUser(ctx context.Context, id string) (result.Result[User], error) {
	if err := val.ValidateSchema(idInput{ID: id}); err != nil {
		return result.Failure[User](err), nil
	}
	return s.next.ActivateUser(ctx, id)
}

func (s *ValidatedService) DeleteUser(ctx context.Context, id string) (result.Result[command.EmptyResult], error) {
	if err := val.ValidateSchema(idInput{ID: id}); err != nil {
		return result.Failure[command.EmptyResult](err), nil
	}
	return s.next.DeleteUser(ctx, id)
}

func (s *ValidatedService) GetUser(ctx context.Context, id string) (result.Result[User], error) {
	if err := val.ValidateSchema(idInput{ID: id}); err != nil {
		return result.Failure[User](err), nil
	}
	return s.next.GetUser(ctx, id)
}

func (s *ValidatedService) ListUsers(ctx context.Context, in ListUsersInput) (result.Result[pagination.Page[User]], error) {
	if err := val.ValidateSchema(in); err != nil {
		return result.Failure[pagination.Page[User]](err), nil
	}
	if in.Params.Page < 0 || in.Params.Limit < 0 {
		return result.Failure[pagination.Page[User]](in.Params.Validate()), nil
	}
	return s.next.ListUsers(ctx, in)
}
