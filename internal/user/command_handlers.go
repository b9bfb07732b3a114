package user

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
	"github.com/rise-and-shine/cqrskit/event"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/result"
)

// CommandHandlers serves the user commands. Business rule violations come
// back as failure results; the error return is reserved for infrastructure
// problems such as an unreachable store.
type CommandHandlers struct {
	repo   Repository
	events event.Publisher
	logger logger.Logger
}

func NewCommandHandlers(repo Repository, events event.Publisher, log logger.Logger) *CommandHandlers {
	return &CommandHandlers{
		repo:   repo,
		events: events,
		logger: log.Named("user.commands"),
	}
}

// Register routes every user command on bus.
func (h *CommandHandlers) Register(bus *command.Bus) error {
	return bus.Register(
		command.NewHandler(h.Create),
		command.NewHandler(h.Update),
		command.NewHandler(h.Deactivate),
		command.NewHandler(h.Activate),
		command.NewHandler(h.Delete),
	)
}

func (h *CommandHandlers) Create(ctx context.Context, cmd CreateUser) (result.Result[User], error) {
	_, err := h.repo.FindByEmail(ctx, cmd.Email)
	switch {
	case err == nil:
		return fail[User](EmailTaken(normalizeEmail(cmd.Email)))
	case !errx.IsCodeIn(err, CodeUserNotFound):
		return fail[User](err)
	}

	u, err := NewUser(cmd.Email, cmd.Name)
	if err != nil {
		return fail[User](err)
	}

	if err = h.repo.Save(ctx, u); err != nil {
		return fail[User](err)
	}

	return h.publish(ctx, u, newUserCreated(u))
}

func (h *CommandHandlers) Update(ctx context.Context, cmd UpdateUser) (result.Result[User], error) {
	u, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return fail[User](err)
	}

	changed, err := u.Rename(cmd.Email, cmd.Name)
	if err != nil {
		return fail[User](err)
	}
	if !changed {
		return result.Success(u), nil
	}

	if err = h.repo.Save(ctx, u); err != nil {
		return fail[User](err)
	}

	return h.publish(ctx, u, newUserUpdated(u))
}

func (h *CommandHandlers) Deactivate(ctx context.Context, cmd DeactivateUser) (result.Result[User], error) {
	return h.transition(ctx, cmd.UserID, (*User).Deactivate, func(u User) event.Event {
		return newUserDeactivated(u)
	})
}

func (h *CommandHandlers) Activate(ctx context.Context, cmd ActivateUser) (result.Result[User], error) {
	return h.transition(ctx, cmd.UserID, (*User).Activate, func(u User) event.Event {
		return newUserActivated(u)
	})
}

func (h *CommandHandlers) Delete(ctx context.Context, cmd DeleteUser) (result.Result[command.EmptyResult], error) {
	u, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return fail[command.EmptyResult](err)
	}

	if err = h.repo.Delete(ctx, u.ID); err != nil {
		return fail[command.EmptyResult](err)
	}

	if err = h.events.Publish(ctx, newUserDeleted(u)); err != nil {
		return result.Result[command.EmptyResult]{}, errx.Wrap(err)
	}
	return result.Success(command.EmptyResult{}), nil
}

func (h *CommandHandlers) transition(
	ctx context.Context,
	userID string,
	apply func(*User) error,
	newEvent func(User) event.Event,
) (result.Result[User], error) {
	u, err := h.repo.FindByID(ctx, userID)
	if err != nil {
		return fail[User](err)
	}

	if err = apply(&u); err != nil {
		return fail[User](err)
	}

	if err = h.repo.Save(ctx, u); err != nil {
		return fail[User](err)
	}

	return h.publish(ctx, u, newEvent(u))
}

// publish emits e after u has been stored. A publishing failure is reported
// as an error even though the change is already persisted.
func (h *CommandHandlers) publish(ctx context.Context, u User, e event.Event) (result.Result[User], error) {
	if err := h.events.Publish(ctx, e); err != nil {
		h.logger.WithContext(ctx).With("user_id", u.ID).Errorx(err)
		return result.Result[User]{}, errx.Wrap(err)
	}
	return result.Success(u), nil
}

// fail sorts err into a failure result or an infrastructure error.
func fail[T any](err error) (result.Result[T], error) {
	if isDomainFailure(err) {
		return result.Failure[T](err), nil
	}
	return result.Result[T]{}, errx.Wrap(err)
}
