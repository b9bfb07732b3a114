package app

import (
	"context"
	"fmt"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/container"
	"github.com/rise-and-shine/cqrskit/internal/user"
	"github.com/rise-and-shine/cqrskit/pagination"
)

// RunScenario walks through the user lifecycle once: it creates a few users,
// deactivates one of them twice and lists the rest. It is what the demo
// binary runs without a server.
func (a *App) RunScenario(ctx context.Context) error {
	service, err := a.Service()
	if err != nil {
		return err
	}
	log := a.logger.Named("scenario").WithContext(ctx)

	var first user.User
	for i := range 3 {
		res, createErr := service.CreateUser(ctx, user.CreateUserInput{
			Email: fmt.Sprintf("user%d@example.com", i),
			Name:  fmt.Sprintf("User %d", i),
		})
		if createErr != nil {
			return createErr
		}
		u, failure := res.Get()
		if failure != nil {
			return failure
		}
		if i == 0 {
			first = u
		}
		log.With("user_id", u.ID).Info("user created")
	}

	for range 2 {
		res, deactivateErr := service.DeactivateUser(ctx, first.ID)
		if deactivateErr != nil {
			return deactivateErr
		}
		if res.IsFailure() {
			log.With("code", errx.AsErrorX(res.Err()).Code()).Warn("deactivation rejected")
			continue
		}
		log.With("user_id", first.ID).Info("user deactivated")
	}

	active := true
	listed, err := service.ListUsers(ctx, user.ListUsersInput{
		Params: pagination.Params{Page: 1, Limit: 10},
		Active: &active,
	})
	if err != nil {
		return err
	}
	page, err := listed.Get()
	if err != nil {
		return err
	}

	stats, err := container.Resolve[*user.Statistics](a.container, IDStatistics)
	if err != nil {
		return err
	}

	log.With(
		"active_listed", len(page.Items),
		"stats", stats.Snapshot(),
	).Info("scenario finished")
	return nil
}
