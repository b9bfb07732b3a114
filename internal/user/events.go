package user

import (
	"github.com/rise-and-shine/cqrskit/event"
)

// Event type tags.
const (
	EventCreated     = "user.created"
	EventUpdated     = "user.updated"
	EventDeactivated = "user.deactivated"
	EventActivated   = "user.activated"
	EventDeleted     = "user.deleted"
)

// EventTypes lists every event the feature publishes.
//
//nolint:gochecknoglobals // read-only list
var EventTypes = []string{EventCreated, EventUpdated, EventDeactivated, EventActivated, EventDeleted}

type UserCreated struct {
	event.Meta

	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserCreated(u User) UserCreated {
	return UserCreated{Meta: event.NewMeta(EventCreated, u.ID), Email: u.Email, Name: u.Name}
}

type UserUpdated struct {
	event.Meta

	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserUpdated(u User) UserUpdated {
	return UserUpdated{Meta: event.NewMeta(EventUpdated, u.ID), Email: u.Email, Name: u.Name}
}

type UserDeactivated struct {
	event.Meta
}

func newUserDeactivated(u User) UserDeactivated {
	return UserDeactivated{Meta: event.NewMeta(EventDeactivated, u.ID)}
}

type UserActivated struct {
	event.Meta
}

func newUserActivated(u User) UserActivated {
	return UserActivated{Meta: event.NewMeta(EventActivated, u.ID)}
}

type UserDeleted struct {
	event.Meta

	Email     string `json:"email"`
	WasActive bool   `json:"was_active"`
}

func newUserDeleted(u User) UserDeleted {
	return UserDeleted{Meta: event.NewMeta(EventDeleted, u.ID), Email: u.Email, WasActive: u.IsActive}
}
