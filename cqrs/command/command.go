// Package command defines commands, their handlers and the Bus that dispatches them.
//
// A command is an immutable request to change state. Concrete commands embed Meta
// and name themselves through CommandType:
//
//	type CreateUser struct {
//		command.Meta
//		Email string `json:"email" validate:"required,email"`
//	}
//
//	func (CreateUser) CommandType() string { return "user.create" }
//
// Commands are passed by value so that handlers and middlewares cannot mutate them.
package command

import (
	"time"

	"github.com/google/uuid"
)

// Command is a write intent routed to exactly one handler.
type Command interface {
	// CommandID uniquely identifies this command instance.
	CommandID() string
	// CommandTime is when the command was created.
	CommandTime() time.Time
	// CommandType is the discriminant tag handlers are routed by.
	CommandType() string
}

// Meta carries the identity every command needs. Embed it in concrete commands.
type Meta struct {
	ID        string    `json:"command_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMeta returns Meta with a fresh uuid and the current time.
func NewMeta() Meta {
	return Meta{ID: uuid.NewString(), CreatedAt: time.Now()}
}

func (m Meta) CommandID() string { return m.ID }

func (m Meta) CommandTime() time.Time { return m.CreatedAt }

// EmptyResult is returned by handlers of commands that produce no value.
type EmptyResult = struct{}
