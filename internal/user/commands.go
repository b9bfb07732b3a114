package user

import (
	"github.com/rise-and-shine/cqrskit/cqrs/command"
)

// Command type tags.
const (
	CommandCreate     = "user.create"
	CommandUpdate     = "user.update"
	CommandDeactivate = "user.deactivate"
	CommandActivate   = "user.activate"
	CommandDelete     = "user.delete"
)

type CreateUser struct {
	command.Meta

	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"required,notblank,max=100"`
}

func NewCreateUser(email, name string) CreateUser {
	return CreateUser{Meta: command.NewMeta(), Email: email, Name: name}
}

func (CreateUser) CommandType() string { return CommandCreate }

// UpdateUser changes the fields that are not empty.
type UpdateUser struct {
	command.Meta

	UserID string `json:"user_id" validate:"required,uuid"`
	Email  string `json:"email"   validate:"omitempty,email"`
	Name   string `json:"name"    validate:"omitempty,notblank,max=100"`
}

func NewUpdateUser(userID, email, name string) UpdateUser {
	return UpdateUser{Meta: command.NewMeta(), UserID: userID, Email: email, Name: name}
}

func (UpdateUser) CommandType() string { return CommandUpdate }

type DeactivateUser struct {
	command.Meta

	UserID string `json:"user_id" validate:"required,uuid"`
}

func NewDeactivateUser(userID string) DeactivateUser {
	return DeactivateUser{Meta: command.NewMeta(), UserID: userID}
}

func (DeactivateUser) CommandType() string { return CommandDeactivate }

type ActivateUser struct {
	command.Meta

	UserID string `json:"user_id" validate:"required,uuid"`
}

func NewActivateUser(userID string) ActivateUser {
	return ActivateUser{Meta: command.NewMeta(), UserID: userID}
}

func (ActivateUser) CommandType() string { return CommandActivate }

type DeleteUser struct {
	command.Meta

	UserID string `json:"user_id" validate:"required,uuid"`
}

func NewDeleteUser(userID string) DeleteUser {
	return DeleteUser{Meta: command.NewMeta(), UserID: userID}
}

func (DeleteUser) CommandType() string { return CommandDelete }
