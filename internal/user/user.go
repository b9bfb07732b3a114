// Package user is the user management feature: the User aggregate, its
// commands, queries and events, the handlers that serve them and the
// application service callers talk to.
package user

import (
	"strings"
	"time"

	"github.com/code19m/errx"
	"github.com/google/uuid"
)

// User is the aggregate root of the feature.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates an active user with a fresh id. Name and email must not be blank.
func NewUser(email, name string) (User, error) {
	email, name = normalizeEmail(email), strings.TrimSpace(name)
	if err := checkIdentity(email, name); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	return User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Deactivate marks the user inactive. Deactivating an inactive user fails
// with USER_ALREADY_DEACTIVATED.
func (u *User) Deactivate() error {
	if !u.IsActive {
		return errx.New(
			"user is already deactivated",
			errx.WithCode(CodeUserAlreadyDeactivated),
			errx.WithType(errx.T_Conflict),
			errx.WithDetails(errx.D{"user_id": u.ID}),
		)
	}
	u.IsActive = false
	u.touch()
	return nil
}

// Activate marks the user active again.
func (u *User) Activate() error {
	if u.IsActive {
		return errx.New(
			"user is already active",
			errx.WithCode(CodeUserAlreadyActive),
			errx.WithType(errx.T_Conflict),
			errx.WithDetails(errx.D{"user_id": u.ID}),
		)
	}
	u.IsActive = true
	u.touch()
	return nil
}

// Rename changes name and email. Empty arguments keep the current value.
// It reports whether anything changed.
func (u *User) Rename(email, name string) (bool, error) {
	next := *u
	if email = normalizeEmail(email); email != "" {
		next.Email = email
	}
	if name = strings.TrimSpace(name); name != "" {
		next.Name = name
	}
	if err := checkIdentity(next.Email, next.Name); err != nil {
		return false, err
	}
	if next.Email == u.Email && next.Name == u.Name {
		return false, nil
	}

	u.Email, u.Name = next.Email, next.Name
	u.touch()
	return true, nil
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkIdentity(email, name string) error {
	fields := make(errx.M)
	if email == "" {
		fields["email"] = "This field is required"
	}
	if name == "" {
		fields["name"] = "This field is required"
	}
	if len(fields) == 0 {
		return nil
	}

	return errx.New(
		"invalid user",
		errx.WithCode(CodeInvalidUser),
		errx.WithType(errx.T_Validation),
		errx.WithFields(fields),
	)
}
