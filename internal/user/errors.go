package user

import (
	"github.com/code19m/errx"
)

const (
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeUserAlreadyDeactivated = "USER_ALREADY_DEACTIVATED"
	CodeUserAlreadyActive      = "USER_ALREADY_ACTIVE"
	CodeEmailAlreadyExists     = "EMAIL_ALREADY_EXISTS"
	CodeInvalidUser            = "INVALID_USER"
)

// NotFound is returned by repositories when no user matches.
func NotFound(by, value string) error {
	return errx.New(
		"user not found",
		errx.WithCode(CodeUserNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{by: value}),
	)
}

// EmailTaken is returned when email already belongs to another user.
func EmailTaken(email string) error {
	return errx.New(
		"email already exists",
		errx.WithCode(CodeEmailAlreadyExists),
		errx.WithType(errx.T_Conflict),
		errx.WithDetails(errx.D{"email": email}),
	)
}

// isDomainFailure reports whether err is a business rule violation that
// belongs in a failure result rather than in the error return.
func isDomainFailure(err error) bool {
	return errx.IsCodeIn(err,
		CodeUserNotFound,
		CodeUserAlreadyDeactivated,
		CodeUserAlreadyActive,
		CodeEmailAlreadyExists,
		CodeInvalidUser,
	)
}
