package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEmailTaken indicates the email is already registered to some user.
	ErrEmailTaken = errors.New("email already registered")
	// ErrEmailNotFound is returned by Login when no account exists for the
	// email. The self-service login deliberately distinguishes this case.
	ErrEmailNotFound = errors.New("email not registered")
	// ErrInvalidPassword is returned by Login when the password does not
	// match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidCredentials is returned by AdminLogin for both unknown
	// email and wrong password, so the admin portal never reveals whether
	// an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAdmin is returned by AdminLogin when the credentials are
	// correct but the account is not an administrator.
	ErrNotAdmin = errors.New("account is not an administrator")
	// ErrSelfDelete is returned when an admin tries to delete their own
	// account.
	ErrSelfDelete = errors.New("cannot delete own account")
	// ErrLastAdmin is returned when a delete would leave the system with
	// no admin.
	ErrLastAdmin = errors.New("cannot delete the last admin")
)

// ValidationError marks malformed or missing caller input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
