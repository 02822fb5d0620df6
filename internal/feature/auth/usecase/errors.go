// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists is returned when attempting to register a username that already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when the username is unknown or the
	// password is wrong and no remaining-attempts hint should be disclosed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordMismatch is returned by ChangePassword when the current
	// password does not verify against the stored hash.
	ErrPasswordMismatch = errors.New("current password is incorrect")

	// ErrCodeInvalid is returned for a reset code that is unknown, expired or
	// already used. The three cases are deliberately indistinguishable to the
	// caller.
	ErrCodeInvalid = errors.New("invalid or expired code")

	// ErrRateLimited is returned when the client address has exceeded the
	// login attempt budget for the current window.
	ErrRateLimited = errors.New("too many requests, try again later")
)

// LockedError reports a login attempt against a locked account.
type LockedError struct {
	// RemainingMinutes is the whole number of minutes until the lock
	// expires, rounded up and never less than 1.
	RemainingMinutes int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked, try again in %d minute(s)", e.RemainingMinutes)
}

// WrongPasswordError reports a failed password check on an unlocked
// account, with the number of attempts left before the account locks.
type WrongPasswordError struct {
	RemainingAttempts int
}

func (e *WrongPasswordError) Error() string {
	return fmt.Sprintf("invalid username or password, %d attempt(s) remaining", e.RemainingAttempts)
}
