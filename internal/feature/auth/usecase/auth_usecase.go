package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"markpad_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 6

	// maxLoginAttempts is the number of wrong-password attempts allowed
	// before the account is locked.
	maxLoginAttempts = 5

	// lockDuration is how long an account stays locked after the attempt
	// budget is exhausted.
	lockDuration = 15 * time.Minute
)

// dummyBcryptHash is compared against when the user does not exist, so the
// request cost does not reveal whether the username was the wrong field.
const dummyBcryptHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrUsernameAlreadyExists if the
	// username is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves a user by login name.
	// It returns ErrUserNotFound if no such user exists.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	// It returns ErrUserNotFound if no such user exists.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error
}

// JWTGenerator defines the interface for signed token generation.
type JWTGenerator interface {
	// GenerateToken creates a signed token for the given user.
	GenerateToken(userID uint, username string) (string, error)
}

// TokenRevoker records tokens invalidated before their natural expiry.
type TokenRevoker interface {
	// Revoke adds the raw token string to the revocation set for ttl.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// RateLimiter bounds the number of requests accepted from one client
// address within a time window. Implementations fail open on backend
// errors so an unavailable counter never blocks logins.
type RateLimiter interface {
	Allow(ctx context.Context, addr string) bool
}

// authUsecase implements the authentication business logic, including the
// account lockout policy.
type authUsecase struct {
	users   UserRepository
	jwtGen  JWTGenerator
	revoker TokenRevoker
	limiter RateLimiter

	// now is the clock used for lock arithmetic. Tests override it.
	now func() time.Time
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, jwtGen JWTGenerator, revoker TokenRevoker, limiter RateLimiter) *authUsecase {
	return &authUsecase{
		users:   users,
		jwtGen:  jwtGen,
		revoker: revoker,
		limiter: limiter,
		now:     time.Now,
	}
}

// validatePassword checks that a password meets the minimum length policy.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register creates a new user with a hashed password.
func (u *authUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Username: username, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a signed token on success.
//
// Preconditions are checked in a fixed order: rate limit for the client
// address, user existence, lock state, then the password itself. Failure
// state (attempt counter, lock) is persisted on every wrong-password
// attempt and cleared on success. Rate-limit and unknown-user rejections
// mutate nothing.
func (u *authUsecase) Login(ctx context.Context, username, password, clientAddr string) (string, *entity.User, error) {
	if !u.limiter.Allow(ctx, clientAddr) {
		return "", nil, ErrRateLimited
	}

	user, findErr := u.users.FindByUsername(ctx, username)

	// Always run a bcrypt comparison so an unknown username costs the same
	// as a wrong password.
	passwordHash := dummyBcryptHash
	if findErr == nil {
		passwordHash = user.Password
	}

	if findErr != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
		if errors.Is(findErr, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, findErr
	}

	now := u.now()

	// A lock that has not expired rejects the attempt without ever
	// consulting the password. An expired lock is stale: the attempt is
	// evaluated as if the account were unlocked.
	if user.IsLockedAt(now) {
		return "", nil, &LockedError{RemainingMinutes: remainingMinutes(*user.LockedUntil, now)}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return "", nil, u.recordFailedAttempt(ctx, user, now)
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLogin = &now
	if err := u.users.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("failed to persist login state: %w", err)
	}

	token, err := u.jwtGen.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// recordFailedAttempt advances the lockout state machine after a wrong
// password and persists it. Reaching the attempt budget locks the account
// for lockDuration regardless of any prior (stale) lock.
func (u *authUsecase) recordFailedAttempt(ctx context.Context, user *entity.User, now time.Time) error {
	user.FailedLoginAttempts++

	if user.FailedLoginAttempts >= maxLoginAttempts {
		until := now.Add(lockDuration)
		user.LockedUntil = &until
	} else {
		user.LockedUntil = nil
	}

	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist failed attempt: %w", err)
	}

	if user.LockedUntil != nil {
		return &LockedError{RemainingMinutes: remainingMinutes(*user.LockedUntil, now)}
	}
	return &WrongPasswordError{RemainingAttempts: maxLoginAttempts - user.FailedLoginAttempts}
}

// remainingMinutes reports the whole minutes until the lock expires,
// rounded up and never less than 1.
func remainingMinutes(until, now time.Time) int {
	mins := int((until.Sub(now) + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return mins
}

// ChangePassword verifies the current password and stores a hash of the
// new one.
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashed)
	return u.users.Update(ctx, user)
}

// Logout records the raw token in the revocation set until its natural
// expiry. The caller treats failures as best-effort.
func (u *authUsecase) Logout(ctx context.Context, rawToken string, ttl time.Duration) error {
	return u.revoker.Revoke(ctx, rawToken, ttl)
}
