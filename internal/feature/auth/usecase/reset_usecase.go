package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"markpad_backend/internal/feature/auth/domain/entity"
)

// resetCodeTTL is how long an issued reset code stays valid.
const resetCodeTTL = 30 * time.Minute

// PasswordResetRepository abstracts the persistence layer for reset codes.
type PasswordResetRepository interface {
	// Create persists a new reset code.
	Create(ctx context.Context, reset *entity.PasswordReset) error

	// DeleteByUserID removes all reset codes belonging to a user.
	DeleteByUserID(ctx context.Context, userID uint) error

	// FindActive retrieves the reset code matching userID and code that is
	// unexpired at the given instant and not yet used.
	// It returns ErrCodeInvalid if no such code exists.
	FindActive(ctx context.Context, userID uint, code string, now time.Time) (*entity.PasswordReset, error)

	// MarkUsed sets the used-at timestamp on a not-yet-used code.
	// It returns ErrCodeInvalid if the code was already consumed.
	MarkUsed(ctx context.Context, id uint, at time.Time) error
}

// ResetCodeMailer delivers reset codes over an out-of-band channel.
type ResetCodeMailer interface {
	SendResetCode(to, code string, validFor time.Duration) error
}

// resetUsecase implements the password reset flow: request a code, verify
// it, then consume it exactly once to set a new password.
type resetUsecase struct {
	users  UserRepository
	resets PasswordResetRepository

	// mailer is optional. When set and the user registered an email, the
	// code is additionally delivered by mail, best-effort.
	mailer ResetCodeMailer

	now func() time.Time
}

// NewResetUsecase creates a new instance of resetUsecase.
// mailer may be nil when no SMTP delivery is configured.
func NewResetUsecase(users UserRepository, resets PasswordResetRepository, mailer ResetCodeMailer) *resetUsecase {
	return &resetUsecase{
		users:  users,
		resets: resets,
		mailer: mailer,
		now:    time.Now,
	}
}

// generateCode returns a uniformly random 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestReset issues a fresh reset code for the named user. Any prior
// codes for the user are deleted first, so at most one code is ever
// active. It returns the code and the user ID.
func (u *resetUsecase) RequestReset(ctx context.Context, username string) (string, uint, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return "", 0, err
	}

	code, err := generateCode()
	if err != nil {
		return "", 0, err
	}

	if err := u.resets.DeleteByUserID(ctx, user.ID); err != nil {
		return "", 0, fmt.Errorf("failed to clear previous codes: %w", err)
	}

	reset := &entity.PasswordReset{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: u.now().Add(resetCodeTTL),
	}
	if err := u.resets.Create(ctx, reset); err != nil {
		return "", 0, fmt.Errorf("failed to store reset code: %w", err)
	}

	// Out-of-band delivery is best-effort: a mail failure must not undo an
	// already issued code.
	if u.mailer != nil && user.Email != "" {
		if err := u.mailer.SendResetCode(user.Email, code, resetCodeTTL); err != nil {
			slog.Warn("reset code mail delivery failed", "user_id", user.ID, "error", err)
		}
	}

	return code, user.ID, nil
}

// VerifyCode reports whether the code is currently valid for the user.
// Verification never consumes the code, so it can be repeated while the
// user moves from the verify page to the reset page.
func (u *resetUsecase) VerifyCode(ctx context.Context, userID uint, code string) error {
	_, err := u.resets.FindActive(ctx, userID, code, u.now())
	return err
}

// ResetPassword consumes a valid code and stores a hash of the new
// password. A code can be consumed exactly once; expired, unknown and
// already-used codes are indistinguishable to the caller.
func (u *resetUsecase) ResetPassword(ctx context.Context, userID uint, code, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	now := u.now()
	reset, err := u.resets.FindActive(ctx, userID, code, now)
	if err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashed)
	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	return u.resets.MarkUsed(ctx, reset.ID, now)
}
