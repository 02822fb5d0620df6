package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markpad_backend/internal/feature/auth/domain/entity"
	"markpad_backend/internal/feature/auth/usecase"
)

func seedCode(t *testing.T, repo *resetGorm, userID uint, code string, expiresAt time.Time) *entity.PasswordReset {
	t.Helper()
	reset := &entity.PasswordReset{UserID: userID, Code: code, ExpiresAt: expiresAt}
	require.NoError(t, repo.Create(context.Background(), reset))
	return reset
}

func TestResetGorm_FindActive(t *testing.T) {
	now := time.Now()

	t.Run("finds an unexpired unused code", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewResetGorm(db)
		seedCode(t, repo, 7, "123456", now.Add(30*time.Minute))

		found, err := repo.FindActive(context.Background(), 7, "123456", now)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, uint(7), found.UserID)
	})

	t.Run("wrong code", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewResetGorm(db)
		seedCode(t, repo, 7, "123456", now.Add(30*time.Minute))

		_, err := repo.FindActive(context.Background(), 7, "654321", now)
		assert.ErrorIs(t, err, usecase.ErrCodeInvalid)
	})

	t.Run("wrong user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewResetGorm(db)
		seedCode(t, repo, 7, "123456", now.Add(30*time.Minute))

		_, err := repo.FindActive(context.Background(), 8, "123456", now)
		assert.ErrorIs(t, err, usecase.ErrCodeInvalid)
	})

	t.Run("expired code is invisible", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewResetGorm(db)
		seedCode(t, repo, 7, "123456", now.Add(-time.Minute))

		_, err := repo.FindActive(context.Background(), 7, "123456", now)
		assert.ErrorIs(t, err, usecase.ErrCodeInvalid)
	})

	t.Run("used code is invisible", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewResetGorm(db)
		reset := seedCode(t, repo, 7, "123456", now.Add(30*time.Minute))
		require.NoError(t, repo.MarkUsed(context.Background(), reset.ID, now))

		_, err := repo.FindActive(context.Background(), 7, "123456", now)
		assert.ErrorIs(t, err, usecase.ErrCodeInvalid, "used and expired codes must look the same")
	})
}

func TestResetGorm_DeleteByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewResetGorm(db)
	now := time.Now()

	seedCode(t, repo, 7, "111111", now.Add(30*time.Minute))
	seedCode(t, repo, 7, "222222", now.Add(30*time.Minute))
	other := seedCode(t, repo, 8, "333333", now.Add(30*time.Minute))

	require.NoError(t, repo.DeleteByUserID(context.Background(), 7))

	_, err := repo.FindActive(context.Background(), 7, "111111", now)
	assert.ErrorIs(t, err, usecase.ErrCodeInvalid)
	_, err = repo.FindActive(context.Background(), 7, "222222", now)
	assert.ErrorIs(t, err, usecase.ErrCodeInvalid)

	// Other users' codes survive.
	found, err := repo.FindActive(context.Background(), 8, "333333", now)
	assert.NoError(t, err)
	assert.Equal(t, other.ID, found.ID)
}

func TestResetGorm_MarkUsed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewResetGorm(db)
	now := time.Now()

	reset := seedCode(t, repo, 7, "123456", now.Add(30*time.Minute))

	// First consumption succeeds.
	require.NoError(t, repo.MarkUsed(context.Background(), reset.ID, now))

	// Second consumption of the same code fails the guard.
	err := repo.MarkUsed(context.Background(), reset.ID, now)
	assert.ErrorIs(t, err, usecase.ErrCodeInvalid, "a code is consumable exactly once")
}
