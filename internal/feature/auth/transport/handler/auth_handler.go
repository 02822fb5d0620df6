// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"markpad_backend/internal/api"
	"markpad_backend/internal/feature/auth/domain/entity"
	"markpad_backend/internal/feature/auth/transport/http/dto"
	"markpad_backend/internal/feature/auth/usecase"
	jwtmw "markpad_backend/internal/platform/jwt"
)

// AuthUsecase defines the account operations consumed by this handler.
// Following Go convention, interfaces are defined by the consumer
// (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	// Login authenticates a user and returns a signed token on success.
	Login(ctx context.Context, username, password, clientAddr string) (string, *entity.User, error)
	// ChangePassword verifies the current password and stores a new one.
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	// Logout records the raw token in the revocation set.
	Logout(ctx context.Context, rawToken string, ttl time.Duration) error
}

// AuthHandler handles HTTP requests for account operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginRes is the response body of a successful login.
type LoginRes struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// RegisterRes is the response body of a successful registration.
type RegisterRes struct {
	User *entity.User `json:"user"`
}

// Register handles the user registration endpoint.
// 201 on success, 400 on invalid input, 409 on a duplicate username.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameAlreadyExists) {
			slog.Warn("register rejected", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: usecase.ErrUsernameAlreadyExists.Error()})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "an internal error occurred"})
		return
	}

	slog.Info("user registered", "username", user.Username, "user_id", user.ID)
	c.JSON(http.StatusCreated, RegisterRes{User: user})
}

// Login handles the login endpoint.
// 200 with a token on success; 400 on invalid input, 401 on bad
// credentials, 423 while the account is locked, 429 when the client
// address is rate limited.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		h.respondLoginError(c, req.Username, err)
		return
	}

	slog.Info("user login successful", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, LoginRes{Token: token, User: user})
}

// respondLoginError maps a login failure onto its status code without
// revealing which check failed beyond what the contract allows.
func (h *AuthHandler) respondLoginError(c *gin.Context, username string, err error) {
	var (
		lockedErr *usecase.LockedError
		wrongErr  *usecase.WrongPasswordError
	)

	switch {
	case errors.Is(err, usecase.ErrRateLimited):
		slog.Warn("login rate limited", "remote_addr", c.ClientIP())
		c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: err.Error()})
	case errors.As(err, &lockedErr):
		slog.Warn("login rejected, account locked", "username", username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusLocked, api.ErrorResponse{
			Error:             lockedErr.Error(),
			RetryAfterMinutes: lockedErr.RemainingMinutes,
		})
	case errors.As(err, &wrongErr):
		slog.Warn("login failed, wrong password", "username", username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{
			Error:             wrongErr.Error(),
			RemainingAttempts: &wrongErr.RemainingAttempts,
		})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed", "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: usecase.ErrInvalidCredentials.Error()})
	default:
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "an internal error occurred"})
	}
}

// Logout handles the logout endpoint. Revocation is best-effort: a
// failure to record the token is logged but never blocks the 200.
func (h *AuthHandler) Logout(c *gin.Context) {
	raw := c.GetString(jwtmw.ContextToken)

	ttl := jwtmw.DefaultExpiration
	if exp, ok := c.Get(jwtmw.ContextTokenExp); ok {
		if t, ok := exp.(time.Time); ok && !t.IsZero() {
			ttl = time.Until(t)
		}
	}

	if err := h.auth.Logout(c.Request.Context(), raw, ttl); err != nil {
		slog.Warn("token revocation failed", "error", err, "remote_addr", c.ClientIP())
	}

	slog.Info("user logout", "user_id", c.GetUint(jwtmw.ContextUserID))
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}

// ChangePassword handles the password change endpoint for the
// authenticated user.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("change-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	userID := c.GetUint(jwtmw.ContextUserID)
	err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrUserNotFound.Error()})
		case errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: usecase.ErrPasswordMismatch.Error()})
		default:
			slog.Error("change-password failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "an internal error occurred"})
		}
		return
	}

	slog.Info("password changed", "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password updated"})
}
