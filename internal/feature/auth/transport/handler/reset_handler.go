package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"markpad_backend/internal/api"
	"markpad_backend/internal/feature/auth/transport/http/dto"
	"markpad_backend/internal/feature/auth/usecase"
)

// ResetUsecase defines the password reset operations consumed by this
// handler.
type ResetUsecase interface {
	// RequestReset issues a fresh reset code for the named user.
	RequestReset(ctx context.Context, username string) (string, uint, error)
	// VerifyCode reports whether the code is currently valid for the user.
	VerifyCode(ctx context.Context, userID uint, code string) error
	// ResetPassword consumes a valid code and stores a new password.
	ResetPassword(ctx context.Context, userID uint, code, newPassword string) error
}

// ResetHandler handles HTTP requests for the password reset flow.
type ResetHandler struct {
	reset ResetUsecase
}

// NewResetHandler creates a new instance of ResetHandler.
func NewResetHandler(reset ResetUsecase) *ResetHandler {
	return &ResetHandler{reset: reset}
}

// ForgotPasswordRes is the response body of a successful reset request.
// The code is returned directly; mail delivery, when configured, is an
// additional channel.
type ForgotPasswordRes struct {
	Code   string `json:"code"`
	UserID uint   `json:"user_id"`
}

// VerifyCodeRes is the response body of a successful code verification.
type VerifyCodeRes struct {
	Valid bool `json:"valid"`
}

// ForgotPassword handles the reset-request endpoint.
// 200 with the code on success, 404 when the username is unknown.
func (h *ResetHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("forgot-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	code, userID, err := h.reset.RequestReset(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrUserNotFound.Error()})
			return
		}
		slog.Error("forgot-password failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "an internal error occurred"})
		return
	}

	slog.Info("reset code issued", "user_id", userID)
	c.JSON(http.StatusOK, ForgotPasswordRes{Code: code, UserID: userID})
}

// VerifyCode handles the code verification endpoint. Verification is
// idempotent and never consumes the code. Unknown, expired and used codes
// are reported identically.
func (h *ResetHandler) VerifyCode(c *gin.Context) {
	var req dto.VerifyCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("verify-code validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.reset.VerifyCode(c.Request.Context(), req.UserID, req.Code); err != nil {
		if errors.Is(err, usecase.ErrCodeInvalid) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: usecase.ErrCodeInvalid.Error()})
			return
		}
		slog.Error("verify-code failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "an internal error occurred"})
		return
	}

	c.JSON(http.StatusOK, VerifyCodeRes{Valid: true})
}

// ResetPassword handles the final step of the reset flow: consuming the
// code and storing the new password.
func (h *ResetHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("reset-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.reset.ResetPassword(c.Request.Context(), req.UserID, req.Code, req.NewPassword); err != nil {
		if errors.Is(err, usecase.ErrCodeInvalid) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: usecase.ErrCodeInvalid.Error()})
			return
		}
		if errors.Is(err, usecase.ErrUserNotFound) {
			// A deleted user with a live code is reported like a bad code to
			// avoid confirming account state.
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: usecase.ErrCodeInvalid.Error()})
			return
		}
		slog.Error("reset-password failed", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "an internal error occurred"})
		return
	}

	slog.Info("password reset", "user_id", req.UserID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password updated"})
}
