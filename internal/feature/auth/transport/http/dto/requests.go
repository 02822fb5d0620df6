// Package dto defines the request bodies for the auth feature's HTTP
// transport layer. Validation runs at the boundary through Gin's binding
// tags, before any request reaches the lockout or reset logic.
package dto

// RegisterReq is the request body for the /register endpoint.
type RegisterReq struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginReq is the request body for the /login endpoint.
type LoginReq struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,min=6"`
}

// ChangePasswordReq is the request body for the /change-password endpoint.
type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ForgotPasswordReq is the request body for the /forgot-password endpoint.
type ForgotPasswordReq struct {
	Username string `json:"username" binding:"required"`
}

// VerifyCodeReq is the request body for the /verify-code endpoint.
type VerifyCodeReq struct {
	UserID uint   `json:"user_id" binding:"required"`
	Code   string `json:"code" binding:"required,len=6,numeric"`
}

// ResetPasswordReq is the request body for the /reset-password endpoint.
type ResetPasswordReq struct {
	UserID      uint   `json:"user_id" binding:"required"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
