// Package api defines the shared JSON envelopes used by every endpoint.
package api

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`

	// RetryAfterMinutes is set on account-locked responses.
	RetryAfterMinutes int `json:"retry_after_minutes,omitempty"`

	// RemainingAttempts is set on wrong-password responses while the
	// account still has login attempts left.
	RemainingAttempts *int `json:"remaining_attempts,omitempty"`
}

// MessageResponse is the body of successful requests with no payload.
type MessageResponse struct {
	Message string `json:"message"`
}
