package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextToken    = "token"
	ContextTokenExp = "tokenExp"
)

// TokenCookieName is the cookie consulted when no Authorization header is
// present, so the browser editor page can authenticate without scripting
// headers.
const TokenCookieName = "token"

// RevocationChecker reports whether a token was invalidated before its
// natural expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthRequired returns a Gin middleware that validates bearer tokens and
// restricts access to authenticated users. Tokens found in the revocation
// set are rejected even when their signature and expiry are still good.
func AuthRequired(verifier Verifier, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := verifier.VerifyToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), raw)
		if err != nil {
			// The revocation backend being unreachable must not take down
			// every authenticated route.
			slog.Error("revocation check failed", "error", err)
		} else if isRevoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextToken, raw)
		c.Set(ContextTokenExp, claims.ExpiresAt)
		c.Next()
	}
}

// tokenFromRequest extracts the raw token from the Authorization header,
// falling back to the token cookie.
func tokenFromRequest(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie(TokenCookieName); err == nil {
		return cookie
	}
	return ""
}
