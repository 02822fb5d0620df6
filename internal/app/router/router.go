// Package router builds the Gin engine and registers every route.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "markpad_backend/internal/feature/auth/transport/handler"
	authdto "markpad_backend/internal/feature/auth/transport/http/dto"
	noteshandler "markpad_backend/internal/feature/notes/transport/handler"
	"markpad_backend/internal/platform/http/handler"
	jwtmw "markpad_backend/internal/platform/jwt"
)

// New assembles the engine: CORS for the browser editor, public account
// routes, and the authenticated group guarded by the JWT middleware.
func New(
	authH *authhandler.AuthHandler,
	resetH *authhandler.ResetHandler,
	notesH *noteshandler.NotesHandler,
	verifier jwtmw.Verifier,
	revoked jwtmw.RevocationChecker,
	allowOrigins []string,
) *gin.Engine {
	authdto.RegisterValidators()

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(allowOrigins) > 0 {
		corsCfg.AllowOrigins = allowOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	// Liveness probe.
	r.GET("/healthz", handler.Health)

	// Account routes that work without a token.
	r.POST("/register", authH.Register)
	r.POST("/login", authH.Login)
	r.POST("/forgot-password", resetH.ForgotPassword)
	r.POST("/verify-code", resetH.VerifyCode)
	r.POST("/reset-password", resetH.ResetPassword)

	// Routes requiring a verified, unrevoked bearer token.
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(verifier, revoked))
	{
		auth.POST("/logout", authH.Logout)
		auth.POST("/change-password", authH.ChangePassword)

		auth.GET("/notes", notesH.List)
		auth.POST("/notes", notesH.Create)
		auth.GET("/notes/:id", notesH.Get)
		auth.PUT("/notes/:id", notesH.Update)
		auth.DELETE("/notes/:id", notesH.Delete)
	}

	return r
}
