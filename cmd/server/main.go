package main

import (
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"markpad_backend/internal/app/di"
	"markpad_backend/internal/app/router"
	"markpad_backend/internal/config"
	authadapters "markpad_backend/internal/feature/auth/adapters"
	authhandler "markpad_backend/internal/feature/auth/transport/handler"
	authusecase "markpad_backend/internal/feature/auth/usecase"
	notesadapters "markpad_backend/internal/feature/notes/adapters"
	noteshandler "markpad_backend/internal/feature/notes/transport/handler"
	notesusecase "markpad_backend/internal/feature/notes/usecase"
	infradb "markpad_backend/internal/platform/db"
	jwtmw "markpad_backend/internal/platform/jwt"
	"markpad_backend/internal/platform/mailer"
	infraredis "markpad_backend/internal/platform/redis"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	gin.SetMode(cfg.GinMode)

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// DB
	db := infradb.Open(cfg.DSN(), cfg.RunMigrations)

	// Redis; the limiter and revocation set fall back to in-process state
	// without it.
	var rdb *redisv9.Client
	if addr := cfg.RedisAddr(); addr != "" {
		if tmp, err := infraredis.NewClient(addr, cfg.RedisPassword); err != nil {
			slog.Warn("Redis unavailable, using in-process rate limiter and revocation set")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Platform services
	tokens := jwtmw.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	revoked := di.NewRevocationSet(rdb)
	limiter := di.NewRateLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)

	var resetMailer authusecase.ResetCodeMailer
	if cfg.MailerConfigured() {
		resetMailer = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	// Repositories
	userRepo := authadapters.NewUserGorm(db)
	resetRepo := authadapters.NewResetGorm(db)
	noteRepo := notesadapters.NewNoteGorm(db)

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, revoked, limiter)
	resetUC := authusecase.NewResetUsecase(userRepo, resetRepo, resetMailer)
	notesUC := notesusecase.NewNotesUsecase(noteRepo)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	resetH := authhandler.NewResetHandler(resetUC)
	notesH := noteshandler.NewNotesHandler(notesUC)

	r := router.New(authH, resetH, notesH, tokens, revoked, cfg.CORSAllowOrigins)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
