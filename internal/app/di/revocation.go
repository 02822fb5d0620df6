package di

import (
	"github.com/redis/go-redis/v9"

	authusecase "markpad_backend/internal/feature/auth/usecase"
	jwtmw "markpad_backend/internal/platform/jwt"
	"markpad_backend/internal/platform/revocation"
)

// RevocationSet is written by logout and consulted by the auth
// middleware.
type RevocationSet interface {
	authusecase.TokenRevoker
	jwtmw.RevocationChecker
}

// NewRevocationSet creates the token revocation set.
// With Redis available revocations are shared across processes and expire
// with the tokens they invalidate; otherwise an in-process set with lazy
// pruning is used.
func NewRevocationSet(rdb *redis.Client) RevocationSet {
	if rdb != nil {
		return revocation.NewRedis(rdb, "revoked")
	}
	return revocation.NewMemory()
}
