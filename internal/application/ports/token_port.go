package ports

import (
	"context"
	"time"
)

// TokenBlacklist guarda los IDs (jti) de tokens revocados hasta que expiran.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
