//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens with the same secret as the app under test, bypassing /login.
type JWTHelper struct {
	secret string
	ttl    time.Duration
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	ttl, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		ttl = time.Hour
	}
	return &JWTHelper{secret: cfg.Secret, ttl: ttl}
}

func (h *JWTHelper) GenerateToken(t *testing.T, adminID uuid.UUID, role admin.Role) string {
	t.Helper()
	return h.sign(t, jwt.NewService(h.secret, h.ttl), adminID, role)
}

// CreateExpiredToken issues a token whose lifetime ended a minute ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, adminID uuid.UUID, role admin.Role) string {
	t.Helper()
	issuedAt := time.Now().Add(-h.ttl - time.Minute)
	svc := jwt.NewService(h.secret, h.ttl, jwt.WithNow(func() time.Time { return issuedAt }))
	return h.sign(t, svc, adminID, role)
}

func (h *JWTHelper) sign(t *testing.T, svc *jwt.Service, adminID uuid.UUID, role admin.Role) string {
	t.Helper()
	token, err := svc.GenerateToken(adminID, role)
	require.NoError(t, err)
	return token
}
