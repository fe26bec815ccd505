package bootstrap

import (
	"time"

	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(NewJWTService),
)

// NewJWTService signs admin access tokens. JWT_DURATION also sets the cookie lifetime.
func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	ttl, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, errs.Wrapf(err, "JWT_DURATION %q", cfg.JWT.Duration)
	}
	if ttl <= 0 {
		return nil, errs.Newf("JWT_DURATION must be positive, got %s", ttl)
	}
	return jwt.NewService(cfg.JWT.Secret, ttl), nil
}
