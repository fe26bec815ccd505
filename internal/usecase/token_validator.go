package usecase

import (
	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator resolves a bearer or cookie token to the admin it was issued for.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, admin.Role, error)
}

type jwtTokenValidator struct {
	jwt *jwt.Service
}

func NewTokenValidator(svc *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwt: svc}
}

// ValidateToken rejects tokens carrying a role this build no longer knows.
func (v *jwtTokenValidator) ValidateToken(token string) (uuid.UUID, admin.Role, error) {
	claims, err := v.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := admin.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, jwt.ErrInvalidToken)
	}
	if claims.AdminID == uuid.Nil {
		return uuid.Nil, "", jwt.ErrInvalidToken
	}
	return claims.AdminID, role, nil
}
