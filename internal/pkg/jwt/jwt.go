package jwt

import (
	"time"

	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errs.New("invalid token")
	ErrExpiredToken = errs.New("token expired")
)

const issuer = "equipment-reservation"

type Claims struct {
	AdminID uuid.UUID `json:"admin_id"`
	Role    string    `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

type Option func(*Service)

// WithNow overrides the issue time source. Tests use it to mint already-expired tokens.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(secretKey string, tokenDuration time.Duration, opts ...Option) *Service {
	s := &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) TokenDuration() time.Duration {
	return s.tokenDuration
}

func (s *Service) GenerateToken(adminID uuid.UUID, role admin.Role) (string, error) {
	now := s.now()
	claims := Claims{
		AdminID: adminID,
		Role:    role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   adminID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errs.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
