//go:build unit || e2e

package builder

import (
	reqdto "equipment-reservation/internal/handler/dto/request"
)

type AuthBuilder struct {
	email    string
	password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{email: "desk-admin@example.com", password: "password123"}
}

func (b *AuthBuilder) WithEmail(email string) *AuthBuilder {
	b.email = email
	return b
}

func (b *AuthBuilder) WithPassword(password string) *AuthBuilder {
	b.password = password
	return b
}

func (b *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{Email: b.email, Password: b.password}
}
