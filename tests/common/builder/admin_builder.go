//go:build unit || e2e

package builder

import (
	"time"

	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type AdminBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

func NewAdminBuilder() *AdminBuilder {
	return &AdminBuilder{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A.",
		Role:         string(admin.RoleAdmin),
		IsActive:     true,
	}
}

func (a *AdminBuilder) With(mutate func(*AdminBuilder)) *AdminBuilder {
	mutate(a)
	return a
}

func (a *AdminBuilder) BuildDomain() (*admin.Admin, error) {
	email, err := admin.NewEmail(a.Email)
	if err != nil {
		return nil, err
	}
	role, err := admin.NewRole(a.Role)
	if err != nil {
		return nil, err
	}
	return admin.NewAdmin(email, a.PasswordHash, role, time.Now()), nil
}

func (a *AdminBuilder) BuildView() *queries.AdminView {
	return &queries.AdminView{
		ID:       a.ID,
		Email:    a.Email,
		Role:     a.Role,
		IsActive: a.IsActive,
	}
}

func (a *AdminBuilder) WithRole(role string) *AdminBuilder {
	a.Role = role
	return a
}
