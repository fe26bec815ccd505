package admin

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a lending-desk operator. Requesters have no account.
type Admin struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	isActive     bool
	lastLogin    *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewAdmin(email Email, passwordHash string, role Role, now time.Time) *Admin {
	return &Admin{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructAdmin(
	id uuid.UUID,
	email Email,
	passwordHash string,
	role Role,
	isActive bool,
	lastLogin *time.Time,
	createdAt, updatedAt time.Time,
) *Admin {
	return &Admin{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		lastLogin:    lastLogin,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (a *Admin) ID() uuid.UUID         { return a.id }
func (a *Admin) Email() Email          { return a.email }
func (a *Admin) PasswordHash() string  { return a.passwordHash }
func (a *Admin) Role() Role            { return a.role }
func (a *Admin) IsActive() bool        { return a.isActive }
func (a *Admin) LastLogin() *time.Time { return a.lastLogin }
func (a *Admin) CreatedAt() time.Time  { return a.createdAt }
func (a *Admin) UpdatedAt() time.Time  { return a.updatedAt }

func (a *Admin) CanLogin() bool {
	return a.isActive && a.role.IsValid()
}
