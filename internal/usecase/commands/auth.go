package commands

import (
	"context"
	"log/slog"
	"time"

	"equipment-reservation/internal/domain/admin"
	reqdto "equipment-reservation/internal/handler/dto/request"
	"equipment-reservation/internal/pkg/clock"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/pkg/jwt"
	"equipment-reservation/internal/pkg/password"
	"equipment-reservation/internal/usecase/queries"
	"equipment-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAdminInactive        = errs.New("admin inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrAdminAlreadyExists   = errs.New("admin already exists")
)

type LoginResult struct {
	AdminID     uuid.UUID
	AccessToken string
	ExpiresIn   time.Duration
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	// CreateAdmin provisions an operator account; only reachable from the seed command.
	CreateAdmin(ctx context.Context, email, plainPassword string, role admin.Role) (uuid.UUID, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.AdminReadStore
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.AdminReadStore, jwtService *jwt.Service, clock clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	email, pw, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	adminView, err := a.validateAdmin(ctx, email, pw)
	if err != nil {
		return nil, err
	}

	role, err := admin.NewRole(adminView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(adminView.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Admins().UpdateLastLogin(ctx, adminView.ID, a.clock.Now())
	})
	if err != nil {
		// login already succeeded; only last_login is stale
		slog.Warn("failed to update last login", "admin_id", adminView.ID, "error", err.Error())
	}

	return &LoginResult{
		AdminID:     adminView.ID,
		AccessToken: token,
		ExpiresIn:   a.jwtService.TokenDuration(),
	}, nil
}

func (a *authCommandsImpl) CreateAdmin(ctx context.Context, email, plainPassword string, role admin.Role) (uuid.UUID, error) {
	addr, err := admin.NewEmail(email)
	if err != nil {
		return uuid.Nil, err
	}
	pw, err := admin.NewPassword(plainPassword)
	if err != nil {
		return uuid.Nil, err
	}
	if !role.IsValid() {
		return uuid.Nil, admin.ErrInvalidRole
	}
	hash, err := password.Hash(pw.Value())
	if err != nil {
		return uuid.Nil, err
	}

	account := admin.NewAdmin(addr, hash, role, a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Admins().Create(ctx, account)
	})
	if err != nil {
		if infraDuplicate(err) {
			return uuid.Nil, ErrAdminAlreadyExists
		}
		return uuid.Nil, errs.Wrap(err, "failed to create admin")
	}
	return account.ID(), nil
}

func (a *authCommandsImpl) validateAdmin(ctx context.Context, email admin.Email, pw admin.Password) (*queries.AdminView, error) {
	adminView, hashedPassword, err := a.readStore.FindByEmail(ctx, email.Value())
	if err != nil {
		// same error as a password mismatch so unknown emails are not revealed
		return nil, ErrInvalidCredentials
	}

	if !adminView.IsActive {
		return nil, ErrAdminInactive
	}

	if !password.Matches(hashedPassword, pw.Value()) {
		return nil, ErrInvalidCredentials
	}

	return adminView, nil
}
