// Command seedadmin provisions an administrator account. There is no signup endpoint.
//
//	go run ./cmd/seedadmin -email admin@example.com -role admin
//
// The password is read from SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"equipment-reservation/cmd/bootstrap"
	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/usecase/commands"

	"go.uber.org/fx"
)

func main() {
	email := flag.String("email", "", "admin email")
	role := flag.String("role", string(admin.RoleAdmin), "staff or admin")
	flag.Parse()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if *email == "" || password == "" {
		slog.Error("-email と SEED_ADMIN_PASSWORD は必須です")
		os.Exit(2)
	}

	parsedRole, err := admin.NewRole(*role)
	if err != nil {
		slog.Error("ロールが不正です", "role", *role)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}

	app := fx.New(
		bootstrap.CoreModule(cfg),
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, auth commands.AuthCommands, logger *slog.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					id, err := auth.CreateAdmin(ctx, *email, password, parsedRole)
					if err != nil {
						return err
					}
					logger.Info("管理者を作成しました", "admin_id", id, "email", *email, "role", parsedRole)
					return shutdowner.Shutdown()
				},
			})
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		slog.Error("管理者の作成に失敗しました", "error", err)
		os.Exit(1)
	}
	if err := app.Stop(ctx); err != nil {
		slog.Error("アプリケーションの停止に失敗しました", "error", err)
	}
}
