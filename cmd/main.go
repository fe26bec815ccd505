package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"equipment-reservation/cmd/bootstrap"
	"equipment-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// 設定ミスでもデバッグ情報を公開しない（フェイルセーフ）
	gin.SetMode(gin.ReleaseMode)
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           equipment-reservation
// @version         1.0
// @description     医療機器の貸出予約 API
// @description     在庫数と予約期間から空き状況を判定します

// @BasePath  /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func newHTTPServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger, shutdowner fx.Shutdowner) *http.Server {
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			logger.Info("サーバーを起動します", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("サーバーが異常終了しました", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("サーバーを停止します")
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}

	fx.New(
		bootstrap.Module(cfg),
		fx.Provide(gin.New),
		fx.Invoke(func(*http.Server) {}),
		fx.Provide(newHTTPServer),
	).Run()
}
