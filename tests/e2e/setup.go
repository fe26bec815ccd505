//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"equipment-reservation/cmd/bootstrap"
	"equipment-reservation/cmd/bootstrap/components"
	"equipment-reservation/internal/infra/db"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "reservation"
	pgPassword = "reservation-e2e"
	pgPort     = nat.Port("5432/tcp")
)

// 全スイートで共有する PostgreSQL コンテナ
var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

type endpoint struct {
	host string
	port nat.Port
}

func (e endpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.host, e.port.Port(), database)
}

// SharedSuite はスイートごとに専用DBとアプリケーションを用意する
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	ep := postgresEndpoint(t)
	dbCfg := createSuiteDatabase(t, ep)

	pool, _, err := db.Connect(dbCfg)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(pool.Close)

	require.NoError(t, migrate(t.Context(), pool), "マイグレーションに失敗")
	require.NoError(t, dbtest.SeedReferenceData(pool), "参照データの投入に失敗")

	s.DB = pool
	s.Config = e2eConfig(dbCfg)
	s.Router = startApp(t, pool, s.Config)

	slog.Info("E2E環境の準備が完了しました", "database", dbCfg.DBName, "host", ep.host, "port", ep.port.Port())
}

// サブテストごとにテーブルを空にして参照データを入れ直す
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}

func postgresEndpoint(t *testing.T) endpoint {
	t.Helper()

	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
				// 永続性は不要
				Cmd: []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off", "-c", "full_page_writes=off"},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return endpoint{host: host, port: port}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "equipment-reservation-e2e"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgErr, "PostgreSQLコンテナの起動に失敗")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)

	return endpoint{host: host, port: port}
}

func createSuiteDatabase(t *testing.T, ep endpoint) config.DBConfig {
	t.Helper()

	name := "e2e_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// 並列実行時は CREATE DATABASE が template1 のロックで失敗することがある
	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("データベース作成を再試行中", "attempt", attempt, "error", err.Error())
		time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
		if err != nil {
			slog.Warn("削除用の接続に失敗しました", "database", name, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     ep.host,
		Port:     ep.port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
}

// migrations/*.sql をファイル名順に適用する
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		body, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("apply %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

// go test はパッケージディレクトリで実行されるため、go.mod を目印にリポジトリルートを探す
func migrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above working directory")
		}
		dir = parent
	}
}

func e2eConfig(dbCfg config.DBConfig) config.Config {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	// フィクスチャはDBへ直接投入するためカタログキャッシュは無効化
	cfg.Cache.CatalogTTL = 0
	return cfg
}

func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Provide(func() *pgxpool.Pool { return pool }),
		bootstrap.ConfigModule(cfg),
		fx.Provide(gin.New),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	return router
}
