//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-checkout/cmd/bootstrap"
	"storefront-checkout/cmd/bootstrap/components"
	"storefront-checkout/internal/handler/api"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/infra/payment"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/tests/common/dbtest"

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
	pgUser     = "checkout"
	pgPassword = "checkout"
	pgPort     = nat.Port("5432/tcp")
)

// one container per test binary; every suite gets its own database in it
var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

type postgresEndpoint struct {
	host string
	port string
}

func (e postgresEndpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.host, e.port, database)
}

func startPostgres(t *testing.T) postgresEndpoint {
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
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				// throwaway data; the concurrency suites need headroom on connections
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return postgresEndpoint{host: host, port: port.Port()}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "storefront-checkout-e2e"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgErr, "start postgres container")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)

	return postgresEndpoint{host: host, port: port.Port()}
}

// createDatabase makes a fresh database for one suite and drops it afterwards.
// CREATE DATABASE can collide with a concurrent template copy, so it is retried.
func createDatabase(t *testing.T, ep postgresEndpoint) config.DBConfig {
	t.Helper()

	name := "checkout_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
	require.NoError(t, err, "admin connection")
	defer admin.Close()

	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	require.NoError(t, err, "create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
		if err != nil {
			slog.Warn("drop test database: connect", "database", name, "error", err)
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop test database", "database", name, "error", err)
		}
	})

	return config.DBConfig{
		Host:     ep.host,
		Port:     ep.port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 30,
	}
}

// applyMigrations runs every migrations/*.sql file in name order, the same order
// atlas applies them in.
func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	dir := filepath.Join(repoRoot(t), "migrations")
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations found in %s", dir)
	slices.Sort(files)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, f := range files {
		sql, err := os.ReadFile(f)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "apply migration %s", filepath.Base(f))
	}
}

// repoRoot walks up from the package directory until it finds go.mod.
func repoRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "go.mod not found above the test package")
		dir = parent
	}
}

func testConfig(dbCfg config.DBConfig) config.Config {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	// every request comes from the same test client address
	cfg.Checkout.RateLimit = 10_000
	return cfg
}

// startApp runs the production fx graph with the pool, config and Stripe SDK
// clients swapped for test ones. Background workers are left out so tests
// control when expired holds are swept.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config, stripe *FakeStripe) *gin.Engine {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Supply(pool, cfg),
		fx.Provide(
			func() *gin.Engine { return gin.New() },
			fx.Annotate(
				func(cfg config.Config) (*payment.StripeGateway, error) {
					return payment.NewStripeGateway(payment.StripeGatewayConfig{
						Currency: cfg.Stripe.Currency,
						Clients:  stripe.Clients(),
					})
				},
				fx.As(new(commands.PaymentGateway)),
			),
			fx.Annotate(
				bootstrap.NewWebhookVerifier,
				fx.As(new(api.WebhookVerifier)),
			),
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.MetricsModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(startCtx), "start application")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("stop application", "error", err)
		}
	})
	return router
}

// SharedSuite gives each suite its own database, a running application and a
// fake Stripe backend. State is reset before every test and subtest.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
	Stripe *FakeStripe
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbCfg := createDatabase(t, startPostgres(t))
	pool, _, err := db.Connect(dbCfg)
	require.NoError(t, err, "connect test database")
	t.Cleanup(pool.Close)
	applyMigrations(t, pool)

	s.DB = pool
	s.Config = testConfig(dbCfg)
	s.Stripe = NewFakeStripe()
	s.Router = startApp(t, pool, s.Config, s.Stripe)
}

func (s *SharedSuite) SetupTest() {
	s.reset()
}

func (s *SharedSuite) SetupSubTest() {
	s.reset()
}

func (s *SharedSuite) reset() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
	s.Stripe.Reset()
}
