package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/credential-auth/internal/common/clock"
	"github.com/AlibekovAA/credential-auth/internal/common/config"
	"github.com/AlibekovAA/credential-auth/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/credential-auth/internal/common/crypto"
	"github.com/AlibekovAA/credential-auth/internal/common/db"
	"github.com/AlibekovAA/credential-auth/internal/common/logger"
	userrepo "github.com/AlibekovAA/credential-auth/internal/user/repository"
)

type App struct {
	Log      *logger.Logger
	Pool     *pgxpool.Pool
	UserRepo userrepo.Repository

	stopMetrics context.CancelFunc
}

type AuthApp struct {
	App
	Config config.AuthConfig
}

func NewAuthApp(ctx context.Context) (*AuthApp, error) {
	log, err := initializeLogger("auth")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		return nil, err
	}

	app, err := initializeApp(ctx, log, cfg)
	if err != nil {
		return nil, err
	}

	return &AuthApp{
		App:    *app,
		Config: cfg,
	}, nil
}

// Close stops background pool metrics and closes the pool, if any.
func (a *App) Close(ctx context.Context) error {
	if a.stopMetrics != nil {
		a.stopMetrics()
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
	return nil
}

func initializeApp(ctx context.Context, log *logger.Logger, cfg config.AuthConfig) (*App, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("using in-memory credential store, data is lost on restart")
		return &App{
			Log:      log,
			UserRepo: userrepo.NewMemoryRepository(commoncrypto.NewUUIDGenerator(), clock.NewRealClock()),
		}, nil
	}

	if err := db.Migrate(ctx, log, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	db.StartPoolMetrics(metricsCtx, pool, constants.DBPoolMetricsInterval)

	return &App{
		Log:         log,
		Pool:        pool,
		UserRepo:    userrepo.NewPgRepository(pool, log),
		stopMetrics: stopMetrics,
	}, nil
}

func initializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
