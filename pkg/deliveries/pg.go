package deliveries

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PGConfig holds PostgreSQL connection settings for the delivery store.
type PGConfig struct {
	ConnectionString string        `env:"NOTIFY_PG_CONN_URL,required"`
	MaxOpenConns     int32         `env:"NOTIFY_PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns     int32         `env:"NOTIFY_PG_MAX_IDLE_CONNS" envDefault:"5"`
	RetryAttempts    int           `env:"NOTIFY_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"NOTIFY_PG_RETRY_INTERVAL" envDefault:"5s"`
}

var (
	ErrFailedToParseDBConfig    = errors.New("deliveries: failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("deliveries: failed to open db connection")
	ErrFailedToApplyMigrations  = errors.New("deliveries: failed to apply migrations")
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Connect establishes a PostgreSQL connection pool with linear-backoff
// retries so the engine survives a database that comes up slightly later
// than the service.
func Connect(ctx context.Context, cfg PGConfig) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns

	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
	}
	return nil, ErrFailedToOpenDBConnection
}

// Migrate applies the embedded schema migrations with goose. The pool is
// bridged to database/sql because goose does not speak pgx natively.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}
