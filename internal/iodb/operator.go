// Package iodb implements database operations over PostgreSQL (pgxpool)
// or SQLite. This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/gnames/gnplet/pkg/config"
	"github.com/gnames/gnplet/pkg/db"
	"github.com/gnames/gnplet/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// operator implements db.Operator interface. PostgreSQL connections go
// through a pgxpool.Pool, SQLite uses a single file.
type operator struct {
	pool *pgxpool.Pool
	db   *gorm.DB
}

// NewOperator creates a new database operator
// (without connecting).
func NewOperator() db.Operator {
	return &operator{}
}

// Connect opens the database chosen by Database.Driver.
func (o *operator) Connect(
	ctx context.Context,
	cfg *config.Config,
) error {
	if cfg.Database.Driver == "postgres" {
		return o.connectPostgres(ctx, &cfg.Database)
	}
	return o.connectSQLite(cfg.SQLitePath())
}

func (o *operator) connectPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	// Build connection string
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// lookup tables are small, a few connections are enough
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}),
		gormConfig(),
	)
	if err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	o.pool = pool
	o.db = gormDB
	return nil
}

func (o *operator) connectSQLite(path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return SQLiteError(path, err)
		}
	}

	gormDB, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return SQLiteError(path, err)
	}
	o.db = gormDB
	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}

// Close releases all database connections.
func (o *operator) Close() error {
	if o.db != nil && o.pool == nil {
		if sqlDB, err := o.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if o.pool != nil {
		o.pool.Close()
	}
	o.db = nil
	o.pool = nil
	return nil
}

// DB returns the GORM handle.
func (o *operator) DB() *gorm.DB {
	return o.db
}

// TableExists checks if a table exists in the current
// database.
func (o *operator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}
	return o.db.WithContext(ctx).Migrator().HasTable(tableName), nil
}

// HasTables checks if any of the lookup tables exists.
func (o *operator) HasTables(
	ctx context.Context,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	tables, err := o.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return false, TableCheckError(err)
	}

	known := make(map[string]struct{})
	for _, v := range schema.TableNames() {
		known[v] = struct{}{}
	}
	for _, v := range tables {
		if _, ok := known[v]; ok {
			return true, nil
		}
	}
	return false, nil
}

// DropAllTables drops all lookup tables.
func (o *operator) DropAllTables(ctx context.Context) error {
	if o.db == nil {
		return NotConnectedError()
	}

	m := o.db.WithContext(ctx).Migrator()
	for _, table := range schema.TableNames() {
		if !m.HasTable(table) {
			continue
		}
		if err := m.DropTable(table); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}
