package cmd

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/airline-admin/internal"
)

// Database bundles the gorm handle used by repositories and an sqlx view of
// the same pool for health checks and maintenance commands.
type Database struct {
	Gorm   *gorm.DB
	SQLX   *sqlx.DB
	Driver string
}

func (d *Database) Close() error {
	return d.SQLX.Close()
}

// initDB opens the configured database and verifies the connection.
func initDB(cfg internal.DatabaseConfig) (*Database, error) {
	driver := cfg.DriverName()

	var dialector gorm.Dialector
	var sqlxDriver string
	switch driver {
	case internal.DriverSQLite:
		dialector = sqlite.Open(cfg.GetDSN())
		sqlxDriver = "sqlite3"
	default:
		dialector = postgres.Open(cfg.GetDSN())
		sqlxDriver = "pgx"
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to extract sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	if driver == internal.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		Gorm:   gdb,
		SQLX:   sqlx.NewDb(sqlDB, sqlxDriver),
		Driver: driver,
	}, nil
}
