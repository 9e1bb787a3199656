package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/postgres/principalrepo"
	"ordering/internal/adapters/out/postgres/productrepo"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported values of ConnectionConfig.Driver.
const (
	DriverPgx = "pgx"
	DriverPq  = "pq"
)

// ConnectionConfig describes how to reach the ordering database.
type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Driver selects the database/sql driver under GORM: DriverPgx (default) or DriverPq.
	Driver string

	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the keyword/value connection string understood by both drivers.
func (c ConnectionConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects GORM through the configured driver and applies pool limits.
//
// Example:
//
//	db, err := postgres.Open(postgres.ConnectionConfig{
//	    Host: "localhost", Port: "5432", User: "ordering", Password: "secret", Name: "ordering",
//	})
func Open(cfg ConnectionConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "", DriverPgx:
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	case DriverPq:
		var sqlDB *sql.DB
		sqlDB, err = sql.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("open pq connection: %w", err)
		}
		db, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates or updates the tables the ordering service owns or reads.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&principalrepo.PrincipalDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&outboxrepo.OutboxMessageDTO{},
	)
}
