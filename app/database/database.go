// Package database opens the relational store behind the repositories.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialgraph/app/config"
	"socialgraph/app/models"
)

// Open connects to the database named by cfg.URL, which must start with
// postgres:// or sqlite://.
func Open(cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	isSQLite := false

	switch {
	case strings.HasPrefix(cfg.URL, "postgres://"):
		dialector = postgres.Open(cfg.URL)
		log.Info("Connecting to PostgreSQL database")
	case strings.HasPrefix(cfg.URL, "sqlite://"):
		dsn := strings.TrimPrefix(cfg.URL, "sqlite://")
		dialector = sqlite.Open(dsn)
		isSQLite = true
		log.WithField("path", dsn).Info("Connecting to SQLite database")
	default:
		return nil, fmt.Errorf("invalid database url %q: must start with postgres:// or sqlite://", cfg.URL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger(log),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isSQLite {
		// SQLite allows one writer; a single connection keeps transactions from
		// failing with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	log.Info("Database connection established")
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.AllModels()...)
}

// Ping checks that the database is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormLogger(log *logrus.Logger) logger.Interface {
	level := logger.Silent
	if log.IsLevelEnabled(logrus.DebugLevel) {
		level = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
