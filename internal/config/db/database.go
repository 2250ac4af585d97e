package db

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/domain/user"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the database selected by STORE_BACKEND and migrates it.
// The memory backend has no database and leaves DB nil.
func Init() {
	if config.StoreBackend == config.BackendMemory {
		log.Println("Using in-memory store")
		return
	}

	var err error
	DB, err = Open(config.StoreBackend)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}
	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to auto migrate:", err)
	}
	log.Printf("Database connected and migrated (%s)", config.StoreBackend)
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}

// Open connects to the postgres or sqlite backend.
func Open(backend string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(ParseLogLevel(config.DbLogLevel)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	switch backend {
	case config.BackendPostgres:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.DbHost,
			config.DbPort,
			config.DbUser,
			config.DbPassword,
			config.DbName,
			config.DbSSLMode,
		)
		return gorm.Open(postgres.Open(dsn), cfg)
	case config.BackendSQLite:
		gormDB, err := gorm.Open(sqlite.Open(config.SQLitePath), cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, err
		}
		// SQLite only supports one writer.
		sqlDB.SetMaxOpenConns(1)
		return gormDB, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}

func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&user.User{},
		&form.Form{},
		&form.Component{},
		&submission.Submission{},
		&submission.Answer{},
	)
}

func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}
