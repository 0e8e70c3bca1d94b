package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Variable substitution to support testing.
var LogFatal = log.Fatal

// GetDbConnection returns the process-wide connection pool, sized from
// configuration. Requests acquire and release connections from this pool
// per operation; the pool itself lives for the uptime of the process.
func GetDbConnection() *sql.DB {
	cfg, err := LoadConfig()
	if err != nil {
		LogFatal(err)
		return nil
	}
	return createDB(cfg)
}

func createDB(cfg *Config) *sql.DB {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		LogFatal(err)
		return nil
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMin) * time.Minute)
	db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)

	if pingErr := db.Ping(); pingErr != nil {
		LogFatal(pingErr)
		return nil
	}
	return db
}
