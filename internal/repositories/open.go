package repositories

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// StoreConfig selects and locates the backing database.
type StoreConfig struct {
	Driver        string
	DSN           string
	MongoURI      string
	MongoDatabase string
}

// OpenStore connects to the configured database and prepares its schema. The returned close function
// releases the connection.
func OpenStore(ctx context.Context, cfg StoreConfig) (Store, func(context.Context) error, error) {
	switch cfg.Driver {
	case DriverPostgres, DriverSQLite:
		var dialector gorm.Dialector
		if cfg.Driver == DriverPostgres {
			dialector = postgres.Open(cfg.DSN)
		} else {
			dialector = sqlite.Open(cfg.DSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
		}
		if cfg.Driver == DriverSQLite {
			sqlDB, err := db.DB()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to get sqlite connection pool: %w", err)
			}
			// sqlite allows a single writer; one connection also keeps a shared-cache memory database alive
			sqlDB.SetMaxOpenConns(1)
		}
		if err := Migrate(db); err != nil {
			return nil, nil, err
		}
		store := NewGORMStore(db)
		return store, func(context.Context) error { return store.Close() }, nil

	case DriverMongo:
		store, err := NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case DriverMemory:
		return NewMemoryStore(), func(context.Context) error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
