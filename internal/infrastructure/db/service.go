package db

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lastclick-network/lastclick/internal/core/ports"
	badgerdb "github.com/lastclick-network/lastclick/internal/infrastructure/db/badger"
	sqlitedb "github.com/lastclick-network/lastclick/internal/infrastructure/db/sqlite"
)

var (
	repoManagerTypes = map[string]func(...interface{}) (ports.RepoManager, error){
		"badger": badgerdb.NewRepoManager,
		"sqlite": sqlitedb.NewRepoManager,
	}
)

const (
	sqliteDbFile = "sqlite.db"
)

type ServiceConfig struct {
	DataStoreType string

	// badger: base directory (empty for in-memory) and a badger.Logger or nil.
	// sqlite: base directory of the db file.
	DataStoreConfig []interface{}
}

func NewService(config ServiceConfig) (ports.RepoManager, error) {
	factory, ok := repoManagerTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid data store type: %s", config.DataStoreType)
	}

	storeConfig := config.DataStoreConfig
	if config.DataStoreType == "sqlite" {
		db, err := openSqlite(config.DataStoreConfig)
		if err != nil {
			return nil, err
		}
		storeConfig = []interface{}{db}
	}

	repoManager, err := factory(storeConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to create repo manager: %w", err)
	}
	return repoManager, nil
}

func openSqlite(config []interface{}) (*sql.DB, error) {
	if len(config) != 1 {
		return nil, errors.New("invalid config")
	}
	baseDir, ok := config[0].(string)
	if !ok {
		return nil, errors.New("invalid config")
	}

	db, err := sqlitedb.OpenDb(filepath.Join(baseDir, sqliteDbFile))
	if err != nil {
		return nil, err
	}
	if err := migrateSqlite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
	}
	return db, nil
}

func migrateSqlite(db *sql.DB) error {
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	source, err := iofs.New(sqlitedb.Migrations, "migration")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate up: %w", err)
	}

	return nil
}
