package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/voidshard/easel/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema up to date. It is safe to run repeatedly.
func Migrate(opts *Options) error {
	m, closer, err := newMigrate(opts)
	if err != nil {
		return err
	}
	defer closer()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// MigrateDown reverts every migration, dropping all tables.
func MigrateDown(opts *Options) error {
	m, closer, err := newMigrate(opts)
	if err != nil {
		return err
	}
	defer closer()

	err = m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func newMigrate(opts *Options) (*migrate.Migrate, func(), error) {
	opts.SetDefaults()

	db, err := sql.Open("postgres", opts.connString())
	if err != nil {
		return nil, nil, err
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: opts.MigrationTable})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migration driver: %w", err)
	}
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return m, func() { m.Close() }, nil
}
