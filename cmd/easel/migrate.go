package main

import (
	"github.com/voidshard/easel/pkg/database"
)

const (
	docMigrate = `Apply (or revert) database migrations`
)

type optsMigrate struct {
	optsGeneral
	optsDatabase

	Down bool `long:"down" description:"Revert every migration, dropping all data"`
}

func (c *optsMigrate) Execute(args []string) error {
	log := c.logger()

	if c.Down {
		log.Warn().Msg("reverting all migrations")
		return database.MigrateDown(c.database())
	}

	err := database.Migrate(c.database())
	if err == nil {
		log.Info().Msg("database schema up to date")
	}
	return err
}
