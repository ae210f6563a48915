package main

import (
	"errors"

	"github.com/ericnguyen1274/Customer---App/storage/database"
	pgdb "github.com/ericnguyen1274/Customer---App/storage/database/postgres"
)

var (
	gooseRunFunc = database.RunMigrations // mockable

	errNoMigrations = errors.New("migrations only apply to the postgres engine")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.sqlDB == nil {
		return errNoMigrations
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.sqlDB, pgdb.MigrationsFS, pgdb.MigrationsDir, arguments...)
}
