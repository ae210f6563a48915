package database

import (
	"context"
	"database/sql"
	"io/fs"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/ericnguyen1274/Customer---App/core"
	inmemdb "github.com/ericnguyen1274/Customer---App/storage/database/inmem"
	mongodb "github.com/ericnguyen1274/Customer---App/storage/database/mongo"
	pgdb "github.com/ericnguyen1274/Customer---App/storage/database/postgres"
)

var ErrUnknownEngine = errors.New("unknown database engine")

// Open opens the document store selected by conf.Database.Engine and waits for it to answer.
func Open(ctx context.Context, conf *core.Config) (core.DB, error) {
	var (
		db  core.DB
		err error
	)
	switch conf.Database.Engine {
	case core.EngineMemory, "":
		return inmemdb.Open(), nil
	case core.EngineMongo:
		db, err = mongodb.Open(ctx, conf.Database.URI, conf.Database.Name)
	case core.EnginePostgres:
		db, err = pgdb.Open(conf.Database.URI)
	default:
		return nil, errors.Wrap(ErrUnknownEngine, conf.Database.Engine)
	}
	if err != nil {
		return nil, err
	}
	if err = Ping(ctx, db, conf.Database.PingAttempts, conf.Database.PingDelay); err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	return db, nil
}

// Ping waits for the database to be ready, backing off between attempts.
func Ping(ctx context.Context, db core.DB, attempts uint, delay time.Duration) error {
	if attempts == 0 {
		attempts = 1
	}
	err := retry.Do(
		func() error { return db.Ping(ctx) },
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	return errors.Wrap(err, "DB ping timeout")
}

// Migrate applies the pending migrations of SQL backed stores; other stores need none.
func Migrate(db core.DB) error {
	pg, ok := db.(*pgdb.DB)
	if !ok {
		return nil
	}
	if err := RunMigrations("up", pg.SQL(), pgdb.MigrationsFS, pgdb.MigrationsDir); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// RunMigrations runs a goose command over the migrations in fsys.
func RunMigrations(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Run(command, db, dir, args...)
}
