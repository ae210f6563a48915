package pgdb

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
)

type (
	// DB is a core.DB storing documents as JSONB rows of a single table.
	DB struct {
		*store
		sqlDB *sqlx.DB
	}

	store struct {
		exec sqlx.ExtContext
		tx   bool
	}

	docRow struct {
		ID   string `db:"id"`
		Data []byte `db:"data"`
	}
)

var (
	_ core.DB       = (*DB)(nil)
	_ core.DocStore = (*store)(nil)
)

// Open opens the database at uri (postgres://...). It does not wait for the server.
func Open(uri string) (*DB, error) {
	sqlDB, err := sqlx.Open("postgres", uri)
	if err != nil {
		return nil, errors.Wrap(err, "opening postgres")
	}
	return &DB{store: &store{exec: sqlDB}, sqlDB: sqlDB}, nil
}

// SQL exposes the underlying handle for migrations.
func (db *DB) SQL() *sql.DB { return db.sqlDB.DB }

func (db *DB) Ping(ctx context.Context) error {
	return db.sqlDB.PingContext(ctx)
}

func (db *DB) Close(context.Context) error {
	return db.sqlDB.Close()
}

// RunTransaction runs fn in a database transaction.
func (db *DB) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx core.DocStore) error) error {
	tx, err := db.sqlDB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err := fn(ctx, &store{exec: tx, tx: true}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func (s *store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx core.DocStore) error) error {
	if !s.tx {
		return errors.New("transaction on a non-transactional store")
	}
	return fn(ctx, s)
}

func (s *store) NextSequence(ctx context.Context, name string) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, s.exec, &n, `
		INSERT INTO sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value`, name)
	return n, errors.Wrapf(err, "incrementing sequence %s", name)
}

func (s *store) SeedSequence(ctx context.Context, name string, n int64) error {
	_, err := s.exec.ExecContext(ctx, `
		INSERT INTO sequences (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = GREATEST(sequences.value, EXCLUDED.value)`, name, n)
	return errors.Wrapf(err, "seeding sequence %s", name)
}

func (s *store) Get(ctx context.Context, collection, id string) (core.Snapshot, error) {
	var row docRow
	err := sqlx.GetContext(ctx, s.exec, &row,
		`SELECT id, data FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrDocNotFound
		}
		return nil, errors.Wrap(err, "getting document")
	}
	return core.JSONSnapshot{DocID: row.ID, Data: row.Data}, nil
}

// Query matches filters with JSONB containment, so values compare with their JSON types.
func (s *store) Query(ctx context.Context, collection string, filters ...core.Filter) ([]core.Snapshot, error) {
	cond := make(map[string]interface{}, len(filters))
	for _, f := range filters {
		cond[f.Field] = f.Value
	}
	condJSON, err := json.Marshal(cond)
	if err != nil {
		return nil, errors.Wrap(err, "encoding filters")
	}

	var rows []docRow
	err = sqlx.SelectContext(ctx, s.exec, &rows,
		`SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb ORDER BY id`,
		collection, string(condJSON))
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	snaps := make([]core.Snapshot, 0, len(rows))
	for _, row := range rows {
		snaps = append(snaps, core.JSONSnapshot{DocID: row.ID, Data: row.Data})
	}
	return snaps, nil
}

func (s *store) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, s.exec, &n, `SELECT COUNT(*) FROM documents WHERE collection = $1`, collection)
	return n, errors.Wrap(err, "counting documents")
}

func (s *store) Set(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	_, err = s.exec.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		collection, id, string(data))
	return errors.Wrap(err, "setting document")
}

func (s *store) Create(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	res, err := s.exec.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO NOTHING`,
		collection, id, string(data))
	if err != nil {
		return errors.Wrap(err, "inserting document")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "inserting document")
	}
	if n == 0 {
		return core.ErrDocExists
	}
	return nil
}

func (s *store) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.New().String()
	return id, s.Set(ctx, collection, id, doc)
}

func (s *store) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrap(err, "encoding fields")
	}
	res, err := s.exec.ExecContext(ctx, `
		UPDATE documents SET data = data || $3::jsonb, updated_at = now()
		WHERE collection = $1 AND id = $2`,
		collection, id, string(data))
	if err != nil {
		return errors.Wrap(err, "updating document")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.ErrDocNotFound
	}
	return nil
}

func (s *store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.exec.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	return errors.Wrap(err, "deleting document")
}
