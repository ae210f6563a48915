package inmemdb

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
)

type (
	table map[string][]byte // {id: JSON document}

	// DB is an in-memory core.DB. Transactions hold the write lock for their whole
	// duration, so they serialize with every other operation.
	DB struct {
		mu        *sync.RWMutex
		tables    map[string]table
		sequences map[string]int64
		inTx      bool
	}
)

var _ core.DB = (*DB)(nil)

func Open() *DB {
	return &DB{
		mu:        new(sync.RWMutex),
		tables:    make(map[string]table),
		sequences: make(map[string]int64),
	}
}

func (db *DB) lock() {
	if !db.inTx {
		db.mu.Lock()
	}
}

func (db *DB) unlock() {
	if !db.inTx {
		db.mu.Unlock()
	}
}

func (db *DB) rlock() {
	if !db.inTx {
		db.mu.RLock()
	}
}

func (db *DB) runlock() {
	if !db.inTx {
		db.mu.RUnlock()
	}
}

func (db *DB) Ping(context.Context) error { return nil }

func (db *DB) Close(context.Context) error { return nil }

func (db *DB) NextSequence(_ context.Context, name string) (int64, error) {
	db.lock()
	defer db.unlock()
	db.sequences[name]++
	return db.sequences[name], nil
}

func (db *DB) SeedSequence(_ context.Context, name string, n int64) error {
	db.lock()
	defer db.unlock()
	if db.sequences[name] < n {
		db.sequences[name] = n
	}
	return nil
}

func (db *DB) Get(_ context.Context, collection, id string) (core.Snapshot, error) {
	db.rlock()
	defer db.runlock()
	data, ok := db.tables[collection][id]
	if !ok {
		return nil, core.ErrDocNotFound
	}
	return core.JSONSnapshot{DocID: id, Data: data}, nil
}

func (db *DB) Query(_ context.Context, collection string, filters ...core.Filter) ([]core.Snapshot, error) {
	wanted := make([]core.Filter, 0, len(filters))
	for _, f := range filters {
		val, err := normalize(f.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding filter %s", f.Field)
		}
		wanted = append(wanted, core.Filter{Field: f.Field, Value: val})
	}

	db.rlock()
	defer db.runlock()

	tbl := db.tables[collection]
	ids := make([]string, 0, len(tbl))
	for id := range tbl {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	snaps := make([]core.Snapshot, 0, len(ids))
	for _, id := range ids {
		ok, err := matches(tbl[id], wanted)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s/%s", collection, id)
		}
		if ok {
			snaps = append(snaps, core.JSONSnapshot{DocID: id, Data: tbl[id]})
		}
	}
	return snaps, nil
}

func (db *DB) Count(_ context.Context, collection string) (int, error) {
	db.rlock()
	defer db.runlock()
	return len(db.tables[collection]), nil
}

func (db *DB) Set(_ context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	db.lock()
	defer db.unlock()
	db.table(collection)[id] = data
	return nil
}

func (db *DB) Create(_ context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	db.lock()
	defer db.unlock()
	tbl := db.table(collection)
	if _, ok := tbl[id]; ok {
		return core.ErrDocExists
	}
	tbl[id] = data
	return nil
}

func (db *DB) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.New().String()
	return id, db.Set(ctx, collection, id, doc)
}

func (db *DB) Update(_ context.Context, collection, id string, fields map[string]interface{}) error {
	db.lock()
	defer db.unlock()

	data, ok := db.tables[collection][id]
	if !ok {
		return core.ErrDocNotFound
	}
	doc := make(map[string]interface{})
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "decoding document")
	}
	for k, v := range fields {
		doc[k] = v
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	db.tables[collection][id] = data
	return nil
}

func (db *DB) Delete(_ context.Context, collection, id string) error {
	db.lock()
	defer db.unlock()
	delete(db.tables[collection], id)
	return nil
}

// RunTransaction runs fn on a copy of the data; the copy replaces the data only when fn succeeds.
// fn must only use tx: the DB itself is locked until fn returns.
func (db *DB) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx core.DocStore) error) error {
	if db.inTx {
		return fn(ctx, db)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	tx := db.clone()
	if err := fn(ctx, tx); err != nil {
		return err
	}
	db.tables, db.sequences = tx.tables, tx.sequences
	return nil
}

func (db *DB) table(collection string) table {
	tbl, ok := db.tables[collection]
	if !ok {
		tbl = make(table)
		db.tables[collection] = tbl
	}
	return tbl
}

func (db *DB) clone() *DB {
	tx := &DB{
		mu:        db.mu,
		tables:    make(map[string]table, len(db.tables)),
		sequences: make(map[string]int64, len(db.sequences)),
		inTx:      true,
	}
	for name, tbl := range db.tables {
		cp := make(table, len(tbl))
		for id, data := range tbl {
			cp[id] = data // documents are never mutated in place
		}
		tx.tables[name] = cp
	}
	for name, n := range db.sequences {
		tx.sequences[name] = n
	}
	return tx
}

// normalize makes v comparable with a decoded JSON value.
func normalize(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	err = json.Unmarshal(data, &out)
	return out, err
}

func matches(data []byte, filters []core.Filter) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}
	doc := make(map[string]interface{})
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, err
	}
	for _, f := range filters {
		if !reflect.DeepEqual(doc[f.Field], f.Value) {
			return false, nil
		}
	}
	return true, nil
}
