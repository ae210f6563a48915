package inmemdb

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericnguyen1274/Customer---App/core"
)

type doc struct {
	Name  string       `json:"name"`
	Level string       `json:"level"`
	Price core.FlexInt `json:"price"`
}

func names(t *testing.T, snaps []core.Snapshot) []string {
	out := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		var d doc
		require.NoError(t, snap.DataTo(&d))
		out = append(out, d.Name)
	}
	return out
}

func TestDB_crud(t *testing.T) {
	ctx := context.Background()
	db := Open()

	_, err := db.Get(ctx, "courses", "1")
	assert.Equal(t, core.ErrDocNotFound, err)

	require.NoError(t, db.Set(ctx, "courses", "2", doc{Name: "Yin", Level: "beginner", Price: 900}))
	require.NoError(t, db.Set(ctx, "courses", "1", doc{Name: "Hatha", Level: "beginner", Price: 1500}))
	require.NoError(t, db.Set(ctx, "courses", "3", doc{Name: "Power", Level: "advanced", Price: 1999}))
	id, err := db.Add(ctx, "teachers", doc{Name: "Priya"})
	require.NoError(t, err)
	assert.Len(t, id, 36)

	snap, err := db.Get(ctx, "teachers", id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID())

	tests := []struct {
		filters []core.Filter
		want    []string
	}{
		{filters: nil, want: []string{"Hatha", "Yin", "Power"}},
		{filters: []core.Filter{core.Where("level", "beginner")}, want: []string{"Hatha", "Yin"}},
		{filters: []core.Filter{core.Where("level", "beginner"), core.Where("price", 900)}, want: []string{"Yin"}},
		{filters: []core.Filter{core.Where("price", core.FlexInt(1999))}, want: []string{"Power"}},
		{filters: []core.Filter{core.Where("level", "expert")}, want: []string{}},
	}
	for _, tt := range tests {
		snaps, err := db.Query(ctx, "courses", tt.filters...)
		require.NoError(t, err)
		assert.Equal(t, tt.want, names(t, snaps), "filters = %v", tt.filters)
	}

	require.NoError(t, db.Update(ctx, "courses", "2", map[string]interface{}{"price": 1100}))
	snap, err = db.Get(ctx, "courses", "2")
	require.NoError(t, err)
	var d doc
	require.NoError(t, snap.DataTo(&d))
	assert.Equal(t, doc{Name: "Yin", Level: "beginner", Price: 1100}, d)

	err = db.Update(ctx, "courses", "42", map[string]interface{}{"price": 1})
	assert.Equal(t, core.ErrDocNotFound, err)

	require.NoError(t, db.Delete(ctx, "courses", "2"))
	n, err := db.Count(ctx, "courses")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDB_NextSequence(t *testing.T) {
	ctx := context.Background()
	db := Open()
	for want := int64(1); want <= 3; want++ {
		got, err := db.NextSequence(ctx, "customers")
		require.NoError(t, err)
		if got != want {
			t.Errorf("failed! NextSequence() = %v; want %v", got, want)
		}
	}
	got, err := db.NextSequence(ctx, "payments")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestDB_RunTransaction(t *testing.T) {
	ctx := context.Background()
	db := Open()
	require.NoError(t, db.Set(ctx, "refs", "3_7", doc{Name: "old"}))
	errAbort := errors.New("abort")

	err := db.RunTransaction(ctx, func(ctx context.Context, tx core.DocStore) error {
		if err := tx.Set(ctx, "refs", "3_7", doc{Name: "new"}); err != nil {
			return err
		}
		if _, err := tx.NextSequence(ctx, "payments"); err != nil {
			return err
		}
		// nested transactions join the outer one
		return tx.RunTransaction(ctx, func(ctx context.Context, tx core.DocStore) error {
			if err := tx.Set(ctx, "payments", "1", doc{Name: "p1"}); err != nil {
				return err
			}
			return errAbort
		})
	})
	assert.Equal(t, errAbort, err)

	snaps, err := db.Query(ctx, "refs")
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, names(t, snaps))
	n, _ := db.Count(ctx, "payments")
	assert.Equal(t, 0, n)
	seq, _ := db.NextSequence(ctx, "payments")
	assert.Equal(t, int64(1), seq)

	err = db.RunTransaction(ctx, func(ctx context.Context, tx core.DocStore) error {
		if err := tx.Set(ctx, "refs", "3_7", doc{Name: "new"}); err != nil {
			return err
		}
		snap, err := tx.Get(ctx, "refs", "3_7")
		if err != nil {
			return err
		}
		var d doc
		if err := snap.DataTo(&d); err != nil {
			return err
		}
		assert.Equal(t, "new", d.Name)
		return tx.Set(ctx, "payments", "2", doc{Name: "p2"})
	})
	require.NoError(t, err)

	snaps, err = db.Query(ctx, "refs")
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, names(t, snaps))
	n, _ = db.Count(ctx, "payments")
	assert.Equal(t, 1, n)
}

func TestDB_Create(t *testing.T) {
	ctx := context.Background()
	db := Open()

	require.NoError(t, db.Create(ctx, "payments", "1", doc{Name: "first"}))
	err := db.Create(ctx, "payments", "1", doc{Name: "second"})
	assert.Equal(t, core.ErrDocExists, err)

	snap, err := db.Get(ctx, "payments", "1")
	require.NoError(t, err)
	var d doc
	require.NoError(t, snap.DataTo(&d))
	assert.Equal(t, "first", d.Name)

	// a rolled back create leaves the id free
	errAbort := errors.New("abort")
	err = db.RunTransaction(ctx, func(ctx context.Context, tx core.DocStore) error {
		if err := tx.Create(ctx, "payments", "2", doc{Name: "tx"}); err != nil {
			return err
		}
		return errAbort
	})
	assert.Equal(t, errAbort, err)
	assert.NoError(t, db.Create(ctx, "payments", "2", doc{Name: "after"}))
}

func TestDB_SeedSequence(t *testing.T) {
	ctx := context.Background()
	db := Open()

	tests := []struct {
		seed int64
		want int64
	}{
		{seed: 0, want: 1},
		{seed: 10, want: 11},
		{seed: 4, want: 12}, // never lowered
	}
	for _, tt := range tests {
		require.NoError(t, db.SeedSequence(ctx, "payments", tt.seed))
		got, err := db.NextSequence(ctx, "payments")
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("failed! NextSequence() after SeedSequence(%v) = %v; want %v", tt.seed, got, tt.want)
		}
	}
}
