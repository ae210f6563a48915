package sequence

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
)

// Numbered is a collection whose document ids come from the sequence of the same name.
type Numbered struct {
	Collection string
	Field      string // holds the number in each document
}

// NumberedCollections are synced by Open.
var NumberedCollections = []Numbered{
	{Collection: core.CollectionCustomers, Field: "customerId"},
	{Collection: core.CollectionPayments, Field: "paymentId"},
}

// Open returns the sequencer configured by conf.Sequence.Backend, synced with store.
func Open(ctx context.Context, conf *core.Config, store core.DocStore) (core.Sequencer, error) {
	var seq core.SequenceSeeder = store
	if conf.Sequence.Backend == core.SequenceRedis {
		client, err := OpenRedis(ctx, conf.Sequence)
		if err != nil {
			return nil, err
		}
		seq = NewRedisSequencer(client)
	}
	if err := Sync(ctx, store, seq, NumberedCollections...); err != nil {
		return nil, err
	}
	return seq, nil
}

// Sync raises each sequence to the highest number already used in its collection, by
// a numeric document id or by the number field. Documents written by count-based
// clients are never handed out again.
func Sync(ctx context.Context, store core.DocStore, seq core.SequenceSeeder, collections ...Numbered) error {
	for _, nc := range collections {
		top, err := highestNumber(ctx, store, nc)
		if err != nil {
			return err
		}
		if err := seq.SeedSequence(ctx, nc.Collection, top); err != nil {
			return err
		}
	}
	return nil
}

func highestNumber(ctx context.Context, store core.DocStore, nc Numbered) (int64, error) {
	snaps, err := store.Query(ctx, nc.Collection)
	if err != nil {
		return 0, errors.Wrapf(err, "querying %s", nc.Collection)
	}
	var top int64
	for _, snap := range snaps {
		if n, err := strconv.ParseInt(snap.ID(), 10, 64); err == nil && n > top {
			top = n
		}
		fields := make(map[string]core.FlexInt)
		if err := snap.DataTo(&fields); err != nil {
			return 0, errors.Wrapf(err, "decoding %s/%s", nc.Collection, snap.ID())
		}
		if n := int64(fields[nc.Field]); n > top {
			top = n
		}
	}
	return top, nil
}
