// Package docrepos implements the domain repositories on top of a core.DocStore.
package docrepos

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
)

// decodeAll decodes every snapshot with decode, wrapping failures with the collection name.
func decodeAll[T any](collection string, snaps []core.Snapshot, decode func(core.Snapshot) (T, error)) ([]T, error) {
	items := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		item, err := decode(snap)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s/%s", collection, snap.ID())
		}
		items = append(items, item)
	}
	return items, nil
}

// notFound maps core.ErrDocNotFound to the domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Cause(err) == core.ErrDocNotFound {
		return sentinel
	}
	return err
}

func itoa(i int) string { return strconv.Itoa(i) }
