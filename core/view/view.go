package view

import (
	"sync"

	"github.com/pkg/errors"
)

type LoadState string

const (
	StateLoading  LoadState = "loading"
	StateLoaded   LoadState = "loaded"
	StateDegraded LoadState = "degraded"
)

// ErrStale is returned by a load that was superseded by a newer one; its results are discarded.
var ErrStale = errors.New("stale load discarded")

// Dataset is one fetched list and how it was obtained.
// Placeholder is set when Items are sample data standing in for a failed fetch.
type Dataset[T any] struct {
	State       LoadState `json:"state"`
	Items       []T       `json:"items"`
	Placeholder bool      `json:"placeholder,omitempty"`
}

func loading[T any]() Dataset[T] {
	return Dataset[T]{State: StateLoading, Items: []T{}}
}

func loaded[T any](items []T) Dataset[T] {
	if items == nil {
		items = []T{}
	}
	return Dataset[T]{State: StateLoaded, Items: items}
}

// degraded is an empty failed dataset, or the placeholder items when they are given.
func degraded[T any](placeholder []T) Dataset[T] {
	if placeholder == nil {
		return Dataset[T]{State: StateDegraded, Items: []T{}}
	}
	items := make([]T, len(placeholder))
	copy(items, placeholder)
	return Dataset[T]{State: StateDegraded, Items: items, Placeholder: true}
}

// generation hands out load tokens; only the latest token may commit.
type generation struct {
	mu      sync.Mutex
	current uint64
}

func (g *generation) next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	return g.current
}

// commit runs fn if token is still the latest one.
func (g *generation) commit(token uint64, fn func()) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if token != g.current {
		return ErrStale
	}
	fn()
	return nil
}
