package core

import (
	"context"
	"encoding/json"
	"errors"
)

// Collections
const (
	CollectionUsers              = "users"
	CollectionCourses            = "courses"
	CollectionEnrollments        = "enrollments"
	CollectionProgress           = "progress"
	CollectionCustomers          = "customers"
	CollectionCourseCustomerRefs = "course_customer_refs"
	CollectionPayments           = "payments"
	CollectionTeachers           = "teachers"
	CollectionCategories         = "categories"
	CollectionSequences          = "sequences"
)

var (
	// ErrDocNotFound is returned by single document operations on a missing id.
	ErrDocNotFound = errors.New("document not found")
	// ErrDocExists is returned by Create when the id is already taken.
	ErrDocExists = errors.New("document already exists")
)

type (
	// Snapshot is a document read from a collection.
	Snapshot interface {
		ID() string
		// DataTo decodes the document fields into v (a pointer to a tagged struct or a map).
		DataTo(v interface{}) error
	}

	// Filter is an equality condition on a top-level document field.
	Filter struct {
		Field string
		Value interface{}
	}

	// Sequencer hands out strictly increasing numbers per name, starting at 1.
	Sequencer interface {
		NextSequence(ctx context.Context, name string) (int64, error)
	}

	// SequenceSeeder is a Sequencer whose sequences can be moved forward.
	SequenceSeeder interface {
		Sequencer
		// SeedSequence raises the sequence to at least n; lower values are left alone.
		SeedSequence(ctx context.Context, name string, n int64) error
	}

	// DocStore is a collection/document store. Documents are flat structs tagged with
	// matching `json` and `bson` names; ids are strings.
	DocStore interface {
		SequenceSeeder

		Get(ctx context.Context, collection, id string) (Snapshot, error)
		// Query returns the documents matching all filters (AND), ordered by id.
		Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error)
		Count(ctx context.Context, collection string) (int, error)
		// Set creates or overwrites the document with the given id.
		Set(ctx context.Context, collection, id string, doc interface{}) error
		// Create creates the document with the given id, or fails with ErrDocExists.
		Create(ctx context.Context, collection, id string, doc interface{}) error
		// Add creates a document with a store-generated id and returns the id.
		Add(ctx context.Context, collection string, doc interface{}) (string, error)
		// Update merges fields into an existing document.
		Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
		Delete(ctx context.Context, collection, id string) error
		// RunTransaction runs fn against a transactional view of the store; all writes made
		// through tx are committed together when fn returns nil, discarded otherwise.
		RunTransaction(ctx context.Context, fn func(ctx context.Context, tx DocStore) error) error
	}

	// DB is an opened document store.
	DB interface {
		DocStore

		Ping(ctx context.Context) error
		Close(ctx context.Context) error
	}
)

// Where is shorthand for an equality Filter.
func Where(field string, value interface{}) Filter {
	return Filter{Field: field, Value: value}
}

// JSONSnapshot is a Snapshot over a JSON encoded document.
type JSONSnapshot struct {
	DocID string
	Data  []byte
}

var _ Snapshot = JSONSnapshot{}

func (s JSONSnapshot) ID() string { return s.DocID }

func (s JSONSnapshot) DataTo(v interface{}) error {
	return json.Unmarshal(s.Data, v)
}
