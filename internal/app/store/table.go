// Package store is the entity store: one Table per entity kind, each keyed by
// an integer id that the table obtains from an idgen.Allocator.
//
// Tables do not check references between entities. A NeededItem pointing at a
// campaign that does not exist is stored as given; the services that write
// entities validate references before calling the store.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrDuplicate is returned when a write would break a unique field.
	ErrDuplicate = errors.New("store: duplicate value for unique field")

	// ErrImmutableField is returned when an update tries to change _id.
	ErrImmutableField = errors.New("store: _id cannot be updated")
)

// Filter selects records whose bson fields equal the given values.
// A nil or empty Filter matches every record.
type Filter map[string]any

// Set is a partial update: bson field name → new value.
type Set map[string]any

// Table is the storage contract every entity kind satisfies.
//
// Values returned from a Table are private copies; mutating them never
// changes what is stored. Lists are ordered by id, which is creation order.
type Table[T any] interface {
	// Create assigns the next id (and created_at, when the kind has one),
	// stores v and returns the stored value.
	Create(ctx context.Context, v T) (T, error)

	// Get returns the record with id; found is false when there is none.
	Get(ctx context.Context, id int64) (v T, found bool, err error)

	// FindOne returns the lowest-id record matching f.
	FindOne(ctx context.Context, f Filter) (v T, found bool, err error)

	List(ctx context.Context, f Filter) ([]T, error)

	// Update merges set into the record with id. found is false, with a nil
	// error, when id is unknown.
	Update(ctx context.Context, id int64, set Set) (v T, found bool, err error)

	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id int64) (bool, error)

	DeleteWhere(ctx context.Context, f Filter) (int64, error)
}

// Spec describes how a kind is stored.
type Spec struct {
	Kind    string   // collection name and allocator sequence
	Unique  []string // fields whose values may not repeat
	Indexed []string // reference fields that are queried often
}

// newDocument turns v into an ordered document carrying id and, when the
// kind has a created_at field, the creation time.
func newDocument(v any, id int64, now time.Time) (bson.D, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc = setField(doc, "_id", id)
	for i := range doc {
		if doc[i].Key == "created_at" {
			doc[i].Value = now
		}
	}
	return doc, nil
}

func setField(doc bson.D, key string, value any) bson.D {
	for i := range doc {
		if doc[i].Key == key {
			doc[i].Value = value
			return doc
		}
	}
	return append(doc, bson.E{Key: key, Value: value})
}

func decode[T any](raw []byte) (T, error) {
	var v T
	err := bson.Unmarshal(raw, &v)
	return v, err
}
