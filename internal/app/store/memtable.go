package store

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/assisberlanda/sousolidario/internal/app/system/idgen"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// MemTable keeps each record as a BSON snapshot in process memory. Reads
// decode a fresh value, so callers never share memory with the table, and
// filters use the same field names as the Mongo backing.
type MemTable[T any] struct {
	spec  Spec
	alloc idgen.Allocator

	mu     sync.RWMutex
	rows   map[int64]bson.Raw
	unique map[string]map[string]int64 // field → encoded value → id
}

// NewMemTable returns an empty table for spec.
func NewMemTable[T any](spec Spec, alloc idgen.Allocator) *MemTable[T] {
	t := &MemTable[T]{
		spec:   spec,
		alloc:  alloc,
		rows:   map[int64]bson.Raw{},
		unique: map[string]map[string]int64{},
	}
	for _, f := range spec.Unique {
		t.unique[f] = map[string]int64{}
	}
	return t
}

func (t *MemTable[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	id, err := t.alloc.Next(ctx, t.spec.Kind)
	if err != nil {
		return zero, err
	}
	doc, err := newDocument(v, id, time.Now().UTC())
	if err != nil {
		return zero, fmt.Errorf("store: encode %s: %w", t.spec.Kind, err)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return zero, fmt.Errorf("store: encode %s: %w", t.spec.Kind, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkUnique(raw, 0); err != nil {
		return zero, err
	}
	t.rows[id] = raw
	t.index(raw, id)
	return decode[T](raw)
}

func (t *MemTable[T]) Get(_ context.Context, id int64) (T, bool, error) {
	var zero T
	t.mu.RLock()
	raw, ok := t.rows[id]
	t.mu.RUnlock()
	if !ok {
		return zero, false, nil
	}
	v, err := decode[T](raw)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func (t *MemTable[T]) FindOne(_ context.Context, f Filter) (T, bool, error) {
	var zero T
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.sortedIDs() {
		raw := t.rows[id]
		if matches(raw, f) {
			v, err := decode[T](raw)
			if err != nil {
				return zero, false, err
			}
			return v, true, nil
		}
	}
	return zero, false, nil
}

func (t *MemTable[T]) List(_ context.Context, f Filter) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for _, id := range t.sortedIDs() {
		raw := t.rows[id]
		if !matches(raw, f) {
			continue
		}
		v, err := decode[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (t *MemTable[T]) Update(_ context.Context, id int64, set Set) (T, bool, error) {
	var zero T
	if _, ok := set["_id"]; ok {
		return zero, false, ErrImmutableField
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	old, ok := t.rows[id]
	if !ok {
		return zero, false, nil
	}

	var doc bson.D
	if err := bson.Unmarshal(old, &doc); err != nil {
		return zero, false, err
	}
	for k, v := range set {
		doc = setField(doc, k, v)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return zero, false, fmt.Errorf("store: encode %s: %w", t.spec.Kind, err)
	}
	if err := t.checkUnique(raw, id); err != nil {
		return zero, false, err
	}
	t.unindex(old)
	t.rows[id] = raw
	t.index(raw, id)

	v, err := decode[T](raw)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func (t *MemTable[T]) Delete(_ context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	raw, ok := t.rows[id]
	if !ok {
		return false, nil
	}
	t.unindex(raw)
	delete(t.rows, id)
	return true, nil
}

func (t *MemTable[T]) DeleteWhere(_ context.Context, f Filter) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var n int64
	for id, raw := range t.rows {
		if matches(raw, f) {
			t.unindex(raw)
			delete(t.rows, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored records.
func (t *MemTable[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

/* ---------------------------- internals ---------------------------- */

// sortedIDs must be called with mu held.
func (t *MemTable[T]) sortedIDs() []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// checkUnique must be called with mu held. self is the id being rewritten
// (0 on create) and does not conflict with itself.
func (t *MemTable[T]) checkUnique(raw bson.Raw, self int64) error {
	for field, seen := range t.unique {
		key, ok := uniqueKey(raw, field)
		if !ok {
			continue
		}
		if owner, taken := seen[key]; taken && owner != self {
			return fmt.Errorf("%w: %s.%s", ErrDuplicate, t.spec.Kind, field)
		}
	}
	return nil
}

func (t *MemTable[T]) index(raw bson.Raw, id int64) {
	for field, seen := range t.unique {
		if key, ok := uniqueKey(raw, field); ok {
			seen[key] = id
		}
	}
}

func (t *MemTable[T]) unindex(raw bson.Raw) {
	for field, seen := range t.unique {
		if key, ok := uniqueKey(raw, field); ok {
			delete(seen, key)
		}
	}
}

func uniqueKey(raw bson.Raw, field string) (string, bool) {
	rv, err := raw.LookupErr(strings.Split(field, ".")...)
	if err != nil || rv.Type == bsontype.Null {
		return "", false
	}
	if rv.Type == bsontype.String && rv.StringValue() == "" {
		return "", false
	}
	return string(rune(rv.Type)) + string(rv.Value), true
}

func matches(raw bson.Raw, f Filter) bool {
	for field, want := range f {
		rv, err := raw.LookupErr(strings.Split(field, ".")...)
		if err != nil {
			return false
		}
		if !valueEquals(rv, want) {
			return false
		}
	}
	return true
}

// valueEquals compares a stored value with a filter value. Integers compare by
// value across int32/int64, the way a Mongo equality query does.
func valueEquals(rv bson.RawValue, want any) bool {
	if n, ok := asInt64(want); ok {
		switch rv.Type {
		case bsontype.Int32:
			return int64(rv.Int32()) == n
		case bsontype.Int64:
			return rv.Int64() == n
		}
		return false
	}
	typ, data, err := bson.MarshalValue(want)
	if err != nil {
		return false
	}
	return rv.Type == typ && bytes.Equal(rv.Value, data)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
