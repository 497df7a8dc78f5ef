// Package idgen hands out entity identifiers and campaign codes.
//
// Identifiers are per-kind sequences starting at 1. A value is never handed
// out twice, even when the entity that received it is later deleted. Every
// Allocator serializes increments of the same kind, so concurrent creates
// never share an id.
package idgen

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrEmptyKind is returned when Next is called without an entity kind.
var ErrEmptyKind = errors.New("idgen: entity kind is required")

// Allocator returns the next identifier for an entity kind.
type Allocator interface {
	Next(ctx context.Context, kind string) (int64, error)
}

// MemoryAllocator keeps its counters in process memory.
type MemoryAllocator struct {
	mu   sync.Mutex
	next map[string]int64
}

// NewMemoryAllocator returns an allocator whose sequences all start at 1.
func NewMemoryAllocator() *MemoryAllocator {
	return &MemoryAllocator{next: map[string]int64{}}
}

func (a *MemoryAllocator) Next(_ context.Context, kind string) (int64, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return 0, ErrEmptyKind
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next[kind]++
	return a.next[kind], nil
}

// Peek returns the last identifier handed out for kind (0 if none).
func (a *MemoryAllocator) Peek(kind string) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next[kind]
}
