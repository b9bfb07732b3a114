// Package router keeps the tag-keyed handler tables shared by the dispatchers.
package router

import (
	"reflect"
	"slices"
	"sync"
)

// Handler is the part of a handler the router needs to pick it.
type Handler[M any] interface {
	CanHandle(msg M) bool
}

// Outcome describes the result of a lookup.
type Outcome int

const (
	Found Outcome = iota
	NotFound
	Ambiguous
)

// Router stores handlers per tag in registration order. Handlers registered
// under the empty tag are wildcards consulted after the tagged ones.
type Router[M any, H Handler[M]] struct {
	mu    sync.RWMutex
	byTag map[string][]H
}

// New creates an empty router.
func New[M any, H Handler[M]]() *Router[M, H] {
	return &Router[M, H]{byTag: make(map[string][]H)}
}

// Add appends h under tag. It reports false when the same handler instance is
// already registered under tag. Identity is only tracked for pointer handlers.
func (r *Router[M, H]) Add(tag string, h H) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.byTag[tag], func(existing H) bool { return sameInstance(existing, h) }) {
		return false
	}

	r.byTag[tag] = append(r.byTag[tag], h)
	return true
}

// Lookup returns the first handler registered under tag that can handle msg.
// With strict set, a second capable handler makes the lookup Ambiguous.
func (r *Router[M, H]) Lookup(tag string, msg M, strict bool) (H, Outcome) {
	r.mu.RLock()
	candidates := slices.Concat(r.byTag[tag], r.byTag[""])
	r.mu.RUnlock()

	var (
		chosen H
		found  bool
	)
	for _, h := range candidates {
		if !h.CanHandle(msg) {
			continue
		}
		if found {
			return chosen, Ambiguous
		}
		chosen, found = h, true
		if !strict {
			break
		}
	}

	if !found {
		return chosen, NotFound
	}
	return chosen, Found
}

// Len returns the number of registered handlers.
func (r *Router[M, H]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, hs := range r.byTag {
		n += len(hs)
	}
	return n
}

func sameInstance(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Pointer || vb.Kind() != reflect.Pointer {
		return false
	}
	return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
}
