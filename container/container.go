// Package container is a small service registry for explicit dependency injection.
//
// Identifiers form a closed set of typed constants declared by the composition
// root. Each identifier is bound to one resolution strategy:
//
//	c.Bind(LoggerID).ToValue(log)               // same value every time
//	c.Bind(ClockID).ToFactory(newClock)         // factory invoked on every Get
//	c.Bind(RepoID).ToSingleton(newRepo)         // first successful result cached
//	c.Bind(ServiceID).To(newService)            // constructor, fresh instance every Get
//
// Factories receive the container and resolve their own dependencies eagerly.
// The container handed to a factory remembers the identifiers being built, so a
// dependency cycle fails with DEPENDENCY_CYCLE instead of recursing.
package container

import (
	"slices"
	"strings"
	"sync"

	"github.com/code19m/errx"
)

const (
	CodeUnboundIdentifier   = "UNBOUND_IDENTIFIER"
	CodeServiceTypeMismatch = "SERVICE_TYPE_MISMATCH"
	CodeDependencyCycle     = "DEPENDENCY_CYCLE"
)

// ID identifies a binding. Declare identifiers as typed constants.
type ID string

// Factory builds a service, resolving its dependencies from c.
type Factory func(c *Container) (any, error)

type strategy int

const (
	strategyValue strategy = iota
	strategyFactory
	strategySingleton
	strategyConstructor
)

type binding struct {
	strategy strategy
	value    any
	factory  Factory

	// singleton state
	mu       sync.Mutex
	built    bool
	instance any
}

type registry struct {
	mu       sync.RWMutex
	bindings map[ID]*binding
}

// Container maps identifiers to bindings. It is safe for concurrent use.
type Container struct {
	reg *registry

	// identifiers under construction, outermost first
	path []ID
}

// New creates an empty container.
func New() *Container {
	return &Container{reg: &registry{bindings: make(map[ID]*binding)}}
}

// Binder attaches a resolution strategy to an identifier.
type Binder struct {
	c  *Container
	id ID
}

// Bind starts a binding for id. Rebinding replaces the previous binding and
// discards any singleton it produced.
func (c *Container) Bind(id ID) *Binder {
	return &Binder{c: c, id: id}
}

// ToValue binds id to v.
func (b *Binder) ToValue(v any) {
	b.c.set(b.id, &binding{strategy: strategyValue, value: v})
}

// ToFactory binds id to fn, invoked on every resolution.
func (b *Binder) ToFactory(fn Factory) {
	b.c.set(b.id, &binding{strategy: strategyFactory, factory: fn})
}

// ToSingleton binds id to fn and caches the first instance it builds.
// A failed construction is not cached: the next Get invokes fn again.
func (b *Binder) ToSingleton(fn Factory) {
	b.c.set(b.id, &binding{strategy: strategySingleton, factory: fn})
}

// To binds id to a plain constructor producing a fresh instance per resolution.
func (b *Binder) To(ctor func() any) {
	b.c.set(b.id, &binding{
		strategy: strategyConstructor,
		factory:  func(*Container) (any, error) { return ctor(), nil },
	})
}

func (c *Container) set(id ID, b *binding) {
	c.reg.mu.Lock()
	defer c.reg.mu.Unlock()
	c.reg.bindings[id] = b
}

// Has reports whether id is bound. It never triggers construction.
func (c *Container) Has(id ID) bool {
	c.reg.mu.RLock()
	defer c.reg.mu.RUnlock()
	_, ok := c.reg.bindings[id]
	return ok
}

// Get resolves id according to its binding.
func (c *Container) Get(id ID) (any, error) {
	c.reg.mu.RLock()
	b, ok := c.reg.bindings[id]
	c.reg.mu.RUnlock()

	if !ok {
		return nil, errx.New(
			"no binding registered for identifier: "+string(id),
			errx.WithCode(CodeUnboundIdentifier),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(errx.D{"identifier": string(id)}),
		)
	}

	// the table lock is released here so factories may resolve other identifiers
	switch b.strategy {
	case strategyValue:
		return b.value, nil
	case strategySingleton:
		return c.singleton(id, b)
	case strategyFactory, strategyConstructor:
		return c.build(id, b.factory)
	}

	return nil, errx.New("unknown binding strategy", errx.WithType(errx.T_Internal))
}

// MustGet is like Get but panics on error. Intended for composition roots.
func (c *Container) MustGet(id ID) any {
	v, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return v
}

func (c *Container) singleton(id ID, b *binding) (any, error) {
	// a cycle must be reported before taking the lock the outer build holds
	if slices.Contains(c.path, id) {
		return nil, c.cycleError(id)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return b.instance, nil
	}

	v, err := c.build(id, b.factory)
	if err != nil {
		return nil, err
	}
	b.instance, b.built = v, true
	return v, nil
}

func (c *Container) build(id ID, fn Factory) (any, error) {
	if slices.Contains(c.path, id) {
		return nil, c.cycleError(id)
	}

	v, err := fn(c.resolving(id))
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"identifier": string(id)}))
	}
	return v, nil
}

// resolving returns a view of c that shares its bindings and records id as
// under construction.
func (c *Container) resolving(id ID) *Container {
	return &Container{reg: c.reg, path: append(slices.Clone(c.path), id)}
}

func (c *Container) cycleError(id ID) error {
	chain := make([]string, 0, len(c.path)+1)
	for _, p := range c.path {
		chain = append(chain, string(p))
	}
	chain = append(chain, string(id))

	return errx.New(
		"dependency cycle detected: "+strings.Join(chain, " -> "),
		errx.WithCode(CodeDependencyCycle),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{"identifier": string(id), "chain": chain}),
	)
}

// Resolve gets id from c and asserts it to T.
func Resolve[T any](c *Container, id ID) (T, error) {
	var zero T

	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, errx.New(
			"service has unexpected type",
			errx.WithCode(CodeServiceTypeMismatch),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(errx.D{
				"identifier": string(id),
				"actual":     typeName(v),
				"expected":   typeNameOf[T](),
			}),
		)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, id ID) T {
	v, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return v
}
