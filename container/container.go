package container

import (
	"fmt"
	"reflect"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a concrete value for one resolution. Dependencies are
// pulled through res so the whole construction shares one traversal.
type Factory func(res *Resolver) any

// extender wraps an already-built value with decorator logic.
type extender func(instance any, res *Resolver) any

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry is the IoC container: a mapping from abstract type keys to the
// factories that produce values satisfying them.
//
// It supports:
//   - RegisterType / RegisterInstance / Unregister / Resolve
//   - Alias (route one abstract type to another's registration)
//   - Tags (group multiple abstractions under one tag)
//   - Extend (decorate / wrap resolved values)
//   - Contextual binding (when A needs B, give it C)
//   - AfterResolving callbacks
//
// Unlike Laravel's Illuminate\Container\Container, lookups are indexed by
// reflect.Type rather than strings, so a binding can never be resolved as
// the wrong type. Resolution never panics: a missing registration and a
// circular dependency both come back as (zero, false) from Resolve.
//
// A Registry is not safe for concurrent use and must not be copied —
// hand it around as the *Registry returned by New. Copying would duplicate
// the captured-instance closures and break the one-shared-value guarantee
// of RegisterInstance.
type Registry struct {
	noCopy noCopy

	// abstract key → factory
	bindings map[reflect.Type]Factory

	// alias key → canonical key
	aliases map[reflect.Type]reflect.Type

	// abstract key → extender funcs
	extenders map[reflect.Type][]extender

	// tag → []abstract key
	tags map[string][]reflect.Type

	// contextual: when[concrete][abstract] = factory
	contextual map[reflect.Type]map[reflect.Type]Factory

	// resolved callbacks: []func(key, instance)
	afterResolving []func(reflect.Type, any)
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		bindings:   make(map[reflect.Type]Factory),
		aliases:    make(map[reflect.Type]reflect.Type),
		extenders:  make(map[reflect.Type][]extender),
		tags:       make(map[string][]reflect.Type),
		contextual: make(map[reflect.Type]map[reflect.Type]Factory),
	}
}

// KeyFor returns the registry key for the abstract type I.
// Works uniformly for interface and concrete type arguments.
//
//	key := container.KeyFor[UserRepository]()
func KeyFor[I any]() reflect.Type {
	return reflect.TypeOf((*I)(nil)).Elem()
}

// ── Registration ──────────────────────────────────────────────────────────────

// RegisterType binds the abstract type I to a builder for some concrete
// implementation. Every Resolve constructs a fresh value; the builder
// declares I's dependencies by resolving them through res, which keeps
// cycle detection working across the whole construction.
//
//	// Laravel: $app->bind(UserRepository::class, fn($app) => new DbUserRepository(...))
//	container.RegisterType[UserRepository](r, func(res *container.Resolver) UserRepository {
//	    db, _ := container.Resolve[*sql.DB](res)
//	    return &DbUserRepository{DB: db}
//	})
//
// Silently replaces any prior registration for I.
func RegisterType[I any](r *Registry, build func(res *Resolver) I) {
	r.registerFactory(KeyFor[I](), func(res *Resolver) any {
		return build(res)
	})
}

// RegisterInstance binds the abstract type I to a pre-built value that
// every Resolve returns as-is, regardless of where in a traversal it is
// requested.
//
//	// Laravel: $app->instance(Config::class, $config)
//	container.RegisterInstance[*config.Config](r, cfg)
//
// Silently replaces any prior registration for I.
func RegisterInstance[I any](r *Registry, instance I) {
	r.registerFactory(KeyFor[I](), func(_ *Resolver) any {
		return instance
	})
}

// Unregister removes the registration for I; no-op if there is none.
// Subsequent Resolve[I] calls report absence until I is registered again.
func Unregister[I any](r *Registry) {
	delete(r.bindings, r.canonical(KeyFor[I]()))
}

// registerFactory installs f under the canonical key, replacing any
// previous entry (unregister-then-insert).
func (r *Registry) registerFactory(key reflect.Type, f Factory) {
	key = r.canonical(key)
	delete(r.bindings, key)
	r.bindings[key] = f
}

// Alias routes resolutions of the type A to the registration of I.
// Whatever I's factory produces must also satisfy A, or resolving A
// reports absence.
//
//	// Laravel: $app->alias(Cache::class, 'cache')
//	container.Alias[*RedisCache, Cache](r)
func Alias[I, A any](r *Registry) {
	abstract, alias := KeyFor[I](), KeyFor[A]()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	r.aliases[alias] = r.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Source is anything a value can be resolved from: the *Registry itself,
// which starts a fresh traversal, or the *Resolver handed to a factory,
// which continues the in-progress one.
type Source interface {
	resolve(key reflect.Type) (any, bool)
}

// Resolve looks up the abstract type I and returns a value satisfying it.
// The second return is false — and the first the zero value — when I has
// no registration, when I is already being constructed further up the
// current traversal (a dependency cycle), or when the registered value
// does not satisfy I. None of these panic; a missing dependency is the
// builder's to tolerate or reject.
//
//	// Laravel: $app->make(UserRepository::class)
//	repo, ok := container.Resolve[UserRepository](r)
func Resolve[I any](from Source) (I, bool) {
	v, ok := from.resolve(KeyFor[I]())
	if !ok {
		var zero I
		return zero, false
	}
	typed, ok := v.(I)
	return typed, ok
}

// resolve on the Registry is the top-level entry point: each call gets
// its own empty traversal.
func (r *Registry) resolve(key reflect.Type) (any, bool) {
	res := &Resolver{registry: r}
	return res.resolve(key)
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extend decorates every value resolved for I from now on. Extenders run
// after the factory, in registration order.
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
//	container.Extend[Logger](r, func(l Logger, res *container.Resolver) Logger {
//	    return &TimestampLogger{Inner: l}
//	})
func Extend[I any](r *Registry, fn func(instance I, res *Resolver) I) {
	key := r.canonical(KeyFor[I]())
	r.extenders[key] = append(r.extenders[key], func(instance any, res *Resolver) any {
		typed, ok := instance.(I)
		if !ok {
			return instance
		}
		return fn(typed, res)
	})
}

func (r *Registry) applyExtenders(key reflect.Type, instance any, res *Resolver) any {
	for _, ext := range r.extenders[key] {
		instance = ext(instance, res)
	}
	return instance
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tag associates abstract keys with a named group.
//
//	// Laravel: $app->tag([CpuReport::class, MemoryReport::class], 'reports')
//	r.Tag("reports", container.KeyFor[CpuReport](), container.KeyFor[MemoryReport]())
func (r *Registry) Tag(tag string, keys ...reflect.Type) {
	r.tags[tag] = append(r.tags[tag], keys...)
}

// Tagged resolves every key registered under a tag, each in its own
// traversal. Keys whose resolution reports absence are skipped.
//
//	// Laravel: $app->tagged('reports')
//	reports := r.Tagged("reports") // []any
func (r *Registry) Tagged(tag string) []any {
	result := make([]any, 0, len(r.tags[tag]))
	for _, key := range r.tags[tag] {
		if v, ok := r.resolve(key); ok {
			result = append(result, v)
		}
	}
	return result
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether I has a registration.
//
//	// Laravel: $app->bound(UserRepository::class)
func Bound[I any](r *Registry) bool {
	_, ok := r.bindings[r.canonical(KeyFor[I]())]
	return ok
}

// Keys returns all registered abstract keys (for debugging).
func (r *Registry) Keys() []reflect.Type {
	out := make([]reflect.Type, 0, len(r.bindings))
	for k := range r.bindings {
		out = append(out, k)
	}
	return out
}

// Flush resets the entire registry.
func (r *Registry) Flush() {
	r.bindings = make(map[reflect.Type]Factory)
	r.aliases = make(map[reflect.Type]reflect.Type)
	r.extenders = make(map[reflect.Type][]extender)
	r.tags = make(map[string][]reflect.Type)
	r.contextual = make(map[reflect.Type]map[reflect.Type]Factory)
	r.afterResolving = nil
}

// canonical resolves an alias to its canonical key.
func (r *Registry) canonical(key reflect.Type) reflect.Type {
	if target, ok := r.aliases[key]; ok {
		return target
	}
	return key
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after each completed
// resolution, with the canonical key and the value produced.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (r *Registry) AfterResolving(cb func(key reflect.Type, instance any)) {
	r.afterResolving = append(r.afterResolving, cb)
}

func (r *Registry) fireAfterResolving(key reflect.Type, instance any) {
	for _, cb := range r.afterResolving {
		cb(key, instance)
	}
}

// ── noCopy ────────────────────────────────────────────────────────────────────

// noCopy makes `go vet -copylocks` flag copies of the embedding struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
