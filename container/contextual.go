package container

import "reflect"

// When starts a contextual binding chain for the concrete type C: while
// a value of C is the node currently being built, its dependencies can
// be given something other than their global registration.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(...)
//	container.When[*PhotoController](r).
//	    Needs(container.KeyFor[Filesystem]()).
//	    Give(func(res *container.Resolver) any { return &S3Filesystem{} })
func When[C any](r *Registry) *ContextualBuilder {
	return &ContextualBuilder{registry: r, concrete: KeyFor[C]()}
}

// ContextualBuilder implements the fluent contextual binding API.
type ContextualBuilder struct {
	registry *Registry
	concrete reflect.Type
	needs    reflect.Type
}

// Needs specifies which abstract key the concrete type depends on.
func (b *ContextualBuilder) Needs(key reflect.Type) *ContextualBuilder {
	b.needs = key
	return b
}

// Give provides the factory used when the concrete type resolves the
// needed abstract. The factory still runs inside the shared traversal,
// so cycle detection applies to it like any other.
func (b *ContextualBuilder) Give(factory Factory) {
	if _, ok := b.registry.contextual[b.concrete]; !ok {
		b.registry.contextual[b.concrete] = make(map[reflect.Type]Factory)
	}
	b.registry.contextual[b.concrete][b.needs] = factory
}

// GiveValue is a shorthand for Give when the value is a pre-built
// instance or simple scalar (no factory logic needed).
//
//	// Laravel: ->give('/tmp/photos')
//	container.When[*PhotoController](r).Needs(pathKey).GiveValue("/tmp/photos")
func (b *ContextualBuilder) GiveValue(value any) {
	b.Give(func(_ *Resolver) any { return value })
}

// contextualFor returns the contextual factory for (concrete, abstract),
// or nil when the global registration should be used.
func (r *Registry) contextualFor(concrete, abstract reflect.Type) Factory {
	if m, ok := r.contextual[concrete]; ok {
		if f, ok := m[abstract]; ok {
			return f
		}
	}
	return nil
}
