package container

import "reflect"

// Resolver carries one in-progress traversal: the stack of abstract keys
// currently being constructed on this call path, root first. Every factory
// receives the Resolver of the Resolve call that invoked it and must use
// it for its own dependencies; starting a fresh traversal from inside a
// factory would blind the cycle detection.
//
// A Resolver is created per top-level Resolve and never outlives it.
type Resolver struct {
	registry *Registry
	trail    []reflect.Type
}

// Registry returns the registry this traversal runs against.
func (res *Resolver) Registry() *Registry {
	return res.registry
}

// resolve walks one node of the dependency graph, depth first:
//
//  1. Look up the factory — a contextual binding for the key under the
//     current parent wins over the global registration; no factory at
//     all is a soft miss.
//  2. If the key is already on the trail, the caller is a descendant of
//     its own construction: report absence at this node only, so the
//     ancestor keeps building with a zero-valued slot instead of
//     recursing forever.
//  3. Push the key, run the factory (which re-enters here for each of
//     its dependencies), pop the key so sibling branches may use it
//     again.
func (res *Resolver) resolve(key reflect.Type) (any, bool) {
	reg := res.registry
	key = reg.canonical(key)

	var f Factory
	if n := len(res.trail); n > 0 {
		f = reg.contextualFor(res.trail[n-1], key)
	}
	if f == nil {
		var ok bool
		f, ok = reg.bindings[key]
		if !ok {
			return nil, false
		}
	}

	for _, ancestor := range res.trail {
		if ancestor == key {
			return nil, false
		}
	}

	res.trail = append(res.trail, key)
	instance := f(res)
	res.trail = res.trail[:len(res.trail)-1]

	instance = reg.applyExtenders(key, instance, res)
	reg.fireAfterResolving(key, instance)
	return instance, true
}
