// Package container provides a type-indexed IoC (Inversion of Control)
// registry and Service Provider system for Go.
//
// # Overview
//
// The registry maps abstract types — usually interfaces — to factories that
// produce values satisfying them. An abstract type is bound either to a
// builder (a fresh value is constructed on every resolution, with the
// builder declaring its own dependency list) or to a pre-built instance
// (the same value is handed out every time). Resolution is recursive and
// depth first: building one value resolves its dependencies, which resolve
// theirs, with a per-call traversal stack detecting circular dependencies
// along the way.
//
// It keeps the shape of Laravel's Illuminate\Container\Container, with two
// deliberate departures: lookups are indexed by reflect.Type instead of
// strings, and resolution never panics — a missing registration and a
// dependency cycle both surface as (zero, false).
//
// # Registrations
//
//	r := container.New()
//
//	// Fresh value per Resolve; dependencies declared in the builder
//	// Laravel: $app->bind(UserService::class, fn($app) => new UserService(...))
//	container.RegisterType[*UserService](r, func(res *container.Resolver) *UserService {
//	    repo, _ := container.Resolve[UserRepository](res)
//	    return &UserService{Repo: repo}
//	})
//
//	// Pre-built value, shared by every resolver
//	// Laravel: $app->instance(Config::class, $config)
//	container.RegisterInstance[*config.Config](r, cfg)
//
//	// Remove a registration
//	container.Unregister[UserRepository](r)
//
// # Resolving
//
//	svc, ok := container.Resolve[*UserService](r)
//	if !ok {
//	    // never registered, or a dependency cycle reached *UserService again
//	}
//
// Inside a builder, resolve through the *Resolver argument — never through
// the registry itself. The Resolver carries the stack of types currently
// under construction; a builder that reaches back to a type already on
// that stack gets (zero, false) for that one slot and construction of the
// rest of the graph carries on.
//
// # Contextual binding
//
//	// Laravel: $app->when(PhotoController::class)
//	//              ->needs(Filesystem::class)
//	//              ->give(fn() => new S3Filesystem)
//	container.When[*PhotoController](r).
//	    Needs(container.KeyFor[Filesystem]()).
//	    Give(func(res *container.Resolver) any { return &S3Filesystem{} })
//
// # Tags
//
//	// Laravel: $app->tag([CpuReport::class, MemReport::class], 'reports')
//	r.Tag("reports", container.KeyFor[*CpuReport](), container.KeyFor[*MemReport]())
//	reports := r.Tagged("reports") // []any
//
// # Extend / Decorate
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
//	container.Extend[Logger](r, func(l Logger, res *container.Resolver) Logger {
//	    return &TimestampLogger{Inner: l}
//	})
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(r *container.Registry) {
//	    container.RegisterInstance[*mail.SMTP](r, mail.NewSMTP())
//	}
//
//	registry := container.NewProviderRegistry(r)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Concurrency
//
// The registry takes no locks of its own. Registration and resolution are
// single-threaded by contract; callers sharing a registry across
// goroutines must synchronize externally.
package container
