package container

import "reflect"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other registrations inside Boot().
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(r *container.Registry) {
//	    container.RegisterType[Mailer](r, func(res *container.Resolver) Mailer {
//	        cfg, _ := container.Resolve[*config.Config](res)
//	        return mail.NewSMTP(cfg)
//	    })
//	}
//
//	func (p *AppServiceProvider) Boot(r *container.Registry) {
//	    // safe to resolve any registration here
//	}
type ServiceProvider interface {
	// Register binds services into the registry.
	// Do NOT resolve other registrations here — use Boot() for that.
	Register(r *Registry)

	// Boot is called after all providers are registered.
	// Safe to resolve and use any registration here.
	Boot(r *Registry)

	// Provides returns the abstract keys this provider registers.
	// Used for deferred (lazy) provider loading; build the keys with
	// KeyFor. Return nil / empty slice if the provider is always eager.
	//
	//	// Laravel: public function provides(): array { return [Cache::class]; }
	Provides() []reflect.Type

	// IsDeferred returns true if this provider should be loaded lazily —
	// only when one of its Provides() keys is first resolved.
	//
	//	// Laravel: protected $defer = true;
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(r *container.Registry) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Registry)         {}
func (p *BaseProvider) Provides() []reflect.Type { return nil }
func (p *BaseProvider) IsDeferred() bool         { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
//
// It mirrors the behaviour of Laravel's Application::registerConfiguredProviders
// and Application::bootProviders.
type ProviderRegistry struct {
	app        *Registry
	eager      []ServiceProvider
	deferred   map[reflect.Type]ServiceProvider // abstract key → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry of providers bound to app.
func NewProviderRegistry(app *Registry) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[reflect.Type]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, key := range provider.Provides() {
			r.deferred[key] = provider
		}
		r.interceptDeferred(provider)
		return
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred installs a lazy factory for each deferred key.
// The first resolution tears the interceptor out, runs the real
// Register() + Boot(), and hands off to whatever factory the provider
// installed — inside the same traversal, so the key stays on the trail.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, key := range provider.Provides() {
		k := key // capture
		r.app.registerFactory(k, func(res *Resolver) any {
			delete(r.app.bindings, r.app.canonical(k))
			if _, pending := r.deferred[k]; pending {
				for _, provided := range provider.Provides() {
					delete(r.deferred, provided)
				}
				provider.Register(r.app)
				if r.booted {
					provider.Boot(r.app)
				}
			}
			f, ok := r.app.bindings[r.app.canonical(k)]
			if !ok {
				return nil
			}
			return f(res)
		})
	}
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
