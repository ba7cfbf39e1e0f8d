package container_test

import (
	"reflect"
	"testing"

	"github.com/km-arc/go-ioc/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerSvc struct{ name string }
type lazySvc struct{ name string }
type alphaSvc struct{}
type betaSvc struct{}

type eagerProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *eagerProvider) Register(r *container.Registry) {
	p.registerCalled = true
	container.RegisterInstance[*eagerSvc](r, &eagerSvc{name: "eager"})
}

func (p *eagerProvider) Boot(r *container.Registry) {
	p.bootCalled = true
}

// deferredProvider is lazy — only registered when *lazySvc is first resolved.
type deferredProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *deferredProvider) Register(r *container.Registry) {
	p.registerCalled = true
	container.RegisterInstance[*lazySvc](r, &lazySvc{name: "deferred-value"})
}

func (p *deferredProvider) Boot(r *container.Registry) {
	p.bootCalled = true
}

func (p *deferredProvider) IsDeferred() bool { return true }
func (p *deferredProvider) Provides() []reflect.Type {
	return []reflect.Type{container.KeyFor[*lazySvc]()}
}

// multiProvider registers multiple abstracts.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(r *container.Registry) {
	container.RegisterInstance[*alphaSvc](r, &alphaSvc{})
	container.RegisterInstance[*betaSvc](r, &betaSvc{})
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)

	if !p.registerCalled {
		t.Error("Register() should be called immediately for eager providers")
	}
}

func TestRegistry_EagerProvider_BootCalledAfterBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)

	if p.bootCalled {
		t.Error("Boot() should NOT be called before registry.Boot()")
	}

	reg.Boot()

	if !p.bootCalled {
		t.Error("Boot() should be called after registry.Boot()")
	}
}

func TestRegistry_EagerProvider_ServiceResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&eagerProvider{})
	reg.Boot()

	svc, ok := container.Resolve[*eagerSvc](c)
	if !ok || svc.name != "eager" {
		t.Errorf("eagerSvc: got (%v, %v), want the provider's registration", svc, ok)
	}
}

func TestRegistry_Boot_IdempotentCallsAreIgnored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)

	reg.Boot()
	reg.Boot() // second call should be no-op

	if !reg.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
}

func TestRegistry_Booted_FalseBeforeBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	if reg.Booted() {
		t.Error("Booted() should be false before Boot()")
	}
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	reg.Register(p)
	reg.Register(p) // second register of same instance

	if len(reg.Providers()) != 1 {
		t.Error("registering the same provider twice should be a no-op")
	}
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)
	reg.Boot()

	// Provider.Register should NOT have been called yet
	if p.registerCalled {
		t.Error("deferred provider Register() should not be called until Resolve()")
	}
}

func TestRegistry_DeferredProvider_RegisteredOnFirstResolve(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)
	reg.Boot()

	// Trigger lazy load
	svc, ok := container.Resolve[*lazySvc](c)
	if !ok || svc.name != "deferred-value" {
		t.Errorf("lazySvc: got (%v, %v), want the deferred registration", svc, ok)
	}
	if !p.registerCalled {
		t.Error("deferred provider Register() should run on first Resolve()")
	}
	if !p.bootCalled {
		t.Error("deferred provider Boot() should run when loaded after Boot()")
	}
}

func TestRegistry_DeferredProvider_SharedInstanceSurvivesLazyLoad(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&deferredProvider{})
	reg.Boot()

	first, _ := container.Resolve[*lazySvc](c)
	second, _ := container.Resolve[*lazySvc](c)
	if first != second {
		t.Error("after lazy load, an instance registration should stay identity-stable")
	}
}

// ── Multiple providers ────────────────────────────────────────────────────────

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&multiProvider{})
	reg.Register(&eagerProvider{})
	reg.Boot()

	if _, ok := container.Resolve[*alphaSvc](c); !ok {
		t.Error("alphaSvc should resolve")
	}
	if _, ok := container.Resolve[*betaSvc](c); !ok {
		t.Error("betaSvc should resolve")
	}
	if _, ok := container.Resolve[*eagerSvc](c); !ok {
		t.Error("eagerSvc should resolve")
	}
}

// ── Providers list ────────────────────────────────────────────────────────────

func TestRegistry_Providers_ReturnsEagerOnes(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&eagerProvider{})
	reg.Register(&deferredProvider{}) // deferred — not in Providers()

	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1 (eager only)", len(reg.Providers()))
	}
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	c := container.New()

	p.Boot(c) // should not panic

	if p.IsDeferred() {
		t.Error("BaseProvider.IsDeferred() should be false")
	}
	if len(p.Provides()) != 0 {
		t.Error("BaseProvider.Provides() should return empty slice")
	}
}

// ── Boot after registration (late provider) ───────────────────────────────────

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Boot() // boot before registering

	p := &eagerProvider{}
	reg.Register(p) // register after boot

	if !p.bootCalled {
		t.Error("provider registered after Boot() should be booted immediately")
	}
}
