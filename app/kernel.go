package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-ioc/config"
	"github.com/km-arc/go-ioc/container"
	"github.com/km-arc/go-ioc/providers"
)

// Application is the top-level bootstrap object. It embeds the IoC
// Registry and the ProviderRegistry so user code can register and
// resolve directly — exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Registry
	Providers *container.ProviderRegistry
}

// New creates and bootstraps the application.
func New(envFiles ...string) *Application {
	r := container.New()
	registry := container.NewProviderRegistry(r)

	app := &Application{
		Registry:  r,
		Providers: registry,
	}

	// Framework core providers (same order as Laravel)
	registry.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles})
	registry.Register(&providers.RouterServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Config resolves the shared *config.Config.
func (a *Application) Config() *config.Config {
	cfg, _ := container.Resolve[*config.Config](a.Registry)
	return cfg
}

// Router resolves the shared HTTP router.
func (a *Application) Router() *chi.Mux {
	mux, _ := container.Resolve[*chi.Mux](a.Registry)
	return mux
}

// Run boots the application (if needed) and starts the HTTP server.
func (a *Application) Run() {
	if !a.Providers.Booted() {
		a.Boot()
	}
	cfg := a.Config()
	addr := cfg.Addr()
	fmt.Printf("🚀  %s running on http://localhost%s  [%s]\n",
		cfg.App.Name, addr, cfg.App.Env)

	server := &http.Server{
		Addr:         addr,
		Handler:      a.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
func (a *Application) Version() string     { return "0.1.0" }
