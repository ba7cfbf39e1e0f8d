// Package providers holds the framework core ServiceProviders: the
// registrations an Application needs before user providers run.
package providers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-ioc/config"
	"github.com/km-arc/go-ioc/container"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// registers it as a shared instance, so every resolver sees the same
// *config.Config.
//
// Registered abstracts:
//   - *config.Config
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(r *container.Registry) {
	container.RegisterInstance[*config.Config](r, config.Load(p.EnvFiles...))
}

// ── RouterServiceProvider ─────────────────────────────────────────────────────

// RouterServiceProvider registers the HTTP router with sane default
// middleware (Logger, Recoverer, RealIP). One shared mux: routes added
// during Boot() are the routes the server runs.
//
// Registered abstracts:
//   - *chi.Mux
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RouterServiceProvider struct {
	container.BaseProvider
}

func (p *RouterServiceProvider) Register(r *container.Registry) {
	mux := chi.NewRouter()
	mux.Use(middleware.Logger)
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RealIP)
	container.RegisterInstance[*chi.Mux](r, mux)
}
