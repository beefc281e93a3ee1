// Package di provides dependency injection configuration for the Inkwell
// server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/config"
	"github.com/inkwellapp/inkwell-server/internal/di/providers"
	"github.com/inkwellapp/inkwell-server/internal/logger"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideTokenService)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideTokenLedger)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideDomainService)
	do.Provide(injector, providers.ProvideNoteService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideSubscriptionService)

	// Workers
	do.Provide(injector, providers.ProvideTokenCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	_ = do.MustInvoke[*service.TokenLedger](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.DomainService](injector)
	_ = do.MustInvoke[*service.NoteService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.SubscriptionService](injector)

	_ = do.MustInvoke[*providers.TokenCleanupJob](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
