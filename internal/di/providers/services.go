package providers

import (
	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/logger"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

// ProvideTokenLedger provides the refresh token ledger.
func ProvideTokenLedger(i do.Injector) (*service.TokenLedger, error) {
	st := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTokenLedger(st, tokens, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	ledger := do.MustInvoke[*service.TokenLedger](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(st, tokens, ledger, log.Logger), nil
}

// ProvideDomainService provides the domain service.
func ProvideDomainService(i do.Injector) (*service.DomainService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDomainService(st, log.Logger), nil
}

// ProvideNoteService provides the note service.
func ProvideNoteService(i do.Injector) (*service.NoteService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNoteService(st, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(st, log.Logger), nil
}

// ProvideSubscriptionService provides the subscription service.
func ProvideSubscriptionService(i do.Injector) (*service.SubscriptionService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSubscriptionService(st, log.Logger), nil
}
