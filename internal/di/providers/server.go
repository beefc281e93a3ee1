package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell-server/internal/api"
	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/config"
	"github.com/inkwellapp/inkwell-server/internal/logger"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

// HTTPServerHandle wraps the HTTP server with shutdown capability.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer assembles the API server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	st := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)

	services := &api.Services{
		Auth:         do.MustInvoke[*service.AuthService](i),
		Domain:       do.MustInvoke[*service.DomainService](i),
		Note:         do.MustInvoke[*service.NoteService](i),
		Tag:          do.MustInvoke[*service.TagService](i),
		Subscription: do.MustInvoke[*service.SubscriptionService](i),
	}

	srv := api.NewServer(cfg, st, services, tokens, log.Logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: httpServer}, nil
}
