package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell-server/internal/logger"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

// tokenCleanupInterval is how often expired refresh tokens are purged.
const tokenCleanupInterval = time.Hour

// TokenCleanupJob periodically removes expired refresh tokens from the ledger.
type TokenCleanupJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *TokenCleanupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideTokenCleanupJob starts the background refresh token cleanup worker.
func ProvideTokenCleanupJob(i do.Injector) (*TokenCleanupJob, error) {
	ledger := do.MustInvoke[*service.TokenLedger](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(tokenCleanupInterval)
		defer ticker.Stop()

		// Initial sweep on startup.
		purgeExpiredTokens(ctx, ledger, log)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purgeExpiredTokens(ctx, ledger, log)
			}
		}
	}()

	log.Info("Token cleanup worker started", "interval", tokenCleanupInterval)

	return &TokenCleanupJob{cancel: cancel}, nil
}

func purgeExpiredTokens(ctx context.Context, ledger *service.TokenLedger, log *logger.Logger) {
	count, err := ledger.PurgeExpired(ctx)
	if err != nil {
		log.Error("Failed to purge expired refresh tokens", "error", err)
		return
	}
	if count > 0 {
		log.Info("Purged expired refresh tokens", "count", count)
	}
}
