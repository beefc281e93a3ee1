package providers

import (
	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/config"
	"github.com/inkwellapp/inkwell-server/internal/logger"
)

// AuthKey wraps the access token signing key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the signing key. A key set through
// configuration wins over the persisted key file.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if len(cfg.Auth.SigningKey) > 0 {
		return AuthKey(cfg.Auth.SigningKey), nil
	}

	key, err := auth.LoadOrGenerateKey(cfg.Auth.KeyPath)
	if err != nil {
		return nil, err
	}
	cfg.Auth.SigningKey = key

	log.Info("Signing key loaded",
		"key_path", cfg.Auth.KeyPath,
		"access_token_duration", cfg.Auth.AccessTokenDuration,
		"refresh_token_duration", cfg.Auth.RefreshTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the JWT token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(key), cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
}
