package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

const signingKeyBytes = 32

// LoadOrGenerateKey loads the token signing key from keyPath, generating and
// persisting a new one on first run. The key file holds the key hex-encoded
// and is created with owner-only permissions.
func LoadOrGenerateKey(keyPath string) ([]byte, error) {
	data, err := os.ReadFile(keyPath)
	if err == nil {
		key, decErr := hex.DecodeString(string(data))
		if decErr != nil {
			return nil, fmt.Errorf("decode signing key %s: %w", keyPath, decErr)
		}
		if len(key) != signingKeyBytes {
			return nil, fmt.Errorf("signing key %s has wrong length: got %d bytes, want %d", keyPath, len(key), signingKeyBytes)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read signing key %s: %w", keyPath, err)
	}

	key := make([]byte, signingKeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0o755); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("write signing key %s: %w", keyPath, err)
	}
	return key, nil
}
