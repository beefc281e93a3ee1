package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateKey(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", "signing.key")

	key, err := LoadOrGenerateKey(keyPath)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	// Second load returns the persisted key.
	key2, err := LoadOrGenerateKey(keyPath)
	require.NoError(t, err)
	assert.Equal(t, key, key2)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrGenerateKey_Corrupt(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "signing.key")
	require.NoError(t, os.WriteFile(keyPath, []byte("not hex!!"), 0o600))

	_, err := LoadOrGenerateKey(keyPath)
	assert.Error(t, err)
}
