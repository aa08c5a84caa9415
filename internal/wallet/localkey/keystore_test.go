package localkey_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/splitpot/go-relay/internal/wallet/localkey"
)

func TestKeystoreRoundtrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scrypt KDF test in short mode")
	}

	keystoreJSON, err := localkey.EncryptSecret("test secret phrase", "correct horse")
	require.NoError(t, err)
	require.Equal(t, 3, keystoreJSON.Version)
	require.NotEmpty(t, keystoreJSON.ID)
	require.Equal(t, "aes-128-ctr", keystoreJSON.Crypto.Cipher)
	require.Equal(t, "scrypt", keystoreJSON.Crypto.KDF)

	secret, err := localkey.DecryptSecret(keystoreJSON, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "test secret phrase", secret)
}

func TestKeystoreWrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scrypt KDF test in short mode")
	}

	keystoreJSON, err := localkey.EncryptSecret("test secret phrase", "correct horse")
	require.NoError(t, err)

	_, err = localkey.DecryptSecret(keystoreJSON, "wrong horse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAC mismatch")
}

func TestKeystoreFileRoundtrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scrypt KDF test in short mode")
	}

	keystoreJSON, err := localkey.EncryptSecret("test secret phrase", "correct horse")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keystore.json")
	require.NoError(t, localkey.SaveKeystore(path, keystoreJSON))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := localkey.LoadKeystore(path)
	require.NoError(t, err)
	assert.Equal(t, keystoreJSON, loaded)

	secret, err := localkey.DecryptSecret(loaded, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "test secret phrase", secret)
}

func TestLoadKeystoreMissingFile(t *testing.T) {
	_, err := localkey.LoadKeystore(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
