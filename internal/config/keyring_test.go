package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/ariel-frischer/claude-notify/internal/notify"
)

// NO t.Parallel(): keyring.MockInit swaps a package-level provider.
func TestKeyringStore(t *testing.T) {
	keyring.MockInit()

	store := NewKeyringStore()
	assert.Equal(t, KeyringService, store.Service)

	got, err := store.Secret(notify.SecretNtfyToken)
	require.NoError(t, err)
	assert.Empty(t, got, "missing secret is not an error")

	require.NoError(t, keyring.Set(KeyringService, notify.SecretNtfyToken, "tk_secret"))
	got, err = store.Secret(notify.SecretNtfyToken)
	require.NoError(t, err)
	assert.Equal(t, "tk_secret", got)

	other := KeyringStore{Service: "someone-else"}
	got, err = other.Secret(notify.SecretNtfyToken)
	require.NoError(t, err)
	assert.Empty(t, got)

	var _ notify.SecretStore = store
}
