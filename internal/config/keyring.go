package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the OS keyring service that holds push backend credentials
const KeyringService = "claude-notify"

// KeyringStore reads credentials from the OS keyring.
type KeyringStore struct {
	Service string
}

// NewKeyringStore returns a store for KeyringService.
func NewKeyringStore() KeyringStore {
	return KeyringStore{Service: KeyringService}
}

// Secret returns the stored secret for account, or "" when none is stored.
func (s KeyringStore) Secret(account string) (string, error) {
	v, err := keyring.Get(s.Service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s/%s from keyring: %w", s.Service, account, err)
	}
	return v, nil
}
