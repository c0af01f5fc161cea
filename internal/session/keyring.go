package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "watchly"
	keyringAccount = "session"
)

// KeyringStore keeps the credential in the OS keychain as one JSON item.
type KeyringStore struct {
	Service string
	Account string
}

// NewKeyringStore returns a store using the default service and account.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{Service: keyringService, Account: keyringAccount}
}

func (k *KeyringStore) Load() (Credential, error) {
	raw, err := keyring.Get(k.Service, k.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Credential{}, ErrNoCredential
		}
		return Credential{}, fmt.Errorf("keychain read failed: %w", err)
	}
	var c Credential
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Credential{}, fmt.Errorf("keychain entry is not a credential: %w", err)
	}
	return c, nil
}

func (k *KeyringStore) Save(c Credential) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := keyring.Set(k.Service, k.Account, string(data)); err != nil {
		return fmt.Errorf("keychain write failed: %w", err)
	}
	return nil
}

func (k *KeyringStore) Clear() error {
	if err := keyring.Delete(k.Service, k.Account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keychain delete failed: %w", err)
	}
	return nil
}
