package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/s0up4200/atmo/netatmo"
)

const serviceName = "atmo"

// KeyringStore keeps the token in the system keychain, keyed by client id.
type KeyringStore struct {
	account string
}

// NewKeyringStore creates a keyring store for the given account.
func NewKeyringStore(account string) *KeyringStore {
	return &KeyringStore{account: account}
}

// key returns the keyring key for the account.
func (s *KeyringStore) key() string {
	return fmt.Sprintf("atmo::%s", s.account)
}

// Load retrieves the token
func (s *KeyringStore) Load(_ context.Context) (netatmo.Token, error) {
	data, err := keyring.Get(serviceName, s.key())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return netatmo.Token{}, ErrNotFound
		}
		return netatmo.Token{}, fmt.Errorf("failed to read keyring: %w", err)
	}

	var token netatmo.Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return netatmo.Token{}, fmt.Errorf("invalid token in keyring: %w", err)
	}
	return token, nil
}

// Save stores the token
func (s *KeyringStore) Save(_ context.Context, token netatmo.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := keyring.Set(serviceName, s.key(), string(data)); err != nil {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return nil
}

// Delete removes the token. Deleting a missing token is not an error.
func (s *KeyringStore) Delete(_ context.Context) error {
	if err := keyring.Delete(serviceName, s.key()); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
