// Package tokenstore keeps a Netatmo access token between CLI runs.
package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/s0up4200/atmo/netatmo"
)

// Sentinel errors
var (
	// ErrNotFound indicates no token has been saved yet.
	ErrNotFound = errors.New("tokenstore: token not found")
	// ErrLocked indicates another process held the token file lock for too long.
	ErrLocked = errors.New("tokenstore: token file is locked")
)

// Store persists a single token.
type Store interface {
	Load(ctx context.Context) (netatmo.Token, error)
	Save(ctx context.Context, token netatmo.Token) error
	Delete(ctx context.Context) error
}

// New returns the store for kind ("keyring", "file" or "none"). path is used
// by the file store, account (the client id) by the keyring store.
func New(kind, path, account string) (Store, error) {
	switch kind {
	case "keyring":
		return NewKeyringStore(account), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("tokenstore: file store requires a path")
		}
		return NewFileStore(path), nil
	case "none", "":
		return noneStore{}, nil
	default:
		return nil, fmt.Errorf("tokenstore: unknown store %q", kind)
	}
}

// noneStore never remembers anything.
type noneStore struct{}

func (noneStore) Load(context.Context) (netatmo.Token, error) { return netatmo.Token{}, ErrNotFound }

func (noneStore) Save(context.Context, netatmo.Token) error { return nil }

func (noneStore) Delete(context.Context) error { return nil }
