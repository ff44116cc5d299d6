package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/s0up4200/atmo/netatmo"
	"github.com/s0up4200/atmo/tokenstore"
)

// clientOptions returns the options shared by every client the CLI builds
func clientOptions() []netatmo.Option {
	return []netatmo.Option{
		netatmo.WithLogger(logger),
		netatmo.WithTimeout(cfg.Netatmo.Timeout),
		netatmo.WithUserAgent("atmo/" + appVersion),
	}
}

func openTokenStore() (tokenstore.Store, error) {
	store, err := tokenstore.New(cfg.Token.Store, cfg.Token.Path, cfg.Netatmo.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return store, nil
}

// session returns an authenticated client, reusing the stored token when
// there is one and logging in otherwise.
func session(ctx context.Context) (*netatmo.AuthenticatedClient, tokenstore.Store, error) {
	store, err := openTokenStore()
	if err != nil {
		return nil, nil, err
	}

	token, err := store.Load(ctx)
	switch {
	case err == nil:
		logger.Debug().Msg("Using stored token")
		return netatmo.NewFromToken(token, clientOptions()...), store, nil
	case errors.Is(err, tokenstore.ErrNotFound):
	default:
		logger.Warn().Err(err).Msg("Failed to load stored token, logging in")
	}

	client, err := login(ctx, store)
	if err != nil {
		return nil, nil, err
	}
	return client, store, nil
}

// login runs the password grant and saves the token
func login(ctx context.Context, store tokenstore.Store) (*netatmo.AuthenticatedClient, error) {
	scopes, err := cfg.Netatmo.ParsedScopes()
	if err != nil {
		return nil, err
	}

	username, password, err := accountCredentials()
	if err != nil {
		return nil, err
	}

	client, err := netatmo.New(cfg.Netatmo.Credentials(), clientOptions()...).
		Authenticate(ctx, username, password, scopes)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("scope", netatmo.JoinScopes(client.Token().Scope)).
		Msg("Logged in to Netatmo")

	if err := store.Save(ctx, client.Token()); err != nil {
		logger.Warn().Err(err).Msg("Failed to save token")
	}

	return client, nil
}

// handleAPIError drops a stored token the API no longer accepts so that the
// next run logs in again.
func handleAPIError(ctx context.Context, store tokenstore.Store, err error) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := netatmo.AsAPIError(err); ok && apiErr.IsUnauthorized() {
		if delErr := store.Delete(ctx); delErr != nil {
			logger.Warn().Err(delErr).Msg("Failed to delete rejected token")
		}
		return fmt.Errorf("%w (the stored token was discarded, run the command again to log in)", err)
	}
	return err
}

// accountCredentials returns the Netatmo account from the config, prompting
// on a terminal for what is missing.
func accountCredentials() (string, string, error) {
	username := cfg.Netatmo.Username
	password := cfg.Netatmo.Password

	interactive := isTerminal(os.Stdin)
	if username == "" {
		if !interactive {
			return "", "", fmt.Errorf("netatmo.username is required (set NETATMO_USERNAME)")
		}
		fmt.Fprint(os.Stderr, "Netatmo username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	if password == "" {
		if !interactive {
			return "", "", fmt.Errorf("netatmo.password is required (set NETATMO_PASSWORD)")
		}
		fmt.Fprint(os.Stderr, "Netatmo password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	}

	return username, password, nil
}
