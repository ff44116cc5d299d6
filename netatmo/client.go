package netatmo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// ClientCredentials identifies the application registered with Netatmo.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
}

// UnauthenticatedClient holds application credentials and can only be used
// to authenticate. It is single-use: Authenticate spends it.
type UnauthenticatedClient struct {
	credentials ClientCredentials
	transport   Transport
	logger      zerolog.Logger
}

// AuthenticatedClient holds a token and is the only client that can call
// the protected endpoints.
type AuthenticatedClient struct {
	token     Token
	transport Transport
	logger    zerolog.Logger
}

// New creates an unauthenticated client. It performs no I/O.
func New(credentials ClientCredentials, opts ...Option) *UnauthenticatedClient {
	o := buildOptions(opts)
	return &UnauthenticatedClient{
		credentials: credentials,
		transport:   o.newTransport(),
		logger:      o.logger,
	}
}

// NewFromToken creates an authenticated client from a token obtained
// elsewhere, e.g. a previous login. The token is not validated.
func NewFromToken(token Token, opts ...Option) *AuthenticatedClient {
	o := buildOptions(opts)
	return &AuthenticatedClient{
		token:     token,
		transport: o.newTransport(),
		logger:    o.logger,
	}
}

// Authenticate exchanges username and password for a token and returns the
// authenticated client. The receiver is spent by the first call, whatever
// its outcome; later calls fail with ErrClientConsumed.
func (c *UnauthenticatedClient) Authenticate(ctx context.Context, username, password string, scopes []Scope) (*AuthenticatedClient, error) {
	if c.transport == nil {
		return nil, newError(KindAuthenticationFailed, ErrClientConsumed)
	}
	transport := c.transport
	defer func() { c.transport = nil }()

	if len(scopes) == 0 {
		return nil, newError(KindAuthenticationFailed, ErrEmptyScopes)
	}

	token, err := getToken(ctx, c, username, password, scopes)
	if err != nil {
		return nil, newError(KindAuthenticationFailed, err)
	}

	c.logger.Debug().
		Str("scope", JoinScopes(token.Scope)).
		Uint64("expires_in", token.ExpiresIn).
		Msg("Authenticated with Netatmo")

	return &AuthenticatedClient{
		token:     token,
		transport: transport,
		logger:    c.logger,
	}, nil
}

// call runs the unauthenticated call path.
func (c *UnauthenticatedClient) call(ctx context.Context, name, target string, params map[string]string, out any) error {
	if c.transport == nil {
		return attribute(name, ErrClientConsumed)
	}
	return apiCall(ctx, c.transport, c.logger, name, target, params, out)
}

// Token returns the token the client authenticates with.
func (c *AuthenticatedClient) Token() Token {
	return c.token
}

// call runs the authenticated call path: the access token is injected under
// access_token, replacing any value the caller put there.
func (c *AuthenticatedClient) call(ctx context.Context, name, target string, params map[string]string, out any) error {
	withToken := make(map[string]string, len(params)+1)
	for k, v := range params {
		withToken[k] = v
	}
	withToken["access_token"] = c.token.AccessToken

	return apiCall(ctx, c.transport, c.logger, name, target, withToken, out)
}

// apiCall posts params, classifies the response and decodes it into out.
func apiCall(ctx context.Context, transport Transport, logger zerolog.Logger, name, target string, params map[string]string, out any) error {
	form := make(url.Values, len(params))
	for k, v := range params {
		form.Set(k, v)
	}

	resp, err := transport.PostForm(ctx, target, form)
	if err != nil {
		return attribute(name, newError(KindFailedToSendRequest, err))
	}

	logger.Debug().
		Str("op", name).
		Str("url", target).
		Int("status", resp.StatusCode).
		Msg("Netatmo API response")

	resp, err = classify(name, resp, http.StatusOK)
	if err != nil {
		return err
	}

	body, err := resp.Text()
	if err != nil {
		return attribute(name, newError(KindFailedToReadResponse, err))
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		return attribute(name, newError(KindJSONDeserializationFailed, err))
	}

	return nil
}
