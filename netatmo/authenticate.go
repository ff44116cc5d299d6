package netatmo

import (
	"context"
	"fmt"
	"strings"
)

// Scope is a permission granted by the authenticated user.
type Scope int

const (
	ScopeReadStation Scope = iota + 1
	ScopeReadThermostat
	ScopeWriteThermostat
	ScopeReadCamera
	ScopeWriteCamera
	ScopeAccessCamera
	ScopeReadPresence
	ScopeAccessPresence
	ScopeReadHomecoach
)

// AllScopes lists every supported scope in declaration order.
var AllScopes = []Scope{
	ScopeReadStation,
	ScopeReadThermostat,
	ScopeWriteThermostat,
	ScopeReadCamera,
	ScopeWriteCamera,
	ScopeAccessCamera,
	ScopeReadPresence,
	ScopeAccessPresence,
	ScopeReadHomecoach,
}

// String returns the human-readable form of the scope
func (s Scope) String() string {
	switch s {
	case ScopeReadStation:
		return "ReadStation"
	case ScopeReadThermostat:
		return "ReadThermostat"
	case ScopeWriteThermostat:
		return "WriteThermostat"
	case ScopeReadCamera:
		return "ReadCamera"
	case ScopeWriteCamera:
		return "WriteCamera"
	case ScopeAccessCamera:
		return "AccessCamera"
	case ScopeReadPresence:
		return "ReadPresence"
	case ScopeAccessPresence:
		return "AccessPresence"
	case ScopeReadHomecoach:
		return "ReadHomecoach"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// WireName returns the form the API uses for the scope
func (s Scope) WireName() string {
	switch s {
	case ScopeReadStation:
		return "read_station"
	case ScopeReadThermostat:
		return "read_thermostat"
	case ScopeWriteThermostat:
		return "write_thermostat"
	case ScopeReadCamera:
		return "read_camera"
	case ScopeWriteCamera:
		return "write_camera"
	case ScopeAccessCamera:
		return "access_camera"
	case ScopeReadPresence:
		return "read_presence"
	case ScopeAccessPresence:
		return "access_presence"
	case ScopeReadHomecoach:
		return "read_homecoach"
	default:
		return ""
	}
}

// ParseScope accepts either the wire form ("read_station") or the
// display form ("ReadStation").
func ParseScope(s string) (Scope, error) {
	for _, scope := range AllScopes {
		if s == scope.WireName() || s == scope.String() {
			return scope, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// MarshalText encodes the scope in its wire form.
func (s Scope) MarshalText() ([]byte, error) {
	name := s.WireName()
	if name == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScope, int(s))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a scope from its wire form.
func (s *Scope) UnmarshalText(text []byte) error {
	for _, scope := range AllScopes {
		if string(text) == scope.WireName() {
			*s = scope
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownScope, string(text))
}

// JoinScopes renders scopes for the token request, in the order given.
func JoinScopes(scopes []Scope) string {
	names := make([]string, len(scopes))
	for i, s := range scopes {
		names[i] = s.WireName()
	}
	return strings.Join(names, ".")
}

// Token is the result of a successful authentication.
type Token struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	Scope        []Scope `json:"scope"`
	ExpiresIn    uint64  `json:"expires_in"`
	// ExpireIn duplicates ExpiresIn; the API still sends both.
	ExpireIn uint64 `json:"expire_in"`
}

const tokenURL = "https://api.netatmo.com/oauth2/token"

const opGetToken = "get_token"

// getToken exchanges the user's password for a token.
func getToken(ctx context.Context, c *UnauthenticatedClient, username, password string, scopes []Scope) (Token, error) {
	params := map[string]string{
		"client_id":     c.credentials.ClientID,
		"client_secret": c.credentials.ClientSecret,
		"username":      username,
		"password":      password,
		"grant_type":    "password",
		"scope":         JoinScopes(scopes),
	}

	var token Token
	if err := c.call(ctx, opGetToken, tokenURL, params, &token); err != nil {
		return Token{}, err
	}
	return token, nil
}
