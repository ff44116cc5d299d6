package netatmo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// fakeTransport records the last request and replies with a canned response.
type fakeTransport struct {
	status int
	body   string
	err    error

	calls   int
	gotURL  string
	gotForm url.Values
}

func (f *fakeTransport) PostForm(_ context.Context, target string, form url.Values) (*Response, error) {
	f.calls++
	f.gotURL = target
	f.gotForm = form
	if f.err != nil {
		return nil, f.err
	}
	return NewResponse(f.status, io.NopCloser(strings.NewReader(f.body))), nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

// rewriteTransport sends every request to the test server, keeping the path.
type rewriteTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return rt.base.RoundTrip(req)
}

// newTestServer starts handler and returns an option routing the fixed
// vendor URLs to it.
func newTestServer(t *testing.T, handler http.Handler) Option {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}

	return WithHTTPClient(&http.Client{
		Transport: rewriteTransport{target: target, base: server.Client().Transport},
	})
}
