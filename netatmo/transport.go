package netatmo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Transport submits a form-encoded POST and returns the raw response.
type Transport interface {
	PostForm(ctx context.Context, url string, form url.Values) (*Response, error)
}

// Response is a received HTTP response whose body can be read exactly once.
type Response struct {
	StatusCode int
	body       io.ReadCloser
}

// NewResponse builds a Response, mainly for custom Transport implementations.
func NewResponse(statusCode int, body io.ReadCloser) *Response {
	return &Response{StatusCode: statusCode, body: body}
}

// Text reads the full body and closes it. Subsequent calls fail.
func (r *Response) Text() (string, error) {
	if r.body == nil {
		return "", fmt.Errorf("response body already consumed")
	}
	body := r.body
	r.body = nil
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close releases the body without reading it.
func (r *Response) Close() error {
	if r.body == nil {
		return nil
	}
	body := r.body
	r.body = nil
	return body.Close()
}

// httpTransport is the default Transport backed by net/http.
type httpTransport struct {
	client    *http.Client
	userAgent string
}

// PostForm sends form as an application/x-www-form-urlencoded body
func (t *httpTransport) PostForm(ctx context.Context, target string, form url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, body: resp.Body}, nil
}
