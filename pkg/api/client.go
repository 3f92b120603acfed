// Package api is the single chokepoint for requests to the journal service.
//
// Two cross-cutting policies live here and nowhere else: every outgoing
// request carries the stored session token verbatim in the Authorization
// header, and every 401 response invalidates the session and notifies the
// shell before the caller's own error handling runs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/aibiikeo/journal-cli/pkg/session"
)

// Part is one body part of a multipart request.
type Part struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// Client wraps one http.Client with the gateway policies applied.
type Client struct {
	base          *url.URL
	http          *http.Client
	session       session.Store
	onAuthInvalid func()
	log           *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request issued by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the structured logger used for 500s and invalidations.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithAuthInvalidated registers the callback fired after a 401 clears the
// session. Navigation decisions belong to the subscriber, not to this layer.
func WithAuthInvalidated(fn func()) Option {
	return func(c *Client) { c.onAuthInvalid = fn }
}

// New builds a client for the service at baseURL, reading the token from s
// on every request.
func New(baseURL string, s session.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base url %q needs a scheme and host", baseURL)
	}
	c := &Client{
		base:    u,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: s,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// GetBinary issues a GET and returns the raw response bytes.
func (c *Client) GetBinary(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var data []byte
	if err := c.do(ctx, http.MethodGet, path, query, nil, "", &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Post issues a POST with a JSON body. A nil body sends an empty request.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	r, ct, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, r, ct, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	r, ct, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, r, ct, out)
}

// Delete issues a DELETE, discarding any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

// PostMultipart issues a POST with the given multipart body parts.
func (c *Client) PostMultipart(ctx context.Context, path string, parts []Part, out interface{}) error {
	r, ct, err := multipartBody(parts)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, r, ct, out)
}

// PutMultipart issues a PUT with the given multipart body parts.
func (c *Client) PutMultipart(ctx context.Context, path string, parts []Part, out interface{}) error {
	r, ct, err := multipartBody(parts)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, r, ct, out)
}

func jsonBody(body interface{}) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("api: encode request body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func multipartBody(parts []Part) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		if p.FileName != "" {
			h.Set("Content-Disposition",
				fmt.Sprintf(`form-data; name=%q; filename=%q`, p.Field, p.FileName))
		} else {
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, p.Field))
		}
		if p.ContentType != "" {
			h.Set("Content-Type", p.ContentType)
		}
		fw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("api: build multipart body: %w", err)
		}
		if _, err := fw.Write(p.Data); err != nil {
			return nil, "", fmt.Errorf("api: build multipart body: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("api: build multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	u := *c.base
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// The stored value is already wire-ready; attach it verbatim.
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: %s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.fail(method, path, resp.StatusCode, data)
	}

	switch v := out.(type) {
	case nil:
		return nil
	case *[]byte:
		*v = data
		return nil
	case *string:
		*v = string(data)
		return nil
	default:
		if len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("api: %s %s: decode response: %w", method, path, err)
		}
		return nil
	}
}

// fail applies the inbound policy before handing the error to the caller.
func (c *Client) fail(method, path string, code int, body []byte) error {
	serr := &StatusError{Code: code, Message: messageFrom(body)}
	switch {
	case code == http.StatusUnauthorized:
		// Global logout happens first; the caller's error path still runs.
		if err := c.session.Clear(); err != nil {
			c.log.Warn("clear session", zap.Error(err))
		}
		c.log.Warn("unauthorized response, session invalidated",
			zap.String("method", method), zap.String("path", path))
		if c.onAuthInvalid != nil {
			c.onAuthInvalid()
		}
	case code >= http.StatusInternalServerError:
		c.log.Error("server error",
			zap.String("method", method), zap.String("path", path),
			zap.Int("status", code), zap.String("message", serr.Message))
	}
	return serr
}
