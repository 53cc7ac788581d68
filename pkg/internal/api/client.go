package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/campus-connect/campusctl/pkg/internal/models"
	"github.com/campus-connect/campusctl/pkg/internal/session"
)

// Client is the single configured HTTP client for the backend: base
// URL, JSON headers, bearer token plus cookie credentials, and one
// global unauthorized interceptor.
type Client struct {
	base    *url.URL
	http    *http.Client
	session *session.Store

	// Invoked once per unauthorized response, after the session has
	// been cleared. The CLI analog of the sign-in redirect.
	onUnauthorized func(role models.UserRole)
}

func NewClient(baseURL string, sess *session.Store) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		base:    base,
		http:    &http.Client{Jar: jar},
		session: sess,
	}, nil
}

func (c *Client) OnUnauthorized(fn func(role models.UserRole)) {
	c.onUnauthorized = fn
}

// Error is any non-2xx response the interceptor did not consume.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server responded with status %d", e.Status)
	}
	return fmt.Sprintf("server responded with status %d: %s", e.Status, e.Detail)
}

func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := *c.base
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.intercept(resp, out)
}

// doRaw sends a prebuilt request body (multipart uploads) through the
// same interceptor path.
func (c *Client) doRaw(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	endpoint := *c.base
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.intercept(resp, out)
}

func (c *Client) intercept(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		role := c.session.LastRole()
		c.session.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized(role)
		}
		return &Error{Status: resp.StatusCode, Detail: decodeDetail(raw)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Detail: decodeDetail(raw)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	if err := jsoniter.Unmarshal(raw, out); err != nil {
		log.Debug().Err(err).Str("path", resp.Request.URL.Path).Msg("An error occurred when decoding the response body.")
		return fmt.Errorf("unable to decode response: %w", err)
	}
	return nil
}

func decodeDetail(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := jsoniter.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(raw))
}
