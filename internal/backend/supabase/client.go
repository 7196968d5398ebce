// Package supabase talks to a hosted Supabase project over its REST surfaces:
// PostgREST for tables, Storage for buckets and GoTrue for auth.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agrox/fieldops/internal/backend"
)

// Client implements backend.TableStore, backend.BlobStore, backend.BucketChecker
// and backend.Authenticator.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewClient creates a client for the project at baseURL.
func NewClient(baseURL, anonKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var (
	_ backend.TableStore    = (*Client)(nil)
	_ backend.BlobStore     = (*Client)(nil)
	_ backend.BucketChecker = (*Client)(nil)
	_ backend.Authenticator = (*Client)(nil)
)

// newRequest builds a request with the project key and the caller's token,
// falling back to the anon key when the context carries none.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	bearer := c.anonKey
	if token, ok := backend.AccessToken(ctx); ok {
		bearer = token
	}

	req.Header.Set("apikey", c.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("supabase: encode body: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out when out is non-nil.
// Non-2xx responses come back as a classified *backend.Error.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("supabase: decode response: %w", err)
	}
	return nil
}

// errorBody covers the PostgREST, Storage and GoTrue error shapes.
type errorBody struct {
	Code             json.RawMessage `json:"code"`
	ErrorCode        string          `json:"error_code"`
	Message          string          `json:"message"`
	Msg              string          `json:"msg"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return backend.NewError("", strings.TrimSpace(string(raw)), resp.StatusCode)
	}

	var code string
	if len(body.Code) > 0 {
		// PostgREST sends a string code, GoTrue sometimes a number.
		_ = json.Unmarshal(body.Code, &code)
	}
	if code == "" {
		code = body.ErrorCode
	}

	message := firstNonEmpty(body.Message, body.Msg, body.ErrorDescription, body.Error)
	return backend.NewError(code, message, resp.StatusCode)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
