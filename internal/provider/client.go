// Package provider implements the client for the third-party reseller API
// used for balance/profile lookups and order fulfillment. Every request is
// authenticated with a signature derived from two static secrets.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// Error is a normalized provider failure. Configuration faults, transport
// errors, malformed responses, and provider-reported failures all surface
// through this one shape so callers have a single branch to handle.
type Error struct {
	Message string
	// Config marks failures caused by missing local configuration rather
	// than the provider or the network. These must never be retried.
	Config bool
}

func (e *Error) Error() string { return e.Message }

// Profile is the reseller account profile returned by the provider.
type Profile struct {
	FullName   string `json:"full_name"`
	Username   string `json:"username"`
	Balance    int64  `json:"balance"`
	Point      int64  `json:"point"`
	Level      string `json:"level"`
	Registered string `json:"registered"`
}

type envelope struct {
	Result  bool            `json:"result"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client calls the reseller API. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiID   string
	apiKey  string
	http    *http.Client
	backoff time.Duration
}

// New creates a provider client. Timeout bounds every request including
// body read; the API may be missing credentials, in which case every call
// returns a configuration *Error without touching the network.
func New(baseURL, apiID, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiID:   apiID,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		backoff: 500 * time.Millisecond,
	}
}

// Profile retrieves the reseller account profile (balance, point total,
// tier, registration date). Transport failures are retried at most once;
// configuration and provider-reported failures are not.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	raw, err := c.post(ctx, "/profile", url.Values{})
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed profile payload: %v", err)}
	}
	return &profile, nil
}

// post sends a signed form-encoded request and returns the data payload of
// a successful envelope. All failures come back as *Error.
func (c *Client) post(ctx context.Context, path string, form url.Values) (json.RawMessage, error) {
	sign, err := Signature(c.apiID, c.apiKey)
	if err != nil {
		return nil, &Error{Message: "provider API credentials are not configured", Config: true}
	}
	form.Set("key", c.apiKey)
	form.Set("sign", sign)
	body := form.Encode()

	var raw json.RawMessage
	b := retry.WithMaxRetries(1, retry.NewConstant(c.backoff))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(body))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("call provider: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("provider returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("provider returned status %d", resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("read provider response: %w", err))
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return fmt.Errorf("parse provider response: %w", err)
		}
		if !env.Result {
			return fmt.Errorf("provider rejected request: %s", env.Message)
		}

		raw = env.Data
		return nil
	})
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	return raw, nil
}
