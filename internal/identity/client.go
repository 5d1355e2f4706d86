// Package identity talks to the external identity provider. The provider
// issues and verifies session tokens; this client only introspects sessions
// and initiates magic-link logins.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"simple-notes-server/internal/domain"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a provider client with a bounded request timeout. Callers
// must treat timeouts as an anonymous session, never as authenticated.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetUser asks the provider to verify the access token and returns the
// identity it asserts. Any non-200 answer maps to ErrUnauthenticated.
func (c *Client) GetUser(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.ErrUnauthenticated
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode user response: %w", err)
	}
	if body.ID == "" {
		return "", domain.ErrUnauthenticated
	}

	return body.ID, nil
}

// SendMagicLink initiates an OTP login. The provider emails a link that
// completes the session; this server only consumes the resulting token.
func (c *Client) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	payload := map[string]string{"email": email}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode otp request: %w", err)
	}

	endpoint := c.baseURL + "/auth/v1/otp"
	if redirectTo != "" {
		endpoint += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build otp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity provider rejected otp request: status %d", resp.StatusCode)
	}

	return nil
}
