// Package uaa talks to the appliance's embedded token authority. The
// appliance registers a public UAA client named "opsman" with an empty
// secret; both introspection and the owner-password grant authenticate
// with it.
package uaa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/opsman-cli/internal/ports"
)

const (
	clientID         = "opsman"
	checkTokenPath   = "/uaa/check_token"
	tokenPath        = "/uaa/oauth/token"
	maxResponseBytes = 1 << 20
)

type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var (
	_ ports.TokenValidator = (*Client)(nil)
	_ ports.TokenExchanger = (*Client)(nil)
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type uaaErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// IsValid asks UAA whether the token is still accepted. An empty token is
// invalid without a network round-trip. Transport failures and non-200
// statuses both report invalid; the caller's recovery for every flavor of
// rejection is the same re-authentication path.
func (c Client) IsValid(ctx context.Context, token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}

	endpoint, err := buildURL(c.BaseURL, checkTokenPath)
	if err != nil {
		return false
	}

	values := url.Values{}
	values.Set("token_type", "bearer")
	values.Set("token", token)

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	// The appliance's introspection endpoint reads a form body on a GET.
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(clientID, "")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	return resp.StatusCode == http.StatusOK
}

// ExchangePassword runs the owner-password grant and returns the bearer
// token UAA issues for the operator's credentials.
func (c Client) ExchangePassword(ctx context.Context, username, password string) (string, error) {
	endpoint, err := buildURL(c.BaseURL, tokenPath)
	if err != nil {
		return "", err
	}

	values := url.Values{}
	values.Set("grant_type", "password")
	values.Set("username", username)
	values.Set("password", password)

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(clientID, "")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("request token: %s", decodeUAAError(resp))
	}

	var payload tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", errors.New("token response missing access token")
	}

	return payload.AccessToken, nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// requestContext applies RequestTimeout when one is configured. By default
// calls block on the transport alone, matching the rest of the client.
func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || c.RequestTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.RequestTimeout)
}

func decodeUAAError(resp *http.Response) string {
	var uaaErr uaaErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&uaaErr); err != nil {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	if uaaErr.Error == "" {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	if uaaErr.ErrorDescription != "" {
		return uaaErr.Error + ": " + uaaErr.ErrorDescription
	}
	return uaaErr.Error
}

func buildURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("appliance base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse appliance base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("appliance base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("appliance base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}

	return endpoint.String(), nil
}
