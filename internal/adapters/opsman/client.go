// Package opsman is the HTTP client for the appliance's v0 API.
package opsman

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/opsman-cli/internal/ports"
)

const maxErrorBodyBytes = 4 << 10

// Client issues appliance API calls. Authenticated endpoints pull a bearer
// token from Tokens on every request, so session refresh happens wherever
// the current token has gone stale.
type Client struct {
	BaseURL    string
	Tokens     ports.TokenSource
	HTTPClient *http.Client
}

// NewHTTPClient builds the transport for appliance traffic. Management
// appliances almost always present self-signed certificates, so certificate
// verification can be switched off, but only through this explicit,
// operator-persisted flag.
func NewHTTPClient(skipTLSVerify bool) *http.Client {
	if !skipTLSVerify {
		return &http.Client{}
	}

	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- operator opted in via skip_ssl_validation
		},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) endpoint(path string) (string, error) {
	if c.BaseURL == "" {
		return "", errors.New("appliance base url is required")
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse appliance base url: %w", err)
	}
	if parsed.Host == "" {
		return "", errors.New("appliance base url host is required")
	}

	resolved, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}

	return resolved.String(), nil
}

// newAuthenticatedRequest consults the token source first, then builds the
// request with the bearer credential attached.
func (c *Client) newAuthenticatedRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if c.Tokens == nil {
		return nil, errors.New("client has no token source")
	}

	token, err := c.Tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint, err := c.endpoint(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return req, nil
}

func rejectionError(method, path string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, detail)
}

func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
