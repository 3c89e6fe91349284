package opsman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bnema/opsman-cli/internal/domain"
)

const unlockPath = "/api/v0/unlock"

type unlockRequest struct {
	Passphrase string `json:"passphrase"`
}

// Unlock submits the decryption passphrase. The call carries no bearer
// token: possession of the passphrase is the credential, a separate trust
// domain from the UAA session. A 403 is the appliance saying the passphrase
// is wrong; it is never retried here.
func (c *Client) Unlock(ctx context.Context, passphrase string) error {
	endpoint, err := c.endpoint(unlockPath)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(unlockRequest{Passphrase: passphrase})
	if err != nil {
		return fmt.Errorf("encode unlock request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create unlock request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("unlock appliance: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil
	case resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return domain.ErrWrongPassphrase
	default:
		return rejectionError(http.MethodPut, unlockPath, resp)
	}
}
