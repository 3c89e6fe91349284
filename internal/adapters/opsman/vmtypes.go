package opsman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bnema/opsman-cli/internal/domain"
	"github.com/bnema/opsman-cli/internal/ports"
)

const vmTypesPath = "/api/v0/vm_types"

var _ ports.VMTypeStore = (*Client)(nil)

type vmTypesEnvelope struct {
	VMTypes domain.VMTypeCollection `json:"vm_types"`
}

// ListVMTypes fetches the full remote collection.
func (c *Client) ListVMTypes(ctx context.Context) (domain.VMTypeCollection, error) {
	req, err := c.newAuthenticatedRequest(ctx, http.MethodGet, vmTypesPath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch vm types: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, rejectionError(http.MethodGet, vmTypesPath, resp)
	}

	var envelope vmTypesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode vm types response: %w", err)
	}

	return envelope.VMTypes, nil
}

// ReplaceVMTypes transmits the whole collection; the API has no
// per-element update verb.
func (c *Client) ReplaceVMTypes(ctx context.Context, collection domain.VMTypeCollection) error {
	payload, err := json.Marshal(vmTypesEnvelope{VMTypes: collection})
	if err != nil {
		return fmt.Errorf("encode vm types: %w", err)
	}

	req, err := c.newAuthenticatedRequest(ctx, http.MethodPut, vmTypesPath, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("replace vm types: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return rejectionError(http.MethodPut, vmTypesPath, resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))

	return nil
}

// DeleteVMTypes clears the remote collection. Whether the appliance models
// this as a delete or an empty replacement is its own affair.
func (c *Client) DeleteVMTypes(ctx context.Context) error {
	req, err := c.newAuthenticatedRequest(ctx, http.MethodDelete, vmTypesPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("delete vm types: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return rejectionError(http.MethodDelete, vmTypesPath, resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))

	return nil
}
