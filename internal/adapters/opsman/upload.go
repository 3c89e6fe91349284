package opsman

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/bnema/opsman-cli/internal/domain"
	"github.com/bnema/opsman-cli/internal/ports"
)

var _ ports.ArtifactSink = (*Client)(nil)

// UploadArtifact streams the artifact to the endpoint the classifier
// selected, as a multipart form under the target's field name. The body is
// piped rather than buffered; stemcells and tiles run to gigabytes.
func (c *Client) UploadArtifact(ctx context.Context, target domain.UploadTarget, filename string, contents io.Reader) error {
	pipeReader, pipeWriter := io.Pipe()
	form := multipart.NewWriter(pipeWriter)

	go func() {
		part, err := form.CreateFormFile(target.FormField(), filename)
		if err != nil {
			_ = pipeWriter.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, contents); err != nil {
			_ = pipeWriter.CloseWithError(err)
			return
		}
		_ = pipeWriter.CloseWithError(form.Close())
	}()

	req, err := c.newAuthenticatedRequest(ctx, http.MethodPost, target.EndpointPath(), pipeReader)
	if err != nil {
		_ = pipeReader.CloseWithError(err)
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return rejectionError(http.MethodPost, target.EndpointPath(), resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))

	return nil
}
