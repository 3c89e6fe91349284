package ports

import (
	"context"
	"io"

	"github.com/bnema/opsman-cli/internal/domain"
)

// VMTypeStore is the appliance's vm_types surface. The remote has no
// per-element verb: reads and writes always move the whole collection.
type VMTypeStore interface {
	ListVMTypes(ctx context.Context) (domain.VMTypeCollection, error)
	ReplaceVMTypes(ctx context.Context, c domain.VMTypeCollection) error
	DeleteVMTypes(ctx context.Context) error
}

// ArtifactSink receives artifact bytes at the endpoint selected by the
// classifier.
type ArtifactSink interface {
	UploadArtifact(ctx context.Context, target domain.UploadTarget, filename string, contents io.Reader) error
}
