package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/opsman-cli/internal/domain"
	"github.com/bnema/opsman-cli/internal/ports"
)

// Uploader classifies local artifacts and streams them to the appliance.
type Uploader struct {
	sink ports.ArtifactSink
}

func NewUploader(sink ports.ArtifactSink) *Uploader {
	return &Uploader{sink: sink}
}

// Upload sends one local file to the endpoint its name classifies it to.
// A missing or unreadable file fails before any network traffic.
func (u *Uploader) Upload(ctx context.Context, path string) (domain.UploadTarget, error) {
	target := domain.ClassifyArtifact(path)

	info, err := os.Stat(path)
	if err != nil {
		return target, fmt.Errorf("artifact %s: %w", path, err)
	}
	if info.IsDir() {
		return target, fmt.Errorf("artifact %s is a directory", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return target, fmt.Errorf("artifact %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := u.sink.UploadArtifact(ctx, target, filepath.Base(path), file); err != nil {
		return target, fmt.Errorf("upload %s: %w", path, err)
	}

	return target, nil
}

// UploadAll processes the files strictly in the given order and stops at the
// first failure. Earlier successful uploads stand.
func (u *Uploader) UploadAll(ctx context.Context, paths []string, progress func(path string, target domain.UploadTarget)) error {
	for _, path := range paths {
		target, err := u.Upload(ctx, path)
		if err != nil {
			return err
		}
		if progress != nil {
			progress(path, target)
		}
	}

	return nil
}
