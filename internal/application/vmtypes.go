package application

import (
	"context"
	"fmt"

	"github.com/bnema/opsman-cli/internal/domain"
	"github.com/bnema/opsman-cli/internal/ports"
)

// VMTypes reconciles the appliance's vm_types collection. The remote only
// understands full replacement, so every write is a read-modify-write of
// the whole set. There is no concurrency token on the remote side: a
// concurrent writer between fetch and replace gets clobbered. Known trade,
// inherited from the API contract.
type VMTypes struct {
	store ports.VMTypeStore
}

func NewVMTypes(store ports.VMTypeStore) *VMTypes {
	return &VMTypes{store: store}
}

// Upsert merges v into the remote collection keyed by name and pushes the
// result back as a full replacement. Returns the collection as written.
func (s *VMTypes) Upsert(ctx context.Context, v domain.VMType) (domain.VMTypeCollection, error) {
	current, err := s.store.ListVMTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch vm types: %w", err)
	}

	updated := current.Upsert(v)

	if err := s.store.ReplaceVMTypes(ctx, updated); err != nil {
		return nil, fmt.Errorf("replace vm types: %w", err)
	}

	return updated, nil
}

// List is the read-only view of the remote collection.
func (s *VMTypes) List(ctx context.Context) (domain.VMTypeCollection, error) {
	c, err := s.store.ListVMTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch vm types: %w", err)
	}
	return c, nil
}

// Clear removes the remote collection. Whether the appliance treats this as
// a delete or a replace-with-empty is its call, not ours.
func (s *VMTypes) Clear(ctx context.Context) error {
	if err := s.store.DeleteVMTypes(ctx); err != nil {
		return fmt.Errorf("delete vm types: %w", err)
	}
	return nil
}
