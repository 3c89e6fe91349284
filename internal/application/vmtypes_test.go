package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/opsman-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inMemoryVMTypeStore struct {
	collection domain.VMTypeCollection
	listErr    error
	replaceErr error
	replaced   []domain.VMTypeCollection
	deleted    int
}

func (s *inMemoryVMTypeStore) ListVMTypes(_ context.Context) (domain.VMTypeCollection, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.collection, nil
}

func (s *inMemoryVMTypeStore) ReplaceVMTypes(_ context.Context, c domain.VMTypeCollection) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = append(s.replaced, c)
	s.collection = c
	return nil
}

func (s *inMemoryVMTypeStore) DeleteVMTypes(_ context.Context) error {
	s.deleted++
	s.collection = nil
	return nil
}

func TestVMTypesUpsertAppendsNewTypeAndReplacesWholeCollection(t *testing.T) {
	t.Parallel()

	store := &inMemoryVMTypeStore{collection: domain.VMTypeCollection{
		{Name: "medium", CPU: 2, RAM: 1024, EphemeralDisk: 8192},
	}}
	svc := NewVMTypes(store)

	result, err := svc.Upsert(context.Background(), domain.VMType{Name: "small", CPU: 1, RAM: 512, EphemeralDisk: 4096})
	require.NoError(t, err)

	require.Len(t, store.replaced, 1, "the write must be one full replacement")
	assert.Equal(t, domain.VMTypeCollection{
		{Name: "medium", CPU: 2, RAM: 1024, EphemeralDisk: 8192},
		{Name: "small", CPU: 1, RAM: 512, EphemeralDisk: 4096},
	}, store.replaced[0])
	assert.Equal(t, store.replaced[0], result)
}

func TestVMTypesUpsertUpdatesInPlacePreservingNeighbors(t *testing.T) {
	t.Parallel()

	store := &inMemoryVMTypeStore{collection: domain.VMTypeCollection{
		{Name: "a", CPU: 1, RAM: 512, EphemeralDisk: 1024},
		{Name: "b", CPU: 2, RAM: 1024, EphemeralDisk: 2048},
		{Name: "c", CPU: 4, RAM: 4096, EphemeralDisk: 8192},
	}}
	svc := NewVMTypes(store)

	result, err := svc.Upsert(context.Background(), domain.VMType{Name: "b", CPU: 6, RAM: 6144, EphemeralDisk: 12288})
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, domain.VMType{Name: "a", CPU: 1, RAM: 512, EphemeralDisk: 1024}, result[0])
	assert.Equal(t, domain.VMType{Name: "b", CPU: 6, RAM: 6144, EphemeralDisk: 12288}, result[1])
	assert.Equal(t, domain.VMType{Name: "c", CPU: 4, RAM: 4096, EphemeralDisk: 8192}, result[2])
}

func TestVMTypesUpsertTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	store := &inMemoryVMTypeStore{}
	svc := NewVMTypes(store)
	v := domain.VMType{Name: "small", CPU: 1, RAM: 512, EphemeralDisk: 4096}

	first, err := svc.Upsert(context.Background(), v)
	require.NoError(t, err)
	second, err := svc.Upsert(context.Background(), v)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestVMTypesUpsertDoesNotWriteWhenFetchFails(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("remote unavailable")
	store := &inMemoryVMTypeStore{listErr: fetchErr}
	svc := NewVMTypes(store)

	_, err := svc.Upsert(context.Background(), domain.VMType{Name: "small"})
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.Empty(t, store.replaced)
}

func TestVMTypesUpsertSurfacesReplaceFailure(t *testing.T) {
	t.Parallel()

	replaceErr := errors.New("remote rejected replacement")
	store := &inMemoryVMTypeStore{replaceErr: replaceErr}
	svc := NewVMTypes(store)

	_, err := svc.Upsert(context.Background(), domain.VMType{Name: "small"})
	require.Error(t, err)
	assert.ErrorIs(t, err, replaceErr)
}

func TestVMTypesClearDelegatesToDelete(t *testing.T) {
	t.Parallel()

	store := &inMemoryVMTypeStore{collection: domain.VMTypeCollection{{Name: "a"}}}
	svc := NewVMTypes(store)

	require.NoError(t, svc.Clear(context.Background()))
	assert.Equal(t, 1, store.deleted)
}
