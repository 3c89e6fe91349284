package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertReplacesExistingByName(t *testing.T) {
	existing := VMTypeCollection{
		{Name: "a", CPU: 1, RAM: 512, EphemeralDisk: 1024},
		{Name: "b", CPU: 2, RAM: 1024, EphemeralDisk: 2048},
		{Name: "c", CPU: 4, RAM: 4096, EphemeralDisk: 8192},
	}

	result := existing.Upsert(VMType{Name: "b", CPU: 8, RAM: 8192, EphemeralDisk: 16384})

	require.Len(t, result, 3)
	assert.Equal(t, existing[0], result[0])
	assert.Equal(t, existing[2], result[2])
	assert.Equal(t, VMType{Name: "b", CPU: 8, RAM: 8192, EphemeralDisk: 16384}, result[1])
}

func TestUpsertAppendsWhenNameAbsent(t *testing.T) {
	existing := VMTypeCollection{
		{Name: "medium", CPU: 2, RAM: 1024, EphemeralDisk: 8192},
	}

	result := existing.Upsert(VMType{Name: "small", CPU: 1, RAM: 512, EphemeralDisk: 4096})

	require.Len(t, result, 2)
	assert.Equal(t, existing[0], result[0])
	assert.Equal(t, "small", result[1].Name)
}

func TestUpsertIsIdempotent(t *testing.T) {
	existing := VMTypeCollection{
		{Name: "medium", CPU: 2, RAM: 1024, EphemeralDisk: 8192},
	}
	v := VMType{Name: "small", CPU: 1, RAM: 512, EphemeralDisk: 4096}

	once := existing.Upsert(v)
	twice := once.Upsert(v)

	assert.Equal(t, once, twice)
}

func TestUpsertDoesNotMutateReceiver(t *testing.T) {
	existing := VMTypeCollection{
		{Name: "a", CPU: 1, RAM: 512, EphemeralDisk: 1024},
	}

	_ = existing.Upsert(VMType{Name: "a", CPU: 16, RAM: 32768, EphemeralDisk: 65536})

	assert.Equal(t, 1, existing[0].CPU)
}

func TestFind(t *testing.T) {
	c := VMTypeCollection{
		{Name: "a", CPU: 1},
		{Name: "b", CPU: 2},
	}

	got, ok := c.Find("b")
	require.True(t, ok)
	assert.Equal(t, 2, got.CPU)

	_, ok = c.Find("z")
	assert.False(t, ok)
}
