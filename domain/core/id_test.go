package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		require.False(t, id.IsEmpty())
		require.False(t, ids[id], "duplicate ID %s", id)
		ids[id] = true
	}
	assert.Len(t, ids, numIDs)
}

func TestParseRunID(t *testing.T) {
	id := NewRunID()
	parsed, err := ParseRunID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseRunID("  ")
	assert.Error(t, err)
	_, err = ParseRunID("run-1")
	assert.Error(t, err)
}

func TestRequestIDShort(t *testing.T) {
	id := RequestID("0190a0b4-7c1e-7d5e-8f00-123456789abc")
	assert.Equal(t, "123456789abc", id.Short())
	assert.Equal(t, "plain", RequestID("plain").Short())
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := []byte("Age\n17\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	h, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, NewHash(content), h)
	assert.Len(t, h.String(), 64)
	assert.Len(t, h.Short(), 12)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
