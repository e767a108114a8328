package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/fs"
)

func TestHasher_ComputeFileHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flake.lock")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":{}}`), 0o600))

	h := fs.NewHasher()

	first, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Len(t, first, 16)

	// Same content hashes identically.
	second, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Changed content hashes differently.
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":{"root":{}}}`), 0o600))
	third, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	h := fs.NewHasher()

	_, err := h.ComputeFileHash(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
