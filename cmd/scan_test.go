package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureFolder(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, ensureFolder(dir))

	err := ensureFolder(filepath.Join(dir, "typo"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	file := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.ErrorContains(t, ensureFolder(file), "not a directory")
}
