package walker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txtOnly = map[string]bool{"txt": true, "md": true}

func collect(t *testing.T, root string, exts map[string]bool) []string {
	t.Helper()
	files, errs := Walk(context.Background(), root, exts)
	var names []string
	for fi := range files {
		names = append(names, fi.RelPath)
	}
	require.NoError(t, <-errs)
	sort.Strings(names)
	return names
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalkFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "x")
	writeFile(t, root, "b.md", "x")
	writeFile(t, root, "c.exe", "x")
	writeFile(t, root, "d.TXT", "x")

	got := collect(t, root, txtOnly)
	assert.Equal(t, []string{"a.txt", "b.md", "d.TXT"}, got)
}

func TestWalkDescendsSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "top.txt", "x")
	writeFile(t, root, filepath.Join("sub", "deep", "nested.txt"), "x")

	got := collect(t, root, txtOnly)
	assert.Equal(t, []string{"sub/deep/nested.txt", "top.txt"}, got)
}

func TestWalkSkipsEmptyFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "empty.txt", "")
	writeFile(t, root, "full.txt", "content")

	got := collect(t, root, txtOnly)
	assert.Equal(t, []string{"full.txt"}, got)
}

func TestWalkHonorsIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".docseekignore", "archive\n# comment\ntmp-*\n")
	writeFile(t, root, "keep.txt", "x")
	writeFile(t, root, filepath.Join("archive", "old.txt"), "x")
	writeFile(t, root, filepath.Join("tmp-build", "scratch.txt"), "x")

	got := collect(t, root, txtOnly)
	assert.Equal(t, []string{"keep.txt"}, got)
}

func TestWalkCreatesDefaultIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "x")
	writeFile(t, root, filepath.Join("node_modules", "pkg.txt"), "x")

	got := collect(t, root, txtOnly)
	assert.Equal(t, []string{"a.txt"}, got)
	assert.FileExists(t, filepath.Join(root, ".docseekignore"))
}

func TestWalkStopsOnCancelledContext(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeFile(t, root, name, "x")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, errs := Walk(ctx, root, txtOnly)
	count := 0
	for range files {
		count++
	}
	require.NoError(t, <-errs)
	assert.Equal(t, 0, count)
}

func TestWalkReportsModTime(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "x")

	files, errs := Walk(context.Background(), root, txtOnly)
	fi, ok := <-files
	require.True(t, ok)
	assert.False(t, fi.ModTime.IsZero())
	assert.Equal(t, "a.txt", fi.Name)
	assert.Equal(t, int64(1), fi.Size)
	for range files {
	}
	require.NoError(t, <-errs)
}
