package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryExtensions(t *testing.T) {
	exts := NewRegistry().Extensions()
	for _, ext := range []string{"pdf", "docx", "txt", "md"} {
		assert.True(t, exts[ext], "missing %s", ext)
	}
}

func TestRegistryDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello there"), 0o644))

	text, err := NewRegistry().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
}

func TestRegistryIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "NOTE.TXT")
	require.NoError(t, os.WriteFile(path, []byte("shouting"), 0o644))

	text, err := NewRegistry().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "shouting", text)
}

func TestRegistryRejectsUnsupportedFormat(t *testing.T) {
	_, err := NewRegistry().Extract("binary.exe")
	assert.Error(t, err)
}

func TestPlainTextMissingFile(t *testing.T) {
	_, err := PlainText{}.Extract(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain utf8", []byte("hello"), "hello"},
		{"utf8 bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...), "hello"},
		{"invalid bytes dropped", []byte{'h', 0xFF, 'i'}, "hi"},
		{"utf16 le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi"},
		{"utf16 be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeText(tt.in))
		})
	}
}
