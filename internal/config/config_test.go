package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "nomic-embed-text", cfg.Ollama.EmbedModel)
	assert.Equal(t, "llama3.2", cfg.Ollama.SummaryModel)
	assert.Equal(t, "OPENAI_API_KEY", cfg.OpenAI.APIKeyEnv)
	assert.Equal(t, 5, cfg.FlushEvery)
	assert.Equal(t, 15, cfg.TopK)
	assert.False(t, cfg.VerifyContent)
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docseek.yaml")
	content := "provider: openai\ntop_k: 30\nverify_content: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 30, cfg.TopK)
	assert.True(t, cfg.VerifyContent)
	// Unset fields still get defaults.
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.EmbedModel)
	assert.Equal(t, 5, cfg.FlushEvery)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docseek.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "docseek.yaml")
	cfg := &AppConfig{
		Provider:   "ollama",
		IndexPath:  "/data/index.json",
		FlushEvery: 10,
		TopK:       7,
	}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/index.json", loaded.IndexPath)
	assert.Equal(t, 10, loaded.FlushEvery)
	assert.Equal(t, 7, loaded.TopK)
}
