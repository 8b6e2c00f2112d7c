package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OllamaConfig holds connection details for a local Ollama instance.
type OllamaConfig struct {
	BaseURL      string `yaml:"base_url"`
	EmbedModel   string `yaml:"embed_model"`
	SummaryModel string `yaml:"summary_model"`
}

// OpenAIConfig configures the OpenAI-compatible provider. The API key is
// read from the environment, never from the config file.
type OpenAIConfig struct {
	APIKeyEnv    string `yaml:"api_key_env"`
	BaseURL      string `yaml:"base_url"`
	EmbedModel   string `yaml:"embed_model"`
	SummaryModel string `yaml:"summary_model"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	// Provider selects the embedding/summary backend: "ollama" or "openai".
	Provider string       `yaml:"provider"`
	Ollama   OllamaConfig `yaml:"ollama"`
	OpenAI   OpenAIConfig `yaml:"openai"`

	// IndexPath is the JSON index store location.
	IndexPath string `yaml:"index_path"`
	// FlushEvery persists the index after this many processed files.
	FlushEvery int `yaml:"flush_every"`
	// TopK bounds the number of search results.
	TopK int `yaml:"top_k"`
	// VerifyContent enables sha256 change detection on top of mtime.
	VerifyContent bool `yaml:"verify_content"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./docseek.yaml first, then ~/.config/docseek/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "docseek.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docseek", "config.yaml"), nil
}

// DefaultIndexPath returns ~/.docseek/index.json.
func DefaultIndexPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".docseek", "index.json"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Provider == "" {
		cfg.Provider = "ollama"
	}
	if cfg.Ollama.BaseURL == "" {
		cfg.Ollama.BaseURL = "http://localhost:11434"
	}
	if cfg.Ollama.EmbedModel == "" {
		cfg.Ollama.EmbedModel = "nomic-embed-text"
	}
	if cfg.Ollama.SummaryModel == "" {
		cfg.Ollama.SummaryModel = "llama3.2"
	}
	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.OpenAI.EmbedModel == "" {
		cfg.OpenAI.EmbedModel = "text-embedding-3-small"
	}
	if cfg.OpenAI.SummaryModel == "" {
		cfg.OpenAI.SummaryModel = "gpt-4o-mini"
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 5
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 15
	}
}
