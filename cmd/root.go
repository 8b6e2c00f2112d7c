package cmd

import (
	"fmt"
	"os"

	"docseek/internal/config"
	"docseek/internal/embedder"
	"docseek/internal/index"
	"docseek/internal/llm"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagIndex  string

	cfg *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "docseek",
	Short: "Semantic search over your document folders",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Best-effort: API keys may live in a local .env file.
		_ = godotenv.Load()

		if flagConfig != "" {
			c, err := config.Load(flagConfig)
			if err != nil {
				return fmt.Errorf("load config %s: %w", flagConfig, err)
			}
			cfg = c
			return nil
		}
		c, _, err := config.LoadDefault()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default docseek.yaml, then ~/.config/docseek/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagIndex, "index", "", "index file path (default ~/.docseek/index.json)")
}

// indexPath resolves the index store location: flag, then config, then default.
func indexPath() (string, error) {
	if flagIndex != "" {
		return flagIndex, nil
	}
	if cfg.IndexPath != "" {
		return cfg.IndexPath, nil
	}
	return config.DefaultIndexPath()
}

// buildEmbedder constructs the configured embedding provider.
func buildEmbedder() (index.Embedder, error) {
	switch cfg.Provider {
	case "", "ollama":
		return embedder.NewOllamaEmbedder(cfg.Ollama.BaseURL, cfg.Ollama.EmbedModel), nil
	case "openai":
		key := os.Getenv(cfg.OpenAI.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("missing API key in env %s", cfg.OpenAI.APIKeyEnv)
		}
		return embedder.NewOpenAIEmbedder(key, cfg.OpenAI.BaseURL, cfg.OpenAI.EmbedModel), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// buildChat constructs the configured chat backend for summaries.
func buildChat() (llm.Chat, error) {
	switch cfg.Provider {
	case "", "ollama":
		return llm.NewOllamaChat(cfg.Ollama.BaseURL, cfg.Ollama.SummaryModel), nil
	case "openai":
		key := os.Getenv(cfg.OpenAI.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("missing API key in env %s", cfg.OpenAI.APIKeyEnv)
		}
		return llm.NewOpenAIChat(key, cfg.OpenAI.BaseURL, cfg.OpenAI.SummaryModel), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// buildSummarizer wraps the chat backend into the indexer's Summarizer.
func buildSummarizer() (index.Summarizer, error) {
	chat, err := buildChat()
	if err != nil {
		return nil, err
	}
	return llm.NewDocumentSummarizer(chat), nil
}
