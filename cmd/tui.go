package cmd

import (
	"docseek/internal/tui"
)

// runTUI launches the interactive terminal interface. It is the default when
// docseek is invoked without a subcommand.
func runTUI() error {
	path, err := indexPath()
	if err != nil {
		return err
	}
	emb, err := buildEmbedder()
	if err != nil {
		return err
	}
	sum, err := buildSummarizer()
	if err != nil {
		return err
	}

	return tui.Run(tui.Config{
		IndexPath:     path,
		Embedder:      emb,
		Summarizer:    sum,
		TopK:          cfg.TopK,
		FlushEvery:    cfg.FlushEvery,
		VerifyContent: cfg.VerifyContent,
	})
}
