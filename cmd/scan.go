package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"docseek/internal/extract"
	"docseek/internal/index"
	"docseek/internal/llm"

	"github.com/spf13/cobra"
)

var flagOverview bool

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Index a folder of documents for search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		if err := ensureFolder(root); err != nil {
			return err
		}

		path, err := indexPath()
		if err != nil {
			return err
		}
		store := index.NewStore(path)
		ix := store.Load()

		emb, err := buildEmbedder()
		if err != nil {
			return err
		}
		sum, err := buildSummarizer()
		if err != nil {
			return err
		}

		registry := extract.NewRegistry()
		indexer := index.NewIndexer(ix, store, registry, emb, sum, index.Config{
			Extensions:    registry.Extensions(),
			FlushEvery:    cfg.FlushEvery,
			VerifyContent: cfg.VerifyContent,
			Sink:          index.ProgressFunc(func(status string) { fmt.Println(status) }),
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fmt.Printf("Scanning %s...\n", root)
		start := time.Now()

		count, err := indexer.Scan(ctx, root)
		elapsed := time.Since(start)

		fmt.Printf("\nDone in %s\n", elapsed.Round(time.Millisecond))
		fmt.Printf("  New or updated: %d\n", count)
		fmt.Printf("  Indexed total:  %d\n", ix.Len())
		if err != nil {
			return err
		}

		if flagOverview && ix.Len() > 0 {
			return writeOverview(ctx, ix, path)
		}
		return nil
	},
}

// ensureFolder rejects a scan target that doesn't exist or isn't a directory,
// so a typo'd path fails loudly instead of "succeeding" with zero documents.
func ensureFolder(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot scan %s: %w", path, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("cannot scan %s: not a directory", path)
	}
	return nil
}

// writeOverview synthesizes a collection overview from the per-document
// summaries and stores it next to the index file.
func writeOverview(ctx context.Context, ix *index.Index, storePath string) error {
	chat, err := buildChat()
	if err != nil {
		return err
	}

	var docs []llm.DocSummary
	for _, entry := range ix.Snapshot() {
		docs = append(docs, llm.DocSummary{
			Filename: entry.Record.Filename,
			Summary:  entry.Record.Summary,
		})
	}

	fmt.Println("Generating collection overview...")
	overview, err := llm.SynthesizeOverview(ctx, chat, docs)
	if err != nil {
		return fmt.Errorf("overview generation failed: %w", err)
	}

	overviewPath := filepath.Join(filepath.Dir(storePath), "overview.md")
	if err := os.WriteFile(overviewPath, []byte(overview), 0o644); err != nil {
		return fmt.Errorf("write overview: %w", err)
	}
	fmt.Printf("Overview written to %s\n", overviewPath)
	return nil
}

func init() {
	scanCmd.Flags().BoolVar(&flagOverview, "overview", false, "generate a collection overview after scanning")
	rootCmd.AddCommand(scanCmd)
}
