package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"docseek/internal/extract"
	"docseek/internal/index"
	"docseek/internal/watch"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Keep the index in sync with a folder as it changes",
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

		// Rescans are serialized through this channel: the watcher only
		// signals, the loop below is the single writer.
		trigger := make(chan struct{}, 1)
		watcher, err := watch.New(root, func() {
			select {
			case trigger <- struct{}{}:
			default:
			}
		})
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()

		if _, err := indexer.Scan(ctx, root); err != nil {
			return err
		}

		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopping.")
				return nil
			case <-trigger:
				if _, err := indexer.Scan(ctx, root); err != nil {
					fmt.Fprintf(os.Stderr, "rescan: %v\n", err)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
