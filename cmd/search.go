package cmd

import (
	"fmt"
	"os"
	"strings"

	"docseek/internal/index"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	flagK    int
	flagLong bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the indexed documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		path, err := indexPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("index not found at %s\nRun 'docseek scan <folder>' first to build the index", path)
		}
		ix := index.NewStore(path).Load()

		emb, err := buildEmbedder()
		if err != nil {
			return err
		}

		engine := index.NewSearchEngine(ix, emb, flagK)
		results := engine.Search(cmd.Context(), query)
		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}

		if flagLong {
			return printLong(query, results)
		}
		for i, r := range results {
			fmt.Printf("%2d. %.3f  %s\n", i+1, r.Score, r.Record.Filename)
			fmt.Printf("    %s\n", r.Path)
			fmt.Printf("    %s\n", firstLine(r.Record.Summary))
		}
		return nil
	},
}

// printLong renders the results as markdown for a richer terminal view.
func printLong(query string, results []index.SearchResult) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Results for %q\n\n", query)
	for i, r := range results {
		fmt.Fprintf(&sb, "## %d. %s (%.3f)\n\n", i+1, r.Record.Filename, r.Score)
		fmt.Fprintf(&sb, "`%s`\n\n%s\n\n", r.Path, r.Record.Summary)
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(sb.String())
		return nil
	}
	out, err := renderer.Render(sb.String())
	if err != nil {
		fmt.Print(sb.String())
		return nil
	}
	fmt.Print(out)
	return nil
}

func firstLine(s string) string {
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}

func init() {
	searchCmd.Flags().IntVar(&flagK, "k", index.DefaultTopK, "maximum number of results")
	searchCmd.Flags().BoolVar(&flagLong, "long", false, "render full summaries as markdown")
	rootCmd.AddCommand(searchCmd)
}
