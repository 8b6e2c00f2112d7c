package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docseek/internal/index"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing document search tools",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
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
	engine := index.NewSearchEngine(ix, emb, cfg.TopK)
	overviewPath := filepath.Join(filepath.Dir(path), "overview.md")

	s := mcpserver.NewMCPServer("docseek", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(searchDocumentsTool(), makeSearchHandler(engine))
	s.AddTool(getDocumentSummaryTool(), makeDocumentSummaryHandler(ix))
	s.AddTool(listIndexedDocumentsTool(), makeListDocumentsHandler(ix))
	s.AddTool(getCollectionOverviewTool(), makeOverviewHandler(overviewPath))

	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func searchDocumentsTool() mcp.Tool {
	return mcp.NewTool("search_documents",
		mcp.WithDescription("Semantically search the indexed documents by vector similarity. Returns ranked matches with paths and summaries."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language query to search the document collection"),
		),
		mcp.WithNumber("k",
			mcp.Description("Maximum number of documents to return (default 15)"),
		),
	)
}

func getDocumentSummaryTool() mcp.Tool {
	return mcp.NewTool("get_document_summary",
		mcp.WithDescription("Get the generated summary and metadata for a specific indexed document."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Document path exactly as indexed"),
		),
	)
}

func listIndexedDocumentsTool() mcp.Tool {
	return mcp.NewTool("list_indexed_documents",
		mcp.WithDescription("List all indexed documents with a summary snippet each."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

func getCollectionOverviewTool() mcp.Tool {
	return mcp.NewTool("get_collection_overview",
		mcp.WithDescription("Get the overview of the whole collection synthesized from all document summaries."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

// --- Handler factories ---

func makeSearchHandler(engine *index.SearchEngine) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		results := engine.Search(ctx, query)
		if k := req.GetInt("k", 0); k > 0 && len(results) > k {
			results = results[:k]
		}

		return mcp.NewToolResultText(formatSearchResults(query, results)), nil
	}
}

func makeDocumentSummaryHandler(ix *index.Index) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}

		rec, ok := ix.Get(path)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("document %q not found in index — call list_indexed_documents to see available paths", path)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("## %s\n\n**Path:** %s  \n**Indexed:** mtime %.3f\n\n%s",
			rec.Filename, path, rec.MTime, rec.Summary)), nil
	}
}

func makeListDocumentsHandler(ix *index.Index) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries := ix.Snapshot()

		var sb strings.Builder
		fmt.Fprintf(&sb, "## Indexed documents (%d)\n\n", len(entries))
		for _, e := range entries {
			snippet := firstLine(e.Record.Summary)
			if snippet == "" {
				snippet = "(no summary)"
			}
			fmt.Fprintf(&sb, "- **%s** — %s\n", e.Path, snippet)
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func makeOverviewHandler(overviewPath string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := os.ReadFile(overviewPath)
		if err != nil {
			if os.IsNotExist(err) {
				return mcp.NewToolResultText("No overview available yet. Run 'docseek scan <folder> --overview' to generate one."), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("read overview failed: %v", err)), nil
		}
		if len(data) == 0 {
			return mcp.NewToolResultText("Overview file exists but is empty."), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// --- Formatting helpers ---

func formatSearchResults(query string, results []index.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for query: %q", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Search results for %q (%d documents)\n\n", query, len(results))
	for i, r := range results {
		fmt.Fprintf(&sb, "### Result %d: `%s`\n\n", i+1, r.Record.Filename)
		fmt.Fprintf(&sb, "**Path:** %s  \n**Score:** %.3f\n\n%s\n\n", r.Path, r.Score, r.Record.Summary)
	}
	return sb.String()
}
