package llm

import (
	"context"
	"fmt"
	"strings"
)

const overviewPrompt = `You are cataloguing a personal document collection. Based ONLY on the per-document summaries below, write a concise overview in Markdown.

Rules:
- ONLY describe what the summaries show; do not guess at documents not listed
- Group related documents by topic (bullet points)
- Open with one paragraph on what the collection as a whole contains

Keep it under 300 words.

## Documents

`

// DocSummary is one document's contribution to a collection overview.
type DocSummary struct {
	Filename string
	Summary  string
}

// SynthesizeOverview combines per-document summaries into a collection-level
// overview via a single chat call.
func SynthesizeOverview(ctx context.Context, chat Chat, docs []DocSummary) (string, error) {
	if len(docs) == 0 {
		return "", fmt.Errorf("no documents to summarize")
	}

	var b strings.Builder
	b.WriteString(overviewPrompt)
	for _, d := range docs {
		fmt.Fprintf(&b, "- **%s** — %s\n", d.Filename, d.Summary)
	}

	return chat.Generate(ctx, b.String())
}
