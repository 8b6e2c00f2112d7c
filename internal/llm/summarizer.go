package llm

import (
	"context"
	"fmt"
	"strings"
)

const summaryPrompt = `Summarize this document in at most one sentence. State what it is about; do not speculate beyond the text shown.

%s`

// maxSummaryBytes bounds the text prefix submitted with the summary prompt.
const maxSummaryBytes = 2500

// minSummaryLen is the shortest text worth summarizing at all.
const minSummaryLen = 20

// DocumentSummarizer produces a one-sentence synopsis of a document via a
// chat model.
type DocumentSummarizer struct {
	chat Chat
}

// NewDocumentSummarizer wraps a chat client into a summarizer.
func NewDocumentSummarizer(chat Chat) *DocumentSummarizer {
	return &DocumentSummarizer{chat: chat}
}

// Summarize returns a short synopsis of text. Very short inputs summarize to
// a fixed string without a model call.
func (s *DocumentSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if len(text) < minSummaryLen {
		return "No content.", nil
	}
	if len(text) > maxSummaryBytes {
		text = strings.ToValidUTF8(text[:maxSummaryBytes], "")
	}
	summary, err := s.chat.Generate(ctx, fmt.Sprintf(summaryPrompt, text))
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(summary), nil
}
