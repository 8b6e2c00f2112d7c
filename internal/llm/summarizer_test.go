package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingChat captures the prompt and returns a canned reply.
type recordingChat struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (c *recordingChat) Generate(ctx context.Context, prompt string) (string, error) {
	c.calls++
	c.prompt = prompt
	return c.reply, c.err
}

func TestSummarizeShortTextSkipsModel(t *testing.T) {
	chat := &recordingChat{reply: "should not be used"}
	s := NewDocumentSummarizer(chat)

	summary, err := s.Summarize(context.Background(), "tiny")
	require.NoError(t, err)
	assert.Equal(t, "No content.", summary)
	assert.Equal(t, 0, chat.calls)
}

func TestSummarizeTrimsModelOutput(t *testing.T) {
	chat := &recordingChat{reply: "  A report on quarterly sales.\n"}
	s := NewDocumentSummarizer(chat)

	summary, err := s.Summarize(context.Background(), "This is a long enough document about sales.")
	require.NoError(t, err)
	assert.Equal(t, "A report on quarterly sales.", summary)
	assert.Contains(t, chat.prompt, "about sales")
}

func TestSummarizeBoundsPromptText(t *testing.T) {
	chat := &recordingChat{reply: "ok"}
	s := NewDocumentSummarizer(chat)

	_, err := s.Summarize(context.Background(), strings.Repeat("y", maxSummaryBytes*2))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(chat.prompt), maxSummaryBytes+len(summaryPrompt))
}

func TestSummarizePropagatesChatError(t *testing.T) {
	chat := &recordingChat{err: errors.New("model offline")}
	s := NewDocumentSummarizer(chat)

	_, err := s.Summarize(context.Background(), "This is a long enough document to summarize.")
	assert.Error(t, err)
}

func TestSynthesizeOverview(t *testing.T) {
	chat := &recordingChat{reply: "# Overview\nMostly invoices."}
	docs := []DocSummary{
		{Filename: "invoice-01.pdf", Summary: "January invoice."},
		{Filename: "notes.md", Summary: "Meeting notes."},
	}

	overview, err := SynthesizeOverview(context.Background(), chat, docs)
	require.NoError(t, err)
	assert.Equal(t, "# Overview\nMostly invoices.", overview)
	assert.Contains(t, chat.prompt, "invoice-01.pdf")
	assert.Contains(t, chat.prompt, "Meeting notes.")
	assert.Equal(t, 1, chat.calls, "the overview must be a single model call")
}

func TestSynthesizeOverviewRequiresDocuments(t *testing.T) {
	_, err := SynthesizeOverview(context.Background(), &recordingChat{}, nil)
	assert.Error(t, err)
}
