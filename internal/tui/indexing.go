package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"docseek/internal/extract"
	"docseek/internal/index"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type indexingModel struct {
	spinner spinner.Model
	status  string
	done    bool
	count   int
	total   int
	err     error
}

func newIndexingModel() indexingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle
	return indexingModel{
		spinner: sp,
		status:  "Scanning...",
	}
}

// scanDoneMsg is sent when the scan completes.
type scanDoneMsg struct {
	count int
	total int
	err   error
}

// scanProgressMsg carries per-file status updates during a scan.
type scanProgressMsg struct {
	status string
}

func runScan(cfg Config, folder string) tea.Cmd {
	return func() tea.Msg {
		root, err := filepath.Abs(folder)
		if err != nil {
			return scanDoneMsg{err: err}
		}

		store := index.NewStore(cfg.IndexPath)
		ix := store.Load()

		registry := extract.NewRegistry()
		indexer := index.NewIndexer(ix, store, registry, cfg.Embedder, cfg.Summarizer, index.Config{
			Extensions:    registry.Extensions(),
			FlushEvery:    cfg.FlushEvery,
			VerifyContent: cfg.VerifyContent,
			Sink: index.ProgressFunc(func(status string) {
				if cfg.program != nil && cfg.program.p != nil {
					cfg.program.p.Send(scanProgressMsg{status: status})
				}
			}),
		})

		count, err := indexer.Scan(context.Background(), root)
		return scanDoneMsg{count: count, total: ix.Len(), err: err}
	}
}

func (m indexingModel) Update(msg tea.Msg) (indexingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case scanDoneMsg:
		m.done = true
		m.count = msg.count
		m.total = msg.total
		m.err = msg.err
		return m, nil
	case scanProgressMsg:
		m.status = msg.status
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m indexingModel) View(width, height int) string {
	s := "\n"
	s += titleStyle.Render("  Indexing") + "\n\n"

	if m.done {
		if m.err != nil {
			s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
			s += dimStyle.Render("  Press Enter to search anyway, or q to quit.") + "\n"
			return s
		}
		s += successStyle.Render("  ✓ Scan complete!") + "\n\n"
		s += fmt.Sprintf("  New or updated: %d\n", m.count)
		s += fmt.Sprintf("  Indexed total:  %d\n", m.total)
		s += "\n"
		s += dimStyle.Render("  Press Enter to start searching") + "\n"
		return s
	}

	s += fmt.Sprintf("  %s %s\n", m.spinner.View(), m.status)
	s += "\n"
	s += dimStyle.Render("  This may take a while for large folders...") + "\n"
	return s
}
