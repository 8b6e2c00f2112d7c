package tui

import (
	"fmt"
	"os"
	"strings"

	"docseek/internal/index"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type indexStatus int

const (
	indexNotFound indexStatus = iota
	indexReady
	indexStale
)

type welcomeModel struct {
	input       textinput.Model
	status      indexStatus
	staleReason string
	docCount    int
	ready       bool // true once the check has completed
}

func newWelcomeModel() welcomeModel {
	ti := textinput.New()
	ti.Placeholder = "folder to index (leave empty to search)"
	ti.CharLimit = 512
	ti.Focus()
	return welcomeModel{input: ti}
}

// folder returns the folder typed by the user, empty if none.
func (m welcomeModel) folder() string {
	return strings.TrimSpace(m.input.Value())
}

// checkIndexMsg is sent after checking the index status.
type checkIndexMsg struct {
	status      indexStatus
	staleReason string
	docCount    int
}

func checkIndex(cfg Config) tea.Cmd {
	return func() tea.Msg {
		if _, err := os.Stat(cfg.IndexPath); os.IsNotExist(err) {
			return checkIndexMsg{status: indexNotFound}
		}

		ix := index.NewStore(cfg.IndexPath).Load()
		if ix.Len() == 0 {
			return checkIndexMsg{status: indexNotFound}
		}

		if last := ix.Model(); last != "" && last != cfg.Embedder.Model() {
			return checkIndexMsg{
				status:      indexStale,
				staleReason: fmt.Sprintf("embedding model changed: %s → %s", last, cfg.Embedder.Model()),
				docCount:    ix.Len(),
			}
		}

		return checkIndexMsg{status: indexReady, docCount: ix.Len()}
	}
}

func (m welcomeModel) Update(msg tea.Msg) (welcomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case checkIndexMsg:
		m.status = msg.status
		m.staleReason = msg.staleReason
		m.docCount = msg.docCount
		m.ready = true
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m welcomeModel) View(width, height int) string {
	s := "\n"
	s += titleStyle.Render("  ◆ DocSeek") + "\n"
	s += subtitleStyle.Render("  Semantic search over your document folders") + "\n\n"

	if !m.ready {
		s += dimStyle.Render("  Checking index...") + "\n"
		return s
	}

	switch m.status {
	case indexReady:
		s += successStyle.Render(fmt.Sprintf("  ✓ Index ready (%d documents)", m.docCount)) + "\n"
	case indexNotFound:
		s += warnStyle.Render("  ✗ No index found") + "\n"
	case indexStale:
		s += warnStyle.Render("  ⚠ Index stale") + "\n"
		s += dimStyle.Render("    "+m.staleReason) + "\n"
	}

	s += "\n  " + m.input.View() + "\n\n"
	if m.status == indexReady {
		s += dimStyle.Render("  Enter to search, or type a folder to rescan") + "\n"
	} else {
		s += dimStyle.Render("  Type a folder path and press Enter to index it") + "\n"
	}
	s += dimStyle.Render("  Esc to quit") + "\n"
	return s
}
