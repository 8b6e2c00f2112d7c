package tui

import (
	"context"
	"fmt"
	"strings"

	"docseek/internal/index"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type searchState int

const (
	searchIdle searchState = iota
	searchRunning
)

type searchModel struct {
	viewport    viewport.Model
	input       textinput.Model
	spinner     spinner.Model
	renderer    *glamour.TermRenderer
	ix          *index.Index
	engine      *index.SearchEngine
	query       string
	results     []index.SearchResult
	searched    bool
	state       searchState
	width       int
	height      int
	initialized bool
}

// resultsMsg is sent when a search completes.
type resultsMsg struct {
	query   string
	results []index.SearchResult
}

func newSearchModel(ix *index.Index, engine *index.SearchEngine) searchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle

	ti := textinput.New()
	ti.Placeholder = "What are you looking for?"
	ti.CharLimit = 2000
	ti.Focus()

	return searchModel{
		spinner: sp,
		input:   ti,
		ix:      ix,
		engine:  engine,
		state:   searchIdle,
	}
}

func (m *searchModel) initViewport(width, height int) {
	m.width = width
	m.height = height

	// Layout: viewport + status bar (1 line) + input (1 line) + gap (1 line).
	vpHeight := height - 3
	if vpHeight < 5 {
		vpHeight = 5
	}
	m.viewport = viewport.New(width, vpHeight)
	m.viewport.SetContent(dimStyle.Render(fmt.Sprintf(
		"Searching %d indexed documents. Type a query and press Enter.\n\nCommands: /exit", m.ix.Len())))

	m.input.Width = width - 4

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err == nil {
		m.renderer = r
	}

	m.initialized = true
}

func runSearch(engine *index.SearchEngine, query string) tea.Cmd {
	return func() tea.Msg {
		return resultsMsg{query: query, results: engine.Search(context.Background(), query)}
	}
}

func (m searchModel) Update(msg tea.Msg) (searchModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.initViewport(msg.Width, msg.Height)
		if m.searched {
			m.viewport.SetContent(m.renderResults())
		}
		return m, nil

	case resultsMsg:
		m.state = searchIdle
		m.query = msg.query
		m.results = msg.results
		m.searched = true
		m.viewport.SetContent(m.renderResults())
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.state == searchRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.state != searchIdle {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEnter:
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.input.Reset()

			switch query {
			case "/exit", "/quit":
				return m, tea.Quit
			}

			m.state = searchRunning
			return m, tea.Batch(m.spinner.Tick, runSearch(m.engine, query))
		}
	}

	// Update text input.
	if m.state == searchIdle {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Update viewport (scrolling).
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m searchModel) renderResults() string {
	if len(m.results) == 0 {
		return dimStyle.Render(fmt.Sprintf("No results for %q.", m.query))
	}

	var sb strings.Builder
	for i, r := range m.results {
		sb.WriteString(resultTitleStyle.Render(fmt.Sprintf("%d. %s", i+1, r.Record.Filename)))
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  %.3f", r.Score)) + "\n")
		sb.WriteString(resultPathStyle.Render("   "+r.Path) + "\n")
		sb.WriteString(m.renderMarkdown(r.Record.Summary) + "\n")
	}
	return sb.String()
}

func (m searchModel) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

func (m searchModel) View(width, height int) string {
	if !m.initialized {
		return ""
	}

	statusText := fmt.Sprintf("%d documents indexed", m.ix.Len())
	if m.state == searchRunning {
		statusText = m.spinner.View() + " searching..."
	} else if m.searched {
		statusText = fmt.Sprintf("%d results for %q", len(m.results), m.query)
	}
	statusBar := statusBarStyle.
		Width(m.width).
		Render(" docseek • " + statusText)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		statusBar,
		m.input.View(),
	)
}
