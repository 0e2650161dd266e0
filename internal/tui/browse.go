package tui

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/todotree/internal/logger"
	"github.com/gerunddev/todotree/internal/render"
	"github.com/gerunddev/todotree/internal/todo"
)

// BrowseOptions wires a browse view to its document
type BrowseOptions struct {
	// Load parses the document
	Load func() ([]todo.Node, error)
	// Changed reports whether the document changed on disk since the last load
	Changed func() (bool, error)
	// Interval between change checks; zero disables auto reload
	Interval time.Duration
	Log      *logger.Logger
}

// LoadedMsg is sent when the document has been (re)parsed
type LoadedMsg struct {
	Forest []todo.Node
	Err    error
	Reason string
}

type tickMsg struct {
	id int64
}

var lastBrowseID int64

type browseModel struct {
	id           int64
	path         string
	opts         BrowseOptions
	spinner      spinner.Model
	viewport     viewport.Model
	forest       []todo.Node
	err          error
	loading      bool
	ready        bool
	hideResolved bool
}

// InitBrowseModel creates a tree browser for a single markdown file
func InitBrowseModel(path string, opts BrowseOptions) browseModel {
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return browseModel{
		id:       atomic.AddInt64(&lastBrowseID, 1),
		path:     path,
		opts:     opts,
		spinner:  s,
		viewport: vp,
		loading:  true,
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load("initial"), m.tick())
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.load("manual"))
		case "d":
			m.hideResolved = !m.hideResolved
			m.refresh()
			return m, nil
		default:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case LoadedMsg:
		m.loading = false
		m.ready = true
		m.err = msg.Err
		if msg.Err == nil {
			m.forest = msg.Forest
			if msg.Reason != "initial" {
				m.opts.Log.Reloaded(m.path, msg.Reason)
			}
		}
		m.refresh()
		return m, nil

	case tickMsg:
		if msg.id != m.id {
			return m, nil
		}
		if m.loading {
			return m, m.tick()
		}
		return m, tea.Batch(m.tick(), m.checkChanged())

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todotree"))
	b.WriteString(" ")
	b.WriteString(labelStyle.Render(m.path))
	b.WriteString("\n\n")

	if !m.ready {
		b.WriteString(fmt.Sprintf("%s Parsing...\n", m.spinner.View()))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("✗ Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	summary := fmt.Sprintf("%d todos · %d open", todo.Count(m.forest), todo.Open(m.forest))
	b.WriteString(valueStyle.Render(summary))
	if m.hideResolved {
		b.WriteString(" " + labelStyle.Render("(resolved hidden)"))
	}
	if m.loading {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • r reload • d toggle resolved • q quit"))
	b.WriteString("\n")

	return b.String()
}

// refresh re-renders the tree into the viewport
func (m *browseModel) refresh() {
	forest := m.forest
	if m.hideResolved {
		forest = todo.Prune(forest)
	}
	content := render.Tree(forest, render.Options{})
	if content == "" {
		content = labelStyle.Render("No to-do items")
	}
	m.viewport.SetContent(content)
}

func (m browseModel) load(reason string) tea.Cmd {
	return func() tea.Msg {
		forest, err := m.opts.Load()
		return LoadedMsg{Forest: forest, Err: err, Reason: reason}
	}
}

func (m browseModel) tick() tea.Cmd {
	if m.opts.Interval <= 0 || m.opts.Changed == nil {
		return nil
	}
	id := m.id
	return tea.Tick(m.opts.Interval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// checkChanged reloads the document when it changed on disk
func (m browseModel) checkChanged() tea.Cmd {
	return func() tea.Msg {
		changed, err := m.opts.Changed()
		if err != nil {
			return LoadedMsg{Err: err, Reason: "changed"}
		}
		if !changed {
			return nil
		}
		forest, err := m.opts.Load()
		return LoadedMsg{Forest: forest, Err: err, Reason: "changed"}
	}
}
