package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/gerunddev/todotree/internal/scan"
)

// ScanMsg is sent when a directory scan completes
type ScanMsg struct {
	Result *scan.Result
	Err    error
}

const fileColumnWidth = 40

type scanModel struct {
	dir        string
	spinner    spinner.Model
	table      table.Model
	result     *scan.Result
	err        error
	scanning   bool
	width      int
	height     int
	browse     *browseModel
	browseFunc func(path string) BrowseOptions
}

// InitScanModel creates the agenda view for a directory scan. browseFunc, if
// set, lets enter open the selected file in a tree browser.
func InitScanModel(dir string, browseFunc func(path string) BrowseOptions) scanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	columns := []table.Column{
		{Title: "File", Width: fileColumnWidth},
		{Title: "Todos", Width: 7},
		{Title: "Open", Width: 7},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(ts)

	return scanModel{
		dir:        dir,
		spinner:    s,
		table:      t,
		scanning:   true,
		browseFunc: browseFunc,
	}
}

func (m scanModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Height > 12 {
			m.table.SetHeight(msg.Height - 12)
		}
		if m.browse != nil {
			return m.updateBrowse(msg)
		}
		return m, nil

	case ScanMsg:
		m.scanning = false
		m.result = msg.Result
		m.err = msg.Err
		m.table.SetRows(m.rows())
		return m, nil

	case tea.KeyMsg:
		if m.browse != nil {
			if msg.String() == "esc" {
				m.browse = nil
				return m, nil
			}
			return m.updateBrowse(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			return m.openSelected()
		default:
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		if m.scanning {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.browse != nil {
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m scanModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.browse.Update(msg)
	b := updated.(browseModel)
	m.browse = &b
	return m, cmd
}

func (m scanModel) openSelected() (tea.Model, tea.Cmd) {
	if m.browseFunc == nil || m.result == nil {
		return m, nil
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.result.Files) {
		return m, nil
	}

	path := m.result.Files[idx].Path
	b := InitBrowseModel(path, m.browseFunc(path))
	if m.width > 0 {
		updated, _ := b.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		b = updated.(browseModel)
	}
	m.browse = &b
	return m, b.Init()
}

func (m scanModel) rows() []table.Row {
	if m.result == nil {
		return nil
	}

	rows := make([]table.Row, 0, len(m.result.Files))
	for _, f := range m.result.Files {
		rows = append(rows, table.Row{
			truncate.StringWithTail(m.relPath(f.Path), fileColumnWidth, "…"),
			fmt.Sprintf("%d", f.Todos),
			fmt.Sprintf("%d", f.Open),
			fileStatus(f),
		})
	}
	return rows
}

func (m scanModel) relPath(path string) string {
	if rel, err := filepath.Rel(m.dir, path); err == nil {
		return rel
	}
	return path
}

func fileStatus(f scan.FileResult) string {
	switch {
	case f.Err != nil:
		return "✗ error"
	case f.Empty:
		return "○ empty"
	case !f.Changed:
		return "· cached"
	default:
		return "✓ parsed"
	}
}

func (m scanModel) View() string {
	if m.browse != nil {
		return m.browse.View() + helpStyle.Render("esc back to scan") + "\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("todotree scan"))
	b.WriteString(" ")
	b.WriteString(labelStyle.Render(m.dir))
	b.WriteString("\n\n")

	if m.scanning {
		b.WriteString(fmt.Sprintf("%s Scanning directory...\n", m.spinner.View()))
		return b.String()
	}

	if m.err != nil {
		return b.String() + errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if m.result == nil || len(m.result.Files) == 0 {
		b.WriteString(labelStyle.Render("No markdown files found"))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q/ctrl+c quit"))
		b.WriteString("\n")
		return b.String()
	}

	todos, open := m.result.Totals()
	b.WriteString(fmt.Sprintf("  Files: %s  Todos: %s  Open: %s\n",
		valueStyle.Render(fmt.Sprintf("%d", len(m.result.Files))),
		valueStyle.Render(fmt.Sprintf("%d", todos)),
		highlightStyle.Render(fmt.Sprintf("%d", open))))
	if len(m.result.Errors) == 0 {
		b.WriteString(fmt.Sprintf("  %s\n", successStyle.Render("✓ All files parsed")))
	} else {
		b.WriteString(fmt.Sprintf("  %s\n", errorStyle.Render(fmt.Sprintf("✗ %d file(s) failed to parse", len(m.result.Errors)))))
	}
	b.WriteString("\n")

	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")

	if idx := m.table.Cursor(); idx >= 0 && idx < len(m.result.Files) {
		if err := m.result.Files[idx].Err; err != nil {
			b.WriteString(errorStyle.Render(err.Error()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.browseFunc != nil {
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter browse • q/ctrl+c quit"))
	} else {
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • q/ctrl+c quit"))
	}
	b.WriteString("\n")

	return b.String()
}
