package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/todotree/internal/todo"
)

// Monokai Pro color palette
const (
	Foreground = "#FCFCFA"
	Red        = "#FF6188"
	Orange     = "#FC9867"
	Yellow     = "#FFD866"
	Green      = "#A9DC76"
	Cyan       = "#78DCE8"
	Blue       = "#AB9DF2"
	Comment    = "#727072"
	Border     = "#5B595C"
)

var (
	TitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground))
	ResolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment)).Strikethrough(true)
	DimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	BranchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Border))
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Red))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	SuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
)

var statusStyles = map[todo.Status]lipgloss.Style{
	todo.StatusTodo:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Yellow)),
	todo.StatusDone:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Green)),
	todo.StatusWaiting:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Orange)),
	todo.StatusInactive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Blue)),
	todo.StatusCanceled: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Red)),
}

// StatusStyle returns the badge style for a status.
func StatusStyle(s todo.Status) lipgloss.Style {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return DimStyle
}
