package commands

import (
	"errors"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/todotree/internal/logger"
	"github.com/gerunddev/todotree/internal/scan"
	"github.com/gerunddev/todotree/internal/state"
	"github.com/gerunddev/todotree/internal/todo"
	"github.com/gerunddev/todotree/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse the to-do tree of a markdown file, reloading on change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}

			m := tui.InitBrowseModel(args[0], a.browseOptions(args[0]))
			p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}
}

// tuiLogger keeps log output off the terminal while a TUI owns it
func (a *app) tuiLogger() *logger.Logger {
	if a.cfg.LogFile != "" {
		return a.log
	}
	return logger.Discard()
}

// browseOptions wires a browse view to path. Change detection uses a private
// state so browsing never rewrites the scan state file.
func (a *app) browseOptions(path string) tui.BrowseOptions {
	var mu sync.Mutex
	st := state.NewState()
	opts := a.cfg.ParseOptions()
	l := a.tuiLogger()

	return tui.BrowseOptions{
		Load: func() ([]todo.Node, error) {
			mu.Lock()
			defer mu.Unlock()

			forest, err := scan.ParseFile(path, opts, l)
			if errors.Is(err, todo.ErrEmptyStream) {
				forest, err = nil, nil
			}
			// Record even failed parses so a broken file is not reloaded
			// until it changes again
			entry := state.FileState{Options: scan.OptionsKey(opts), Todos: todo.Count(forest), Open: todo.Open(forest)}
			if updateErr := st.Update(path, entry); updateErr != nil {
				l.StateError("update", updateErr)
			}
			return forest, err
		},
		Changed: func() (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			return st.HasChanged(path)
		},
		Interval: a.cfg.Interval,
		Log:      l,
	}
}
