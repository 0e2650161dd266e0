package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/todotree/internal/config"
	"github.com/gerunddev/todotree/internal/render"
	"github.com/gerunddev/todotree/internal/scan"
	"github.com/gerunddev/todotree/internal/state"
	"github.com/gerunddev/todotree/internal/tui"
)

// fileSummary is the JSON shape of one scanned file
type fileSummary struct {
	Path  string `json:"path"`
	Todos int    `json:"todos"`
	Open  int    `json:"open"`
	Empty bool   `json:"empty,omitempty"`
	Error string `json:"error,omitempty"`
}

func newScanCmd(a *app) *cobra.Command {
	var (
		jsonOutput  bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Summarize the to-do trees of every markdown file in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if interactive {
				return a.runScanInteractive(cmd, dir)
			}
			return a.runScan(cmd, dir, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse results in a terminal UI")
	return cmd
}

func (a *app) newScanner() (*scan.Scanner, *state.State, error) {
	st, err := state.Load(config.StateFilePath())
	if err != nil {
		a.log.StateError("load", err)
		return nil, nil, fmt.Errorf("failed to load state: %w", err)
	}

	scanner := scan.NewScanner(a.cfg, st)
	scanner.SetLogger(a.log)
	return scanner, st, nil
}

func (a *app) saveState(st *state.State) {
	if err := st.Save(config.StateFilePath()); err != nil {
		a.log.StateError("save", err)
	}
}

func (a *app) runScan(cmd *cobra.Command, dir string, jsonOutput bool) error {
	scanner, st, err := a.newScanner()
	if err != nil {
		return err
	}

	result, err := scanner.Scan(cmd.Context(), dir)
	if err != nil {
		return err
	}
	a.saveState(st)

	out := cmd.OutOrStdout()
	if jsonOutput {
		summaries := make([]fileSummary, 0, len(result.Files))
		for _, f := range result.Files {
			s := fileSummary{Path: f.Path, Todos: f.Todos, Open: f.Open, Empty: f.Empty}
			if f.Err != nil {
				s.Error = f.Err.Error()
			}
			summaries = append(summaries, s)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaries); err != nil {
			return err
		}
	} else {
		plain := a.plainOutput(out)
		style := func(s string, ok bool) string {
			if plain {
				return s
			}
			if ok {
				return render.SuccessStyle.Render(s)
			}
			return render.ErrorStyle.Render(s)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tTODOS\tOPEN\tSTATUS")
		for _, f := range result.Files {
			rel, relErr := filepath.Rel(dir, f.Path)
			if relErr != nil {
				rel = f.Path
			}
			status := style("ok", true)
			switch {
			case f.Err != nil:
				status = style("error", false)
			case f.Empty:
				status = "empty"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", rel, f.Todos, f.Open, status)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out, result.String())
	}

	for _, err := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	if len(result.Errors) > 0 {
		return &ExitError{Code: 2, Err: fmt.Errorf("%d file(s) failed to parse", len(result.Errors))}
	}
	return nil
}

func (a *app) runScanInteractive(cmd *cobra.Command, dir string) error {
	scanner, st, err := a.newScanner()
	if err != nil {
		return err
	}
	scanner.SetLogger(a.tuiLogger())

	m := tui.InitScanModel(dir, a.browseOptions)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	// Run scan in goroutine and send result to program
	go func() {
		result, err := scanner.Scan(cmd.Context(), dir)
		if err == nil {
			a.saveState(st)
		}
		p.Send(tui.ScanMsg{Result: result, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
