package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gerunddev/todotree/internal/markdown"
	"github.com/gerunddev/todotree/internal/render"
	"github.com/gerunddev/todotree/internal/todo"
)

func newShowCmd(a *app) *cobra.Command {
	var hideResolved bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print the to-do tree of a markdown file",
		Long: `Print the to-do tree of a markdown file.

Headings become items and nested headings become their children. A heading
may start with a status marker: (TODO), (DONE), (WAITING), (INACTIVE) or
(CANCELED). A trailing (SCHEDULED: x, DEADLINE: y) group sets dates.

Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd, args[0], hideResolved)
		},
	}

	cmd.Flags().BoolVar(&hideResolved, "hide-resolved", false, "omit DONE and CANCELED items and their children")
	return cmd
}

func (a *app) runShow(cmd *cobra.Command, path string, hideResolved bool) error {
	start := time.Now()

	doc, err := a.readDocument(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	forest, err := todo.Parse(doc.Blocks, a.cfg.ParseOptions())
	if errors.Is(err, todo.ErrEmptyStream) {
		a.log.EmptyDocument(path)
		return nil
	}
	if err != nil {
		a.log.ParseFailed(path, err)
		return err
	}
	a.log.DocumentParsed(path, todo.Count(forest), time.Since(start))

	if hideResolved {
		forest = todo.Prune(forest)
	}

	out := cmd.OutOrStdout()
	return render.Write(out, a.outputFormat(), forest, renderOptions(doc, path, a.plainOutput(out)))
}

func (a *app) readDocument(stdin io.Reader, path string) (*markdown.Document, error) {
	if path != "-" {
		return markdown.ReadFile(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return markdown.Parse(data), nil
}

// renderOptions derives the document title and org ID namespace from front
// matter, falling back to the file name
func renderOptions(doc *markdown.Document, path string, plain bool) render.Options {
	opts := render.Options{Plain: plain, Title: doc.FrontMatter.Title}
	if opts.Title == "" && path != "-" {
		opts.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if id, err := uuid.Parse(doc.FrontMatter.ID); err == nil {
		opts.Namespace = id
	}
	return opts
}
