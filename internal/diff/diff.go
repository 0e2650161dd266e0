package diff

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/todotree/internal/logger"
	"github.com/gerunddev/todotree/internal/render"
	"github.com/gerunddev/todotree/internal/scan"
	"github.com/gerunddev/todotree/internal/todo"
)

// Options controls how two to-do trees are compared
type Options struct {
	// Format is the rendering both trees are diffed in (tree by default)
	Format render.Format
	// Plain skips Glamour and returns the bare unified diff
	Plain bool
	Parse todo.Options
}

// Generate parses two markdown files and diffs their to-do trees.
// An empty string means the trees render identically.
func Generate(oldPath, newPath string, opts Options) (string, error) {
	oldForest, err := parseForest(oldPath, opts.Parse)
	if err != nil {
		return "", err
	}

	newForest, err := parseForest(newPath, opts.Parse)
	if err != nil {
		return "", err
	}

	return Forests(filepath.Base(oldPath), filepath.Base(newPath), oldForest, newForest, opts)
}

// parseForest parses one side of a diff. An empty document is an empty tree.
func parseForest(path string, opts todo.Options) ([]todo.Node, error) {
	forest, err := scan.ParseFile(path, opts, logger.Discard())
	if errors.Is(err, todo.ErrEmptyStream) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return forest, nil
}

// Forests diffs two already parsed to-do trees
func Forests(oldName, newName string, oldForest, newForest []todo.Node, opts Options) (string, error) {
	format := opts.Format
	if format == "" {
		format = render.FormatTree
	}

	oldText, err := renderText(format, oldForest)
	if err != nil {
		return "", err
	}
	newText, err := renderText(format, newForest)
	if err != nil {
		return "", err
	}

	if oldText == newText {
		return "", nil
	}

	edits := myers.ComputeEdits(span.URIFromPath(oldName), oldText, newText)
	unified := fmt.Sprint(gotextdiff.ToUnified(oldName, newName, oldText, edits))

	if opts.Plain {
		return unified, nil
	}

	// Wrap in diff code fence for syntax highlighting (+ in green, - in red)
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		// Fallback to plain diff if glamour fails
		return diffMarkdown, nil
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown, nil
	}

	return rendered, nil
}

func renderText(format render.Format, forest []todo.Node) (string, error) {
	var buf bytes.Buffer
	opts := render.Options{Plain: true, OmitIDs: true}
	if err := render.Write(&buf, format, forest, opts); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", format, err)
	}
	return buf.String(), nil
}
