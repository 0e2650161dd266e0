package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/todotree/internal/todo"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// Tree renders the forest as an indented tree using box-drawing connectors.
// Top-level items have no connector.
//
//	[TODO] Move house
//	├─ [DONE] Book van  scheduled 2024-03-01
//	└─ Pack kitchen
func Tree(forest []todo.Node, opts Options) string {
	var b strings.Builder
	for _, n := range forest {
		writeTreeNode(&b, n, "", "", opts)
	}
	return b.String()
}

func writeTreeNode(b *strings.Builder, n todo.Node, prefix, connector string, opts Options) {
	style := func(s lipgloss.Style, text string) string {
		if opts.Plain {
			return text
		}
		return s.Render(text)
	}

	if lead := prefix + connector; lead != "" {
		b.WriteString(style(BranchStyle, lead))
	}
	if kw := n.Status.Keyword(); kw != "" {
		b.WriteString(style(StatusStyle(n.Status), "["+kw+"]"))
		b.WriteString(" ")
	}
	if n.Status.IsResolved() {
		b.WriteString(style(ResolvedStyle, n.Title))
	} else {
		b.WriteString(style(TitleStyle, n.Title))
	}
	if n.Scheduled != "" {
		b.WriteString("  " + style(DimStyle, "scheduled "+n.Scheduled))
	}
	if n.Deadline != "" {
		b.WriteString("  " + style(DimStyle, "deadline "+n.Deadline))
	}
	b.WriteString("\n")

	childPrefix := prefix
	switch connector {
	case treeBranch:
		childPrefix += treePipe
	case treeCorner:
		childPrefix += treeSpace
	}

	for i, child := range n.Children {
		next := treeBranch
		if i == len(n.Children)-1 {
			next = treeCorner
		}
		writeTreeNode(b, child, childPrefix, next, opts)
	}
}
