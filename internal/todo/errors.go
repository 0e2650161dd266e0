package todo

import (
	"errors"
	"fmt"

	"github.com/gerunddev/todotree/internal/markdown"
)

var (
	// ErrEmptyStream means a node was expected but the stream ended.
	ErrEmptyStream = errors.New("empty stream")

	// ErrNodeNotDeepEnough means the next heading is too shallow to start a
	// node at the current position. Sibling collection stops on it.
	ErrNodeNotDeepEnough = errors.New("node not deep enough")

	// ErrNoTextInHeading means a heading's inline content is not exactly one
	// plain text run.
	ErrNoTextInHeading = errors.New("no text in heading")

	// ErrNotHeading means a heading was expected but something else was found.
	ErrNotHeading = errors.New("expected heading")

	// ErrEmptyTitle means a heading has nothing left once its status marker
	// is removed.
	ErrEmptyTitle = errors.New("heading has an empty title")

	// ErrNestingTooDeep means the tree exceeds Options.MaxNesting levels.
	ErrNestingTooDeep = errors.New("headings nested too deeply")

	// ErrTrailingContent means strict parsing left nodes unconsumed.
	ErrTrailingContent = errors.New("unconsumed content after to-do tree")
)

// NodeError is a fatal parse error tied to the node that caused it.
type NodeError struct {
	Err  error
	Node *markdown.Node
}

func (e *NodeError) Error() string {
	if e.Node != nil && e.Node.Line > 0 {
		return fmt.Sprintf("line %d: %v: %s", e.Node.Line, e.Err, e.Node)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Node)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

func nodeError(err error, node *markdown.Node) error {
	return &NodeError{Err: err, Node: node}
}

// isBenign reports whether err only signals the end of a sibling run.
func isBenign(err error) bool {
	return errors.Is(err, ErrEmptyStream) || errors.Is(err, ErrNodeNotDeepEnough)
}
