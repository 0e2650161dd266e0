// Package markdown turns Markdown source into the flat block stream the todo
// parser consumes.
package markdown

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a Node.
type Kind int

const (
	// KindOther is any block or inline element the todo parser does not model.
	KindOther Kind = iota
	// KindHeading is an ATX or setext heading. Depth and Children are set.
	KindHeading
	// KindParagraph is opaque body content.
	KindParagraph
	// KindList is opaque body content.
	KindList
	// KindText is a literal inline text run. Literal is set.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindList:
		return "list"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Node is one element of a parsed document. Block nodes form the top-level
// stream; heading nodes carry their inline content in Children.
type Node struct {
	Kind     Kind
	Depth    int     // heading level, 1-6 for parsed documents
	Literal  string  // text content for KindText
	Name     string  // originating element name for KindOther
	Line     int     // 1-based source line, 0 when unknown
	Children []*Node // inline content for KindHeading
}

// Heading builds a heading node of the given depth.
func Heading(depth int, inline ...*Node) *Node {
	return &Node{Kind: KindHeading, Depth: depth, Children: inline}
}

// Text builds a literal text node.
func Text(literal string) *Node {
	return &Node{Kind: KindText, Literal: literal}
}

// Paragraph builds an opaque paragraph node.
func Paragraph() *Node {
	return &Node{Kind: KindParagraph}
}

// List builds an opaque list node.
func List() *Node {
	return &Node{Kind: KindList}
}

// Other builds a node for an element the todo parser does not model.
func Other(name string) *Node {
	return &Node{Kind: KindOther, Name: name}
}

// At returns n with its source line set.
func (n *Node) At(line int) *Node {
	n.Line = line
	return n
}

// PlainText returns the literal of a heading whose inline content is exactly
// one text run.
func (n *Node) PlainText() (string, bool) {
	if n == nil || n.Kind != KindHeading || len(n.Children) != 1 {
		return "", false
	}
	child := n.Children[0]
	if child.Kind != KindText {
		return "", false
	}
	return child.Literal, true
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	switch n.Kind {
	case KindHeading:
		fmt.Fprintf(&b, "heading(depth=%d", n.Depth)
		if text, ok := n.PlainText(); ok {
			fmt.Fprintf(&b, ", %q", text)
		} else {
			fmt.Fprintf(&b, ", %d inline", len(n.Children))
		}
		b.WriteString(")")
	case KindText:
		fmt.Fprintf(&b, "text(%q)", n.Literal)
	case KindOther:
		name := n.Name
		if name == "" {
			name = "unknown"
		}
		fmt.Fprintf(&b, "other(%s)", name)
	default:
		b.WriteString(n.Kind.String())
	}
	return b.String()
}
