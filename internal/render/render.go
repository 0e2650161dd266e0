// Package render writes to-do trees as terminal trees, org-mode outlines,
// JSON or YAML.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/gerunddev/todotree/internal/todo"
)

// Format selects an output representation.
type Format string

const (
	FormatTree Format = "tree"
	FormatOrg  Format = "org"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{FormatTree, FormatOrg, FormatJSON, FormatYAML}
}

// ParseFormat resolves a format name. The empty string selects FormatTree.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatTree, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q: must be one of: tree, org, json, yaml", name)
}

// Options tunes rendering.
type Options struct {
	// Plain disables terminal styling in tree output.
	Plain bool
	// Title names the document. Org output writes it as #+TITLE.
	Title string
	// Namespace seeds the deterministic org :ID: values. Zero derives one
	// from Title.
	Namespace uuid.UUID
	// OmitIDs drops org property drawers.
	OmitIDs bool
}

// Write renders the forest to w in the given format.
func Write(w io.Writer, format Format, forest []todo.Node, opts Options) error {
	var (
		out string
		err error
	)
	switch format {
	case FormatTree, "":
		out = Tree(forest, opts)
	case FormatOrg:
		out = Org(forest, opts)
	case FormatJSON:
		out, err = JSON(forest)
	case FormatYAML:
		out, err = YAML(forest)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
