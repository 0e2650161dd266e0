package markdown

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"gopkg.in/yaml.v3"
)

// FrontMatter holds the YAML header fields todotree understands.
type FrontMatter struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

// Document is a parsed Markdown file.
type Document struct {
	FrontMatter FrontMatter
	Blocks      []*Node
}

var md = goldmark.New()

// ReadFile reads and parses the Markdown file at path.
func ReadFile(path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown file: %w", err)
	}
	return Parse(source), nil
}

// Parse converts Markdown source into a flat block stream. A leading YAML
// front matter block is decoded into FrontMatter and excluded from Blocks.
func Parse(source []byte) *Document {
	doc := &Document{}
	body, lineOffset := splitFrontMatter(source, &doc.FrontMatter)

	root := md.Parser().Parse(text.NewReader(body))
	lines := newLineIndex(body)
	next := 0
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		block := convertBlock(child, body)
		start, end := lines.span(child, next)
		block.Line = start + 1 + lineOffset
		doc.Blocks = append(doc.Blocks, block)
		next = end + 1
	}
	return doc
}

// splitFrontMatter returns the document body and the number of source lines
// that precede it.
// ---
// title: Example
// ---
func splitFrontMatter(source []byte, fm *FrontMatter) ([]byte, int) {
	normalized := bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	lines := strings.Split(string(normalized), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return normalized, 0
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return normalized, 0
	}

	var parsed FrontMatter
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &parsed); err != nil {
		// Not YAML; let goldmark treat it as ordinary content
		return normalized, 0
	}
	*fm = parsed

	return []byte(strings.Join(lines[end+1:], "\n")), end + 1
}

func convertBlock(n ast.Node, source []byte) *Node {
	var out *Node
	switch n.Kind() {
	case ast.KindHeading:
		heading := n.(*ast.Heading)
		out = &Node{Kind: KindHeading, Depth: heading.Level, Children: convertInline(heading, source)}
	case ast.KindParagraph, ast.KindTextBlock:
		out = &Node{Kind: KindParagraph}
	case ast.KindList:
		out = &Node{Kind: KindList}
	default:
		out = &Node{Kind: KindOther, Name: n.Kind().String()}
	}
	return out
}

// convertInline maps a heading's inline children. Adjacent text segments are
// merged into a single text run; anything else becomes KindOther.
func convertInline(parent ast.Node, source []byte) []*Node {
	var out []*Node
	var pending *Node
	flush := func() {
		if pending != nil {
			out = append(out, pending)
			pending = nil
		}
	}

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		var literal string
		switch c := child.(type) {
		case *ast.Text:
			literal = decodeText(c, source)
			if c.SoftLineBreak() || c.HardLineBreak() {
				literal += "\n"
			}
		case *ast.String:
			literal = string(c.Value)
		default:
			flush()
			out = append(out, &Node{Kind: KindOther, Name: child.Kind().String()})
			continue
		}
		if pending == nil {
			pending = &Node{Kind: KindText}
		}
		pending.Literal += literal
	}
	flush()
	return out
}

// decodeText returns the text a segment stands for, with backslash escapes
// removed and character references resolved.
func decodeText(t *ast.Text, source []byte) string {
	value := t.Segment.Value(source)
	if t.IsRaw() {
		return string(value)
	}
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}

// firstOffset finds the first source byte covered by n or its descendants.
func firstOffset(n ast.Node) (int, bool) {
	if n.Type() == ast.TypeBlock {
		if segs := n.Lines(); segs != nil && segs.Len() > 0 {
			return segs.At(0).Start, true
		}
	}
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if offset, ok := firstOffset(child); ok {
			return offset, true
		}
	}
	return 0, false
}

// lineIndex maps byte offsets of the document body to zero-based lines.
type lineIndex struct {
	source []byte
	starts []int
}

func newLineIndex(source []byte) lineIndex {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{source: source, starts: starts}
}

func (l lineIndex) line(pos int) int {
	lo, hi := 0, len(l.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.starts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (l lineIndex) text(line int) []byte {
	end := len(l.source)
	if line+1 < len(l.starts) {
		end = l.starts[line+1]
	}
	return l.source[l.starts[line]:end]
}

// firstNonBlank returns the first line at or after from that has content.
func (l lineIndex) firstNonBlank(from int) int {
	last := len(l.starts) - 1
	for line := min(from, last); line <= last; line++ {
		if len(bytes.TrimSpace(l.text(line))) > 0 {
			return line
		}
	}
	return min(from, last)
}

// span returns the first and last source line of a top-level block. Blocks
// whose content does not start on their first line (fenced code, thematic
// breaks, empty headings) are placed on the first non-blank line after the
// previous block.
func (l lineIndex) span(n ast.Node, from int) (int, int) {
	var start int
	switch n.Kind() {
	case ast.KindFencedCodeBlock:
		start = l.firstNonBlank(from)
		return start, start + n.Lines().Len() + 1
	case ast.KindThematicBreak:
		start = l.firstNonBlank(from)
		return start, start
	}

	if offset, ok := firstOffset(n); ok {
		start = l.line(offset)
	} else {
		start = l.firstNonBlank(from)
	}
	end := l.lastLine(n, start)
	if n.Kind() == ast.KindHeading && !l.isATX(start) {
		// setext underline
		end++
	}
	return start, end
}

func (l lineIndex) lastLine(n ast.Node, end int) int {
	if n.Type() == ast.TypeBlock {
		if segs := n.Lines(); segs != nil && segs.Len() > 0 {
			seg := segs.At(segs.Len() - 1)
			end = max(end, l.line(max(seg.Start, seg.Stop-1)))
		}
	}
	if last := n.LastChild(); last != nil && last.Type() == ast.TypeBlock {
		end = l.lastLine(last, end)
	}
	if n.Kind() == ast.KindFencedCodeBlock {
		end++
	}
	return end
}

func (l lineIndex) isATX(line int) bool {
	return bytes.HasPrefix(bytes.TrimLeft(l.text(line), " "), []byte("#"))
}
