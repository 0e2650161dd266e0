package todo

import (
	"github.com/gerunddev/todotree/internal/markdown"
)

// Default parser limits.
const (
	DefaultMinDepth   = 1
	DefaultMaxNesting = 32
)

// Options controls how a block stream is turned into a to-do tree.
type Options struct {
	// MinDepth is the heading depth of top-level to-do items.
	MinDepth int
	// Strict rejects documents with nodes left over after the top-level run.
	Strict bool
	// MaxNesting bounds how many levels of children may be nested.
	MaxNesting int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		MinDepth:   DefaultMinDepth,
		MaxNesting: DefaultMaxNesting,
	}
}

func (o Options) withDefaults() Options {
	if o.MinDepth < 1 {
		o.MinDepth = DefaultMinDepth
	}
	if o.MaxNesting <= 0 {
		o.MaxNesting = DefaultMaxNesting
	}
	return o
}

// Parse builds the to-do forest for a document's block stream.
//
// Non-heading blocks before the first heading are skipped. The top-level run
// ends at the first heading shallower than MinDepth or at the end of the
// stream; anything after it is ignored unless opts.Strict is set. An empty
// stream fails with ErrEmptyStream. Malformed headings and misplaced blocks
// fail with a *NodeError.
func Parse(stream []*markdown.Node, opts Options) ([]Node, error) {
	if len(stream) == 0 {
		return nil, ErrEmptyStream
	}
	opts = opts.withDefaults()

	p := &parser{stream: stream, maxNesting: opts.MaxNesting}
	forest := []Node{}
	pos, err := p.collectChildren(p.skipPreamble(0), opts.MinDepth, 0, &forest)
	if err != nil {
		return nil, err
	}
	if opts.Strict && pos < len(stream) {
		return nil, nodeError(ErrTrailingContent, stream[pos])
	}
	return forest, nil
}

// parser walks an immutable block stream with integer cursors.
type parser struct {
	stream     []*markdown.Node
	maxNesting int
}

// parseNode parses the heading at pos, its body and its children. It returns
// the node and the position just past the last consumed child.
func (p *parser) parseNode(pos, minDepth, nesting int) (Node, int, error) {
	if pos >= len(p.stream) {
		return Node{}, pos, ErrEmptyStream
	}

	head := p.stream[pos]
	if head.Kind != markdown.KindHeading {
		return Node{}, pos, nodeError(ErrNotHeading, head)
	}
	if head.Depth < minDepth {
		return Node{}, pos, ErrNodeNotDeepEnough
	}

	text, ok := head.PlainText()
	if !ok {
		return Node{}, pos, nodeError(ErrNoTextInHeading, head)
	}
	if nesting >= p.maxNesting {
		return Node{}, pos, nodeError(ErrNestingTooDeep, head)
	}

	h := ParseHeadingText(text)
	if h.Title == "" {
		return Node{}, pos, nodeError(ErrEmptyTitle, head)
	}

	var children []Node
	next, err := p.collectChildren(p.skipBody(pos+1), head.Depth+1, nesting+1, &children)
	if err != nil {
		return Node{}, pos, err
	}

	return Node{
		Status:    h.Status,
		Title:     h.Title,
		Scheduled: h.Scheduled,
		Deadline:  h.Deadline,
		Children:  children,
	}, next, nil
}

// collectChildren parses siblings at depth until a benign stop and returns
// the position where the run ended.
func (p *parser) collectChildren(pos, depth, nesting int, buf *[]Node) (int, error) {
	for {
		node, next, err := p.parseNode(pos, depth, nesting)
		if err != nil {
			if isBenign(err) {
				return pos, nil
			}
			return pos, err
		}
		*buf = append(*buf, node)
		pos = next
	}
}

// skipBody steps over the paragraphs and lists that follow a heading.
func (p *parser) skipBody(pos int) int {
	for pos < len(p.stream) {
		switch p.stream[pos].Kind {
		case markdown.KindParagraph, markdown.KindList:
			pos++
		default:
			return pos
		}
	}
	return pos
}

// skipPreamble steps over everything before the first heading.
func (p *parser) skipPreamble(pos int) int {
	for pos < len(p.stream) && p.stream[pos].Kind != markdown.KindHeading {
		pos++
	}
	return pos
}
