package markdown

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockKinds(t *testing.T) {
	src := `# (TODO) Buy milk

Some notes about milk.

- whole
- skim

## Child

` + "```go\nfmt.Println()\n```" + `

---
`
	doc := Parse([]byte(src))

	kinds := make([]Kind, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(t, []Kind{KindHeading, KindParagraph, KindList, KindHeading, KindOther, KindOther}, kinds)

	assert.Equal(t, 1, doc.Blocks[0].Depth)
	assert.Equal(t, 2, doc.Blocks[3].Depth)
	assert.Equal(t, "FencedCodeBlock", doc.Blocks[4].Name)
	assert.Equal(t, "ThematicBreak", doc.Blocks[5].Name)
}

func TestParseHeadingText(t *testing.T) {
	doc := Parse([]byte("## (DONE) Ship it (SCHEDULED: <2024-01-15 Mon>)\n"))
	require.Len(t, doc.Blocks, 1)

	text, ok := doc.Blocks[0].PlainText()
	require.True(t, ok)
	assert.Equal(t, "(DONE) Ship it (SCHEDULED: <2024-01-15 Mon>)", text)
}

func TestParseHeadingWithInlineMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "link",
			input: "# Read [the docs](https://example.com)\n",
			want:  []Kind{KindText, KindOther},
		},
		{
			name:  "emphasis in the middle",
			input: "# A *very* big deal\n",
			want:  []Kind{KindText, KindOther, KindText},
		},
		{
			name:  "code span only",
			input: "# `make test`\n",
			want:  []Kind{KindOther},
		},
		{
			name:  "empty heading",
			input: "#\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse([]byte(tt.input))
			require.Len(t, doc.Blocks, 1)

			var got []Kind
			for _, c := range doc.Blocks[0].Children {
				got = append(got, c.Kind)
			}
			assert.Equal(t, tt.want, got)

			_, ok := doc.Blocks[0].PlainText()
			assert.False(t, ok)
		})
	}
}

func TestParseLineNumbers(t *testing.T) {
	src := "# One\n\ntext\n\n## Two\n"
	doc := Parse([]byte(src))
	require.Len(t, doc.Blocks, 3)

	assert.Equal(t, 1, doc.Blocks[0].Line)
	assert.Equal(t, 3, doc.Blocks[1].Line)
	assert.Equal(t, 5, doc.Blocks[2].Line)
}

func TestParseLineNumbersWithoutContentLines(t *testing.T) {
	src := "# One\n\n```\ncode\n```\n\n---\n\n#\nSetext\n======\n\n***\n"
	doc := Parse([]byte(src))
	require.Len(t, doc.Blocks, 6)

	var got []int
	for _, b := range doc.Blocks {
		got = append(got, b.Line)
	}
	assert.Equal(t, []int{1, 3, 7, 9, 10, 13}, got)
	assert.Equal(t, "FencedCodeBlock", doc.Blocks[1].Name)
	assert.Equal(t, "ThematicBreak", doc.Blocks[2].Name)
	assert.Equal(t, "ThematicBreak", doc.Blocks[5].Name)
}

func TestParseHeadingTextDecoded(t *testing.T) {
	doc := Parse([]byte("# (TODO) Buy \\*milk\\* &amp; eggs &#35;2\n"))
	require.Len(t, doc.Blocks, 1)

	text, ok := doc.Blocks[0].PlainText()
	require.True(t, ok)
	assert.Equal(t, "(TODO) Buy *milk* & eggs #2", text)
}

func TestParseFrontMatter(t *testing.T) {
	src := `---
id: 123e4567-e89b-12d3-a456-426614174000
title: Groceries
tags: [home, errands]
---
# (TODO) Buy milk
`
	doc := Parse([]byte(src))

	assert.Equal(t, "Groceries", doc.FrontMatter.Title)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", doc.FrontMatter.ID)
	assert.Equal(t, []string{"home", "errands"}, doc.FrontMatter.Tags)

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, KindHeading, doc.Blocks[0].Kind)
	assert.Equal(t, 6, doc.Blocks[0].Line)
}

func TestParseUnterminatedFrontMatter(t *testing.T) {
	doc := Parse([]byte("---\ntitle: nope\n"))

	assert.Empty(t, doc.FrontMatter.Title)
	assert.NotEmpty(t, doc.Blocks)
}

func TestParseEmpty(t *testing.T) {
	doc := Parse(nil)
	assert.Empty(t, doc.Blocks)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.md")
	require.NoError(t, os.WriteFile(path, []byte("# (WAITING) Reply\n"), 0644))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestNodeString(t *testing.T) {
	assert.Equal(t, `heading(depth=2, "x")`, Heading(2, Text("x")).String())
	assert.Equal(t, "heading(depth=1, 0 inline)", Heading(1).String())
	assert.Equal(t, "paragraph", Paragraph().String())
	assert.Equal(t, "other(Blockquote)", Other("Blockquote").String())
	assert.Equal(t, `text("hi")`, Text("hi").String())
}
