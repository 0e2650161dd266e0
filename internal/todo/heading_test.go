package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeadingText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Heading
	}{
		{
			name:  "status and title",
			input: "(TODO) Buy milk",
			want:  Heading{Status: StatusTodo, Title: "Buy milk"},
		},
		{
			name:  "no marker",
			input: "Buy milk",
			want:  Heading{Status: StatusUnlabeled, Title: "Buy milk"},
		},
		{
			name:  "unknown marker stays in title",
			input: "(SOMEDAY) Learn Go",
			want:  Heading{Status: StatusUnlabeled, Title: "(SOMEDAY) Learn Go"},
		},
		{
			name:  "lowercase marker is not recognized",
			input: "(todo) Buy milk",
			want:  Heading{Status: StatusUnlabeled, Title: "(todo) Buy milk"},
		},
		{
			name:  "marker without space",
			input: "(DONE)Ship",
			want:  Heading{Status: StatusDone, Title: "Ship"},
		},
		{
			name:  "scheduled",
			input: "(WAITING) Reply to Sam (SCHEDULED: 2024-01-15)",
			want:  Heading{Status: StatusWaiting, Title: "Reply to Sam", Scheduled: "2024-01-15"},
		},
		{
			name:  "deadline",
			input: "(TODO) File taxes (DEADLINE: <2024-04-15 Mon>)",
			want:  Heading{Status: StatusTodo, Title: "File taxes", Deadline: "<2024-04-15 Mon>"},
		},
		{
			name:  "both with comma",
			input: "(TODO) Plan trip (SCHEDULED: 2024-05-01, DEADLINE: 2024-05-10)",
			want:  Heading{Status: StatusTodo, Title: "Plan trip", Scheduled: "2024-05-01", Deadline: "2024-05-10"},
		},
		{
			name:  "label must start a word",
			input: "(TODO) Call (SCHEDULED: mon, NODEADLINE: b)",
			want:  Heading{Status: StatusTodo, Title: "Call", Scheduled: "mon, NODEADLINE: b"},
		},
		{
			name:  "both org style, deadline first",
			input: "Plan trip (DEADLINE: <2024-05-10> SCHEDULED: <2024-05-01>)",
			want:  Heading{Status: StatusUnlabeled, Title: "Plan trip", Scheduled: "<2024-05-01>", Deadline: "<2024-05-10>"},
		},
		{
			name:  "trailing whitespace around metadata",
			input: "  (INACTIVE)   Garden   (SCHEDULED: spring)  ",
			want:  Heading{Status: StatusUnlabeled, Title: "(INACTIVE)   Garden", Scheduled: "spring"},
		},
		{
			name:  "plain parenthetical is part of title",
			input: "(TODO) Buy milk (2%)",
			want:  Heading{Status: StatusTodo, Title: "Buy milk (2%)"},
		},
		{
			name:  "only the last group is metadata",
			input: "(TODO) Buy milk (2%) (DEADLINE: friday)",
			want:  Heading{Status: StatusTodo, Title: "Buy milk (2%)", Deadline: "friday"},
		},
		{
			name:  "unlabelled text before label",
			input: "(TODO) Call (soon SCHEDULED: monday)",
			want:  Heading{Status: StatusTodo, Title: "Call (soon SCHEDULED: monday)"},
		},
		{
			name:  "repeated label",
			input: "(TODO) Call (SCHEDULED: monday, SCHEDULED: tuesday)",
			want:  Heading{Status: StatusTodo, Title: "Call (SCHEDULED: monday, SCHEDULED: tuesday)"},
		},
		{
			name:  "empty value",
			input: "(TODO) Call (DEADLINE:)",
			want:  Heading{Status: StatusTodo, Title: "Call (DEADLINE:)"},
		},
		{
			name:  "metadata alone stays title",
			input: "(TODO) (SCHEDULED: monday)",
			want:  Heading{Status: StatusTodo, Title: "(SCHEDULED: monday)"},
		},
		{
			name:  "marker only",
			input: "(CANCELED)",
			want:  Heading{Status: StatusCanceled, Title: ""},
		},
		{
			name:  "unbalanced parenthesis",
			input: "(TODO) Fix (parser",
			want:  Heading{Status: StatusTodo, Title: "Fix (parser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHeadingText(tt.input))
		})
	}
}
