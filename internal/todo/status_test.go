package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromKeyword(t *testing.T) {
	tests := []struct {
		keyword string
		want    Status
	}{
		{"TODO", StatusTodo},
		{"DONE", StatusDone},
		{"WAITING", StatusWaiting},
		{"INACTIVE", StatusInactive},
		{"CANCELED", StatusCanceled},
		{"", StatusUnlabeled},
		{"todo", StatusUnlabeled},
		{"CANCELLED", StatusUnlabeled},
		{"NEXT", StatusUnlabeled},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromKeyword(tt.keyword))
		})
	}
}

func TestStatusMarkersAreExclusive(t *testing.T) {
	seen := make(map[Status]string)
	for _, kw := range []string{"TODO", "DONE", "WAITING", "INACTIVE", "CANCELED"} {
		h := ParseHeadingText("(" + kw + ") task")
		prev, dup := seen[h.Status]
		assert.False(t, dup, "%s and %s map to the same status", kw, prev)
		seen[h.Status] = kw
		assert.Equal(t, "task", h.Title)
	}

	assert.Equal(t, StatusUnlabeled, ParseHeadingText("task").Status)
	assert.NotContains(t, seen, StatusUnlabeled)
	assert.Len(t, seen, len(ValidStatuses())-1)
}

func TestStatusKeywordRoundTrip(t *testing.T) {
	for _, s := range ValidStatuses() {
		if s == StatusUnlabeled {
			assert.Empty(t, s.Keyword())
			continue
		}
		assert.Equal(t, s, StatusFromKeyword(s.Keyword()))
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Status("someday").IsValid())
}

func TestStatusIsResolved(t *testing.T) {
	assert.True(t, StatusDone.IsResolved())
	assert.True(t, StatusCanceled.IsResolved())
	assert.False(t, StatusTodo.IsResolved())
	assert.False(t, StatusWaiting.IsResolved())
	assert.False(t, StatusInactive.IsResolved())
	assert.False(t, StatusUnlabeled.IsResolved())
}
