// Package todo reconstructs a tree of to-do items from the flat block stream
// of a Markdown document.
//
// A heading is a to-do item. Its text may start with a status marker such as
// "(TODO)" and may end with a metadata group such as
// "(SCHEDULED: 2024-01-15, DEADLINE: 2024-01-20)". Headings one level deeper
// that follow it (after any paragraphs or lists) become its children.
package todo

// Status represents the state of a to-do item.
type Status string

const (
	// StatusUnlabeled is used when a heading carries no recognized marker.
	StatusUnlabeled Status = "unlabeled"

	// StatusTodo marks work that is ready to be done.
	StatusTodo Status = "todo"

	// StatusDone marks completed work.
	StatusDone Status = "done"

	// StatusWaiting marks work blocked on someone else.
	StatusWaiting Status = "waiting"

	// StatusInactive marks work that is parked.
	StatusInactive Status = "inactive"

	// StatusCanceled marks work that will not be done.
	StatusCanceled Status = "canceled"
)

var keywords = map[string]Status{
	"TODO":     StatusTodo,
	"DONE":     StatusDone,
	"WAITING":  StatusWaiting,
	"INACTIVE": StatusInactive,
	"CANCELED": StatusCanceled,
}

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusUnlabeled, StatusTodo, StatusDone, StatusWaiting, StatusInactive, StatusCanceled}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsResolved returns true for statuses that need no further work.
func (s Status) IsResolved() bool {
	switch s {
	case StatusDone, StatusCanceled:
		return true
	default:
		return false
	}
}

// Keyword returns the marker keyword for the status, or "" for unlabeled.
func (s Status) Keyword() string {
	for kw, status := range keywords {
		if status == s {
			return kw
		}
	}
	return ""
}

// StatusFromKeyword maps a marker keyword to its status. Unknown keywords map
// to StatusUnlabeled.
func StatusFromKeyword(keyword string) Status {
	if status, ok := keywords[keyword]; ok {
		return status
	}
	return StatusUnlabeled
}
