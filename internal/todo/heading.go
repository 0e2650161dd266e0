package todo

import (
	"regexp"
	"strings"
)

var (
	// (TODO) Buy milk
	statusPattern = regexp.MustCompile(`^\((TODO|WAITING|CANCELED|INACTIVE|DONE)\)`)

	// Buy milk (SCHEDULED: <2024-01-15 Mon>, DEADLINE: 2024-01-20)
	metadataPattern = regexp.MustCompile(`\(([^()]*)\)\s*$`)

	labelPattern = regexp.MustCompile(`\b(SCHEDULED|DEADLINE):`)
)

// Heading is the decoded text of a to-do heading.
type Heading struct {
	Status    Status
	Title     string
	Scheduled string
	Deadline  string
}

// ParseHeadingText splits heading text into status, title and scheduling
// metadata. It never fails: a missing marker yields StatusUnlabeled and a
// trailing group that is not valid metadata stays part of the title.
func ParseHeadingText(text string) Heading {
	h := Heading{Status: StatusUnlabeled}

	rest := text
	if m := statusPattern.FindStringSubmatch(text); m != nil {
		h.Status = StatusFromKeyword(m[1])
		rest = text[len(m[0]):]
	}
	rest = strings.TrimSpace(rest)

	if loc := metadataPattern.FindStringSubmatchIndex(rest); loc != nil {
		title := strings.TrimSpace(rest[:loc[0]])
		scheduled, deadline, ok := parseMetadata(rest[loc[2]:loc[3]])
		if ok && title != "" {
			h.Title = title
			h.Scheduled = scheduled
			h.Deadline = deadline
			return h
		}
	}

	h.Title = rest
	return h
}

// parseMetadata decodes the inside of a trailing metadata group. Every field
// must be labelled and each label may appear once.
func parseMetadata(content string) (scheduled, deadline string, ok bool) {
	locs := labelPattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return "", "", false
	}
	if strings.TrimSpace(content[:locs[0][0]]) != "" {
		return "", "", false
	}

	seen := make(map[string]bool, 2)
	for i, loc := range locs {
		label := content[loc[2]:loc[3]]
		if seen[label] {
			return "", "", false
		}
		seen[label] = true

		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		value := strings.TrimSpace(content[loc[1]:end])
		value = strings.TrimSpace(strings.TrimRight(value, ","))
		if value == "" {
			return "", "", false
		}

		switch label {
		case "SCHEDULED":
			scheduled = value
		case "DEADLINE":
			deadline = value
		}
	}
	return scheduled, deadline, true
}
