package render

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gerunddev/todotree/internal/todo"
)

// Org renders the forest as an org-mode outline.
//
//	* TODO Move house
//	SCHEDULED: <2024-03-01> DEADLINE: <2024-03-15>
//	:PROPERTIES:
//	:ID:       5b0c...
//	:END:
//	** DONE Book van
//
// IDs are name-based UUIDs derived from the namespace and the title path, so
// rendering the same tree twice yields the same IDs.
func Org(forest []todo.Node, opts Options) string {
	var org strings.Builder

	if opts.Title != "" {
		org.WriteString("#+TITLE: " + opts.Title + "\n\n")
	}

	ns := opts.Namespace
	if ns == uuid.Nil {
		ns = uuid.NewSHA1(uuid.NameSpaceURL, []byte("todotree:"+opts.Title))
	}

	writeOrgNodes(&org, forest, 1, "", ns, opts)
	return org.String()
}

func writeOrgNodes(org *strings.Builder, nodes []todo.Node, level int, path string, ns uuid.UUID, opts Options) {
	seen := make(map[string]int)
	for _, n := range nodes {
		seen[n.Title]++
		key := path + "/" + n.Title
		if seen[n.Title] > 1 {
			key += "#" + strconv.Itoa(seen[n.Title])
		}

		org.WriteString(strings.Repeat("*", level) + " ")
		if kw := n.Status.Keyword(); kw != "" {
			org.WriteString(kw + " ")
		}
		org.WriteString(n.Title + "\n")

		var planning []string
		if n.Scheduled != "" {
			planning = append(planning, "SCHEDULED: "+orgTimestamp(n.Scheduled))
		}
		if n.Deadline != "" {
			planning = append(planning, "DEADLINE: "+orgTimestamp(n.Deadline))
		}
		if len(planning) > 0 {
			org.WriteString(strings.Join(planning, " ") + "\n")
		}

		if !opts.OmitIDs {
			org.WriteString(":PROPERTIES:\n")
			org.WriteString(":ID:       " + uuid.NewSHA1(ns, []byte(key)).String() + "\n")
			org.WriteString(":END:\n")
		}

		writeOrgNodes(org, n.Children, level+1, key, ns, opts)
	}
}

// orgTimestamp wraps a raw date token in angle brackets unless it already
// carries org timestamp delimiters.
func orgTimestamp(raw string) string {
	if strings.HasPrefix(raw, "<") || strings.HasPrefix(raw, "[") {
		return raw
	}
	return "<" + raw + ">"
}
