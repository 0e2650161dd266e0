package todo

// Node is a single to-do item and its nested items.
type Node struct {
	Status    Status `json:"status" yaml:"status"`
	Title     string `json:"title" yaml:"title"`
	Scheduled string `json:"scheduled,omitempty" yaml:"scheduled,omitempty"`
	Deadline  string `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Children  []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Walk visits every node in document order. level is 0 for top-level nodes.
// Returning false from fn skips that node's children.
func Walk(forest []Node, fn func(n *Node, level int) bool) {
	walk(forest, 0, fn)
}

func walk(nodes []Node, level int, fn func(n *Node, level int) bool) {
	for i := range nodes {
		if fn(&nodes[i], level) {
			walk(nodes[i].Children, level+1, fn)
		}
	}
}

// Count returns the number of nodes in the forest.
func Count(forest []Node) int {
	total := 0
	Walk(forest, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Tally counts nodes per status.
func Tally(forest []Node) map[Status]int {
	counts := make(map[Status]int)
	Walk(forest, func(n *Node, _ int) bool {
		counts[n.Status]++
		return true
	})
	return counts
}

// Open returns the number of nodes that are not resolved.
func Open(forest []Node) int {
	open := 0
	Walk(forest, func(n *Node, _ int) bool {
		if !n.Status.IsResolved() {
			open++
		}
		return true
	})
	return open
}

// Prune returns a copy of the forest without resolved nodes. A resolved node
// is dropped together with its children.
func Prune(forest []Node) []Node {
	var out []Node
	for _, n := range forest {
		if n.Status.IsResolved() {
			continue
		}
		n.Children = Prune(n.Children)
		out = append(out, n)
	}
	return out
}
