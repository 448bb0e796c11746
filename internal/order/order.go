package order

import (
	"sort"

	"kindsort/internal/decl"
	"kindsort/internal/policy"
)

// permutation returns the stable sort of nodes as indices into nodes.
func (r *ranker) permutation(nodes []decl.Node) []int {
	keys := make([]Key, len(nodes))
	perm := make([]int, len(nodes))
	for i, n := range nodes {
		keys[i] = r.key(n)
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return keys[perm[a]].Compare(keys[perm[b]]) < 0
	})
	return perm
}

func (r *ranker) sort(nodes []decl.Node) []decl.Node {
	out := make([]decl.Node, len(nodes))
	for i, j := range r.permutation(nodes) {
		out[i] = nodes[j]
	}
	return out
}

func (r *ranker) ordered(nodes []decl.Node) bool {
	for i, j := range r.permutation(nodes) {
		if i != j {
			return false
		}
	}
	return true
}

// Sort returns nodes stably sorted by KeyOf. Nodes with equal keys keep their relative
// order. The input slice is not modified.
func Sort(p policy.Policy, nodes []decl.Node) []decl.Node {
	return newRanker(p).sort(nodes)
}

// IsOrdered reports whether Sort would leave every node at its current position.
// Empty and single-node input is always ordered.
func IsOrdered(p policy.Policy, nodes []decl.Node) bool {
	if len(nodes) < 2 {
		return true
	}
	return newRanker(p).ordered(nodes)
}
