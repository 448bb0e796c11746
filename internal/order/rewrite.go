package order

import (
	"slices"

	"kindsort/internal/decl"
	"kindsort/internal/policy"
)

// Reorder returns c rebuilt with its members in canonical order. Nested containers are
// reordered first and replaced in place, then the direct members are sorted. An
// unresolved policy is treated as policy.Default().
func Reorder(p policy.Policy, c decl.Container) decl.Container {
	if c == nil {
		return nil
	}
	return newRanker(p).reorder(c)
}

func (r *ranker) reorder(c decl.Container) decl.Container {
	members := slices.Clone(c.Members())
	for i, m := range members {
		if sub, ok := m.(decl.Container); ok {
			members[i] = r.reorder(sub)
		}
	}
	return c.WithMembers(r.sort(members))
}
