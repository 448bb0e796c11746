// Package order computes the canonical member order of a container and rebuilds
// containers in that order.
//
// Every function is pure: inputs are never mutated and results are new values. Nested
// containers are handled post-order, so an inner type is sorted before its parent.
package order

import (
	"cmp"
	"strings"

	"kindsort/internal/decl"
	"kindsort/internal/policy"
)

// Key is the composite sort key of one declaration. Fields compare in declaration
// order, most significant first.
type Key struct {
	Kind     int
	Access   int
	Const    int
	Static   int
	Readonly int
	Override int
	Name     string
}

// Compare returns -1, 0 or +1 when k sorts before, with or after o.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Kind, o.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Access, o.Access); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Const, o.Const); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Static, o.Static); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Readonly, o.Readonly); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Override, o.Override); c != 0 {
		return c
	}
	return strings.Compare(k.Name, o.Name)
}

// ranker holds the rank tables of one resolved policy.
type ranker struct {
	p      policy.Policy
	kinds  map[string]int
	access map[string]int
	nKinds int
	nAcc   int
}

func newRanker(p policy.Policy) *ranker {
	p = p.Resolved()
	r := &ranker{p: p, kinds: map[string]int{}, access: map[string]int{}}

	kinds := p.KindOrder()
	r.nKinds = len(kinds)
	for i, name := range kinds {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := r.kinds[key]; !seen {
			r.kinds[key] = i
		}
	}

	levels := p.AccessOrder()
	r.nAcc = len(levels)
	for i, name := range levels {
		key := decl.NormalizeAccessName(name)
		if _, seen := r.access[key]; !seen {
			r.access[key] = i
		}
	}
	return r
}

func (r *ranker) kindRank(k decl.Kind) int {
	name := k.PolicyName()
	if name == "" {
		return r.nKinds
	}
	if i, ok := r.kinds[strings.ToLower(name)]; ok {
		return i
	}
	return r.nKinds
}

func (r *ranker) accessRank(a decl.Access) int {
	if i, ok := r.access[a.String()]; ok {
		return i
	}
	return r.nAcc
}

func preferRank(enabled, set bool) int {
	if enabled && !set {
		return 1
	}
	return 0
}

func (r *ranker) key(n decl.Node) Key {
	c := decl.Classify(n)
	k := Key{
		Kind:     r.kindRank(c.Kind),
		Access:   r.accessRank(c.Access),
		Const:    preferRank(r.p.ConstFirst(), c.Attrs.Const),
		Static:   preferRank(r.p.StaticFirst(), c.Attrs.Static),
		Readonly: preferRank(r.p.ReadonlyFirst(), c.Attrs.Readonly),
		Override: preferRank(r.p.OverrideFirst(), c.Attrs.Override),
	}
	if r.p.Alphabetical() {
		k.Name = c.Name
	}
	return k
}

// KeyOf returns the sort key of n under p. Kinds missing from the policy's kind order,
// and unknown kinds, rank after every listed kind; the same holds for access levels.
func KeyOf(p policy.Policy, n decl.Node) Key {
	return newRanker(p).key(n)
}
