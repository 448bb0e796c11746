// Package policy holds the ordering policy and its text codec.
//
// A Policy is an immutable value. Every constructor returns a fully resolved policy:
// fields missing from a configuration document take their default one by one, and a
// document that cannot be read at all yields Default().
package policy

import "slices"

// Policy describes how member declarations are ordered.
type Policy struct {
	kindOrder     []string
	accessOrder   []string
	constFirst    bool
	staticFirst   bool
	readonlyFirst bool
	overrideFirst bool
	alphabetical  bool
	resolved      bool
}

var defaultKindOrder = []string{
	"Fields", "Constructors", "Finalizers", "Delegates",
	"Events", "Enums", "Interfaces", "Properties", "Operators", "Indexers", "Methods",
	"Structs", "Classes",
}

var defaultAccessOrder = []string{
	"public", "public-explicit", "internal", "protected-internal", "protected", "private",
}

// Default returns the default policy.
func Default() Policy {
	return Policy{
		kindOrder:     slices.Clone(defaultKindOrder),
		accessOrder:   slices.Clone(defaultAccessOrder),
		constFirst:    true,
		staticFirst:   true,
		readonlyFirst: true,
		overrideFirst: false,
		alphabetical:  true,
		resolved:      true,
	}
}

// DefaultKindOrder returns the default kind order.
func DefaultKindOrder() []string { return slices.Clone(defaultKindOrder) }

// DefaultAccessOrder returns the default access order.
func DefaultAccessOrder() []string { return slices.Clone(defaultAccessOrder) }

// KindOrder returns the ordered kind names. The result is a copy.
func (p Policy) KindOrder() []string { return slices.Clone(p.kindOrder) }

// AccessOrder returns the ordered access level names. The result is a copy.
func (p Policy) AccessOrder() []string { return slices.Clone(p.accessOrder) }

// ConstFirst reports whether const members sort before the rest of their group.
func (p Policy) ConstFirst() bool { return p.constFirst }

// StaticFirst reports whether static members sort before instance members.
func (p Policy) StaticFirst() bool { return p.staticFirst }

// ReadonlyFirst reports whether readonly members sort before mutable ones.
func (p Policy) ReadonlyFirst() bool { return p.readonlyFirst }

// OverrideFirst reports whether override members sort before the rest of their group.
func (p Policy) OverrideFirst() bool { return p.overrideFirst }

// Alphabetical reports whether ties are broken by display name.
func (p Policy) Alphabetical() bool { return p.alphabetical }

// IsResolved reports whether the policy was built by this package. The zero Policy is
// not resolved.
func (p Policy) IsResolved() bool { return p.resolved }

// Resolved returns p, or Default() when p is the unresolved zero value.
func (p Policy) Resolved() Policy {
	if !p.resolved {
		return Default()
	}
	return p
}

// Equal reports whether two policies order declarations identically field for field.
// A nil and an empty order list are equal.
func (p Policy) Equal(q Policy) bool {
	p, q = p.Resolved(), q.Resolved()
	return slices.Equal(p.kindOrder, q.kindOrder) &&
		slices.Equal(p.accessOrder, q.accessOrder) &&
		p.constFirst == q.constFirst &&
		p.staticFirst == q.staticFirst &&
		p.readonlyFirst == q.readonlyFirst &&
		p.overrideFirst == q.overrideFirst &&
		p.alphabetical == q.alphabetical
}

// WithKindOrder returns a copy of p with a new kind order.
func (p Policy) WithKindOrder(kinds ...string) Policy {
	p = p.Resolved()
	p.kindOrder = orderList(kinds)
	return p
}

// WithAccessOrder returns a copy of p with a new access order.
func (p Policy) WithAccessOrder(levels ...string) Policy {
	p = p.Resolved()
	p.accessOrder = orderList(levels)
	return p
}

// WithConstFirst returns a copy of p with ConstFirst set to v.
func (p Policy) WithConstFirst(v bool) Policy {
	p = p.Resolved()
	p.constFirst = v
	return p
}

// WithStaticFirst returns a copy of p with StaticFirst set to v.
func (p Policy) WithStaticFirst(v bool) Policy {
	p = p.Resolved()
	p.staticFirst = v
	return p
}

// WithReadonlyFirst returns a copy of p with ReadonlyFirst set to v.
func (p Policy) WithReadonlyFirst(v bool) Policy {
	p = p.Resolved()
	p.readonlyFirst = v
	return p
}

// WithOverrideFirst returns a copy of p with OverrideFirst set to v.
func (p Policy) WithOverrideFirst(v bool) Policy {
	p = p.Resolved()
	p.overrideFirst = v
	return p
}

// WithAlphabetical returns a copy of p with Alphabetical set to v.
func (p Policy) WithAlphabetical(v bool) Policy {
	p = p.Resolved()
	p.alphabetical = v
	return p
}

func orderList(names []string) []string {
	if names == nil {
		return []string{}
	}
	return slices.Clone(names)
}
