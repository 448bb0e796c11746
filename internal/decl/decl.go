// Package decl describes member declarations the way the ordering engine sees them.
//
// A parser binding exposes its syntax nodes through Node and Container; the engine only
// ever reads them and rebuilds containers through WithMembers.
package decl

import "strings"

// Syntax is the syntactic shape of a declaration node.
type Syntax int

const (
	SyntaxUnknown Syntax = iota
	SyntaxField
	SyntaxEventField
	SyntaxEvent
	SyntaxConstructor
	SyntaxDestructor
	SyntaxDelegate
	SyntaxEnum
	SyntaxInterface
	SyntaxProperty
	SyntaxIndexer
	SyntaxMethod
	SyntaxStruct
	SyntaxRecordStruct
	SyntaxClass
	SyntaxRecord
	SyntaxNamespace
	SyntaxOperator
	SyntaxConversionOperator
)

// Modifier is a set of declaration modifiers.
type Modifier uint16

const (
	ModPublic Modifier = 1 << iota
	ModPrivate
	ModProtected
	ModInternal
	ModConst
	ModStatic
	ModReadonly
	ModOverride
)

// Has reports whether every modifier in x is present in m.
func (m Modifier) Has(x Modifier) bool {
	return m&x == x
}

var modifierWords = map[string]Modifier{
	"public":    ModPublic,
	"private":   ModPrivate,
	"protected": ModProtected,
	"internal":  ModInternal,
	"const":     ModConst,
	"static":    ModStatic,
	"readonly":  ModReadonly,
	"override":  ModOverride,
}

// ParseModifiers converts modifier keywords into a set. Keywords the engine does not rank
// on (abstract, virtual, sealed, ...) are ignored.
func ParseModifiers(words ...string) Modifier {
	var m Modifier
	for _, w := range words {
		for _, f := range strings.Fields(w) {
			m |= modifierWords[f]
		}
	}
	return m
}

// Node is a single member declaration owned by a parser binding.
type Node interface {
	// Syntax returns the node's syntactic shape.
	Syntax() Syntax

	// Modifiers returns the explicit modifiers written on the declaration.
	Modifiers() Modifier

	// ExplicitInterface reports whether the member implements an interface member
	// explicitly (IFoo.Bar form).
	ExplicitInterface() bool

	// Identifiers returns the names the declaration introduces, in source order.
	Identifiers() []string
}

// Container is a declaration whose body holds further declarations: a type or a namespace.
type Container interface {
	Node

	// Members returns the direct member declarations in source order.
	Members() []Node

	// WithMembers returns a copy of the container holding members in the given order.
	// The container's own boundary formatting is kept unchanged.
	WithMembers(members []Node) Container
}
