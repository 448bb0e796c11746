// Package decltest provides in-memory decl.Node implementations for tests.
package decltest

import (
	"strings"

	"kindsort/internal/decl"
)

// Decl is a leaf declaration. Lead and Trail stand in for attached comments.
type Decl struct {
	Kind     decl.Syntax
	Mods     decl.Modifier
	Explicit bool
	Names    []string
	Lead     string
	Trail    string
}

func (d *Decl) Syntax() decl.Syntax      { return d.Kind }
func (d *Decl) Modifiers() decl.Modifier { return d.Mods }
func (d *Decl) ExplicitInterface() bool  { return d.Explicit }
func (d *Decl) Identifiers() []string    { return append([]string(nil), d.Names...) }

// Body is a type or namespace declaration holding members.
type Body struct {
	Decl
	Items []decl.Node
}

func (b *Body) Members() []decl.Node {
	return append([]decl.Node(nil), b.Items...)
}

func (b *Body) WithMembers(members []decl.Node) decl.Container {
	c := *b
	c.Items = append([]decl.Node(nil), members...)
	return &c
}

// New builds a leaf declaration with the given shape, name and modifier keywords.
func New(s decl.Syntax, name string, mods ...string) *Decl {
	return &Decl{Kind: s, Mods: decl.ParseModifiers(mods...), Names: splitNames(name)}
}

// Field builds a field declaration. A name like "a,b" introduces two variables.
func Field(name string, mods ...string) *Decl { return New(decl.SyntaxField, name, mods...) }

// Method builds a method declaration.
func Method(name string, mods ...string) *Decl { return New(decl.SyntaxMethod, name, mods...) }

// Property builds a property declaration.
func Property(name string, mods ...string) *Decl { return New(decl.SyntaxProperty, name, mods...) }

// Class builds a class body with the given members.
func Class(name string, members ...decl.Node) *Body {
	return &Body{Decl: *New(decl.SyntaxClass, name), Items: members}
}

// Namespace builds a namespace body with the given members.
func Namespace(name string, members ...decl.Node) *Body {
	return &Body{Decl: *New(decl.SyntaxNamespace, name), Items: members}
}

// WithMods returns a copy of b with modifier keywords added.
func (b *Body) WithMods(mods ...string) *Body {
	c := *b
	c.Mods |= decl.ParseModifiers(mods...)
	return &c
}

// Names returns the display name of every node.
func Names(nodes []decl.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = decl.DisplayName(n)
	}
	return out
}

func splitNames(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, ",")
}
