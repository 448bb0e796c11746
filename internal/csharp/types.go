// Package csharp binds C# source files to the ordering engine via tree-sitter.
//
// A parsed file is a tree of members. Every member owns a contiguous chunk of the
// source: the comments, blank lines and preprocessor lines leading up to it, the
// declaration itself, and a trailing comment on its last line. Containers (types and
// namespaces) split their chunk into a head ending after the opening brace line, their
// members, and a tail holding the closing brace. Rendering concatenates the chunks, so
// an unmodified file renders byte for byte as it was read.
package csharp

import (
	"bytes"

	"kindsort/internal/decl"
	"kindsort/internal/order"
)

// Position is a 1-based line and byte column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// info is what the classifier reads from a declaration.
type info struct {
	syntax    decl.Syntax
	mods      decl.Modifier
	explicit  bool
	names     []string
	start     Position
	end       Position
	startByte int
}

func (i *info) Syntax() decl.Syntax      { return i.syntax }
func (i *info) Modifiers() decl.Modifier { return i.mods }
func (i *info) ExplicitInterface() bool  { return i.explicit }
func (i *info) Identifiers() []string    { return append([]string(nil), i.names...) }

// Start returns the position of the first token of the declaration.
func (i *info) Start() Position { return i.start }

// End returns the position just past the last token of the declaration.
func (i *info) End() Position { return i.end }

// StartByte returns the byte offset of the declaration in the file it was parsed from.
// Reordering does not change it.
func (i *info) StartByte() int { return i.startByte }

// Location returns the declaration's location in the given file.
func (i *info) Location(path string) order.Location {
	return order.Location{
		Path:        path,
		StartLine:   i.start.Line,
		StartColumn: i.start.Column,
		EndLine:     i.end.Line,
		EndColumn:   i.end.Column,
		StartByte:   i.startByte,
	}
}

// chunk is a piece of source that can render itself.
type chunk interface {
	render(buf *bytes.Buffer)
}

// Member is a declaration without members of its own.
type Member struct {
	info
	text []byte
}

func (m *Member) render(buf *bytes.Buffer) { buf.Write(m.text) }

// Text returns the member's chunk, annotations included.
func (m *Member) Text() []byte { return bytes.Clone(m.text) }

// Body is a type or namespace declaration with a member list.
type Body struct {
	info
	head    []byte
	members []decl.Node
	tail    []byte
}

// Members returns the direct members in their current order.
func (b *Body) Members() []decl.Node {
	return append([]decl.Node(nil), b.members...)
}

// WithMembers returns a copy of b holding members in the given order. Members must
// come from the same parsed file; other node types are not rendered.
func (b *Body) WithMembers(members []decl.Node) decl.Container {
	c := *b
	c.members = append([]decl.Node(nil), members...)
	return &c
}

// Bodies returns the direct members that are themselves containers.
func (b *Body) Bodies() []*Body {
	var out []*Body
	for _, m := range b.members {
		if sub, ok := m.(*Body); ok {
			out = append(out, sub)
		}
	}
	return out
}

func (b *Body) render(buf *bytes.Buffer) {
	buf.Write(b.head)
	for _, m := range b.members {
		if c, ok := m.(chunk); ok {
			c.render(buf)
		}
	}
	buf.Write(b.tail)
}

// Render returns the container's chunk.
func (b *Body) Render() []byte {
	var buf bytes.Buffer
	b.render(&buf)
	return buf.Bytes()
}

// IsType reports whether b is a type declaration rather than a namespace.
func (b *Body) IsType() bool {
	return b.syntax != decl.SyntaxNamespace && b.syntax != decl.SyntaxUnknown
}
