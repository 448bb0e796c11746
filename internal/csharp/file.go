package csharp

import (
	"bytes"

	"kindsort/internal/decl"
)

// File is a parsed C# source file.
type File struct {
	Path string
	root *Body
}

// Render returns the file's source text.
func (f *File) Render() []byte {
	var buf bytes.Buffer
	f.root.render(&buf)
	return buf.Bytes()
}

// Containers returns every type and namespace body in the file, outer before inner.
func (f *File) Containers() []*Body {
	var out []*Body
	var walk func(b *Body)
	walk = func(b *Body) {
		for _, sub := range b.Bodies() {
			out = append(out, sub)
			walk(sub)
		}
	}
	walk(f.root)
	return out
}

// Types returns every type body in the file, outer before inner.
func (f *File) Types() []*Body {
	var out []*Body
	for _, b := range f.Containers() {
		if b.IsType() {
			out = append(out, b)
		}
	}
	return out
}

// Namespaces returns every namespace body in the file, outer before inner.
func (f *File) Namespaces() []*Body {
	var out []*Body
	for _, b := range f.Containers() {
		if b.syntax == decl.SyntaxNamespace {
			out = append(out, b)
		}
	}
	return out
}

// TopLevel returns the containers declared directly in the compilation unit.
func (f *File) TopLevel() []*Body {
	return f.root.Bodies()
}

// ContainerAt returns the container whose declaration started at startByte when the
// file was parsed.
func (f *File) ContainerAt(startByte int) (*Body, bool) {
	for _, b := range f.Containers() {
		if b.startByte == startByte {
			return b, true
		}
	}
	return nil, false
}

// Replace returns a copy of f in which the container that started at startByte is
// replaced by c. It reports false, and returns f, when there is no such container or c
// is not a body from this package.
func (f *File) Replace(startByte int, c decl.Container) (*File, bool) {
	repl, ok := c.(*Body)
	if !ok {
		return f, false
	}
	root, ok := replace(f.root, startByte, repl)
	if !ok {
		return f, false
	}
	return &File{Path: f.Path, root: root}, true
}

func replace(b *Body, startByte int, repl *Body) (*Body, bool) {
	for i, m := range b.members {
		sub, ok := m.(*Body)
		if !ok {
			continue
		}
		if sub.startByte == startByte {
			return withMember(b, i, repl), true
		}
		if startByte < sub.startByte {
			continue
		}
		if next, ok := replace(sub, startByte, repl); ok {
			return withMember(b, i, next), true
		}
	}
	return nil, false
}

func withMember(b *Body, i int, n decl.Node) *Body {
	c := *b
	c.members = append([]decl.Node(nil), b.members...)
	c.members[i] = n
	return &c
}

// Rewrite returns a copy of f with fn applied to every top-level container. fn is
// expected to recurse into nested containers itself, as order.Reorder does.
func (f *File) Rewrite(fn func(decl.Container) decl.Container) *File {
	out := f
	for _, b := range f.TopLevel() {
		next, ok := fn(b).(*Body)
		if !ok {
			continue
		}
		out, _ = out.Replace(b.startByte, next)
	}
	return out
}
