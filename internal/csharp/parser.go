//go:build cgo

package csharp

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"kindsort/internal/decl"
)

// Parser wraps tree-sitter for C#. A Parser is not safe for concurrent use.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new C# parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())
	return &Parser{parser: p}
}

// IsAvailable reports whether parsing is available in this build.
func IsAvailable() bool {
	return true
}

// Parse parses src into a File. Sources with syntax errors are rejected, since their
// member boundaries cannot be trusted for rewriting.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*File, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		at := firstError(root)
		return nil, &SyntaxError{Path: path, Line: int(at.Row) + 1, Column: int(at.Column) + 1}
	}

	b := &builder{src: src}
	body := &Body{info: info{syntax: decl.SyntaxUnknown}}
	b.fill(body, root, 0, 0, len(src))
	return &File{Path: path, root: body}, nil
}

// firstError returns the start of the first ERROR or MISSING node.
func firstError(n *sitter.Node) sitter.Point {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n.StartPoint()
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && c.HasError() {
			return firstError(c)
		}
	}
	return n.StartPoint()
}

var syntaxByType = map[string]decl.Syntax{
	"field_declaration":                 decl.SyntaxField,
	"event_field_declaration":           decl.SyntaxEventField,
	"event_declaration":                 decl.SyntaxEvent,
	"constructor_declaration":           decl.SyntaxConstructor,
	"destructor_declaration":            decl.SyntaxDestructor,
	"delegate_declaration":              decl.SyntaxDelegate,
	"enum_declaration":                  decl.SyntaxEnum,
	"interface_declaration":             decl.SyntaxInterface,
	"property_declaration":              decl.SyntaxProperty,
	"indexer_declaration":               decl.SyntaxIndexer,
	"method_declaration":                decl.SyntaxMethod,
	"struct_declaration":                decl.SyntaxStruct,
	"record_struct_declaration":         decl.SyntaxRecordStruct,
	"class_declaration":                 decl.SyntaxClass,
	"record_declaration":                decl.SyntaxRecord,
	"namespace_declaration":             decl.SyntaxNamespace,
	"file_scoped_namespace_declaration": decl.SyntaxNamespace,
	"operator_declaration":              decl.SyntaxOperator,
	"conversion_operator_declaration":   decl.SyntaxConversionOperator,
}

// isTrivia reports whether a node is an annotation rather than a declaration.
func isTrivia(n *sitter.Node) bool {
	t := n.Type()
	return t == "comment" || strings.HasPrefix(t, "preproc") || strings.HasSuffix(t, "_directive")
}

type builder struct {
	src []byte
}

func (b *builder) text(n *sitter.Node) string {
	return string(b.src[n.StartByte():n.EndByte()])
}

// classify reads the declaration shape of n.
func (b *builder) classify(n *sitter.Node) info {
	s := syntaxByType[n.Type()]
	if s == decl.SyntaxRecord && b.hasChild(n, "struct") {
		s = decl.SyntaxRecordStruct
	}
	start, end := n.StartPoint(), n.EndPoint()
	return info{
		syntax:    s,
		mods:      b.modifiers(n),
		explicit:  b.hasChild(n, "explicit_interface_specifier"),
		names:     b.names(n, s),
		start:     Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		end:       Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1},
		startByte: int(n.StartByte()),
	}
}

func (b *builder) hasChild(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.Type() == typ {
			return true
		}
	}
	return false
}

// modifiers collects the modifier keywords written directly on n.
func (b *builder) modifiers(n *sitter.Node) decl.Modifier {
	var words []string
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.Type() == "modifier" || !c.IsNamed() {
			words = append(words, b.text(c))
		}
	}
	return decl.ParseModifiers(words...)
}

func (b *builder) names(n *sitter.Node, s decl.Syntax) []string {
	switch s {
	case decl.SyntaxField, decl.SyntaxEventField:
		return b.declarators(n)
	case decl.SyntaxIndexer:
		return []string{"this"}
	case decl.SyntaxOperator, decl.SyntaxConversionOperator:
		return nil
	}
	if name := n.ChildByFieldName("name"); name != nil {
		return []string{b.text(name)}
	}
	if id := b.firstChild(n, "identifier"); id != nil {
		return []string{b.text(id)}
	}
	return nil
}

// declarators returns the variable names of a field or event field, in source order.
func (b *builder) declarators(n *sitter.Node) []string {
	vd := b.firstChild(n, "variable_declaration")
	if vd == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(vd.NamedChildCount()); i++ {
		c := vd.NamedChild(i)
		if c == nil || c.Type() != "variable_declarator" {
			continue
		}
		if name := c.ChildByFieldName("name"); name != nil {
			names = append(names, b.text(name))
		} else if id := b.firstChild(c, "identifier"); id != nil {
			names = append(names, b.text(id))
		}
	}
	return names
}

func (b *builder) firstChild(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil && c.Type() == typ {
			return c
		}
	}
	return nil
}

// memberList returns the node holding the members of a container declaration and the
// token that opens it. Declarations without a member list return nil.
func (b *builder) memberList(n *sitter.Node) (list, open *sitter.Node) {
	switch n.Type() {
	case "class_declaration", "struct_declaration", "interface_declaration",
		"record_declaration", "record_struct_declaration", "namespace_declaration":
		list = n.ChildByFieldName("body")
		if list == nil || list.Type() != "declaration_list" {
			list = b.firstChild(n, "declaration_list")
		}
		if list == nil {
			return nil, nil
		}
		return list, b.token(list, "{")
	}
	return nil, nil
}

func (b *builder) token(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && !c.IsNamed() && c.Type() == typ {
			return c
		}
	}
	return nil
}

// lineEnd extends pos over trailing blanks, a comment that ends on the same line and
// the line break. It returns pos unchanged when other text follows on the line, and
// never moves past limit.
func (b *builder) lineEnd(pos, limit int) int {
	i := pos
	skip := func() {
		for i < limit && (b.src[i] == ' ' || b.src[i] == '\t') {
			i++
		}
	}
	skip()
	if i+1 < limit && b.src[i] == '/' {
		switch b.src[i+1] {
		case '/':
			for i < limit && b.src[i] != '\n' && b.src[i] != '\r' {
				i++
			}
		case '*':
			end := strings.Index(string(b.src[i:limit]), "*/")
			nl := strings.IndexAny(string(b.src[i:limit]), "\r\n")
			if end < 0 || (nl >= 0 && nl < end) {
				return pos
			}
			i += end + 2
			skip()
		}
	}
	switch {
	case i < limit && b.src[i] == '\r':
		i++
		if i < limit && b.src[i] == '\n' {
			i++
		}
		return i
	case i < limit && b.src[i] == '\n':
		return i + 1
	case i >= limit && i == len(b.src):
		return i
	}
	return pos
}

// fill splits the chunk [from, to) of container node n into head, members and tail.
// headEnd is where the member list begins; for the compilation unit it is from itself.
func (b *builder) fill(body *Body, n *sitter.Node, from, headEnd, to int) {
	list := n
	closeAt := to
	if body.syntax != decl.SyntaxUnknown {
		list, _ = b.memberList(n)
		if brace := b.token(list, "}"); brace != nil {
			closeAt = int(brace.StartByte())
		}
	}
	if body.syntax == decl.SyntaxNamespace {
		headEnd = b.directivesEnd(list, headEnd, closeAt)
	}

	cursor := headEnd
	body.head = b.src[from:headEnd]

	var decls []*sitter.Node
	for i := 0; i < int(list.NamedChildCount()); i++ {
		c := list.NamedChild(i)
		if c == nil || isTrivia(c) {
			continue
		}
		if _, ok := syntaxByType[c.Type()]; !ok && body.syntax == decl.SyntaxUnknown {
			// using directives and global attributes stay in the compilation unit text
			continue
		}
		decls = append(decls, c)
	}

	for i, c := range decls {
		limit := closeAt
		if i+1 < len(decls) {
			limit = int(decls[i+1].StartByte())
		}
		end := b.lineEnd(int(c.EndByte()), limit)
		body.members = append(body.members, b.member(c, cursor, end))
		cursor = end
	}
	body.tail = b.src[cursor:to]
}

// directivesEnd returns the end of the using and extern alias directives that open a
// namespace body, so they stay in its head. Members never own them.
func (b *builder) directivesEnd(list *sitter.Node, headEnd, closeAt int) int {
	count := int(list.NamedChildCount())
	for i := 0; i < count; i++ {
		c := list.NamedChild(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "using_directive", "extern_alias_directive":
			limit := closeAt
			if i+1 < count {
				if next := list.NamedChild(i + 1); next != nil {
					limit = int(next.StartByte())
				}
			}
			headEnd = b.lineEnd(int(c.EndByte()), limit)
		default:
			if !isTrivia(c) {
				return headEnd
			}
		}
	}
	return headEnd
}

// member builds the node for declaration n owning the chunk [from, to).
func (b *builder) member(n *sitter.Node, from, to int) decl.Node {
	in := b.classify(n)
	if list, open := b.memberList(n); list != nil && open != nil {
		body := &Body{info: in}
		headEnd := b.lineEnd(int(open.EndByte()), to)
		b.fill(body, n, from, headEnd, to)
		return body
	}
	return &Member{info: in, text: b.src[from:to]}
}
