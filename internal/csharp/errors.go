package csharp

import (
	"errors"
	"fmt"
)

// ErrNoCGO is returned when parsing is unavailable due to missing CGO.
var ErrNoCGO = errors.New("C# parsing requires CGO (tree-sitter)")

// SyntaxError reports a source file tree-sitter could not parse cleanly.
type SyntaxError struct {
	Path   string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error", e.Path, e.Line, e.Column)
}
