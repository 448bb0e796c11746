//go:build !cgo

package csharp

import "context"

// Parser wraps tree-sitter parsing functionality.
// This is a stub implementation for non-CGO builds.
type Parser struct{}

// NewParser creates a new C# parser.
func NewParser() *Parser {
	return &Parser{}
}

// IsAvailable returns whether parsing is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}

// Parse always fails with ErrNoCGO.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*File, error) {
	return nil, ErrNoCGO
}
