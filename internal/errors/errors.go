package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates the project configuration could not be loaded or validated
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// FileNotFound indicates a requested path does not exist
	FileNotFound ErrorCode = "FILE_NOT_FOUND"
	// ParseFailed indicates a source file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// UnsupportedLanguage indicates a file that is not C#
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// WriteFailed indicates a rewritten file could not be saved
	WriteFailed ErrorCode = "WRITE_FAILED"
	// ReportInvalid indicates a findings report could not be read
	ReportInvalid ErrorCode = "REPORT_INVALID"
	// ParserUnavailable indicates a build without tree-sitter support
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Process exit codes
const (
	ExitClean    = 0
	ExitFindings = 1
	ExitError    = 2
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// KindsortError represents an error with code, message, and suggestions
type KindsortError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewKindsortError creates a new KindsortError
func NewKindsortError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *KindsortError {
	return &KindsortError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// New creates a KindsortError with the default suggested fixes for its code
func New(code ErrorCode, message string, cause error) *KindsortError {
	return NewKindsortError(code, message, cause, GetSuggestedFixes(code))
}

// Error implements the error interface
func (e *KindsortError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *KindsortError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *KindsortError) WithDetails(details interface{}) *KindsortError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first KindsortError in err's chain, or InternalError
func CodeOf(err error) ErrorCode {
	var ke *KindsortError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return InternalError
}

// ErrFindings is returned by commands that completed but found unsorted containers
var ErrFindings = errors.New("unsorted members found")

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitClean
	case errors.Is(err, ErrFindings):
		return ExitFindings
	default:
		return ExitError
	}
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "kindsort init --force",
			Safe:        false,
			Description: "Rewrite .kindsort/config.json with defaults",
		},
	},
	ParserUnavailable: {
		{
			Type:        RunCommand,
			Command:     "CGO_ENABLED=1 go install ./cmd/kindsort",
			Safe:        true,
			Description: "Rebuild with CGO enabled for tree-sitter",
		},
	},
	ReportInvalid: {
		{
			Type:        RunCommand,
			Command:     "kindsort check --format json --output report.json",
			Safe:        true,
			Description: "Regenerate the findings report",
		},
	},
	ParseFailed: {
		{
			Type:        RunCommand,
			Command:     "kindsort check -v",
			Safe:        true,
			Description: "Show the syntax error location",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
