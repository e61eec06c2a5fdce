// Package types holds the small shared vocabulary of the assist pipeline:
// the Suggestion value produced by translators and the closed error variant
// every component reports through. It exists to break import cycles between
// the translators, the runner and the orchestration layer.
package types

import (
	"errors"
	"fmt"
)

// Suggestion pairs a runnable command line with a short human-readable
// justification. The reason is informational only and is never parsed.
type Suggestion struct {
	Command string
	Reason  string
}

// Kind classifies an assist failure so callers can branch on it.
type Kind int

const (
	// KindUnsafe marks a command that failed validation or violated the
	// offline policy. Always fatal to that command.
	KindUnsafe Kind = iota
	// KindCommandFailed covers spawn errors, non-zero exits, malformed
	// remote responses, missing credentials and unusable LLM output.
	KindCommandFailed
	// KindNoSuggestion means no builtin rule matched and the LLM fallback
	// path is unavailable.
	KindNoSuggestion
)

// AssistError is the single error type surfaced by the pipeline. It carries
// a descriptive message, never a stack trace.
type AssistError struct {
	Kind    Kind
	Message string
}

func (e *AssistError) Error() string {
	switch e.Kind {
	case KindUnsafe:
		return "unsafe command blocked: " + e.Message
	case KindNoSuggestion:
		return "no suggestion: " + e.Message
	default:
		return "command failed: " + e.Message
	}
}

// Unsafe builds a KindUnsafe error.
func Unsafe(format string, args ...any) *AssistError {
	return &AssistError{Kind: KindUnsafe, Message: fmt.Sprintf(format, args...)}
}

// CommandFailed builds a KindCommandFailed error.
func CommandFailed(format string, args ...any) *AssistError {
	return &AssistError{Kind: KindCommandFailed, Message: fmt.Sprintf(format, args...)}
}

// NoSuggestion builds a KindNoSuggestion error.
func NoSuggestion(format string, args ...any) *AssistError {
	return &AssistError{Kind: KindNoSuggestion, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an AssistError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *AssistError
	return errors.As(err, &ae) && ae.Kind == kind
}

// IsUnsafe reports whether err is an unsafe-command rejection.
func IsUnsafe(err error) bool { return IsKind(err, KindUnsafe) }

// IsCommandFailed reports whether err is an execution or protocol failure.
func IsCommandFailed(err error) bool { return IsKind(err, KindCommandFailed) }

// IsNoSuggestion reports whether err means the pipeline had nothing to offer.
func IsNoSuggestion(err error) bool { return IsKind(err, KindNoSuggestion) }
