package lexer

import "fmt"

// ErrorKind classifies a tokenization failure.
type ErrorKind uint8

const (
	UnexpectedEndOfInput ErrorKind = iota
	UnknownCharacter
	UnknownKeyword
	UnclosedString
	InvalidNumberFormat
	InvalidExponentFormat
)

var errorMessages = [...]string{
	UnexpectedEndOfInput:  "unexpected end of input",
	UnknownCharacter:      "unknown character",
	UnknownKeyword:        "unknown keyword",
	UnclosedString:        "unclosed string",
	InvalidNumberFormat:   "invalid number format",
	InvalidExponentFormat: "invalid exponent format",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorMessages) {
		return errorMessages[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Sentinels for use with errors.Is. Matching is by kind only.
var (
	ErrUnexpectedEndOfInput  = &Error{Kind: UnexpectedEndOfInput}
	ErrUnknownCharacter      = &Error{Kind: UnknownCharacter}
	ErrUnknownKeyword        = &Error{Kind: UnknownKeyword}
	ErrUnclosedString        = &Error{Kind: UnclosedString}
	ErrInvalidNumberFormat   = &Error{Kind: InvalidNumberFormat}
	ErrInvalidExponentFormat = &Error{Kind: InvalidExponentFormat}
)

// Error is returned by Lexer.Next when the input is malformed.
type Error struct {
	Kind ErrorKind
	// Offset is the rune offset at which the offending token starts.
	Offset int
	// Text is the input consumed while producing the error.
	Text string

	cause error
}

func (e *Error) Error() string {
	switch {
	case e.cause != nil:
		return fmt.Sprintf("%s at offset %d: %v", e.Kind, e.Offset, e.cause)
	case e.Text != "":
		return fmt.Sprintf("%s at offset %d: %q", e.Kind, e.Offset, e.Text)
	default:
		return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	}
}

// Unwrap returns the read error behind an UnexpectedEndOfInput, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is implements errors.Is for comparison
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
