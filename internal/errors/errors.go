package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidTokens   = errors.New("input contains invalid tokens")
	ErrUnbalanced      = errors.New("brackets are not balanced")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeLexing   ErrorType = "lexing"
	ErrorTypeAnalysis ErrorType = "analysis"
	ErrorTypeFormat   ErrorType = "format"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewLexingError creates a new error for malformed tokens
func NewLexingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeLexing,
		Message: message,
		Err:     err,
	}
}

// NewAnalysisError creates a new error raised while summarising a token stream
func NewAnalysisError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeAnalysis,
		Message: message,
		Err:     err,
	}
}

// NewFormatError creates a new error related to rendering output
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeLexing:
			return fmt.Sprintf("JSON lexing error: %s", appErr.Message)
		case ErrorTypeAnalysis:
			return fmt.Sprintf("Token analysis error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Output formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Error: The input is empty. Please provide JSON data."
	case errors.Is(err, ErrInvalidTokens):
		return "Error: The input contains invalid tokens. Please check your JSON syntax."
	case errors.Is(err, ErrUnbalanced):
		return "Error: The brackets in the input are not balanced."
	case errors.Is(err, ErrFileNotFound):
		return "Error: The specified file could not be found. Please check the file path."
	case errors.Is(err, ErrFileEmpty):
		return "Error: The specified file is empty. Please provide a file with JSON content."
	case errors.Is(err, ErrNoInput):
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	case errors.Is(err, ErrInvalidFilePath):
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
