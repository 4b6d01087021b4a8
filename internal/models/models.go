package models

import "github.com/mcncl/jsonlex/internal/lexer"

// TokenStream holds the result of tokenizing one input.
type TokenStream struct {
	Tokens []lexer.Token
	// Errors holds at most one error unless keep-going mode is enabled.
	Errors []*lexer.Error
	// Truncated is set when keep-going mode stopped at the error limit.
	Truncated bool
}

// OK reports whether the stream was tokenized without errors.
func (s TokenStream) OK() bool {
	return len(s.Errors) == 0
}

// Summary describes the shape of a token stream.
type Summary struct {
	Total    int            `json:"total" yaml:"total"`
	Counts   map[string]int `json:"counts" yaml:"counts"`
	MaxDepth int            `json:"max_depth" yaml:"max_depth"`
	Balanced bool           `json:"balanced" yaml:"balanced"`
	// Mismatch describes the first bracket problem when Balanced is false.
	Mismatch string `json:"mismatch,omitempty" yaml:"mismatch,omitempty"`
	Errors   int    `json:"errors" yaml:"errors"`
}

// TokenRecord is the serialisable form of a token.
type TokenRecord struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Bool     *bool    `json:"bool,omitempty" yaml:"bool,omitempty"`
	Mantissa *float64 `json:"mantissa,omitempty" yaml:"mantissa,omitempty"`
	Exponent *int16   `json:"exponent,omitempty" yaml:"exponent,omitempty"`
	Text     *string  `json:"text,omitempty" yaml:"text,omitempty"`
}

// ErrorRecord is the serialisable form of a lexing error.
type ErrorRecord struct {
	Kind    string `json:"kind" yaml:"kind"`
	Offset  int    `json:"offset" yaml:"offset"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Report is the document written by the json and yaml output formats.
type Report struct {
	Tokens    []TokenRecord `json:"tokens" yaml:"tokens"`
	Errors    []ErrorRecord `json:"errors,omitempty" yaml:"errors,omitempty"`
	Truncated bool          `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Summary   *Summary      `json:"summary,omitempty" yaml:"summary,omitempty"`
}
