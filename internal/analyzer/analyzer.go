package analyzer

import (
	"fmt"

	"github.com/mcncl/jsonlex/internal/config"
	"github.com/mcncl/jsonlex/internal/lexer"
	"github.com/mcncl/jsonlex/internal/models"
)

// Analyzer summarises token streams: how many tokens of each kind, how
// deeply containers nest and whether brackets pair up.
type Analyzer struct {
	// config controls how kind names are rendered
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: config.NewConfig()}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// Analyze walks the stream and returns its summary.
func (a *Analyzer) Analyze(stream models.TokenStream) models.Summary {
	summary := models.Summary{
		Total:    len(stream.Tokens),
		Counts:   make(map[string]int),
		Balanced: true,
		Errors:   len(stream.Errors),
	}

	var open []lexer.Kind
	for i, tok := range stream.Tokens {
		summary.Counts[a.config.KindName(tok.Kind)]++

		switch {
		case tok.Kind.IsOpen():
			open = append(open, tok.Kind)
			summary.MaxDepth = max(summary.MaxDepth, len(open))
		case tok.Kind.IsClose():
			if len(open) == 0 {
				a.mismatch(&summary, fmt.Sprintf("token %d: %s without matching opener", i, tok.Kind))
				continue
			}
			top := open[len(open)-1]
			if closerFor(top) != tok.Kind {
				a.mismatch(&summary, fmt.Sprintf("token %d: %s closes %s", i, tok.Kind, top))
			}
			open = open[:len(open)-1]
		}
	}

	if len(open) > 0 {
		a.mismatch(&summary, fmt.Sprintf("%d unclosed container(s), innermost %s", len(open), open[len(open)-1]))
	}

	return summary
}

// CheckBalanced returns an error describing the first bracket mismatch.
func (a *Analyzer) CheckBalanced(stream models.TokenStream) error {
	summary := a.Analyze(stream)
	if summary.Balanced {
		return nil
	}
	return fmt.Errorf("%s", summary.Mismatch)
}

// mismatch records only the first problem
func (a *Analyzer) mismatch(summary *models.Summary, msg string) {
	if summary.Balanced {
		summary.Balanced = false
		summary.Mismatch = msg
	}
}

func closerFor(k lexer.Kind) lexer.Kind {
	if k == lexer.CurlyBracketOpen {
		return lexer.CurlyBracketClose
	}
	return lexer.BracketClose
}
