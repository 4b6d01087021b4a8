package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mcncl/jsonlex/internal/config"
	"github.com/mcncl/jsonlex/internal/formatter"
	"github.com/mcncl/jsonlex/internal/lexer"
	"github.com/mcncl/jsonlex/internal/models"
	"gopkg.in/yaml.v3"
)

// Generator renders token streams in the configured output format
type Generator struct {
	config *config.Config
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{config: config.NewConfig()}
}

// NewGeneratorWithConfig creates a new Generator instance with custom configuration
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	return &Generator{config: cfg}
}

// Generate renders the stream. summary may be nil.
func (g *Generator) Generate(stream models.TokenStream, summary *models.Summary) (string, error) {
	switch g.config.Output.Format {
	case config.FormatText:
		return g.text(stream, summary), nil
	case config.FormatJSON:
		data, err := json.MarshalIndent(g.Report(stream, summary), "", g.config.Output.Indent)
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return string(data) + "\n", nil
	case config.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(max(len(g.config.Output.Indent), 2))
		if err := enc.Encode(g.Report(stream, summary)); err != nil {
			return "", fmt.Errorf("failed to encode YAML report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return buf.String(), nil
	case config.FormatPretty:
		if !stream.OK() {
			return "", fmt.Errorf("cannot pretty-print input with %d lexing error(s)", len(stream.Errors))
		}
		return formatter.NewFormatter(g.config.Output.Indent).Format(stream.Tokens)
	default:
		return "", fmt.Errorf("unknown output format '%s'", g.config.Output.Format)
	}
}

// Report converts a stream into its serialisable form
func (g *Generator) Report(stream models.TokenStream, summary *models.Summary) models.Report {
	report := models.Report{
		Tokens:    make([]models.TokenRecord, 0, len(stream.Tokens)),
		Truncated: stream.Truncated,
		Summary:   summary,
	}
	for _, tok := range stream.Tokens {
		report.Tokens = append(report.Tokens, g.tokenRecord(tok))
	}
	for _, e := range stream.Errors {
		report.Errors = append(report.Errors, models.ErrorRecord{
			Kind:    g.config.CaseName(e.Kind.String()),
			Offset:  e.Offset,
			Text:    e.Text,
			Message: e.Error(),
		})
	}
	return report
}

func (g *Generator) tokenRecord(tok lexer.Token) models.TokenRecord {
	rec := models.TokenRecord{Kind: g.config.KindName(tok.Kind)}
	switch tok.Kind {
	case lexer.Boolean:
		b := tok.Bool
		rec.Bool = &b
	case lexer.Number:
		m := tok.Number.Mantissa
		rec.Mantissa = &m
		if tok.Number.HasExponent {
			e := tok.Number.Exponent
			rec.Exponent = &e
		}
	case lexer.String:
		s := tok.Text
		rec.Text = &s
	}
	return rec
}

func (g *Generator) text(stream models.TokenStream, summary *models.Summary) string {
	var buf bytes.Buffer

	for _, tok := range stream.Tokens {
		name := g.config.KindName(tok.Kind)
		switch tok.Kind {
		case lexer.Boolean:
			fmt.Fprintf(&buf, "%s %t\n", name, tok.Bool)
		case lexer.Number:
			fmt.Fprintf(&buf, "%s %s\n", name, tok.Number)
		case lexer.String:
			fmt.Fprintf(&buf, "%s %q\n", name, tok.Text)
		default:
			buf.WriteString(name + "\n")
		}
	}

	for _, e := range stream.Errors {
		fmt.Fprintf(&buf, "error: %s\n", e)
	}
	if stream.Truncated {
		buf.WriteString("error: too many errors, stopped\n")
	}

	if summary != nil {
		buf.WriteString("-- summary --\n")
		fmt.Fprintf(&buf, "total: %d\n", summary.Total)
		fmt.Fprintf(&buf, "max depth: %d\n", summary.MaxDepth)
		fmt.Fprintf(&buf, "balanced: %t\n", summary.Balanced)
		if summary.Mismatch != "" {
			fmt.Fprintf(&buf, "mismatch: %s\n", summary.Mismatch)
		}
		fmt.Fprintf(&buf, "errors: %d\n", summary.Errors)

		// Sort counts for consistent output
		kinds := make([]string, 0, len(summary.Counts))
		for kind := range summary.Counts {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(&buf, "%s: %d\n", kind, summary.Counts[kind])
		}
	}

	return buf.String()
}
