package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlex/internal/lexer"
)

// Formatter rebuilds indented JSON text from a token stream
type Formatter struct {
	indent string
}

// NewFormatter creates a new Formatter that indents each nesting level by indent
func NewFormatter(indent string) *Formatter {
	return &Formatter{indent: indent}
}

// Format writes tokens back out as JSON text, one member or element per line.
// Containers must be balanced. Top-level values are separated by newlines.
func (f *Formatter) Format(tokens []lexer.Token) (string, error) {
	if len(tokens) == 0 {
		return "", nil
	}

	var (
		b         strings.Builder
		open      []lexer.Kind
		lineStart bool
	)
	newline := func(depth int) {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(f.indent, depth))
		lineStart = true
	}

	for i, tok := range tokens {
		if len(open) == 0 && b.Len() > 0 && !lineStart && !tok.Kind.IsClose() &&
			tok.Kind != lexer.ElementDelimiter && tok.Kind != lexer.KeyDelimiter {
			newline(0)
		}

		switch tok.Kind {
		case lexer.BracketOpen, lexer.CurlyBracketOpen:
			b.WriteString(literal(tok))
			lineStart = false
			open = append(open, tok.Kind)
			if i+1 < len(tokens) && tokens[i+1].Kind.IsClose() {
				continue
			}
			newline(len(open))

		case lexer.BracketClose, lexer.CurlyBracketClose:
			if len(open) == 0 {
				return "", fmt.Errorf("token %d: unexpected %s", i, tok.Kind)
			}
			top := open[len(open)-1]
			if (top == lexer.BracketOpen) != (tok.Kind == lexer.BracketClose) {
				return "", fmt.Errorf("token %d: %s closes %s", i, tok.Kind, top)
			}
			open = open[:len(open)-1]
			if !tokens[i-1].Kind.IsOpen() {
				newline(len(open))
			}
			b.WriteString(literal(tok))
			lineStart = false

		case lexer.ElementDelimiter:
			b.WriteString(",")
			newline(len(open))

		case lexer.KeyDelimiter:
			b.WriteString(": ")
			lineStart = false

		default:
			b.WriteString(literal(tok))
			lineStart = false
		}
	}

	if len(open) > 0 {
		return "", fmt.Errorf("%d unclosed container(s)", len(open))
	}

	return strings.TrimRight(b.String(), " \t\n") + "\n", nil
}

// literal renders a single token as JSON text. Strings are written back
// verbatim since the lexer never decodes escapes.
func literal(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.BracketOpen:
		return "["
	case lexer.BracketClose:
		return "]"
	case lexer.CurlyBracketOpen:
		return "{"
	case lexer.CurlyBracketClose:
		return "}"
	case lexer.ElementDelimiter:
		return ","
	case lexer.KeyDelimiter:
		return ":"
	case lexer.Null:
		return "null"
	case lexer.Boolean:
		return strconv.FormatBool(tok.Bool)
	case lexer.Number:
		return tok.Number.String()
	case lexer.String:
		return `"` + tok.Text + `"`
	default:
		return ""
	}
}
