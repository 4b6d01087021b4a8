// Package lexer splits JSON text into tokens.
//
// Strings are taken verbatim between quotes: escape sequences are not
// interpreted, so a backslash is an ordinary character.
package lexer

import (
	"io"
	"strconv"
	"strings"
)

// Lexer produces tokens on demand from a rune source.
// A Lexer must not be used from more than one goroutine at a time.
type Lexer struct {
	cur cursor
}

// New creates a Lexer reading from r.
func New(r io.RuneReader) *Lexer {
	return &Lexer{cur: cursor{src: r}}
}

// NewString creates a Lexer over s.
func NewString(s string) *Lexer {
	return New(strings.NewReader(s))
}

// Offset returns the number of runes consumed so far.
func (l *Lexer) Offset() int {
	return l.cur.pos
}

// Next returns the next token. It returns io.EOF once the input is
// exhausted and an *Error when the input is malformed. After an error the
// Lexer may be called again and resumes after the consumed characters.
func (l *Lexer) Next() (Token, error) {
	for {
		start := l.cur.pos
		c, ok := l.cur.next()
		if !ok {
			if err := l.cur.takeErr(); err != nil {
				return Token{}, &Error{Kind: UnexpectedEndOfInput, Offset: start, cause: err}
			}
			return Token{}, io.EOF
		}

		switch {
		case isWhitespace(c):
			continue
		case c == '[':
			return punct(BracketOpen), nil
		case c == ']':
			return punct(BracketClose), nil
		case c == '{':
			return punct(CurlyBracketOpen), nil
		case c == '}':
			return punct(CurlyBracketClose), nil
		case c == ',':
			return punct(ElementDelimiter), nil
		case c == ':':
			return punct(KeyDelimiter), nil
		case isDigit(c) || c == '-' || c == '+':
			return l.number(c, start)
		case isAlpha(c):
			return l.keyword(c, start)
		case c == '"':
			return l.str(start)
		default:
			return Token{}, &Error{Kind: UnknownCharacter, Offset: start, Text: string(c)}
		}
	}
}

// Tokens pulls tokens until the end of input or the first error. The tokens
// read before an error are returned along with it.
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

// Lex tokenizes s in full.
func Lex(s string) ([]Token, error) {
	return NewString(s).Tokens()
}

func (l *Lexer) number(first rune, start int) (Token, error) {
	var mantissa strings.Builder
	mantissa.WriteRune(first)

	// JSON forbids an explicit plus sign and leading zeros.
	reject := first == '+'
	if first == '0' {
		if n, ok := l.cur.peek(); ok && isDigit(n) {
			reject = true
		}
	}
	if reject {
		l.cur.readWhile(&mantissa, func(r rune) bool {
			return r != ',' && r != ']' && r != '}'
		})
		return Token{}, &Error{Kind: InvalidNumberFormat, Offset: start, Text: mantissa.String()}
	}

	l.cur.readWhile(&mantissa, func(r rune) bool {
		return isDigit(r) || r == '.'
	})

	var (
		exponent strings.Builder
		marker   rune
	)
	if n, ok := l.cur.peek(); ok && (n == 'e' || n == 'E') {
		l.cur.next()
		marker = n
		l.cur.readWhile(&exponent, func(r rune) bool {
			return isDigit(r) || r == '+' || r == '-'
		})
		switch exponent.String() {
		case "", "+", "-":
			return Token{}, &Error{Kind: InvalidExponentFormat, Offset: start, Text: mantissa.String() + string(marker) + exponent.String()}
		}
	}

	m, err := strconv.ParseFloat(mantissa.String(), 64)
	if err != nil {
		return Token{}, &Error{Kind: InvalidNumberFormat, Offset: start, Text: mantissa.String()}
	}
	if marker == 0 {
		return NumberToken(m), nil
	}

	e, err := strconv.ParseInt(exponent.String(), 10, 16)
	if err != nil {
		return Token{}, &Error{Kind: InvalidExponentFormat, Offset: start, Text: mantissa.String() + string(marker) + exponent.String()}
	}
	return NumberTokenExp(m, int16(e)), nil
}

func (l *Lexer) keyword(first rune, start int) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	l.cur.readWhile(&sb, isAlpha)

	switch word := sb.String(); word {
	case "true":
		return BoolToken(true), nil
	case "false":
		return BoolToken(false), nil
	case "null":
		return NullToken(), nil
	default:
		return Token{}, &Error{Kind: UnknownKeyword, Offset: start, Text: word}
	}
}

func (l *Lexer) str(start int) (Token, error) {
	var sb strings.Builder
	l.cur.readWhile(&sb, func(r rune) bool { return r != '"' })
	if _, ok := l.cur.next(); !ok {
		return Token{}, &Error{Kind: UnclosedString, Offset: start, Text: sb.String()}
	}
	return StringToken(sb.String()), nil
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
