package lexer

import (
	"fmt"
	"strconv"
)

// Kind identifies the type of a Token.
type Kind uint8

const (
	BracketOpen       Kind = iota // [
	BracketClose                  // ]
	CurlyBracketOpen              // {
	CurlyBracketClose             // }
	ElementDelimiter              // ,
	KeyDelimiter                  // :
	Null
	Boolean
	Number
	String
)

var kindNames = [...]string{
	BracketOpen:       "BracketOpen",
	BracketClose:      "BracketClose",
	CurlyBracketOpen:  "CurlyBracketOpen",
	CurlyBracketClose: "CurlyBracketClose",
	ElementDelimiter:  "ElementDelimiter",
	KeyDelimiter:      "KeyDelimiter",
	Null:              "Null",
	Boolean:           "Boolean",
	Number:            "Number",
	String:            "String",
}

// Kinds lists every token kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsOpen reports whether k opens a container.
func (k Kind) IsOpen() bool {
	return k == BracketOpen || k == CurlyBracketOpen
}

// IsClose reports whether k closes a container.
func (k Kind) IsClose() bool {
	return k == BracketClose || k == CurlyBracketClose
}

// NumberValue is a JSON number split into its mantissa and optional exponent.
type NumberValue struct {
	Mantissa    float64
	Exponent    int16
	HasExponent bool
}

// String renders the number as JSON text: the mantissa in plain decimal
// notation followed by e<exponent> when an exponent is present.
func (n NumberValue) String() string {
	s := formatMantissa(n.Mantissa)
	if n.HasExponent {
		s += "e" + strconv.Itoa(int(n.Exponent))
	}
	return s
}

// Token is a single lexical unit. Only the field matching Kind is set.
type Token struct {
	Kind   Kind
	Bool   bool
	Number NumberValue
	Text   string
}

func punct(k Kind) Token { return Token{Kind: k} }

// NullToken returns the null literal.
func NullToken() Token { return Token{Kind: Null} }

// BoolToken returns a boolean literal.
func BoolToken(b bool) Token { return Token{Kind: Boolean, Bool: b} }

// StringToken returns a string literal holding text verbatim.
func StringToken(text string) Token { return Token{Kind: String, Text: text} }

// NumberToken returns a number without an exponent.
func NumberToken(mantissa float64) Token {
	return Token{Kind: Number, Number: NumberValue{Mantissa: mantissa}}
}

// NumberTokenExp returns a number with an exponent.
func NumberTokenExp(mantissa float64, exponent int16) Token {
	return Token{Kind: Number, Number: NumberValue{Mantissa: mantissa, Exponent: exponent, HasExponent: true}}
}

// Value returns the Go value carried by the token: bool, NumberValue,
// string, or nil for punctuation and null.
func (t Token) Value() any {
	switch t.Kind {
	case Boolean:
		return t.Bool
	case Number:
		return t.Number
	case String:
		return t.Text
	default:
		return nil
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Boolean:
		return fmt.Sprintf("Boolean(%t)", t.Bool)
	case Number:
		if t.Number.HasExponent {
			return fmt.Sprintf("Number(%s, %d)", formatMantissa(t.Number.Mantissa), t.Number.Exponent)
		}
		return fmt.Sprintf("Number(%s)", formatMantissa(t.Number.Mantissa))
	case String:
		return fmt.Sprintf("String(%q)", t.Text)
	default:
		return t.Kind.String()
	}
}

func formatMantissa(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
