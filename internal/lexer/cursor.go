package lexer

import (
	"errors"
	"io"
	"strings"
)

// cursor is a forward-only view over a rune source with one rune of lookahead.
type cursor struct {
	src    io.RuneReader
	ahead  rune
	filled bool
	done   bool
	pos    int   // runes consumed so far
	err    error // first read error other than io.EOF
}

func (c *cursor) fill() {
	if c.filled || c.done {
		return
	}
	r, _, err := c.src.ReadRune()
	if err != nil {
		c.done = true
		if !errors.Is(err, io.EOF) {
			c.err = err
		}
		return
	}
	c.ahead = r
	c.filled = true
}

// peek returns the next rune without consuming it.
func (c *cursor) peek() (rune, bool) {
	c.fill()
	return c.ahead, c.filled
}

// next consumes and returns the next rune.
func (c *cursor) next() (rune, bool) {
	r, ok := c.peek()
	if ok {
		c.filled = false
		c.pos++
	}
	return r, ok
}

// readWhile consumes runes while keep reports true and appends them to sb.
func (c *cursor) readWhile(sb *strings.Builder, keep func(rune) bool) {
	for {
		r, ok := c.peek()
		if !ok || !keep(r) {
			return
		}
		c.next()
		sb.WriteRune(r)
	}
}

// takeErr returns the pending read error once.
func (c *cursor) takeErr() error {
	err := c.err
	c.err = nil
	return err
}
