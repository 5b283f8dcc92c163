// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements a bidirectional positional handle over a
// properties.TokenSequence (spec.md §4.2). A Document appends entries, adds
// comment lines and removes entries by cursor navigation followed by a
// mutation, mirroring org.codejive.properties.Cursor in the Java original
// this package's semantics are ported from. In-place replacement of value
// and comment tokens, deletion of surplus comment lines and Clear do not use
// a cursor; they call the TokenSequence primitives directly.
package cursor

import "github.com/codejive/go-properties"

// A Predicate reports whether a token should be consumed by a conditional
// navigation step.
type Predicate func(properties.Token) bool

// IsType returns a Predicate matching any of the given kinds.
func IsType(kinds ...properties.Kind) Predicate {
	return func(t properties.Token) bool {
		for _, k := range kinds {
			if t.Kind == k {
				return true
			}
		}
		return false
	}
}

// A Cursor is a mutable handle referring to a position in a token sequence
// by integer index. Positions range over [-1, Len()] inclusive; -1 and
// Len() are the "before start" and "after end" sentinel positions.
type Cursor struct {
	seq   *properties.TokenSequence
	index int
}

// At constructs a cursor at the given index into seq.
func At(seq *properties.TokenSequence, index int) *Cursor {
	return &Cursor{seq: seq, index: index}
}

// First constructs a cursor at the first token of seq, or the "before
// start" sentinel if seq is empty.
func First(seq *properties.TokenSequence) *Cursor {
	if seq.Len() == 0 {
		return At(seq, -1)
	}
	return At(seq, 0)
}

// Last constructs a cursor at the last token of seq (or the "before start"
// sentinel, -1, if seq is empty).
func Last(seq *properties.TokenSequence) *Cursor {
	return At(seq, seq.Len()-1)
}

// AtStart reports whether c is positioned before the first token.
func (c *Cursor) AtStart() bool { return c.index < 0 }

// Position reports c's current index.
func (c *Cursor) Position() int { return c.index }

// HasToken reports whether c currently refers to an in-bounds token.
func (c *Cursor) HasToken() bool { return c.index >= 0 && c.index < c.seq.Len() }

// Token returns the token under the cursor. The caller must check HasToken
// first; Token panics if the cursor is at a sentinel position.
func (c *Cursor) Token() properties.Token { return c.seq.At(c.index) }

// Raw returns the raw text of the token under the cursor.
func (c *Cursor) Raw() string { return c.Token().Raw }

// Text returns the decoded text of the token under the cursor.
func (c *Cursor) Text() string { return c.Token().Text() }

// Kind returns the kind of the token under the cursor.
func (c *Cursor) Kind() properties.Kind { return c.Token().Kind }

// IsType reports whether the token under the cursor has one of the given
// kinds. It is false at a sentinel position.
func (c *Cursor) IsType(kinds ...properties.Kind) bool {
	return c.HasToken() && IsType(kinds...)(c.Token())
}

// IsWS reports whether the token under the cursor is non-EOL whitespace.
func (c *Cursor) IsWS() bool { return c.HasToken() && c.Token().IsWS() }

// IsEOL reports whether the token under the cursor is an EOL whitespace
// token.
func (c *Cursor) IsEOL() bool { return c.HasToken() && c.Token().IsEOL() }

// Skip moves the cursor by steps (negative moves backward), clamping to the
// sentinel bounds. It returns c to permit chaining.
func (c *Cursor) Skip(steps int) *Cursor {
	c.index += steps
	if c.index < -1 {
		c.index = -1
	} else if c.index > c.seq.Len() {
		c.index = c.seq.Len()
	}
	return c
}

// Next moves the cursor one position forward.
func (c *Cursor) Next() *Cursor { return c.Skip(1) }

// Prev moves the cursor one position backward.
func (c *Cursor) Prev() *Cursor { return c.Skip(-1) }

// NextIf advances the cursor one step if the current token satisfies
// accept, reporting whether the cursor now refers to an in-bounds token.
func (c *Cursor) NextIf(accept Predicate) bool {
	if c.HasToken() && accept(c.Token()) {
		return c.Next().HasToken()
	}
	return false
}

// PrevIf retreats the cursor one step if the current token satisfies
// accept, reporting whether the step was taken.
func (c *Cursor) PrevIf(accept Predicate) bool {
	if c.HasToken() && accept(c.Token()) {
		c.Prev()
		return true
	}
	return false
}

// NextWhile advances the cursor for as long as accept matches.
func (c *Cursor) NextWhile(accept Predicate) *Cursor {
	for c.NextIf(accept) {
	}
	return c
}

// PrevWhile retreats the cursor for as long as accept matches.
func (c *Cursor) PrevWhile(accept Predicate) *Cursor {
	for c.PrevIf(accept) {
	}
	return c
}

// NextCount advances the cursor for as long as accept matches, returning
// the number of steps taken.
func (c *Cursor) NextCount(accept Predicate) int {
	n := 0
	for c.HasToken() && accept(c.Token()) {
		c.Next()
		n++
	}
	return n
}

// PrevCount retreats the cursor for as long as accept matches, returning
// the number of steps taken.
func (c *Cursor) PrevCount(accept Predicate) int {
	n := 0
	for c.PrevIf(accept) {
		n++
	}
	return n
}

// Add inserts tok before the current index (or appends it, if the cursor is
// past the end), and advances the cursor past it, so repeated calls to Add
// append tokens in order.
func (c *Cursor) Add(tok properties.Token) *Cursor {
	if c.index < 0 {
		c.index = 0
	}
	if c.HasToken() {
		c.seq.InsertAt(c.index, tok)
	} else {
		c.seq.InsertAt(c.seq.Len(), tok)
	}
	c.index++
	return c
}

// AddEOL inserts a conventional "\n" end-of-line token.
func (c *Cursor) AddEOL() *Cursor { return c.Add(properties.NewToken(properties.Whitespace, "\n")) }

// Replace overwrites the token under the cursor.
func (c *Cursor) Replace(tok properties.Token) *Cursor {
	c.seq.ReplaceAt(c.index, tok)
	return c
}

// Remove deletes the token under the cursor. The cursor's index is left
// unchanged, so it now refers to the token that followed the removed one
// (or the "after end" sentinel, if the removed token was last).
func (c *Cursor) Remove() {
	c.seq.RemoveAt(c.index)
}

// Copy returns an independent cursor at the same position over the same
// sequence.
func (c *Cursor) Copy() *Cursor { return At(c.seq, c.index) }
