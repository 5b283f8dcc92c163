// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package properties

// A TokenSequence is the mutable, ordered list of tokens backing a
// Document (spec.md §3). It is the source of truth for formatting: writing
// every token's Raw text in order reproduces the original input exactly
// (spec.md §4.1, "round-trip guarantee"). Insertions and entry removals go
// through a cursor (see the cursor package); in-place replacements, removal
// of surplus comment lines and clearing call the primitives below directly.
type TokenSequence struct {
	tokens []Token
}

// NewTokenSequence constructs a sequence from an existing slice of tokens.
// The slice is taken by reference; do not mutate it outside the sequence
// afterward.
func NewTokenSequence(tokens []Token) *TokenSequence {
	return &TokenSequence{tokens: tokens}
}

// Len reports the number of tokens in the sequence.
func (s *TokenSequence) Len() int { return len(s.tokens) }

// At returns the token at position i. The caller must ensure 0 <= i < Len().
func (s *TokenSequence) At(i int) Token { return s.tokens[i] }

// Tokens returns the live slice of tokens. Callers must not retain it across
// a mutating call (InsertAt/ReplaceAt/RemoveAt), since those may reallocate.
func (s *TokenSequence) Tokens() []Token { return s.tokens }

// Raw concatenates the raw text of every token in order, reproducing the
// original input (or the edited equivalent) exactly.
func (s *TokenSequence) Raw() string {
	var n int
	for _, t := range s.tokens {
		n += len(t.Raw)
	}
	buf := make([]byte, 0, n)
	for _, t := range s.tokens {
		buf = append(buf, t.Raw...)
	}
	return string(buf)
}

// InsertAt inserts tok before position i. If i == Len(), tok is appended.
func (s *TokenSequence) InsertAt(i int, tok Token) {
	if i >= len(s.tokens) {
		s.tokens = append(s.tokens, tok)
		return
	}
	s.tokens = append(s.tokens, Token{})
	copy(s.tokens[i+1:], s.tokens[i:])
	s.tokens[i] = tok
}

// ReplaceAt overwrites the token at position i.
func (s *TokenSequence) ReplaceAt(i int, tok Token) { s.tokens[i] = tok }

// RemoveAt deletes the token at position i.
func (s *TokenSequence) RemoveAt(i int) {
	s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
}

// Clear empties the sequence.
func (s *TokenSequence) Clear() { s.tokens = nil }
