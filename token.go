// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package properties implements a lossless reader and writer for the
// classic ".properties" line-oriented key/value file format, together with
// an ordered, editable view of the decoded keys and values it contains.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for the properties grammar.
// Construct a scanner from an io.Reader and call its Next method to iterate
// over the stream:
//
//	s := properties.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// Next returns false when the input has been fully consumed or a scan error
// occurred; Err reports which.
//
// # Documents
//
// The document package builds on the token stream produced here to offer an
// ordered map of decoded keys to decoded values whose edits are reflected
// back into the token stream, preserving the formatting of everything else.
package properties

import "strings"

// Kind is the type tag of a lexical Token.
type Kind byte

// The kinds of token the scanner produces.
const (
	Invalid Kind = iota
	Key
	Separator
	Value
	Comment
	Whitespace
)

var kindName = [...]string{
	Invalid:    "invalid",
	Key:        "key",
	Separator:  "separator",
	Value:      "value",
	Comment:    "comment",
	Whitespace: "whitespace",
}

func (k Kind) String() string {
	if int(k) < len(kindName) {
		return kindName[k]
	}
	return kindName[Invalid]
}

// A Token is an atomic unit of the preserved representation of a properties
// document. Raw holds the exact characters taken from the input (or
// synthesized to match on a later edit) and is never mutated in place once
// produced; an edit replaces a Token wholesale instead. Decoded only applies
// to Key and Value tokens: when an escape sequence was present in Raw,
// Decoded holds the text with escapes resolved, otherwise Decoded is empty
// and Text reports Raw unchanged.
type Token struct {
	Kind    Kind
	Raw     string
	Decoded string // resolved text for Key/Value tokens with escapes; "" if none
	escaped bool   // true iff Decoded differs from Raw and must be used
}

// NewToken constructs a token of the given kind whose raw and decoded forms
// are identical (no escapes).
func NewToken(kind Kind, raw string) Token {
	return Token{Kind: kind, Raw: raw}
}

// NewEscapedToken constructs a Key or Value token whose raw form contains
// escape sequences that decode to text.
func NewEscapedToken(kind Kind, raw, text string) Token {
	return Token{Kind: kind, Raw: raw, Decoded: text, escaped: raw != text}
}

// Text returns the decoded form of a Key or Value token, or Raw for any
// other kind (or for a Key/Value token that had no escapes).
func (t Token) Text() string {
	if t.escaped {
		return t.Decoded
	}
	return t.Raw
}

// IsEOL reports whether t is a Whitespace token whose raw text ends in a
// line terminator ('\n' or '\r').
func (t Token) IsEOL() bool {
	if t.Kind != Whitespace || t.Raw == "" {
		return false
	}
	last := t.Raw[len(t.Raw)-1]
	return last == '\n' || last == '\r'
}

// IsWS reports whether t is a Whitespace token that does not end a line.
func (t Token) IsWS() bool {
	return t.Kind == Whitespace && !t.IsEOL()
}

// IsComment reports whether t is a Comment token.
func (t Token) IsComment() bool { return t.Kind == Comment }

// CommentPrefix returns the leading "#"/"#<space>"/"!"/"!<space>" prefix of
// a comment token's raw text, or "" if t is not a comment.
func (t Token) CommentPrefix() string {
	if t.Kind != Comment {
		return ""
	}
	if strings.HasPrefix(t.Raw, "# ") || strings.HasPrefix(t.Raw, "! ") {
		return t.Raw[:2]
	}
	if len(t.Raw) > 0 && (t.Raw[0] == '#' || t.Raw[0] == '!') {
		return t.Raw[:1]
	}
	return ""
}

// CommentText returns the comment body with its prefix stripped.
func (t Token) CommentText() string {
	return strings.TrimPrefix(t.Raw, t.CommentPrefix())
}
