// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape implements the escape and decode rules for the classic
// ".properties" key/value grammar: control-character escapes, "\uXXXX"
// Unicode escapes, and value continuation lines.
package escape

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var hexDigit = []byte("0123456789abcdef")

var controlEsc = [...]byte{
	'\t': 't',
	'\n': 'n',
	'\r': 'r',
	'\f': 'f',
}

// ErrInvalidUnicodeEscape reports a "\uXXXX" escape with fewer than four
// hexadecimal digits.
var ErrInvalidUnicodeEscape = errors.New("invalid unicode escape")

// IsSeparator reports whether r is a key/value separator character.
func IsSeparator(r rune) bool { return r == '=' || r == ':' }

// IsSpace reports whether r is an inline (non-EOL) space character.
func IsSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\f' }

// IsEOL reports whether r is a line terminator character.
func IsEOL(r rune) bool { return r == '\n' || r == '\r' }

// IsCommentPrefix reports whether r begins a comment line.
func IsCommentPrefix(r rune) bool { return r == '#' || r == '!' }

// EscapeValue renders s as the raw text of a VALUE token: backslashes and
// control characters ('\n','\r','\t','\f') are escaped; space, '=', and ':'
// are left alone, since they carry no special meaning once past the key and
// separator.
func EscapeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if esc, ok := controlEscOf(r); ok {
			b.WriteByte('\\')
			b.WriteByte(esc)
			continue
		}
		if r == '\\' {
			b.WriteString(`\\`)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeKey renders s as the raw text of a KEY token: as EscapeValue, plus
// space, '=', and ':' are escaped so that a key containing any of the
// grammar's delimiter characters round-trips correctly.
func EscapeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if esc, ok := controlEscOf(r); ok {
			b.WriteByte('\\')
			b.WriteByte(esc)
			continue
		}
		if r == '\\' || r == ' ' || r == '=' || r == ':' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func controlEscOf(r rune) (byte, bool) {
	if r >= 0 && int(r) < len(controlEsc) {
		if c := controlEsc[r]; c != 0 {
			return c, true
		}
	}
	return 0, false
}

// Decode resolves the escape sequences in raw (the verbatim text of a Key or
// Value token) and reports whether any escapes were present. Recognized
// escapes are '\t','\f','\n','\r','\uXXXX', a line continuation ('\' at the
// end of a line, which along with the line terminator and the following
// line's leading inline whitespace contributes nothing to the decoded
// text), and '\' followed by any other character (the backslash is dropped,
// the character is kept).
func Decode(raw string) (text string, changed bool, err error) {
	if !strings.ContainsRune(raw, '\\') {
		return raw, false, nil
	}
	src := mem.S(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		if r != '\\' {
			b.WriteRune(r)
			src = src.SliceFrom(n)
			continue
		}
		src = src.SliceFrom(n)
		if src.Len() == 0 {
			// A trailing lone backslash has nothing to escape; keep it.
			b.WriteByte('\\')
			break
		}
		r2, n2 := mem.DecodeRune(src)
		switch {
		case r2 == 't':
			b.WriteByte('\t')
			src = src.SliceFrom(n2)
		case r2 == 'f':
			b.WriteByte('\f')
			src = src.SliceFrom(n2)
		case r2 == 'n':
			b.WriteByte('\n')
			src = src.SliceFrom(n2)
		case r2 == 'r':
			b.WriteByte('\r')
			src = src.SliceFrom(n2)
		case r2 == 'u':
			src = src.SliceFrom(n2)
			if src.Len() < 4 {
				return "", false, fmt.Errorf("%w: %q", ErrInvalidUnicodeEscape, src.StringCopy())
			}
			v, herr := parseHex4(src.SliceTo(4))
			if herr != nil {
				return "", false, fmt.Errorf("%w: %v", ErrInvalidUnicodeEscape, herr)
			}
			b.WriteRune(rune(v))
			src = src.SliceFrom(4)
		case IsEOL(r2):
			src = src.SliceFrom(n2)
			if r2 == '\r' && src.Len() > 0 {
				if r3, n3 := mem.DecodeRune(src); r3 == '\n' {
					src = src.SliceFrom(n3)
				}
			}
			for src.Len() > 0 {
				rw, nw := mem.DecodeRune(src)
				if !IsSpace(rw) {
					break
				}
				src = src.SliceFrom(nw)
			}
		default:
			b.WriteRune(r2)
			src = src.SliceFrom(n2)
		}
	}
	return b.String(), true, nil
}

func parseHex4(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}

// ToUnicodeEscapes rewrites every rune of s greater than 0x00FF as a
// lowercase-hex "\uXXXX" escape, leaving all other characters unchanged.
// It is used to build the "escaped" view of a document.
func ToUnicodeEscapes(s string) string {
	var b strings.Builder
	needsEscape := false
	for _, r := range s {
		if r > 0x00FF {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return s
	}
	b.Grow(len(s))
	for _, r := range s {
		if r <= 0x00FF {
			b.WriteRune(r)
			continue
		}
		writeUnicodeEscape(&b, r)
	}
	return b.String()
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	if r > 0xFFFF {
		r1, r2 := utf16Surrogates(r)
		writeUnicodeEscape(b, r1)
		writeUnicodeEscape(b, r2)
		return
	}
	b.WriteString(`\u`)
	for i := 12; i >= 0; i -= 4 {
		b.WriteByte(hexDigit[(r>>uint(i))&0xF])
	}
}

func utf16Surrogates(r rune) (rune, rune) {
	r -= 0x10000
	return 0xD800 + (r >> 10), 0xDC00 + (r & 0x3FF)
}

// FromUnicodeEscapes rewrites every "\uXXXX" sequence in s to the literal
// character it denotes, leaving all other content (including other kinds of
// backslash escape) unchanged. It is used to build the "unescaped" view of
// a document, and is idempotent: a string with no "\uXXXX" sequences left
// is returned unchanged.
func FromUnicodeEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if v, n, ok := readUnicodeEscape(s[i:]); ok {
			if r2, n2, ok2 := readUnicodeEscape(s[i+n:]); ok2 && utf16.IsSurrogate(rune(v)) && utf16.IsSurrogate(rune(r2)) {
				b.WriteRune(utf16.DecodeRune(rune(v), rune(r2)))
				i += n + n2
				continue
			}
			if utf8.ValidRune(rune(v)) && !utf16.IsSurrogate(rune(v)) {
				b.WriteRune(rune(v))
				i += n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// readUnicodeEscape reads a leading "\uXXXX" sequence from s.
func readUnicodeEscape(s string) (value int64, n int, ok bool) {
	if len(s) < 6 || s[0] != '\\' || s[1] != 'u' {
		return 0, 0, false
	}
	v, err := parseHex4(mem.S(s[2:6]))
	if err != nil {
		return 0, 0, false
	}
	return v, 6, true
}
