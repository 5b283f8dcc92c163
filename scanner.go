// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package properties

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/codejive/go-properties/internal/escape"
)

// A Scanner reads lexical tokens from an input stream in the ".properties"
// grammar (spec.md §4.1). Each call to Next advances the scanner to the next
// token, or reports that scanning is done.
type Scanner struct {
	r   *bufio.Reader
	tok Token
	err error
	pos int // byte offset of the next unread rune, for error reporting

	pending []Token // synthetic tokens queued ahead of the next real one
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Next advances s to the next token of the input. It returns false when the
// input is exhausted or a scan error occurred; call Err to tell which.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	if len(s.pending) > 0 {
		s.tok, s.pending = s.pending[0], s.pending[1:]
		return true
	}
	tok, err := s.scanOne()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return false
	}
	s.tok = tok
	return true
}

// Token returns the most recent token produced by Next.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error that caused Next to return false, or nil at a clean
// end of input.
func (s *Scanner) Err() error { return s.err }

// Tokens scans the entirety of r and returns every token it produced. If a
// scan error occurs, it returns the tokens produced before the error together
// with that error.
func Tokens(r io.Reader) ([]Token, error) {
	s := NewScanner(r)
	var out []Token
	for s.Next() {
		out = append(out, s.Token())
	}
	if err := s.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// scanOne runs the state machine of spec.md §4.1 from its NONE state far
// enough to produce exactly one token (queuing any synthetic follow-up
// tokens in s.pending).
func (s *Scanner) scanOne() (Token, error) {
	ch, err := s.peek()
	if err == io.EOF {
		return Token{}, io.EOF
	} else if err != nil {
		return Token{}, err
	}

	switch {
	case escape.IsCommentPrefix(ch):
		return s.scanComment()
	case isWhitespaceChar(ch):
		return s.scanWhitespace()
	default:
		return s.scanKey()
	}
}

func isWhitespaceChar(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || escape.IsEOL(r)
}

func isSeparatorChar(r rune) bool {
	return r == ' ' || r == '\t' || escape.IsSeparator(r)
}

// scanComment consumes a run of characters from '#' or '!' up to (but not
// including) the next line terminator or EOF.
func (s *Scanner) scanComment() (Token, error) {
	var raw []byte
	for {
		ch, err := s.peek()
		if err == io.EOF || escape.IsEOL(ch) {
			break
		} else if err != nil {
			return Token{}, err
		}
		s.advance()
		raw = appendRune(raw, ch)
	}
	return NewToken(Comment, string(raw)), nil
}

// scanWhitespace consumes a run of whitespace characters, stopping
// immediately after the first line terminator it sees (spec.md §4.1).
func (s *Scanner) scanWhitespace() (Token, error) {
	var raw []byte
	for {
		ch, err := s.peek()
		if err == io.EOF {
			break
		} else if err != nil {
			return Token{}, err
		} else if !isWhitespaceChar(ch) {
			break
		}
		s.advance()
		raw = appendRune(raw, ch)
		if ch == '\r' {
			if nch, nerr := s.peek(); nerr == nil && nch == '\n' {
				s.advance()
				raw = appendRune(raw, nch)
			}
			break
		}
		if ch == '\n' {
			break
		}
	}
	return NewToken(Whitespace, string(raw)), nil
}

// scanKey consumes a KEY token, then queues the SEPARATOR and VALUE tokens
// that complete its triple.
func (s *Scanner) scanKey() (Token, error) {
	raw, err := s.scanRun(isSeparatorChar, true)
	if err != nil {
		return Token{}, err
	}
	text, changed, derr := escape.Decode(string(raw))
	if derr != nil {
		return Token{}, s.fail(derr)
	}
	key := tokenOf(Key, string(raw), text, changed)

	ch, eerr := s.peek()
	if eerr == io.EOF || escape.IsEOL(ch) {
		// No separator at all on this line: synthesize an empty separator
		// and value so the KEY/SEPARATOR/VALUE triple invariant holds.
		s.pending = append(s.pending, NewToken(Separator, ""), NewToken(Value, ""))
		return key, nil
	}

	sep, err := s.scanSeparator()
	if err != nil {
		return Token{}, err
	}
	val, err := s.scanValue()
	if err != nil {
		return Token{}, err
	}
	s.pending = append(s.pending, sep, val)
	return key, nil
}

// scanSeparator consumes a run of SEP_CHARs, stopping after the first
// structural '=' or ':' it finds; any further delimiter characters are left
// for the VALUE that follows (spec.md §4.1: "multi-separator").
func (s *Scanner) scanSeparator() (Token, error) {
	var raw []byte
	seenDelim := false
	for {
		ch, err := s.peek()
		if err == io.EOF || !isSeparatorChar(ch) {
			break
		} else if err != nil {
			return Token{}, err
		}
		if escape.IsSeparator(ch) {
			if seenDelim {
				break
			}
			seenDelim = true
		}
		s.advance()
		raw = appendRune(raw, ch)
	}
	return NewToken(Separator, string(raw)), nil
}

// scanValue consumes a VALUE token, honoring "\<EOL>" continuations.
func (s *Scanner) scanValue() (Token, error) {
	raw, err := s.scanRun(escape.IsEOL, false)
	if err != nil {
		return Token{}, err
	}
	text, changed, derr := escape.Decode(string(raw))
	if derr != nil {
		return Token{}, s.fail(derr)
	}
	return tokenOf(Value, string(raw), text, changed), nil
}

// scanRun consumes characters (honoring backslash escapes, including EOL
// continuations) until a character satisfying stop is found outside of an
// escape, or EOF. If stopAtEOL is true, an unescaped line terminator also
// ends the run even though stop may not report it.
func (s *Scanner) scanRun(stop func(rune) bool, stopAtEOL bool) ([]byte, error) {
	var raw []byte
	for {
		ch, err := s.peek()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if ch == '\\' {
			s.advance()
			raw = appendRune(raw, ch)
			esc, err := s.scanEscapeTail()
			if err != nil {
				return nil, err
			}
			raw = append(raw, esc...)
			continue
		}
		if stopAtEOL && escape.IsEOL(ch) {
			break
		}
		if stop(ch) {
			break
		}
		s.advance()
		raw = appendRune(raw, ch)
	}
	return raw, nil
}

// scanEscapeTail consumes the character(s) following a backslash already
// appended to the raw buffer: a single character, a "uXXXX" unicode escape,
// or a line terminator (and, for "\r", an immediately following "\n") plus
// the leading inline whitespace of the continued line.
func (s *Scanner) scanEscapeTail() ([]byte, error) {
	ch, err := s.peek()
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	s.advance()
	raw := appendRune(nil, ch)

	if ch == 'u' {
		for i := 0; i < 4; i++ {
			hch, herr := s.peek()
			if herr != nil || !isHexDigit(hch) {
				return nil, s.fail(fmt.Errorf("%w: incomplete escape", escape.ErrInvalidUnicodeEscape))
			}
			s.advance()
			raw = appendRune(raw, hch)
		}
		return raw, nil
	}

	if escape.IsEOL(ch) {
		if ch == '\r' {
			if nch, nerr := s.peek(); nerr == nil && nch == '\n' {
				s.advance()
				raw = appendRune(raw, nch)
			}
		}
		for {
			wch, werr := s.peek()
			if werr != nil || !escape.IsSpace(wch) {
				break
			}
			s.advance()
			raw = appendRune(raw, wch)
		}
	}
	return raw, nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func tokenOf(kind Kind, raw, text string, changed bool) Token {
	if !changed {
		return NewToken(kind, raw)
	}
	return NewEscapedToken(kind, raw, text)
}

func appendRune(buf []byte, r rune) []byte {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(buf, tmp[:n]...)
}

// peek reports the next rune without consuming it.
func (s *Scanner) peek() (rune, error) {
	ch, _, err := s.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if err := s.r.UnreadRune(); err != nil {
		return 0, err
	}
	return ch, nil
}

// advance consumes the rune last returned by peek.
func (s *Scanner) advance() {
	_, n, _ := s.r.ReadRune()
	s.pos += n
}

func (s *Scanner) fail(err error) error {
	return &ScanError{Offset: s.pos, Err: err}
}
