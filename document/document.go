// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package document

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strings"

	properties "github.com/codejive/go-properties"
	"github.com/codejive/go-properties/document/cursor"
	"github.com/codejive/go-properties/internal/escape"
)

// A Document is an ordered, editable view of a properties file. It holds a
// token sequence (the verbatim, formatting-preserving representation) and an
// insertion-ordered map of the decoded keys and values the tokens encode.
// Reading a value consults the map; every write goes through the token
// sequence first and updates the map to match.
type Document struct {
	tokens   *properties.TokenSequence
	entries  *orderedMap
	defaults *Document
}

// New returns an empty Document with no defaults.
func New() *Document {
	return &Document{tokens: properties.NewTokenSequence(nil), entries: newOrderedMap()}
}

// NewWithDefaults returns an empty Document that falls back to defaults for
// GetProperty and StringPropertyNames lookups.
func NewWithDefaults(defaults *Document) *Document {
	d := New()
	d.defaults = defaults
	return d
}

// Defaults returns the document's default lookup chain, or nil.
func (d *Document) Defaults() *Document { return d.defaults }

// SetDefaults replaces the document's default lookup chain.
func (d *Document) SetDefaults(defaults *Document) { d.defaults = defaults }

// Load replaces the contents of d with the tokens and entries scanned from r.
// If the scanner fails partway through, d is left holding whatever tokens and
// entries were accumulated before the error, and the error is returned.
func (d *Document) Load(r io.Reader) error {
	toks, err := properties.Tokens(r)
	d.tokens = properties.NewTokenSequence(toks)
	d.entries = newOrderedMap()
	var key string
	for _, t := range toks {
		switch t.Kind {
		case properties.Key:
			key = t.Text()
		case properties.Value:
			d.entries.set(key, t.Text())
		}
	}
	return err
}

// LoadString is a convenience wrapper around Load for in-memory input.
func (d *Document) LoadString(s string) error {
	return d.Load(strings.NewReader(s))
}

// LoadFile opens path and loads its contents, closing the file on every exit
// path.
func (d *Document) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.Load(f)
}

// Get returns the decoded value of key in this document, ignoring defaults.
func (d *Document) Get(key string) (string, bool) {
	return d.entries.get(key)
}

// GetRaw returns the raw (still-escaped) text of key's value token.
func (d *Document) GetRaw(key string) (string, bool) {
	idx, ok := d.indexOfKey(key)
	if !ok {
		return "", false
	}
	return d.tokens.At(idx + 2).Raw, true
}

// GetProperty returns the decoded value of key, falling back to the defaults
// chain if key is not present in this document.
func (d *Document) GetProperty(key string) (string, bool) {
	if v, ok := d.entries.get(key); ok {
		return v, true
	}
	if d.defaults != nil {
		return d.defaults.GetProperty(key)
	}
	return "", false
}

// StringPropertyNames returns every key reachable from this document,
// including its defaults chain, in order: the defaults' names first (with
// ones shadowed by this document's own keys kept at their defaults
// position), then any of this document's keys that defaults didn't have.
func (d *Document) StringPropertyNames() []string {
	seen := make(map[string]bool)
	var out []string
	if d.defaults != nil {
		for _, k := range d.defaults.StringPropertyNames() {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	for _, k := range d.entries.keys() {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// Put sets key's value, updating the existing VALUE token in place if key is
// already present, or appending a new KEY/SEPARATOR/VALUE triple otherwise.
func (d *Document) Put(key, value string) {
	d.put(key, keyToken(key), valueToken(value))
}

// PutRaw is like Put, but rawKey and rawValue are taken to already be in
// escaped (token raw) form; their decoded forms are derived from them.
func (d *Document) PutRaw(rawKey, rawValue string) error {
	key, _, err := escape.Decode(rawKey)
	if err != nil {
		return err
	}
	value, _, err := escape.Decode(rawValue)
	if err != nil {
		return err
	}
	d.put(key, tokenOf(properties.Key, rawKey, key), tokenOf(properties.Value, rawValue, value))
	return nil
}

func (d *Document) put(key string, kt, vt properties.Token) {
	if idx, ok := d.indexOfKey(key); ok {
		d.tokens.ReplaceAt(idx+2, vt)
	} else {
		d.appendEntry(kt, vt)
	}
	d.entries.set(key, vt.Text())
}

// SetProperty sets key's value and, unconditionally, its attached comment
// block to comments (an empty comments clears any existing block).
func (d *Document) SetProperty(key, value string, comments ...string) error {
	d.Put(key, value)
	return d.SetComment(key, comments)
}

// Remove deletes key's KEY/SEPARATOR/VALUE triple (and its attached comment
// block) from the token sequence, and reports its prior decoded value.
func (d *Document) Remove(key string) (string, bool) {
	v, ok := d.entries.get(key)
	if !ok {
		return "", false
	}
	d.SetComment(key, nil)
	idx, _ := d.indexOfKey(key)
	c := cursor.At(d.tokens, idx)
	c.Remove() // KEY; cursor now sits on SEPARATOR
	c.Remove() // SEPARATOR; cursor now sits on VALUE
	c.Remove() // VALUE; cursor now sits on whatever follows
	if c.IsEOL() {
		c.Remove()
	}
	d.entries.delete(key)
	return v, true
}

// Clear empties the document of all tokens and entries.
func (d *Document) Clear() {
	d.tokens.Clear()
	d.entries.clear()
}

// Store writes d's token sequence to w. If headerLines is non-empty, any
// existing header comment is discarded and replaced by headerLines, written
// one per line (each normalized to carry a "#"/"!" comment prefix) followed
// by a blank line to detach it from the first property.
func (d *Document) Store(w io.Writer, headerLines ...string) error {
	bw := bufio.NewWriter(w)
	pos := 0
	if len(headerLines) > 0 {
		pos = skipHeaderCommentLines(d.tokens)
		nl := determineNewline(d.tokens)
		if err := writeHeader(bw, headerLines, nl); err != nil {
			return err
		}
	}
	for i := pos; i < d.tokens.Len(); i++ {
		if _, err := bw.WriteString(d.tokens.At(i).Raw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// StoreFile writes d to path, creating or truncating it, closing the file on
// every exit path.
func (d *Document) StoreFile(path string, headerLines ...string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.Store(f, headerLines...)
}

func writeHeader(w *bufio.Writer, headerLines []string, nl string) error {
	var lines []string
	for _, raw := range headerLines {
		lines = append(lines, splitLines(raw)...)
	}
	for _, line := range normalizeCommentLines(lines, "# ") {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if _, err := w.WriteString(nl); err != nil {
			return err
		}
	}
	_, err := w.WriteString(nl)
	return err
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func determineNewline(seq *properties.TokenSequence) string {
	sawCRLF, sawLF := false, false
	for i := 0; i < seq.Len(); i++ {
		t := seq.At(i)
		if !t.IsEOL() {
			continue
		}
		switch {
		case strings.HasSuffix(t.Raw, "\r\n"):
			sawCRLF = true
		case strings.HasSuffix(t.Raw, "\n"):
			sawLF = true
		}
	}
	switch {
	case sawCRLF && sawLF:
		return platformNewline()
	case sawCRLF:
		return "\r\n"
	default:
		return "\n"
	}
}

func platformNewline() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// appendEntry inserts a new KEY/SEPARATOR/VALUE triple after the last
// existing property, or (if the document has none yet) after any header
// comment.
func (d *Document) appendEntry(kt, vt properties.Token) {
	c := cursor.Last(d.tokens)
	c.PrevWhile(func(t properties.Token) bool {
		return t.Kind == properties.Whitespace || t.Kind == properties.Comment
	})
	if c.AtStart() {
		d.appendFirstEntry(kt, vt)
		return
	}
	valueIdx := c.Position()
	ins := cursor.At(d.tokens, valueIdx+1)
	if ins.IsEOL() {
		ins.Next()
	} else {
		ins.AddEOL()
	}
	ins.Add(kt)
	ins.Add(properties.NewToken(properties.Separator, "="))
	ins.Add(vt)
}

func (d *Document) appendFirstEntry(kt, vt properties.Token) {
	pos := headerCommentEnd(d.tokens)
	ins := cursor.At(d.tokens, pos)
	if pos > 0 {
		probe := cursor.At(d.tokens, pos)
		eols := 0
		for probe.IsEOL() {
			eols++
			probe.Next()
		}
		for eols < 2 {
			ins.AddEOL()
			eols++
		}
	}
	ins.Add(kt)
	ins.Add(properties.NewToken(properties.Separator, "="))
	ins.Add(vt)
}

// indexOfKey returns the position of the last KEY token decoding to key, so
// that a duplicated key in the input resolves consistently with the
// "last one wins" rule entries already follows.
func (d *Document) indexOfKey(key string) (int, bool) {
	found := -1
	for i := 0; i < d.tokens.Len(); i++ {
		if t := d.tokens.At(i); t.Kind == properties.Key && t.Text() == key {
			found = i
		}
	}
	if found < 0 {
		return 0, false
	}
	return found, true
}

func keyToken(key string) properties.Token {
	return tokenOf(properties.Key, escape.EscapeKey(key), key)
}

func valueToken(value string) properties.Token {
	return tokenOf(properties.Value, escape.EscapeValue(value), value)
}

func tokenOf(kind properties.Kind, raw, text string) properties.Token {
	if raw == text {
		return properties.NewToken(kind, raw)
	}
	return properties.NewEscapedToken(kind, raw, text)
}
