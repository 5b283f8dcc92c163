// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package document

import (
	properties "github.com/codejive/go-properties"
	"github.com/codejive/go-properties/internal/escape"
)

// Escaped returns an independent copy of d whose KEY and VALUE token raw
// text has every rune above 0x00FF rewritten as a "\uXXXX" escape, the
// conventional ASCII-safe form for ".properties" files. The defaults chain,
// if any, is transformed recursively. The decoded entries are unchanged,
// since the transform is designed to decode back to the same text.
func (d *Document) Escaped() *Document {
	return d.transform(escape.ToUnicodeEscapes)
}

// Unescaped returns an independent copy of d with every "\uXXXX" escape in
// KEY and VALUE token raw text rewritten to the literal character it
// denotes. It is the inverse of Escaped.
func (d *Document) Unescaped() *Document {
	return d.transform(escape.FromUnicodeEscapes)
}

func (d *Document) transform(rewrite func(string) string) *Document {
	out := New()
	n := d.tokens.Len()
	toks := make([]properties.Token, n)
	for i := 0; i < n; i++ {
		t := d.tokens.At(i)
		if t.Kind == properties.Key || t.Kind == properties.Value {
			toks[i] = tokenOf(t.Kind, rewrite(t.Raw), t.Text())
		} else {
			toks[i] = t
		}
	}
	out.tokens = properties.NewTokenSequence(toks)
	out.entries = d.entries.clone()
	if d.defaults != nil {
		out.defaults = d.defaults.transform(rewrite)
	}
	return out
}
