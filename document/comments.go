// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package document

import (
	"fmt"
	"strings"

	properties "github.com/codejive/go-properties"
	"github.com/codejive/go-properties/document/cursor"
)

// GetComment returns the decoded lines of the comment block attached to key,
// in source order, or nil if key has no attached comments (or isn't present
// at all).
func (d *Document) GetComment(key string) []string {
	idx, ok := d.indexOfKey(key)
	if !ok {
		return nil
	}
	positions := attachedCommentPositions(d.tokens, idx)
	if len(positions) == 0 {
		return nil
	}
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = d.tokens.At(p).CommentText()
	}
	return out
}

// GetPropertyComment is GetComment with defaults fallback: if key is not
// present in this document, the defaults chain is consulted instead.
func (d *Document) GetPropertyComment(key string) []string {
	if _, ok := d.entries.get(key); ok {
		return d.GetComment(key)
	}
	if d.defaults != nil {
		return d.defaults.GetPropertyComment(key)
	}
	return nil
}

// SetComment replaces key's attached comment block with comments, reusing
// the block's existing "#"/"#<space>"/"!"/"!<space>" prefix family (or "# "
// if the block was empty). It returns ErrNoSuchElement if key is not present.
func (d *Document) SetComment(key string, comments []string) error {
	idx, ok := d.indexOfKey(key)
	if !ok {
		return fmt.Errorf("%w: %q", properties.ErrNoSuchElement, key)
	}
	positions := attachedCommentPositions(d.tokens, idx)
	prefix := "# "
	if len(positions) > 0 {
		// "The first existing comment" means the first one found by the
		// backward walk that discovers the block, i.e. the one nearest the
		// key, not the first in file order.
		if p := d.tokens.At(positions[len(positions)-1]).CommentPrefix(); p != "" {
			prefix = p
		}
	}
	lines := normalizeCommentLines(comments, prefix)

	n, m := len(positions), len(lines)
	overlap := n
	if m < overlap {
		overlap = m
	}
	for i := 0; i < overlap; i++ {
		d.tokens.ReplaceAt(positions[i], properties.NewToken(properties.Comment, lines[i]))
	}
	switch {
	case n > m:
		start := positions[overlap]
		count := idx - start
		for i := 0; i < count; i++ {
			d.tokens.RemoveAt(start)
		}
	case m > n:
		c := cursor.At(d.tokens, idx)
		for i := overlap; i < m; i++ {
			c.Add(properties.NewToken(properties.Comment, lines[i]))
			c.AddEOL()
		}
	}
	return nil
}

// attachedCommentPositions walks backward from keyIdx, skipping at most one
// preceding non-EOL whitespace and then at most one preceding EOL whitespace,
// repeating for as long as a COMMENT token precedes. The returned positions
// are in source (ascending) order.
func attachedCommentPositions(seq *properties.TokenSequence, keyIdx int) []int {
	var positions []int
	pos := keyIdx - 1
	for {
		if pos >= 0 && seq.At(pos).IsWS() {
			pos--
		}
		if pos >= 0 && seq.At(pos).IsEOL() {
			pos--
		}
		if pos >= 0 && seq.At(pos).Kind == properties.Comment {
			positions = append(positions, pos)
			pos--
			continue
		}
		break
	}
	for i, j := 0, len(positions)-1; i < j; i, j = i+1, j-1 {
		positions[i], positions[j] = positions[j], positions[i]
	}
	return positions
}

// headerCommentEnd locates the position just past a leading header comment
// block: a single optional non-EOL whitespace, then repeated (COMMENT,
// optional EOL, optional non-EOL whitespace) runs. If this walk lands on a
// KEY, the comments belonged to that key's attached block rather than to a
// standalone header, and 0 is returned.
func headerCommentEnd(seq *properties.TokenSequence) int {
	n := seq.Len()
	pos := 0
	if pos < n && seq.At(pos).IsWS() {
		pos++
	}
	for pos < n && seq.At(pos).Kind == properties.Comment {
		pos++
		if pos < n && seq.At(pos).IsEOL() {
			pos++
		}
		if pos < n && seq.At(pos).IsWS() {
			pos++
		}
	}
	if pos < n && seq.At(pos).Kind == properties.Key {
		return 0
	}
	return pos
}

// skipHeaderCommentLines is headerCommentEnd, further advanced past any
// trailing end-of-line tokens; it reports the first position after the
// header (comments and their trailing blank lines) entirely.
func skipHeaderCommentLines(seq *properties.TokenSequence) int {
	pos := headerCommentEnd(seq)
	n := seq.Len()
	for pos < n && seq.At(pos).IsEOL() {
		pos++
	}
	return pos
}

// normalizeCommentLines prepends defaultPrefix to each line that doesn't
// already start with a "#"/"#<space>"/"!"/"!<space>" prefix. A line that does
// carry its own prefix becomes the running default for subsequent lines.
func normalizeCommentLines(lines []string, defaultPrefix string) []string {
	out := make([]string, len(lines))
	running := defaultPrefix
	for i, line := range lines {
		if p := commentLinePrefix(line); p != "" {
			running = p
			out[i] = line
			continue
		}
		out[i] = running + line
	}
	return out
}

func commentLinePrefix(line string) string {
	if strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "! ") {
		return line[:2]
	}
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
		return line[:1]
	}
	return ""
}
