// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"testing"

	properties "github.com/codejive/go-properties"
	"github.com/codejive/go-properties/document/cursor"
)

func seqOf(raws ...string) *properties.TokenSequence {
	toks := make([]properties.Token, len(raws))
	for i, r := range raws {
		toks[i] = properties.NewToken(properties.Whitespace, r)
	}
	return properties.NewTokenSequence(toks)
}

func TestFirstLast(t *testing.T) {
	empty := seqOf()
	if c := cursor.First(empty); !c.AtStart() {
		t.Errorf("First(empty).AtStart() = false, want true")
	}
	if c := cursor.Last(empty); !c.AtStart() {
		t.Errorf("Last(empty).AtStart() = false, want true")
	}

	seq := seqOf("a", "b", "c")
	if c := cursor.First(seq); c.Position() != 0 {
		t.Errorf("First(seq).Position() = %d, want 0", c.Position())
	}
	if c := cursor.Last(seq); c.Position() != 2 {
		t.Errorf("Last(seq).Position() = %d, want 2", c.Position())
	}
}

func TestSkipClamps(t *testing.T) {
	seq := seqOf("a", "b", "c")
	c := cursor.At(seq, 1)
	c.Skip(-100)
	if c.Position() != -1 {
		t.Errorf("Skip(-100).Position() = %d, want -1", c.Position())
	}
	c = cursor.At(seq, 1)
	c.Skip(100)
	if c.Position() != seq.Len() {
		t.Errorf("Skip(100).Position() = %d, want %d", c.Position(), seq.Len())
	}
}

func TestNextPrevWhile(t *testing.T) {
	seq := seqOf("a", "b", "c", "d")
	c := cursor.First(seq)
	isAB := func(t properties.Token) bool { return t.Raw == "a" || t.Raw == "b" }
	n := c.NextCount(isAB)
	if n != 2 || c.Position() != 2 {
		t.Errorf("NextCount: n=%d pos=%d, want n=2 pos=2", n, c.Position())
	}

	c2 := cursor.Last(seq)
	isCD := func(t properties.Token) bool { return t.Raw == "c" || t.Raw == "d" }
	m := c2.PrevCount(isCD)
	if m != 2 || c2.Position() != 1 {
		t.Errorf("PrevCount: m=%d pos=%d, want m=2 pos=1", m, c2.Position())
	}
}

func TestAddAppendsInOrder(t *testing.T) {
	seq := seqOf()
	c := cursor.First(seq)
	c.Add(properties.NewToken(properties.Key, "a"))
	c.Add(properties.NewToken(properties.Separator, "="))
	c.Add(properties.NewToken(properties.Value, "b"))
	if got, want := seq.Raw(), "a=b"; got != want {
		t.Errorf("seq.Raw() = %q, want %q", got, want)
	}
}

func TestAddInsertsBeforeCurrent(t *testing.T) {
	seq := seqOf("b", "c")
	c := cursor.First(seq)
	c.Add(properties.NewToken(properties.Whitespace, "a"))
	if got, want := seq.Raw(), "abc"; got != want {
		t.Errorf("seq.Raw() = %q, want %q", got, want)
	}
	if c.Position() != 1 {
		t.Errorf("Position() after Add = %d, want 1", c.Position())
	}
}

func TestReplace(t *testing.T) {
	seq := seqOf("a", "b", "c")
	cursor.At(seq, 1).Replace(properties.NewToken(properties.Whitespace, "X"))
	if got, want := seq.Raw(), "aXc"; got != want {
		t.Errorf("seq.Raw() = %q, want %q", got, want)
	}
}

func TestRemoveLeavesIndexOnNext(t *testing.T) {
	seq := seqOf("a", "b", "c")
	c := cursor.At(seq, 1)
	c.Remove()
	if got, want := seq.Raw(), "ac"; got != want {
		t.Errorf("seq.Raw() = %q, want %q", got, want)
	}
	if c.Position() != 1 || c.Raw() != "c" {
		t.Errorf("after Remove, position=%d raw=%q, want position=1 raw=%q", c.Position(), c.Raw(), "c")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	seq := seqOf("a", "b", "c")
	c := cursor.At(seq, 1)
	c2 := c.Copy()
	c2.Next()
	if c.Position() == c2.Position() {
		t.Errorf("Copy shared state: both at %d", c.Position())
	}
}
