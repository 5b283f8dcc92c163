// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package document_test

import (
	"strings"
	"testing"

	"github.com/codejive/go-properties/document"
)

func TestLoadAndGet(t *testing.T) {
	d := load(t, "a=1\nb=2\nc=3\n")
	for _, tc := range []struct {
		key, want string
	}{{"a", "1"}, {"b", "2"}, {"c", "3"}} {
		got, ok := d.Get(tc.key)
		if !ok || got != tc.want {
			t.Errorf("Get(%q) = (%q, %v), want (%q, true)", tc.key, got, ok, tc.want)
		}
	}
	if _, ok := d.Get("missing"); ok {
		t.Error("Get(\"missing\") reported ok")
	}
}

func TestDuplicateKeyLastWins(t *testing.T) {
	d := load(t, "a=1\na=2\n")
	got, ok := d.Get("a")
	if !ok || got != "2" {
		t.Errorf("Get(\"a\") = (%q, %v), want (\"2\", true)", got, ok)
	}
}

func TestPutNewKeyAppends(t *testing.T) {
	d := load(t, "a=1\n")
	d.Put("b", "2")
	got, ok := d.Get("b")
	if !ok || got != "2" {
		t.Errorf("Get(\"b\") after Put = (%q, %v), want (\"2\", true)", got, ok)
	}
	var sb strings.Builder
	d.Store(&sb)
	if want := "a=1\nb=2"; sb.String() != want {
		t.Errorf("Store() = %q, want %q", sb.String(), want)
	}
}

func TestPutExistingKeyReplacesInPlace(t *testing.T) {
	d := load(t, "# a comment\na=1\nb=2\n")
	d.Put("a", "99")
	var sb strings.Builder
	d.Store(&sb)
	if want := "# a comment\na=99\nb=2\n"; sb.String() != want {
		t.Errorf("Store() = %q, want %q", sb.String(), want)
	}
}

func TestRemoveReturnsOldValueAndDeletesLine(t *testing.T) {
	d := load(t, "a=1\nb=2\nc=3\n")
	v, ok := d.Remove("b")
	if !ok || v != "2" {
		t.Errorf("Remove(\"b\") = (%q, %v), want (\"2\", true)", v, ok)
	}
	if _, ok := d.Get("b"); ok {
		t.Error("Get(\"b\") after Remove reported ok")
	}
	var sb strings.Builder
	d.Store(&sb)
	if want := "a=1\nc=3\n"; sb.String() != want {
		t.Errorf("Store() = %q, want %q", sb.String(), want)
	}
}

func TestRemoveMissingKey(t *testing.T) {
	d := load(t, "a=1\n")
	if _, ok := d.Remove("missing"); ok {
		t.Error("Remove(\"missing\") reported ok")
	}
}

func TestReinsertRemovedKeyMovesToEnd(t *testing.T) {
	d := load(t, "a=1\nb=2\nc=3\n")
	d.Remove("a")
	d.Put("a", "10")
	want := []string{"b", "c", "a"}
	got := d.StringPropertyNames()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("StringPropertyNames() = %v, want %v", got, want)
	}
}

func TestDefaultsChain(t *testing.T) {
	defaults := load(t, "a=1\nb=2\n")
	d := document.NewWithDefaults(defaults)
	if err := d.LoadString("b=20\nc=30\n"); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	d.SetDefaults(defaults)

	tests := []struct {
		key, want string
	}{{"a", "1"}, {"b", "20"}, {"c", "30"}}
	for _, tc := range tests {
		got, ok := d.GetProperty(tc.key)
		if !ok || got != tc.want {
			t.Errorf("GetProperty(%q) = (%q, %v), want (%q, true)", tc.key, got, ok, tc.want)
		}
	}
	if _, ok := d.GetProperty("missing"); ok {
		t.Error("GetProperty(\"missing\") reported ok")
	}

	names := d.StringPropertyNames()
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("StringPropertyNames() = %v, want [a b c]", names)
	}
}

func TestGetAndSetComment(t *testing.T) {
	d := load(t, "# line one\n# line two\nkey=value\n")
	got := d.GetComment("key")
	want := []string{"line one", "line two"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("GetComment(\"key\") = %v, want %v", got, want)
	}

	if err := d.SetComment("key", []string{"new comment"}); err != nil {
		t.Fatalf("SetComment: %v", err)
	}
	var sb strings.Builder
	d.Store(&sb)
	if want := "# new comment\nkey=value\n"; sb.String() != want {
		t.Errorf("Store() after SetComment = %q, want %q", sb.String(), want)
	}
}

func TestSetCommentMissingKeyErrors(t *testing.T) {
	d := load(t, "a=1\n")
	if err := d.SetComment("missing", []string{"x"}); err == nil {
		t.Error("SetComment(\"missing\", ...) returned nil error")
	}
}

func TestSetCommentIsNoOpModuloPrefix(t *testing.T) {
	d := load(t, "# a\n# b\nkey=value\n")
	before := stored(t, d)
	if err := d.SetComment("key", d.GetComment("key")); err != nil {
		t.Fatalf("SetComment: %v", err)
	}
	after := stored(t, d)
	if before != after {
		t.Errorf("SetComment(k, GetComment(k)) changed the document:\nbefore: %q\nafter:  %q", before, after)
	}
}

func TestDecodedRawDuality(t *testing.T) {
	d := load(t, `key=a\tb`)
	raw, ok := d.GetRaw("key")
	if !ok {
		t.Fatal("GetRaw(\"key\") reported not found")
	}
	decoded, ok := d.Get("key")
	if !ok {
		t.Fatal("Get(\"key\") reported not found")
	}
	if decoded != "a\tb" {
		t.Errorf("Get(\"key\") = %q, want %q", decoded, "a\tb")
	}
	if raw != `a\tb` {
		t.Errorf("GetRaw(\"key\") = %q, want %q", raw, `a\tb`)
	}
}

func TestEscapedAndUnescapedViewsAreIndependent(t *testing.T) {
	d := load(t, "greeting=文\n")
	esc := d.Escaped()
	if v, _ := d.Get("greeting"); v != "文" {
		t.Errorf("original Get(\"greeting\") = %q, want unchanged %q", v, "文")
	}
	if v, _ := esc.Get("greeting"); v != "文" {
		t.Errorf("escaped view Get(\"greeting\") = %q, want %q (logical value unchanged)", v, "文")
	}
	var sb strings.Builder
	esc.Store(&sb)
	if got := sb.String(); !strings.Contains(got, "\\u6587") || strings.ContainsRune(got, '文') {
		t.Errorf("escaped view raw output = %q, want it to contain the \\u6587 escape instead of the literal rune", got)
	}

	back := esc.Unescaped()
	var sb2 strings.Builder
	back.Store(&sb2)
	if sb2.String() != "greeting=文\n" {
		t.Errorf("round trip through Escaped().Unescaped() = %q, want %q", sb2.String(), "greeting=文\n")
	}
}

func TestEscapedIdempotent(t *testing.T) {
	d := load(t, "greeting=文\n")
	once := stored(t, d.Escaped())
	twice := stored(t, d.Escaped().Escaped())
	if once != twice {
		t.Errorf("Escaped().Escaped() != Escaped(): %q vs %q", twice, once)
	}
}

func TestClear(t *testing.T) {
	d := load(t, "a=1\nb=2\n")
	d.Clear()
	if len(d.StringPropertyNames()) != 0 {
		t.Errorf("StringPropertyNames() after Clear = %v, want empty", d.StringPropertyNames())
	}
	var sb strings.Builder
	d.Store(&sb)
	if sb.String() != "" {
		t.Errorf("Store() after Clear = %q, want empty", sb.String())
	}
}
