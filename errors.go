// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package properties

import (
	"errors"
	"fmt"

	"github.com/codejive/go-properties/internal/escape"
)

// Sentinel errors surfaced by document operations (spec.md §7). Use
// errors.Is to test for them; ScanError additionally carries a byte offset
// and is tested with errors.As.
//
// spec.md's "null argument" error kind applies to mutators called with a
// null key or value. Go strings have no null state (the zero value "" is a
// perfectly ordinary key or value), so that error kind has no reachable
// trigger through this package's string-typed Put/SetProperty API; the
// invariant it protects is instead enforced by the type system itself. The
// sentinel is kept only so code written against spec.md's error kinds has
// something to import and compare against.
var (
	// ErrNoSuchElement is reported by SetComment when the given key is not
	// present in the document.
	ErrNoSuchElement = errors.New("no such element")

	// ErrNullArgument is never returned by this package; see above.
	ErrNullArgument = errors.New("null argument")
)

// ErrInvalidUnicodeEscape is wrapped by ScanError when a '\uXXXX' escape is
// missing or has fewer than four hexadecimal digits.
var ErrInvalidUnicodeEscape = escape.ErrInvalidUnicodeEscape

// A ScanError reports a lexical error from the Scanner, together with the
// byte offset in the input at which it occurred.
type ScanError struct {
	Offset int
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Err.Error(), e.Offset)
}

func (e *ScanError) Unwrap() error { return e.Err }
