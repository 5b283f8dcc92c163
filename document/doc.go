// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package document implements an ordered, editable view over a properties
// token sequence. A Document keeps two representations of the same data in
// sync: the verbatim token sequence (the source of truth for formatting) and
// an insertion-ordered map of decoded keys to decoded values. Every mutation
// updates both, so that reading back unedited parts of a loaded document
// reproduces its original text exactly.
package document
