package adif

import (
	"iter"
	"strings"
)

const (
	// EOR terminates a record. It is a fixed literal marker, not a
	// length-prefixed tag, and the match is case-sensitive.
	EOR = "<EOR>"
	// EOH terminates the document header.
	EOH = "<EOH>"
)

// Records returns a lazy, restartable sequence of record spans.
//
// The document is split strictly on the literal <EOR> marker. Text
// before the first <EOH>, when present, is header and is never offered
// as a record. Whitespace-only spans between markers are discarded
// without counting as records, so they cannot inflate rejection
// counts. Trailing text after the last <EOR> is offered as a final
// span; whether it holds a usable record is the normalizer's call.
//
// Spans are yielded verbatim, whitespace included: a length-prefixed
// value may legitimately end in whitespace, and trimming would cut it
// out from under its declared length.
func Records(doc string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := doc
		if h := strings.Index(rest, EOH); h >= 0 {
			rest = rest[h+len(EOH):]
		}
		for {
			span := rest
			next := ""
			if e := strings.Index(rest, EOR); e >= 0 {
				span, next = rest[:e], rest[e+len(EOR):]
			}
			if strings.TrimSpace(span) != "" {
				if !yield(span) {
					return
				}
			}
			if len(span) == len(rest) {
				return
			}
			rest = next
		}
	}
}

// CountRecords counts the spans Records would yield without holding
// them all; used to pick between serial and parallel import.
func CountRecords(doc string) int {
	n := 0
	for range Records(doc) {
		n++
	}
	return n
}
