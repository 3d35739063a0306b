package adif

import (
	"strconv"
	"strings"

	"github.com/qsopipe/qsopipe/pkg/pool"
)

// ScanRecord lexes one record span into a tag→value map.
//
// A tag header has the form NAME[:LENGTH[:TYPE]]. The name is
// case-insensitive and canonicalized to uppercase. When a length is
// declared and the span has at least that many bytes left after '>',
// the value is exactly those bytes; length-prefixing means a value may
// contain '<', newlines, or any other byte. A tag with no length, a
// malformed length, or a declared length longer than the remaining
// span is skipped and scanning resumes just after its '>': tag-level
// damage is local, never fatal to the record. A repeated tag name
// overwrites the previous value.
func ScanRecord(span string) map[string]string {
	fields := make(map[string]string)
	ScanRecordInto(span, fields)
	return fields
}

// ScanRecordInto scans span into an existing map, typically one from
// pool.GetFieldMap. The map is not cleared first.
func ScanRecordInto(span string, fields map[string]string) {
	i := 0
	for i < len(span) {
		lt := strings.IndexByte(span[i:], '<')
		if lt < 0 {
			return
		}
		i += lt

		gt := strings.IndexByte(span[i:], '>')
		if gt < 0 {
			// Unterminated tag header; nothing more to scan.
			return
		}
		header := span[i+1 : i+gt]
		i += gt + 1

		name, length, ok := parseTagHeader(header)
		if !ok {
			continue
		}
		if length > len(span)-i {
			// Declared length overruns the span; skip the tag but keep
			// scanning from just after '>'.
			continue
		}
		fields[name] = span[i : i+length]
		i += length
	}
}

// parseTagHeader splits NAME[:LENGTH[:TYPE]]. Only the first
// colon-delimited integer is the length; a TYPE segment after a second
// colon is discarded and must not be mistaken for it. ok is false when
// no usable length is present.
func parseTagHeader(header string) (name string, length int, ok bool) {
	rest := ""
	if colon := strings.IndexByte(header, ':'); colon >= 0 {
		name, rest = header[:colon], header[colon+1:]
	} else {
		name = header
	}
	name = strings.ToUpper(name)

	if rest == "" {
		return name, 0, false
	}
	if colon := strings.IndexByte(rest, ':'); colon >= 0 {
		rest = rest[:colon]
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return name, 0, false
	}
	return name, n, true
}

// scanPooled runs ScanRecordInto on a pooled map and hands both the
// map and its release function to the caller.
func scanPooled(span string) (map[string]string, func()) {
	fields := pool.GetFieldMap()
	ScanRecordInto(span, fields)
	return fields, func() { pool.PutFieldMap(fields) }
}
