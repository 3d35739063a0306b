package adif

import (
	"bytes"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/qsopipe/qsopipe/pkg/models"
	"github.com/qsopipe/qsopipe/pkg/pool"
)

const (
	// ADIFVersion is the version emitted in the document header.
	ADIFVersion = "3.1"
	// ProgramID identifies the producing program in the header.
	ProgramID = "qsopipe"
)

// Encode turns a QSO sequence into a lazy sequence of document
// fragments: one header fragment, then one fragment per record.
// Concatenating the fragments reproduces a valid ADIF document; the
// whole document is never materialized, so the sequence can be driven
// straight into a sink.
//
// Declared lengths are byte counts, not rune counts, so values with
// multi-byte characters read back exactly under the scanner. Absent
// fields are omitted entirely; no empty tags are emitted.
func Encode(qsos iter.Seq[models.QSO]) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(Header()) {
			return
		}
		for q := range qsos {
			if !yield(EncodeRecord(q)) {
				return
			}
		}
	}
}

// Header returns the fixed document header: version, program
// identifier, and the <EOH> marker.
func Header() string {
	b := pool.GetBuffer()
	defer pool.PutBuffer(b)

	writeField(b, "ADIF_VER", ADIFVersion)
	b.WriteByte('\n')
	writeField(b, "PROGRAMID", ProgramID)
	b.WriteByte('\n')
	b.WriteString(EOH)
	b.WriteByte('\n')
	return b.String()
}

// EncodeRecord renders one QSO as a single <EOR>-terminated line in
// the fixed field order: QSO_DATE, TIME_ON, CALL, BAND, MODE, FREQ,
// RST_SENT, RST_RCVD, NAME, QTH, GRIDSQUARE, COUNTRY, COMMENT.
func EncodeRecord(q models.QSO) string {
	b := pool.GetBuffer()
	defer pool.PutBuffer(b)

	writeField(b, "QSO_DATE", q.StartAt.Format("20060102"))
	writeField(b, "TIME_ON", q.StartAt.Format("150405"))
	writeField(b, "CALL", q.Call)
	writeField(b, "BAND", q.Band)
	writeField(b, "MODE", q.Mode)
	if q.HasFreq() {
		writeField(b, "FREQ", FormatFreq(q.FreqMHz))
	}
	writeField(b, "RST_SENT", q.RSTSent)
	writeField(b, "RST_RCVD", q.RSTRcvd)
	writeField(b, "NAME", q.Name)
	writeField(b, "QTH", q.QTH)
	writeField(b, "GRIDSQUARE", q.Grid)
	writeField(b, "COUNTRY", q.Country)
	writeField(b, "COMMENT", q.Comment)
	b.WriteString(EOR)
	b.WriteByte('\n')
	return b.String()
}

// WriteTo drives the encoded fragment sequence into w, returning the
// number of bytes written.
func WriteTo(w io.Writer, qsos iter.Seq[models.QSO]) (int64, error) {
	var total int64
	for frag := range Encode(qsos) {
		n, err := io.WriteString(w, frag)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// FormatFreq renders a MHz frequency with fixed precision, then strips
// trailing zero digits and a trailing decimal point: 14.250000 becomes
// 14.25 and 14.000000 becomes 14.
func FormatFreq(f float64) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// writeField emits <TAG:len>value with the literal byte length of
// value. Empty values emit nothing.
func writeField(b *bytes.Buffer, tag, value string) {
	if value == "" {
		return
	}
	b.WriteByte('<')
	b.WriteString(tag)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(len(value)))
	b.WriteByte('>')
	b.WriteString(value)
}
