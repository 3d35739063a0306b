// Package adif implements the ADIF (Amateur Data Interchange Format)
// tag-length-value codec: a scanner that lexes <TAG:len>value fragments
// into field maps, a splitter that cuts a document into per-record
// spans on <EOR>, a normalizer that turns a field map into a QSO, and
// a streaming encoder for the reverse direction.
//
// The codec covers the field subset needed for QSO round-trip, not the
// full ADIF specification. Unknown tags are ignored on input so newer
// documents still decode.
//
// Decoding a document:
//
//	for span := range adif.Records(doc) {
//	    fields := adif.ScanRecord(span)
//	    if q, ok := adif.Normalize(fields); ok {
//	        ...
//	    }
//	}
//
// Encoding is lazy and single-pass; fragments can be written to a sink
// as they are produced:
//
//	n, err := adif.WriteTo(w, slices.Values(qsos))
package adif
