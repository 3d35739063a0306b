package adif

import (
	"strconv"
	"time"

	"github.com/qsopipe/qsopipe/pkg/models"
)

// fieldMapIn maps in-scope ADIF tags to QSO fields. Tags outside this
// map are ignored on input for forward compatibility.
//
//	CALL       -> Call         (required)
//	QSO_DATE   -> StartAt date (required, YYYYMMDD)
//	TIME_ON    -> StartAt time (required, HHMM or HHMMSS)
//	BAND       -> Band
//	MODE       -> Mode
//	FREQ       -> FreqMHz
//	RST_SENT   -> RSTSent
//	RST_RCVD   -> RSTRcvd
//	NAME       -> Name
//	QTH        -> QTH
//	GRIDSQUARE -> Grid
//	COUNTRY    -> Country
//	COMMENT    -> Comment

// Normalize maps a scanned field map onto a QSO. ok is false when the
// record lacks a usable CALL, QSO_DATE, or TIME_ON, or when the
// date/time do not form a real calendar moment; rejection is a normal
// outcome, not an error. An unparsable FREQ is treated as absent
// rather than rejecting the record.
func Normalize(fields map[string]string) (models.QSO, bool) {
	call := fields["CALL"]
	if call == "" {
		return models.QSO{}, false
	}

	startAt, ok := parseStartAt(fields["QSO_DATE"], fields["TIME_ON"])
	if !ok {
		return models.QSO{}, false
	}

	q := models.QSO{
		Call:    call,
		StartAt: startAt,
		Band:    fields["BAND"],
		Mode:    fields["MODE"],
		RSTSent: fields["RST_SENT"],
		RSTRcvd: fields["RST_RCVD"],
		Name:    fields["NAME"],
		QTH:     fields["QTH"],
		Grid:    fields["GRIDSQUARE"],
		Country: fields["COUNTRY"],
		Comment: fields["COMMENT"],
	}

	if raw := fields["FREQ"]; raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			q.FreqMHz = f
		}
	}

	return q, true
}

// DecodeRecord scans and normalizes one record span using a pooled
// field map. This is the unit of work the import pipeline fans out.
func DecodeRecord(span string) (models.QSO, bool) {
	fields, release := scanPooled(span)
	defer release()
	return Normalize(fields)
}

// parseStartAt validates QSO_DATE (exactly 8 digits, YYYYMMDD) and
// TIME_ON (4 or 6 digits, seconds defaulting to zero) and combines
// them. time.Parse does the calendar validation, so 20241301 or a
// TIME_ON of 2500 both reject.
func parseStartAt(date, tm string) (time.Time, bool) {
	if len(date) != 8 || !allDigits(date) {
		return time.Time{}, false
	}
	switch {
	case len(tm) == 4 && allDigits(tm):
		tm += "00"
	case len(tm) == 6 && allDigits(tm):
	default:
		return time.Time{}, false
	}
	ts, err := time.Parse("20060102150405", date+tm)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
