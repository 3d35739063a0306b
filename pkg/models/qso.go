// Package models provides the domain data model for qsopipe.
// A QSO is one logged two-way contact; every component in the
// system exchanges values of this type.
package models

import "time"

// QSO represents a single logged contact.
//
// Call and StartAt are always present: decoding discards partial data
// before a QSO value is ever constructed, so no QSO carries a missing
// required field. All other fields are optional; the empty string (or
// zero frequency) means "not recorded".
type QSO struct {
	// ID is the surrogate key assigned by the store. Zero until persisted.
	ID int64 `json:"id,omitempty"`

	// Call is the worked station's callsign.
	Call string `json:"call"`

	// StartAt is the QSO start time, UTC, second precision.
	StartAt time.Time `json:"start_at"`

	// Radio details. Band and Mode are free text like "20m" or "FT8".
	Band    string  `json:"band,omitempty"`
	Mode    string  `json:"mode,omitempty"`
	FreqMHz float64 `json:"freq_mhz,omitempty"`

	// Signal reports.
	RSTSent string `json:"rst_sent,omitempty"`
	RSTRcvd string `json:"rst_rcvd,omitempty"`

	// Operator and location metadata.
	Name    string `json:"name,omitempty"`
	QTH     string `json:"qth,omitempty"`
	Grid    string `json:"grid,omitempty"`
	Country string `json:"country,omitempty"`

	// Comment holds free-form notes.
	Comment string `json:"comment,omitempty"`
}

// HasFreq reports whether a frequency was recorded. ADIF frequencies
// are positive MHz values, so zero doubles as "absent".
func (q *QSO) HasFreq() bool {
	return q.FreqMHz > 0
}
