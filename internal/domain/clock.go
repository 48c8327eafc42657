package domain

import "regexp"

// DefaultClockTime substitutes for an unknown time of day when a
// voice-derived record is persisted.
const DefaultClockTime = "00:00"

// Users dictate times like "7:30", "07:30", or with a full-width colon
// "07：30"; the shape may appear anywhere inside the dictated phrase.
var clockPattern = regexp.MustCompile(`(\d{1,2})[:：](\d{2})`)

// NormalizeClockTime extracts an "HH:MM" time of day from free-form text.
// One-digit hours are zero-padded and the full-width colon is replaced
// with the ASCII one. ok is false when no clock shape is present; callers
// treat that as "time unknown", never as an error.
func NormalizeClockTime(raw string) (string, bool) {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	h := m[1]
	if len(h) == 1 {
		h = "0" + h
	}
	return h + ":" + m[2], true
}
