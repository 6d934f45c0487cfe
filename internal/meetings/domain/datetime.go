package domain

import "time"

// DateTimeLayout is the fixed yyyy-MM-dd HH:mm pattern used for all input and output.
const DateTimeLayout = "2006-01-02 15:04"

// ParseDateTime parses value strictly against DateTimeLayout in local time.
// Single-digit hours are rejected even though time.Parse would accept them.
func ParseDateTime(value string) (time.Time, error) {
	if len(value) != len(DateTimeLayout) {
		return time.Time{}, ErrInvalidDateTime
	}
	t, err := time.ParseInLocation(DateTimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return t, nil
}

// FormatDateTime renders t using DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}
