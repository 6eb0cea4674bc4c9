package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateOnly    = "2006-01-02"
	DateTime    = "2006-01-02 15:04"
	DateTimeSec = "2006-01-02 15:04:05"
	TimeOnly    = "15:04:05"
)

// TimeOrDash formats a time value using the given layout, or returns "—" if zero.
func TimeOrDash(t time.Time, layout string) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(layout)
}

// MaskAccessKey hides the middle of an access key ID, keeping the first
// and last four characters. Keys too short to mask are returned as-is.
func MaskAccessKey(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

// Countdown formats a duration as H:MM:SS for live timers. Negative
// durations format the same as their positive counterpart.
func Countdown(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
