package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TeeTimeLayout is the provider's tee-time format, a local wall-clock string
// with no zone. Tee times are stored verbatim and parsed only for ordering
// and "has this passed" checks.
const TeeTimeLayout = "2006-01-02 15:04"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTeeTime parses a provider tee-time string.
func ParseTeeTime(value string) (time.Time, error) {
	return time.Parse(TeeTimeLayout, value)
}

// TeeTimePassed reports whether the tee time parses and sits at or before
// now. Unparseable or empty tee times report false; a missing tee time is
// not evidence a round started.
func TeeTimePassed(teeTime string, now time.Time) bool {
	t, err := ParseTeeTime(teeTime)
	if err != nil {
		return false
	}
	return !t.After(now)
}

// TeeTimeFuture reports whether the tee time parses and sits strictly after
// now.
func TeeTimeFuture(teeTime string, now time.Time) bool {
	t, err := ParseTeeTime(teeTime)
	if err != nil {
		return false
	}
	return t.After(now)
}
