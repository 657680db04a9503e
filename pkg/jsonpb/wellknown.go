package jsonpb

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Valid Timestamp range: 0001-01-01T00:00:00Z to 9999-12-31T23:59:59Z.
	minTimestampSeconds = -62135596800
	maxTimestampSeconds = 253402300799

	// Valid Duration range: +/- 10000 years.
	maxDurationSeconds = 315576000000
)

// FormatTimestamp renders seconds/nanos as RFC 3339 in UTC with 0, 3, 6 or
// 9 fractional digits.
func FormatTimestamp(seconds int64, nanos int32) (string, error) {
	if seconds < minTimestampSeconds || seconds > maxTimestampSeconds {
		return "", fmt.Errorf("timestamp seconds %d out of range", seconds)
	}
	if nanos < 0 || nanos >= 1e9 {
		return "", fmt.Errorf("timestamp nanos %d out of range", nanos)
	}
	s := time.Unix(seconds, int64(nanos)).UTC().Format("2006-01-02T15:04:05.000000000")
	return trimFraction(s) + "Z", nil
}

// ParseTimestamp accepts RFC 3339 with any offset and up to 9 fractional
// digits.
func ParseTimestamp(s string) (int64, int32, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, 0, err
	}
	seconds := t.Unix()
	if seconds < minTimestampSeconds || seconds > maxTimestampSeconds {
		return 0, 0, fmt.Errorf("timestamp %q out of range", s)
	}
	return seconds, int32(t.Nanosecond()), nil
}

// FormatDuration renders seconds/nanos as signed seconds with a fractional
// suffix of 0, 3, 6 or 9 digits, e.g. "-1.500s".
func FormatDuration(seconds int64, nanos int32) (string, error) {
	if seconds < -maxDurationSeconds || seconds > maxDurationSeconds {
		return "", fmt.Errorf("duration seconds %d out of range", seconds)
	}
	if nanos <= -1e9 || nanos >= 1e9 || (seconds > 0 && nanos < 0) || (seconds < 0 && nanos > 0) {
		return "", fmt.Errorf("duration nanos %d invalid for seconds %d", nanos, seconds)
	}
	sign := ""
	if seconds < 0 || nanos < 0 {
		sign = "-"
		seconds, nanos = -seconds, -nanos
	}
	s := fmt.Sprintf("%s%d.%09d", sign, seconds, nanos)
	return trimFraction(s) + "s", nil
}

func ParseDuration(s string) (int64, int32, error) {
	body, ok := strings.CutSuffix(s, "s")
	if !ok || body == "" {
		return 0, 0, fmt.Errorf("duration %q missing 's' suffix", s)
	}
	neg := false
	if body[0] == '-' {
		neg = true
		body = body[1:]
	}
	whole, frac, hasFrac := strings.Cut(body, ".")
	if whole == "" || strings.ContainsAny(whole, "+-") {
		return 0, 0, fmt.Errorf("invalid duration %q", s)
	}
	seconds, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid duration %q", s)
	}
	var nanos int64
	if hasFrac {
		if frac == "" || len(frac) > 9 || strings.ContainsAny(frac, "+-") {
			return 0, 0, fmt.Errorf("invalid duration fraction %q", s)
		}
		nanos, err = strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid duration fraction %q", s)
		}
	}
	if seconds > maxDurationSeconds {
		return 0, 0, fmt.Errorf("duration %q out of range", s)
	}
	if neg {
		seconds, nanos = -seconds, -nanos
	}
	return seconds, int32(nanos), nil
}

func trimFraction(s string) string {
	s = strings.TrimSuffix(s, "000")
	s = strings.TrimSuffix(s, "000")
	return strings.TrimSuffix(s, ".000")
}
