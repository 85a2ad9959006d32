package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SecondsPerDay is the number of seconds in a civil day.
const SecondsPerDay = 24 * 60 * 60

// ParseGTFSTime converts an HH:MM:SS string to seconds since midnight.
// Hours of 24 and above are accepted, per the GTFS overnight convention.
func ParseGTFSTime(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid GTFS time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, fmt.Errorf("invalid hours in GTFS time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minutes in GTFS time %q", s)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid seconds in GTFS time %q", s)
	}
	return h*3600 + m*60 + sec, nil
}

// SecondsOfDay returns t's offset from its own midnight in seconds.
func SecondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// Midnight returns 00:00:00 of t's calendar date in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ClockTime maps seconds since midnight onto base's calendar date.
func ClockTime(base time.Time, sec int) time.Time {
	return Midnight(base).Add(time.Duration(sec) * time.Second)
}

// YMD returns t's date in the 8-digit yyyymmdd form used by GTFS calendars.
func YMD(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// FormatClock renders seconds since midnight as HH:MM:SS, wrapping at 24h.
func FormatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	sec %= SecondsPerDay
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}
