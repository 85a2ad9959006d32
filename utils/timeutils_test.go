package utils

import (
	"testing"
	"time"
)

func TestParseGTFSTime(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00:00", want: 0},
		{in: "08:05:30", want: 29130},
		{in: "23:59:59", want: 86399},
		{in: "25:10:00", want: 90600}, // overnight trip convention
		{in: " 07:00:00 ", want: 25200},
		{in: "", wantErr: true},
		{in: "8:00", wantErr: true},
		{in: "08:60:00", wantErr: true},
		{in: "08:00:61", wantErr: true},
		{in: "-1:00:00", wantErr: true},
		{in: "aa:bb:cc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGTFSTime(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseGTFSTime(%q) = %d, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGTFSTime(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseGTFSTime(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSecondsOfDayAndClockTime(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 5, 30, 0, time.UTC)
	if got := SecondsOfDay(now); got != 29130 {
		t.Errorf("SecondsOfDay = %d, want 29130", got)
	}
	ct := ClockTime(now, 30000)
	want := time.Date(2026, 3, 2, 8, 20, 0, 0, time.UTC)
	if !ct.Equal(want) {
		t.Errorf("ClockTime = %v, want %v", ct, want)
	}
	// Post-midnight seconds roll onto the next calendar day.
	late := ClockTime(now, 25*3600)
	if late.Day() != 3 || late.Hour() != 1 {
		t.Errorf("ClockTime(25h) = %v, want next day 01:00", late)
	}
}

func TestYMD(t *testing.T) {
	if got := YMD(time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)); got != 20260302 {
		t.Errorf("YMD = %d, want 20260302", got)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		sec  int
		want string
	}{
		{sec: 0, want: "00:00:00"},
		{sec: 29130, want: "08:05:30"},
		{sec: 90600, want: "01:10:00"}, // wraps at 24h
		{sec: -5, want: "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.sec); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
