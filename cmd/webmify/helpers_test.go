package main

import (
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		value int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.00 KiB"},
		{5 * 1024 * 1024, "5.00 MiB"},
		{3 * 1024 * 1024 * 1024, "3.00 GiB"},
	}
	for _, tc := range cases {
		if got := formatBytes(tc.value); got != tc.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "-"},
		{42, "0:42"},
		{90, "1:30"},
		{3723, "1:02:03"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.seconds); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp(nil); got != "-" {
		t.Errorf("formatTimestamp(nil) = %q", got)
	}
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if got := formatTimestamp(&ts); got == "-" || got == "" {
		t.Errorf("formatTimestamp returned %q", got)
	}
}

func TestYesNo(t *testing.T) {
	if yesNo(true) != "yes" || yesNo(false) != "no" {
		t.Fatal("yesNo mapping broken")
	}
}
