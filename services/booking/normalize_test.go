package booking

import (
	"math"
	"testing"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want int
	}{
		{"nil", nil, 0},
		{"int", 45, 45},
		{"int64", int64(90), 90},
		{"negative int", -30, 0},
		{"float", 45.4, 45},
		{"float rounds up", 45.6, 46},
		{"NaN", math.NaN(), 0},
		{"positive inf", math.Inf(1), 0},
		{"numeric string", "45", 45},
		{"float string", "45.5", 46},
		{"minutes suffix", "45 min", 45},
		{"minutes word", "45 minutes", 45},
		{"hour", "1 hour", 60},
		{"fractional hours", "1.5 hours", 90},
		{"hr abbreviation", "2 hrs", 120},
		{"uppercase", "45 MIN", 45},
		{"padded", "  45 mins  ", 45},
		{"garbage", "soon", 0},
		{"empty string", "", 0},
		{"unknown unit", "45 fortnights", 0},
		{"bool", true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseDuration(tc.in); got != tc.want {
				t.Errorf("ParseDuration(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseDurationOr(t *testing.T) {
	if got := ParseDurationOr(nil, 30); got != 30 {
		t.Errorf("nil should take the fallback, got %d", got)
	}
	if got := ParseDurationOr("", 30); got != 30 {
		t.Errorf("empty string should take the fallback, got %d", got)
	}
	if got := ParseDurationOr("garbage", 30); got != 30 {
		t.Errorf("garbage should take the fallback, got %d", got)
	}
	// A legitimate zero is not garbage; the fallback must not apply.
	if got := ParseDurationOr(0, 30); got != 0 {
		t.Errorf("explicit zero should stay zero, got %d", got)
	}
	if got := ParseDurationOr(45, 30); got != 45 {
		t.Errorf("valid value should win over fallback, got %d", got)
	}
}

func TestSafeAmount(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"nil", nil, 0},
		{"float", 99.5, 99.5},
		{"int", 100, 100},
		{"negative", -5.0, 0},
		{"NaN", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"string", "49.99", 49.99},
		{"garbage string", "free", 0},
		{"bool", false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeAmount(tc.in); got != tc.want {
				t.Errorf("SafeAmount(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
