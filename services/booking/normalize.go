package booking

import (
	"math"
	"strconv"
	"strings"
)

// ParseDuration coerces a heterogeneous duration value (int, float, numeric
// string, or "<N> min/hour(s)") into whole minutes. Missing or unparseable
// input yields 0. Every other component assumes durations entering it have
// already passed through here.
func ParseDuration(value interface{}) int {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return clampMinutes(v)
	case int32:
		return clampMinutes(int(v))
	case int64:
		return clampMinutes(int(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return clampMinutes(int(math.Round(v)))
	case float32:
		return ParseDuration(float64(v))
	case string:
		return parseDurationString(v)
	default:
		return 0
	}
}

// ParseDurationOr is ParseDuration with an explicit fallback for absent
// values; the fallback applies only when the input is missing or garbage,
// never to a legitimate zero.
func ParseDurationOr(value interface{}, fallback int) int {
	if value == nil {
		return fallback
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return fallback
	}
	if n := ParseDuration(value); n > 0 {
		return n
	}
	if n, ok := value.(int); ok && n == 0 {
		return 0
	}
	if f, ok := value.(float64); ok && f == 0 {
		return 0
	}
	return fallback
}

func parseDurationString(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return clampMinutes(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return ParseDuration(f)
	}

	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0
	}
	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	switch strings.TrimSuffix(fields[1], ".") {
	case "min", "mins", "minute", "minutes":
		return ParseDuration(n)
	case "hour", "hours", "hr", "hrs":
		return ParseDuration(n * 60)
	default:
		return 0
	}
}

func clampMinutes(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// SafeAmount coerces a heterogeneous money value into a non-negative
// float64. nil, NaN, and negative inputs become 0 so price arithmetic can
// never propagate NaN.
func SafeAmount(value interface{}) float64 {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
