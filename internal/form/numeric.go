package form

import (
	"math"
	"strconv"
	"strings"
)

// ParseInt reads the leading integer of text: optional surrounding spaces,
// an optional sign, then digits. Trailing characters are ignored, so "12.5"
// and "12px" read as 12. It reports false when no digits lead the text.
// Values beyond the int range saturate.
func ParseInt(text string) (int, bool) {
	s := strings.TrimLeft(text, " \t\r\n")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	digits := s[:end]
	if negative {
		digits = "-" + digits
	}
	n, err := strconv.ParseInt(digits, 10, 0)
	if err != nil {
		if negative {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return int(n), true
}

// IntField is a bounded integer input.
type IntField struct {
	Name string
	Min  int
	Max  int
}

// Coerce turns typed text into the field value. Unparsable text yields 0;
// parsed values are clamped to [Min, Max].
func (f IntField) Coerce(text string) int {
	n, ok := ParseInt(text)
	if !ok {
		return 0
	}
	return f.Clamp(n)
}

// Clamp limits n to [Min, Max].
func (f IntField) Clamp(n int) int {
	if n < f.Min {
		return f.Min
	}
	if n > f.Max {
		return f.Max
	}
	return n
}

// Contains reports whether n lies within the field bounds.
func (f IntField) Contains(n int) bool {
	return n >= f.Min && n <= f.Max
}

// Numeric input bounds of the simulator parameters.
var (
	TimestepsField      = IntField{Name: "timesteps", Min: 0, Max: 10000}
	UpdateIntervalField = IntField{Name: "updateInterval", Min: 1, Max: 5000}
)
