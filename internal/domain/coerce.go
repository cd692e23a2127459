package domain

import (
	"math"    // NaN and infinity checks
	"strings" // Whitespace trimming

	"github.com/spf13/cast" // Loose type conversion of form values
)

// ToAmount coerces a loosely typed form value to a finite number. ok is false
// when the value is absent, blank, boolean, or does not parse to a finite number.
func ToAmount(v any) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, false
		}
		v = t
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToFlag coerces a form value to a boolean; anything unparseable is false
func ToFlag(v any) bool {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

// ToText renders a form value as a string; nil becomes empty
func ToText(v any) string {
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}
