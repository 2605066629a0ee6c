package converter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ParseDecimal reads a number as a person types it. Only finite decimal
// values are accepted.
func ParseDecimal(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("empty number")
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

// ParseWholeNumber is ParseDecimal restricted to integers. Leading zeros stay
// decimal ("0250" is 250) and base prefixes such as "0x" are rejected.
func ParseWholeNumber(raw string) (int, error) {
	v, err := ParseDecimal(raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	return int(v), nil
}
