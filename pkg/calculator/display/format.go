package display

import (
	"math"
	"strconv"
	"strings"
)

// ErrorText is shown in place of a result that is not a finite number.
const ErrorText = "Error"

// Format renders a result for the main display.
//
// Whole numbers print without a fractional part. Other values use ten
// significant digits with trailing fractional zeros removed, or scientific
// notation when %g picks it. NaN and the infinities render as ErrorText.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorText
	}
	if v == math.Trunc(v) {
		if v == 0 {
			// Covers negative zero.
			return "0"
		}
		return strconv.FormatFloat(v, 'f', 0, 64)
	}

	s := strconv.FormatFloat(v, 'g', 10, 64)
	if strings.ContainsAny(s, "eE") || !strings.Contains(s, ".") {
		// Zeros before the point are significant.
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "0"
	}
	return s
}

// IsErrorText reports whether s is the rendering of a non-finite result.
func IsErrorText(s string) bool {
	return s == ErrorText
}
