package parser

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimal parses decimals in Turkish ("1.250,50"), US ("1,250.50") and
// plain ("1250.5", "20") notation. The second return is false when the input
// does not yield a finite number; callers map that to 0 for required fields
// and to absent for optional ones. NaN never escapes this function.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSuffix(s, "%")

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// Turkish: dots group thousands, comma is the decimal mark.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		// A single dot reads as a decimal mark; repeated dots are
		// Turkish thousands grouping ("1.250.300").
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
