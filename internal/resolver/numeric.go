package resolver

import "strconv"

// parseNumeric attempts to parse s as an invariant-culture float: optional
// sign, decimal point, exponent marker 'e'/'E' with optional sign. Embedded
// whitespace is rejected by construction since the scanner never includes
// spaces in the candidate slice.
func parseNumeric(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
