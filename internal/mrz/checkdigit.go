package mrz

// ICAO 9303 check digits: each character maps to a value (digits as-is,
// A–Z as 10–35, filler '<' as 0), multiplied by the repeating weights
// 7, 3, 1 and summed modulo 10.

var weights = [3]int{7, 3, 1}

func charValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	case c == '<':
		return 0, true
	}
	return 0, false
}

// CheckDigit computes the ICAO 9303 check digit for a field, or -1 if the
// field contains a character outside the MRZ alphabet.
func CheckDigit(field string) int {
	sum := 0
	for i := 0; i < len(field); i++ {
		v, ok := charValue(field[i])
		if !ok {
			return -1
		}
		sum += v * weights[i%3]
	}
	return sum % 10
}

// checkDigitMatches verifies a field against its recorded check digit
// character. A '<' digit position means the field is absent and passes.
func checkDigitMatches(field string, digit byte) bool {
	if digit == '<' {
		return CheckDigit(field) == 0 || isFiller(field)
	}
	if digit < '0' || digit > '9' {
		return false
	}
	return CheckDigit(field) == int(digit-'0')
}

func isFiller(field string) bool {
	for i := 0; i < len(field); i++ {
		if field[i] != '<' {
			return false
		}
	}
	return true
}
