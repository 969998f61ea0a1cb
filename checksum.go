package anonymize

import "strings"

// ValidateLuhn implements the Luhn checksum: keep only digits, reject an
// empty digit string, then from the rightmost digit double every second
// digit and subtract 9 when the doubled value exceeds 9. The candidate is
// valid iff the total is a multiple of 10.
func ValidateLuhn(value string) bool {
	digits := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c >= '0' && c <= '9' {
			digits = append(digits, c-'0')
		}
	}
	if len(digits) == 0 {
		return false
	}

	sum := 0
	for i, n := 0, len(digits); i < n; i++ {
		d := int(digits[n-1-i])
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

// ValidateIBAN implements ISO 7064 mod 97-10: keep only alphanumerics,
// require at least 5 characters, rotate the first four characters to the
// tail, substitute each letter with its position-10 value (A=10..Z=35),
// then reduce the resulting decimal string modulo 97 by digit-wise Horner
// reduction over a 64-bit accumulator. Valid iff the remainder is 1.
func ValidateIBAN(value string) bool {
	var cleaned strings.Builder
	cleaned.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			cleaned.WriteRune(r)
		}
	}
	s := strings.ToUpper(cleaned.String())
	if len(s) < 5 {
		return false
	}

	rearranged := s[4:] + s[:4]

	var acc uint64
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case c >= '0' && c <= '9':
			acc = (acc*10 + uint64(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			v := uint64(c-'A') + 10
			acc = (acc*10 + v/10) % 97
			acc = (acc*10 + v%10) % 97
		default:
			return false
		}
	}
	return acc == 1
}

// spanishIDLetters is the fixed 23-letter control table indexed by the
// base number modulo 23.
const spanishIDLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// ValidateSpanishID implements the Spanish national/foreigner identifier
// letter checksum: the input must be exactly 9 characters. If the first
// character is a digit, the first eight characters are the base number;
// otherwise the leading X/Y/Z (case-insensitive) maps to 0/1/2 and is
// prefixed to characters 1..8 to build the base number. The base modulo 23
// indexes the fixed letter table; valid iff the ninth character
// (uppercased) matches.
func ValidateSpanishID(value string) bool {
	if len(value) != 9 {
		return false
	}

	var baseDigits [8]byte
	first := value[0]
	switch {
	case first >= '0' && first <= '9':
		for i := 0; i < 8; i++ {
			c := value[i]
			if c < '0' || c > '9' {
				return false
			}
			baseDigits[i] = c - '0'
		}
	default:
		var prefix byte
		switch first {
		case 'X', 'x':
			prefix = 0
		case 'Y', 'y':
			prefix = 1
		case 'Z', 'z':
			prefix = 2
		default:
			return false
		}
		baseDigits[0] = prefix
		for i := 1; i < 8; i++ {
			c := value[i]
			if c < '0' || c > '9' {
				return false
			}
			baseDigits[i] = c - '0'
		}
	}

	base := 0
	for _, d := range baseDigits {
		base = base*10 + int(d)
	}

	letter := value[8]
	if letter >= 'a' && letter <= 'z' {
		letter -= 32
	}
	return letter == spanishIDLetters[base%23]
}
