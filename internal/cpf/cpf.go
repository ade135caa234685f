// Package cpf validates Brazilian CPF numbers (11-digit taxpayer
// identifiers with two trailing check digits).
package cpf

// Normalize strips every non-digit rune from raw.
func Normalize(raw string) string {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	return string(digits)
}

// IsValid reports whether value is a valid normalized CPF. It must be
// exactly 11 digits, must not consist of a single repeated digit, and both
// check digits must match the weighted checksum.
func IsValid(value string) bool {
	if len(value) != 11 {
		return false
	}

	allSame := true
	for i := 0; i < 11; i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
		if value[i] != value[0] {
			allSame = false
		}
	}
	if allSame {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(value[i]-'0') * (10 - i)
	}
	if checkDigit(sum) != int(value[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(value[i]-'0') * (11 - i)
	}
	return checkDigit(sum) == int(value[10]-'0')
}

func checkDigit(sum int) int {
	d := (sum * 10) % 11
	if d == 10 || d == 11 {
		return 0
	}
	return d
}
