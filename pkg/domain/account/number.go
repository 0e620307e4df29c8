package account

import "crypto/rand"

// NumberLength is the fixed length of an account number.
const NumberLength = 26

// GenerateNumber samples a 26-digit numeric account number uniformly at
// random. Uniqueness is not guaranteed here; the store enforces it with a
// unique constraint and callers retry on conflict.
func GenerateNumber() string {
	digits := make([]byte, 0, NumberLength)
	buf := make([]byte, NumberLength)
	for len(digits) < NumberLength {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand failing means the platform RNG is broken; nothing
			// sensible to do but stop.
			panic(err)
		}
		for _, b := range buf {
			// Reject bytes above the largest multiple of 10 to keep the
			// digit distribution uniform.
			if b >= 250 {
				continue
			}
			digits = append(digits, '0'+b%10)
			if len(digits) == NumberLength {
				break
			}
		}
	}
	return string(digits)
}

// ValidNumber reports whether s is a well-formed account number.
func ValidNumber(s string) bool {
	if len(s) != NumberLength {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
