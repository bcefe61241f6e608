package service

import (
	"math/rand/v2"
	"strings"
)

// Strength is a password strength rating.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// passwordSymbols is the symbol class counted by CheckPasswordStrength.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// Character sets used by GeneratePassword.
const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = `!@#$%^&*()_+{}:"<>?|[];,./`

	GeneratedPasswordLength = 16
)

// CheckPasswordStrength rates password by its length and how many of the
// four classes (digit, symbol, upper, lower) it uses.
func CheckPasswordStrength(password string) Strength {
	if password == "" {
		return StrengthWeak
	}

	var digit, symbol, upper, lower bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	classes := 0
	for _, ok := range []bool{digit, symbol, upper, lower} {
		if ok {
			classes++
		}
	}

	length := len([]rune(password))
	switch {
	case length < 8 || classes < 2:
		return StrengthWeak
	case length < 12 || classes < 3:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}

// GeneratePassword returns a 16 character password with at least one
// lowercase letter, uppercase letter, digit and special character.
func GeneratePassword(rng *rand.Rand) string {
	all := lowerChars + upperChars + digitChars + specialChars

	buf := make([]byte, 0, GeneratedPasswordLength)
	for _, set := range []string{lowerChars, upperChars, digitChars, specialChars} {
		buf = append(buf, set[rng.IntN(len(set))])
	}
	for len(buf) < GeneratedPasswordLength {
		buf = append(buf, all[rng.IntN(len(all))])
	}

	rng.Shuffle(len(buf), func(i, j int) { buf[i], buf[j] = buf[j], buf[i] })
	return string(buf)
}
