package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     Strength
	}{
		{"", StrengthWeak},
		{"abcdefgh", StrengthWeak},
		{"Abc1!", StrengthWeak},
		{"Abcdefgh1", StrengthMedium},
		{"abcdefgh12", StrengthMedium},
		{"abcdefghijk1", StrengthMedium},
		{"Abcdefgh123!@#", StrengthStrong},
		{"abcdefgh123!", StrengthStrong},
	}

	for _, tc := range tests {
		t.Run(tc.password, func(t *testing.T) {
			assert.Equal(t, tc.want, CheckPasswordStrength(tc.password))
		})
	}
}

func TestCheckPasswordStrength_UnderscoreIsNotASymbol(t *testing.T) {
	assert.Equal(t, StrengthMedium, CheckPasswordStrength("abcdefgh123_"))
}

func TestGeneratePassword(t *testing.T) {
	rng := seededRand()

	for i := 0; i < 100; i++ {
		pw := GeneratePassword(rng)
		require.Len(t, pw, GeneratedPasswordLength)

		assert.True(t, strings.ContainsAny(pw, lowerChars), pw)
		assert.True(t, strings.ContainsAny(pw, upperChars), pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), pw)
		assert.True(t, strings.ContainsAny(pw, specialChars), pw)

		for _, r := range pw {
			assert.True(t, strings.ContainsRune(lowerChars+upperChars+digitChars+specialChars, r), pw)
		}
	}
}

func TestGeneratePassword_DeterministicForSeed(t *testing.T) {
	assert.Equal(t, GeneratePassword(seededRand()), GeneratePassword(seededRand()))
}
