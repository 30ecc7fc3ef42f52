package mrz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Vectors from the ICAO Doc 9303 specimen document.
func TestCheckDigit(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"L898902C3", 6},
		{"740812", 2},
		{"120415", 9},
		{"ZE184226B<<<<<", 1},
		{"D23145890", 7},
		{"<<<<<<<<", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CheckDigit(tt.in), "CheckDigit(%q)", tt.in)
	}
}

func TestCheckDigit_InvalidCharacter(t *testing.T) {
	assert.Equal(t, -1, CheckDigit("L8989?2C3"))
	assert.Equal(t, -1, CheckDigit("l898902c3"), "lowercase is not MRZ alphabet")
}

func TestCheckDigitMatches(t *testing.T) {
	assert.True(t, checkDigitMatches("740812", '2'))
	assert.False(t, checkDigitMatches("740812", '3'))

	// Filler in the check position verifies a zero or all-filler field.
	assert.True(t, checkDigitMatches("<<<<<<<<", '<'))
	assert.False(t, checkDigitMatches("740812", '<'))
}
