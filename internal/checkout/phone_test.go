package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		expected string
	}{
		{name: "PlainDigits", phone: "4491234567", expected: "4491234567"},
		{name: "DashesAndSpaces", phone: "449-123 4567", expected: "4491234567"},
		{name: "Parentheses", phone: "(449) 123-4567", expected: "4491234567"},
		{name: "CountryPrefix", phone: "+52 449 123 4567", expected: "524491234567"},
		{name: "Empty", phone: "", expected: ""},
		{name: "NoDigits", phone: "call me", expected: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, NormalizePhone(test.phone))
		})
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		expected bool
	}{
		{name: "TenDigits", phone: "4491234567", expected: true},
		{name: "TenDigitsWithSeparators", phone: "449-123 4567", expected: true},
		{name: "TooShort", phone: "123", expected: false},
		{name: "ElevenDigits", phone: "449 123 45678", expected: false},
		{name: "Empty", phone: "", expected: false},
		{name: "LettersOnly", phone: "not a phone", expected: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ValidPhone(test.phone))
		})
	}
}
