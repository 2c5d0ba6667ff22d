package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizePhone проверяет приведение контакта к отображаемой форме
func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "11 digits with dashes",
			raw:      "010-1234-5678",
			expected: "010-1234-5678",
		},
		{
			name:     "11 digits plain",
			raw:      "01012345678",
			expected: "010-1234-5678",
		},
		{
			name:     "11 digits with mixed punctuation",
			raw:      "(010) 1234.5678",
			expected: "010-1234-5678",
		},
		{
			name:     "10 digits",
			raw:      "0212345678",
			expected: "021-234-5678",
		},
		{
			name:     "10 digits with spaces",
			raw:      "02 1234 5678",
			expected: "021-234-5678",
		},
		{
			name:     "Other digit count stays raw",
			raw:      "123456",
			expected: "123456",
		},
		{
			name:     "Leading plus is stripped from display",
			raw:      "+821012345678",
			expected: "821012345678",
		},
		{
			name:     "Empty input",
			raw:      "",
			expected: "",
		},
		{
			name:     "Letters are dropped",
			raw:      "call 01099998888",
			expected: "010-9999-8888",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.raw))
		})
	}
}
