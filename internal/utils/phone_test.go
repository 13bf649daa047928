package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name        string
		phone       string
		expected    string
		expectError bool
	}{
		{
			name:     "local format with leading zero",
			phone:    "0712345678",
			expected: "254712345678",
		},
		{
			name:     "bare subscriber number",
			phone:    "712345678",
			expected: "254712345678",
		},
		{
			name:     "already international",
			phone:    "254712345678",
			expected: "254712345678",
		},
		{
			name:     "formatted with plus and spaces",
			phone:    "+254 712 345 678",
			expected: "254712345678",
		},
		{
			name:     "formatted with dashes",
			phone:    "0712-345-678",
			expected: "254712345678",
		},
		{
			name:        "too short",
			phone:       "12345",
			expectError: true,
		},
		{
			name:        "nine digits not starting with 7",
			phone:       "812345678",
			expectError: true,
		},
		{
			name:        "ten digits not starting with 07",
			phone:       "1712345678",
			expectError: true,
		},
		{
			name:        "twelve digits wrong country code",
			phone:       "255712345678",
			expectError: true,
		},
		{
			name:        "empty string",
			phone:       "",
			expectError: true,
		},
		{
			name:        "letters only",
			phone:       "not-a-number",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted, err := FormatPhone(tt.phone)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, formatted)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, formatted)
		})
	}
}
