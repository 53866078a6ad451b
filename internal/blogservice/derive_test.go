package blogservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestEstimateReadingTime(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "empty input",
			input:    "",
			expected: 0,
		},
		{
			name:     "one hundred words",
			input:    words(100),
			expected: 0,
		},
		{
			name:     "three hundred words",
			input:    words(300),
			expected: 1,
		},
		{
			name:     "four hundred words",
			input:    words(400),
			expected: 2,
		},
		{
			name:     "five hundred words",
			input:    words(500),
			expected: 2,
		},
		{
			name:     "one thousand words",
			input:    words(1000),
			expected: 5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, estimateReadingTime(tc.input))
		})
	}
}
