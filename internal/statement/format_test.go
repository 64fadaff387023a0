package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"placeholder dash", "-", "-"},
		{"empty", "", "-"},
		{"grouped round-trip", "1,234", "1,234"},
		{"ungrouped", "1234567", "1,234,567"},
		{"large grouped", "455,905,980,000,000", "455,905,980,000,000"},
		{"negative", "-1,234", "-1,234"},
		{"non-numeric passes through", "abc", "abc"},
		{"mixed garbage passes through", "12ab", "12ab"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.raw))
		})
	}
}

func TestFormatAmountIdempotent(t *testing.T) {
	for _, raw := range []string{"-", "", "1,234", "abc", "455,905,980,000,000"} {
		once := FormatAmount(raw)
		assert.Equal(t, once, FormatAmount(once), "FormatAmount not idempotent on %q", raw)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"1,234", 1234},
		{"1000", 1000},
		{"-", 0},
		{"", 0},
		{"abc", 0},
		{"-5,000", -5000},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.raw))
		})
	}
}
