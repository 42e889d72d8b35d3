package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lodge/shared/currency"
)

func TestMinorMajorConversion(t *testing.T) {
	assert.Equal(t, int64(3000000), currency.ToMinor(30000))
	assert.Equal(t, int64(30000), currency.FromMinor(3000000))
	assert.Equal(t, int64(0), currency.ToMinor(0))

	// Round-trip through the boundary is lossless for whole major amounts.
	assert.Equal(t, int64(90000), currency.FromMinor(currency.ToMinor(90000)))
}

func TestFormatNaira(t *testing.T) {
	tests := []struct {
		major int64
		want  string
	}{
		{major: 0, want: "₦0"},
		{major: 950, want: "₦950"},
		{major: 30000, want: "₦30,000"},
		{major: 1234567, want: "₦1,234,567"},
		{major: -4500, want: "-₦4,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, currency.FormatNaira(tt.major))
	}
}
