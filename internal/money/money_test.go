package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	require.Equal(t, "€10.00", Format(10))
	require.Equal(t, "€1200.00", Format(1200))
	require.Equal(t, "€0.50", Format(0.5))
}

func TestFormatGrouped(t *testing.T) {
	require.Equal(t, "€1,200.00", FormatGrouped(1200))
	require.Equal(t, "€999.99", FormatGrouped(999.99))
	require.Equal(t, "€1,234,567.89", FormatGrouped(1234567.89))
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"€10.00", 10},
		{"1200.50", 1200.5},
		{"€1,200.00", 1200},
		{"12,50", 12.5},
		{" € 99 ", 99},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.InDelta(t, tc.want, got, 0.0001, tc.in)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "€", "1.2.3", "10,20,30"} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.01, 10, 1200, 99999.99} {
		got, err := Parse(Format(v))
		require.NoError(t, err)
		require.InDelta(t, v, got, 0.001)
	}
}
