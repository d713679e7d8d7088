package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{0, "$0.00"},
		{100, "$1.00"},
		{499, "$4.99"},
		{3000, "$30.00"},
		{2050, "$20.50"},
		{123456789, "$1,234,567.89"},
		{-1999, "-$19.99"},
	}

	for _, tc := range tests {
		if got := Currency(tc.minor); got != tc.want {
			t.Errorf("Currency(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}
