package casafolio

import "testing"

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		in   string
		want float64
	}{
		{"1,010.00", 1010},
		{"1.010,00", 1010},
		{"-1,010.00 MAD", -1010},
		{"-1.010,00 MAD", -1010},
		{"1 350,00", 1350},
		{"550", 550},
		{"-42.5", -42.5},
		{"12,34", 12.34},   // two digits after a lone comma: decimal point
		{"1,234", 1234},    // three digits after a lone comma: thousands separator
		{"0,5", 0.5},       // one digit after a lone comma: decimal point
		{"1.234.567,89", 1234567.89},
		{"1,234,567.89", 1234567.89},
		{`"-1,010.00"`, -1010}, // quote fragments survive CSV reflow
		{"", 0},
		{"-", 0},
		{"  - ", 0},
		{"25 mad", 25},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseAmount(tc.in)
			if !ok {
				t.Fatalf("ParseAmount(%q) not parseable, want %v", tc.in, tc.want)
			}
			approx(t, "ParseAmount", got, tc.want, 1e-9)
		})
	}
}

func TestParseAmount_unparseable(t *testing.T) {
	for _, in := range []string{"abc", "--", "xMADx"} {
		t.Run(in, func(t *testing.T) {
			if got, ok := ParseAmount(in); ok {
				t.Errorf("ParseAmount(%q) = %v, want not parseable", in, got)
			}
		})
	}
}
