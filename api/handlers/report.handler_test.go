package api

import "testing"

func TestParseWorkedDays(t *testing.T) {
	cases := []struct {
		in       string
		expected int
		wantErr  bool
	}{
		{"", 0, false},
		{" 5 ", 5, false},
		{"0", 0, false},
		{"-3", 0, true},
		{"abc", 0, true},
		{"2.5", 0, true},
	}
	for _, tc := range cases {
		days, err := parseWorkedDays(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseWorkedDays(%q) accepted, expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseWorkedDays(%q) error: %v", tc.in, err)
		}
		if days != tc.expected {
			t.Fatalf("parseWorkedDays(%q) = %d, expected %d", tc.in, days, tc.expected)
		}
	}
}
