package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{"+14155552671", "14155552671", "+44 7911 123456", "(415) 555-2671"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{"", "abc", "0123456", "+"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "9:30", "23:59"}
	for _, s := range valid {
		if !ValidClock(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "24:00", "12:60", "9am", "12:5", "090:00"}
	for _, s := range invalid {
		if ValidClock(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestParseAndFormatClock(t *testing.T) {
	cases := []struct {
		s       string
		minutes int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.s)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", tc.s, err)
		}
		if got != tc.minutes {
			t.Errorf("ParseClock(%q) = %d, expected %d", tc.s, got, tc.minutes)
		}
		if back := FormatClock(tc.minutes); back != tc.s {
			t.Errorf("FormatClock(%d) = %q, expected %q", tc.minutes, back, tc.s)
		}
	}

	if _, err := ParseClock("25:00"); err == nil {
		t.Error("expected an error for 25:00")
	}
}
