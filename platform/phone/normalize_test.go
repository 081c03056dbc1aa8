package phone

import "testing"

func TestCanonical_KoreanMobile(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"01012345678", "+821012345678"},
		{"010-1234-5678", "+821012345678"},
		{"010 1234 5678", "+821012345678"},
		{"0161234567", "+82161234567"},
	}

	for _, tc := range cases {
		got, ok := Canonical(tc.input)
		if !ok {
			t.Fatalf("Canonical(%q) rejected a valid number", tc.input)
		}
		if got != tc.want {
			t.Fatalf("Canonical(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestCanonical_RejectsInvalidInput(t *testing.T) {
	cases := []string{
		"",
		"021234567",    // landline prefix
		"0101234",      // too short
		"010123456789", // too long
		"not a number",
		"+15551234567", // not Korean
	}

	for _, input := range cases {
		if got, ok := Canonical(input); ok {
			t.Fatalf("Canonical(%q) = %q, expected rejection", input, got)
		}
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"01012345678", "010-1234-5678"},
		{"0161234567", "016-123-4567"},
		{"010-1234-5678", "010-1234-5678"},
		{" oddball ", "oddball"},
	}

	for _, tc := range cases {
		if got := Display(tc.input); got != tc.want {
			t.Fatalf("Display(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
