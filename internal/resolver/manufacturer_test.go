package resolver

import "testing"

func TestExtractManufacturer(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"HAGER circuit breaker C16", "HAGER"},
		{"ABB SACE switch", "ABB SACE"},
		{"circuit breaker C16", ""},
		{"", ""},
		{"123 HAGER breaker", ""},
		{"SIEMENS", "SIEMENS"},
		{"Hager breaker", ""}, // mixed case: accepted false negative
	}
	for _, tc := range cases {
		guess := ExtractManufacturer(tc.text)
		got := ""
		if guess != nil {
			got = guess.Name
		}
		if got != tc.want {
			t.Errorf("ExtractManufacturer(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestExternalPartNumber(t *testing.T) {
	guess := ExtractManufacturer("HAGER MCS316 Leitungsschutzschalter")
	if guess == nil {
		t.Fatal("expected a guess")
	}
	if got := externalPartNumber(guess, "899977"); got != "MCS316" {
		t.Errorf("mpn = %q, want the code token after the maker", got)
	}

	guess = ExtractManufacturer("HAGER circuit breaker")
	if got := externalPartNumber(guess, "899977"); got != "899977" {
		t.Errorf("mpn = %q, want article number fallback", got)
	}

	if got := externalPartNumber(nil, "899977"); got != "899977" {
		t.Errorf("mpn = %q, want article number without a guess", got)
	}
}
