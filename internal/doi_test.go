package internal

import "testing"

func TestNormalizeDOI(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.1000/ABC.123", "10.1000/abc.123"},
		{"https://doi.org/10.1000/abc.123", "10.1000/abc.123"},
		{"HTTPS://DOI.ORG/10.1/ABC", "10.1/abc"},
		{"10.1/abc", "10.1/abc"},
	}
	for _, tc := range cases {
		if got := NormalizeDOI(tc.in); got != tc.want {
			t.Fatalf("NormalizeDOI(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDOIIdempotent(t *testing.T) {
	inputs := []string{
		"https://doi.org/10.5555/JOURNAL.V1",
		"10.5555/journal.v1",
		"HTTPS://DOI.ORG/10.1/ABC",
	}
	for _, in := range inputs {
		once := NormalizeDOI(in)
		if twice := NormalizeDOI(once); twice != once {
			t.Fatalf("normalization not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}
