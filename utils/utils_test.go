package utils

import "testing"

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(13)
	if len(s) != 13 {
		t.Fatalf("length = %d, want 13", len(s))
	}
	if GenerateRandomString(13) == s {
		t.Error("two generated strings should differ")
	}
}

func TestUnderscore(t *testing.T) {
	cases := map[string]string{
		"John Smith":      "John_Smith",
		"John  Smith Jr.": "John_Smith_Jr.",
		"single":          "single",
		"":                "",
	}
	for in, want := range cases {
		if got := Underscore(in); got != want {
			t.Errorf("Underscore(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename("../etc/passwd"); got != "passwd" {
		t.Errorf("SanitizeFilename = %q", got)
	}
	if got := SanitizeFilename("my logo!.png"); got != "my_logo_.png" {
		t.Errorf("SanitizeFilename = %q", got)
	}
}
