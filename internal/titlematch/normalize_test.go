package titlematch

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "year suffix removed",
			input: "The Matrix (1999)",
			want:  "thematrix",
		},
		{
			name:  "year token mid-string",
			input: "The Matrix (1999) Remastered",
			want:  "thematrixremastered",
		},
		{
			name:  "punctuation and colons",
			input: "Star Wars: A New Hope (1977)",
			want:  "starwarsanewhope",
		},
		{
			name:  "ampersand joiner",
			input: "Spider-Man & Mary Jane",
			want:  "spidermanandmaryjane",
		},
		{
			name:  "word joiner",
			input: "Spider Man and Mary Jane",
			want:  "spidermanandmaryjane",
		},
		{
			name:  "diacritics folded",
			input: "Amélie (2001)",
			want:  "amelie",
		},
		{
			name:  "underscores and hyphens removed",
			input: "some_title - part 2",
			want:  "sometitlepart2",
		},
		{
			name:  "non-year parenthetical kept",
			input: "Movie (Director's Cut)",
			want:  "moviedirectorscut",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"The Matrix (1999)",
		"Spider-Man & Mary Jane",
		"Tom & Jerry",
		"Amélie",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeJoinerAgreement(t *testing.T) {
	a := Normalize("Tom & Jerry")
	b := Normalize("Tom and Jerry")
	if a != b {
		t.Errorf("joiner variants disagree: %q != %q", a, b)
	}
}
