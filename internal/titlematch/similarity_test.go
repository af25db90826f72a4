package titlematch

import "testing"

func TestSimilarityIdentity(t *testing.T) {
	inputs := []string{"thematrix", "a", "", "tom and jerry"}
	for _, input := range inputs {
		if got := Similarity(input, input); got != 100 {
			t.Errorf("Similarity(%q, %q) = %d, want 100", input, input, got)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"matrix", "thematrix"},
		{"starwars", "starwarsanewhope"},
		{"abc", "xyz"},
	}
	for _, pair := range pairs {
		ab := Similarity(pair[0], pair[1])
		ba := Similarity(pair[1], pair[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %d but reversed = %d", pair[0], pair[1], ab, ba)
		}
	}
}

func TestSimilarityScores(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			// lcs "matrix" (6) over total length 15.
			name: "partial overlap",
			a:    "matrix",
			b:    "thematrix",
			want: 80,
		},
		{
			name: "disjoint",
			a:    "abc",
			b:    "xyz",
			want: 0,
		},
		{
			name: "one empty",
			a:    "",
			b:    "something",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityTokenOrderInsensitive(t *testing.T) {
	if got := Similarity("jerry tom", "tom jerry"); got != 100 {
		t.Errorf("token-reordered strings scored %d, want 100", got)
	}
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"thematrix", "thematrixreloaded"},
		{"inception", "interstellar"},
		{"a", "ab"},
	}
	for _, pair := range pairs {
		got := Similarity(pair[0], pair[1])
		if got < 0 || got > 100 {
			t.Errorf("Similarity(%q, %q) = %d, out of [0, 100]", pair[0], pair[1], got)
		}
	}
}
