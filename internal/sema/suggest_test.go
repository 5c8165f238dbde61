package sema

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "abc", 3},
		{"b", "a", 1},
		{"name", "name", 0},
		{"nmae", "name", 1}, // transposition
		{"colour", "color", 1},
		{"kitten", "sitting", 3},
		{"höhe", "hohe", 1}, // rune-wise, not byte-wise
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClosestField(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		candidates []string
		want       string
		wantOK     bool
	}{
		{
			name:       "distance one within threshold",
			target:     "b",
			candidates: []string{"a"},
			want:       "a",
			wantOK:     true,
		},
		{
			name:       "nearest candidate wins",
			target:     "nme",
			candidates: []string{"age", "name"},
			want:       "name",
			wantOK:     true,
		},
		{
			name:       "tie keeps declaration order",
			target:     "ab",
			candidates: []string{"ax", "ay"},
			want:       "ax",
			wantOK:     true,
		},
		{
			name:       "nothing close enough",
			target:     "velocity",
			candidates: []string{"x", "y"},
			wantOK:     false,
		},
		{
			name:       "empty candidate set",
			target:     "anything",
			candidates: nil,
			wantOK:     false,
		},
		{
			name:       "long names tolerate proportional typos",
			target:     "total_connection",
			candidates: []string{"total_connections_count"},
			want:       "total_connections_count",
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := closestField(tt.target, tt.candidates)
			if ok != tt.wantOK {
				t.Fatalf("closestField(%q) ok = %v, want %v", tt.target, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("closestField(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}
