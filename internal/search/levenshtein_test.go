package search

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		s1       string
		s2       string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"a", "a", 0},
		{"a", "b", 1},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "def", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"shilajit", "shilajt", 1},  // missing 'i'
		{"apricot", "aprikot", 1},   // substitution
		{"walnuts", "walnut", 1},    // plural
		{"badam", "almonds", 7},     // unrelated
		{"café", "cafe", 1},         // multi-byte rune counts once
		{"Shilajit", "shilajit", 1}, // no case folding
	}

	for _, tt := range tests {
		result := Distance(tt.s1, tt.s2)
		if result != tt.expected {
			t.Errorf("Distance(%q, %q) = %d, expected %d", tt.s1, tt.s2, result, tt.expected)
		}
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"honey", "hony"},
		{"", "almonds"},
	}

	for _, p := range pairs {
		if Distance(p[0], p[1]) != Distance(p[1], p[0]) {
			t.Errorf("Distance(%q, %q) != Distance(%q, %q)", p[0], p[1], p[1], p[0])
		}
	}
}

func TestWithinDistance(t *testing.T) {
	tests := []struct {
		term     string
		word     string
		expected bool
		reason   string
	}{
		{"shilajt", "shilajit", true, "1 char missing"},
		{"aprcots", "apricots", true, "1 char missing"},
		{"almnd", "almonds", true, "2 chars missing"},
		{"badam", "almonds", false, "too different"},
		{"oil", "shilajit", false, "length gap over 2"},
		{"resin", "re", false, "length gap over 2"},
	}

	for _, tt := range tests {
		result := withinDistance(tt.term, tt.word, 2, 2)
		if result != tt.expected {
			t.Errorf("withinDistance(%q, %q) = %v, expected %v (%s)",
				tt.term, tt.word, result, tt.expected, tt.reason)
		}
	}
}
