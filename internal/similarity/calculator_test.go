package similarity

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"", "", 1.0},
		{"abc", "abc", 1.0},
		{"abc", "", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"HB1234", "HB1284", 1.0 - 1.0/6.0},
	}

	for _, tt := range tests {
		got := Levenshtein(tt.a, tt.b)
		if !almostEqual(got, tt.expected) {
			t.Errorf("Levenshtein(%q, %q) = %f, expected %f", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestJaroWinkler(t *testing.T) {
	// Classic worked example: jaro 0.94444, prefix 3, bonus 0.1*3*(1-jaro)
	got := JaroWinkler("martha", "marhta")
	if !almostEqual(got, 0.96111) {
		t.Errorf("JaroWinkler(martha, marhta) = %f, expected 0.96111", got)
	}

	if got := JaroWinkler("abc", "abc"); !almostEqual(got, 1.0) {
		t.Errorf("Expected identical strings to score 1.0, got %f", got)
	}
	if got := JaroWinkler("abc", "xyz"); got != 0 {
		t.Errorf("Expected disjoint strings to score 0, got %f", got)
	}
}

func TestJaroWinklerPrefixBonus(t *testing.T) {
	// Shared prefix must pull the score up relative to the same edit at the end
	prefixed := JaroWinkler("garrett", "garrety")
	unprefixed := JaroWinkler("garrett", "sarrett")
	if prefixed <= unprefixed {
		t.Errorf("Expected prefix match %f > non-prefix match %f", prefixed, unprefixed)
	}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected float64
	}{
		{"identical", []string{"mundon", "king"}, []string{"mundon", "king"}, 1.0},
		{"order insensitive", []string{"king", "mundon"}, []string{"mundon", "king"}, 1.0},
		{"case insensitive", []string{"King"}, []string{"king"}, 1.0},
		{"half overlap", []string{"mundon", "king"}, []string{"mundon", "lee"}, 1.0 / 3.0},
		{"disjoint", []string{"a"}, []string{"b"}, 0.0},
		{"both empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSetRatio(tt.a, tt.b)
			if !almostEqual(got, tt.expected) {
				t.Errorf("TokenSetRatio(%v, %v) = %f, expected %f", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestCombinedUsesWeights(t *testing.T) {
	all := Combined("mundon king", "mundon king", DefaultWeights)
	if !almostEqual(all, 1.0) {
		t.Errorf("Expected identical strings to score 1.0, got %f", all)
	}

	levOnly := Combined("abc", "abd", Weights{Levenshtein: 1})
	if !almostEqual(levOnly, Levenshtein("abc", "abd")) {
		t.Errorf("Expected weight isolation to reproduce Levenshtein, got %f", levOnly)
	}
}

func TestSoundex(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Robert", "R163"},
		{"Rupert", "R163"},
		{"Tymczak", "T522"},
		{"Pfister", "P236"},
		{"Honeyman", "H555"},
		{"", ""},
		{"123", ""},
	}

	for _, tt := range tests {
		if got := Soundex(tt.in); got != tt.expected {
			t.Errorf("Soundex(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestSoundexMatch(t *testing.T) {
	if !SoundexMatch("Robert", "Rupert") {
		t.Error("Expected Robert/Rupert to share a Soundex code")
	}
	if SoundexMatch("Robert", "King") {
		t.Error("Expected Robert/King to differ")
	}
	if SoundexMatch("", "") {
		t.Error("Empty strings must never report a match")
	}
}
