package matcher

import (
	"testing"
)

func TestExtractLegislatorName(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		text     string
		title    string
		party    string
		district string
	}{
		{"bare name", "Mundon King", "Mundon King", "", "", ""},
		{"senator title", "Senator Mundon King", "Mundon King", "Senator", "", ""},
		{"abbreviated title", "Sen. Mundon King", "Mundon King", "Sen", "", ""},
		{"delegate title", "Delegate Mundon King", "Mundon King", "Delegate", "", ""},
		{"party and district", "Mundon King (R-6)", "Mundon King", "", "R", "6"},
		{"party only", "Mundon King (D)", "Mundon King", "", "D", ""},
		{"district text", "Mundon King, District 6", "Mundon King", "", "", "6"},
		{"of place", "Mundon King of Richmond", "Mundon King", "", "", ""},
		{"dash place", "Mundon King - Fairfax County", "Mundon King", "", "", ""},
		{"comma pivot", "King, Mundon", "Mundon King", "", "", ""},
		{"nickname replaces given names", "Thomas A. (Tom) Garrett", "Tom Garrett", "", "", ""},
		{"nickname with party", "Thomas A. (Tom) Garrett (R-5)", "Tom Garrett", "", "R", "5"},
		{"title party district combined", "Sen. King, Mundon (D-12)", "Mundon King", "Sen", "D", "12"},
		{"collapsed whitespace", "  Mundon   King  ", "Mundon King", "", "", ""},
		{"empty input", "", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractLegislatorName(tt.in)
			if got.Text != tt.text {
				t.Errorf("Text = %q, expected %q", got.Text, tt.text)
			}
			if got.Title != tt.title {
				t.Errorf("Title = %q, expected %q", got.Title, tt.title)
			}
			if got.Party != tt.party {
				t.Errorf("Party = %q, expected %q", got.Party, tt.party)
			}
			if got.District != tt.district {
				t.Errorf("District = %q, expected %q", got.District, tt.district)
			}
		})
	}
}

func TestGenerateOCRVariations(t *testing.T) {
	got := GenerateOCRVariations("K1ng", 12)
	found := false
	for _, v := range got {
		if v == "King" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected variations of K1ng to include King, got %v", got)
	}

	if got := GenerateOCRVariations("xyz", 12); got != nil {
		t.Errorf("Expected no variations for non-confusable text, got %v", got)
	}

	if got := GenerateOCRVariations("mimino", 2); len(got) != 2 {
		t.Errorf("Expected the cap to limit variations to 2, got %d", len(got))
	}
}

func TestCalculateNameScoreTiers(t *testing.T) {
	tests := []struct {
		name      string
		rawText   string
		candidate string
		expected  float64
	}{
		{"exact match", "Mundon King", "Mundon King", 100},
		{"case insensitive exact", "MUNDON KING", "Mundon King", 100},
		{"candidate comma pivot", "Mundon King", "King, Mundon", 100},
		{"ocr variant exact", "Mund0n King", "Mundon King", 95},
		{"trailing subsequence", "Mundon King", "Kia Mundon King", 95},
		{"non-trailing subsequence", "Mundon King", "Mundon King Jefferson", 92},
		{"single token last name", "King", "Mundon King", 90},
		{"single token ocr variant", "K1ng", "Mundon King", 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned := ExtractLegislatorName(tt.rawText)
			got := CalculateNameScore(cleaned, tt.candidate)
			if got != tt.expected {
				t.Errorf("CalculateNameScore(%q, %q) = %f, expected %f", tt.rawText, tt.candidate, got, tt.expected)
			}
		})
	}
}

func TestCalculateNameScoreFuzzyFloor(t *testing.T) {
	// Close but not confusion-table close: lands in the fuzzy tier, below
	// every exact tier.
	cleaned := ExtractLegislatorName("Kingg")
	got := CalculateNameScore(cleaned, "Mundon King")
	if got >= 85 || got <= 0 {
		t.Errorf("Expected a fuzzy score strictly between 0 and 85, got %f", got)
	}

	// Unrelated names must score well below any linking threshold.
	unrelated := CalculateNameScore(ExtractLegislatorName("John Smith"), "Mundon King")
	if unrelated >= 50 {
		t.Errorf("Expected unrelated names to score below 50, got %f", unrelated)
	}
}

func TestCalculateNameScoreEmptyInputs(t *testing.T) {
	if got := CalculateNameScore(ExtractLegislatorName(""), "Mundon King"); got != 0 {
		t.Errorf("Expected empty text to score 0, got %f", got)
	}
	if got := CalculateNameScore(ExtractLegislatorName("Mundon King"), ""); got != 0 {
		t.Errorf("Expected empty candidate to score 0, got %f", got)
	}
}
