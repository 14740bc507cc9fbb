package textsim

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	if got := Ratio("", ""); got != 100 {
		t.Errorf("Expected Ratio=100 for two empty strings, got %.2f", got)
	}
	if got := Ratio("Acme Corp", "Acme Corp"); got != 100 {
		t.Errorf("Expected Ratio=100 for identical strings, got %.2f", got)
	}
	if got := Ratio("abc", ""); got != 0 {
		t.Errorf("Expected Ratio=0 against an empty string, got %.2f", got)
	}

	// kitten/sitting: Levenshtein distance 3 over the longer length 7.
	want := 100 * (1 - 3.0/7.0)
	if got := Ratio("kitten", "sitting"); math.Abs(got-want) > 0.01 {
		t.Errorf("Expected Ratio=%.2f, got %.2f", want, got)
	}

	if close, far := Ratio("Jon Smith", "John Smith"), Ratio("Jon Smith", "Initech"); close <= far {
		t.Errorf("Expected near-miss (%.2f) to outscore unrelated text (%.2f)", close, far)
	}
}

func TestJaroWinkler(t *testing.T) {
	if got := JaroWinkler("martha", "martha"); got != 1 {
		t.Errorf("Expected JaroWinkler=1 for identical strings, got %.4f", got)
	}

	// Classic textbook pair.
	if got := JaroWinkler("martha", "marhta"); math.Abs(got-0.9611) > 0.01 {
		t.Errorf("Expected JaroWinkler≈0.9611, got %.4f", got)
	}
}

func TestPhoneticCodes(t *testing.T) {
	primary, secondary := PhoneticCodes("")
	if primary != "" || secondary != "" {
		t.Errorf("Expected empty codes for empty input, got %q/%q", primary, secondary)
	}

	jonPrimary, _ := PhoneticCodes("Jon Smith")
	johnPrimary, _ := PhoneticCodes("John Smith")
	if jonPrimary != johnPrimary {
		t.Errorf("Expected homophones to share a primary code, got %q vs %q", jonPrimary, johnPrimary)
	}
}

func TestPhoneticSimilarity(t *testing.T) {
	if got := PhoneticSimilarity("Jon Smith", "John Smith"); got != 100 {
		t.Errorf("Expected PhoneticSimilarity=100 for homophones, got %.2f", got)
	}

	if got := PhoneticSimilarity("Acme Corp", "Jon Smith"); got >= 50 {
		t.Errorf("Expected low similarity for unrelated names, got %.2f", got)
	}
}
