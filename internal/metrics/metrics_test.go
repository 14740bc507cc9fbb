package metrics

import (
	"testing"

	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/entity"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/matcher"
)

func occ(text string) entity.Occurrence {
	return entity.Occurrence{Text: text, EntityType: "NAME", Sentence: "context around " + text}
}

func TestCalculateEmptyRun(t *testing.T) {
	stats := Calculate(matcher.Result{}, "", "")

	if stats.TotalEntities != 0 {
		t.Errorf("Expected TotalEntities=0, got %d", stats.TotalEntities)
	}
	if stats.MatchRate != 0 || stats.UnmatchedTruthRate != 0 || stats.UnmatchedTranscribedRate != 0 {
		t.Errorf("Expected zero rates on an empty run")
	}
	if stats.AverageMatchScore != 0 {
		t.Errorf("Expected AverageMatchScore=0 with no matches, got %.2f", stats.AverageMatchScore)
	}
	if stats.PNER != 0 || stats.PNWER != 0 {
		t.Errorf("Expected PNER=0 and PNWER=0 with no matches, got %.4f and %.4f", stats.PNER, stats.PNWER)
	}
	if stats.TranscriptWER != 0 {
		t.Errorf("Expected TranscriptWER=0 for identical empty transcripts, got %.4f", stats.TranscriptWER)
	}
}

func TestCalculateRatesAndAverage(t *testing.T) {
	result := matcher.Result{
		Matches: []matcher.Match{
			{Truth: occ("Acme Corp"), Transcribed: occ("Acme Corp"), Score: 100},
			{Truth: occ("Jon Smith"), Transcribed: occ("John Smith"), Score: 60},
		},
		UnmatchedTruth:       []entity.Occurrence{occ("Globex")},
		UnmatchedTranscribed: []entity.Occurrence{occ("Initech")},
	}

	stats := Calculate(result, "same transcript", "same transcript")

	if stats.TotalEntities != 4 {
		t.Errorf("Expected TotalEntities=4, got %d", stats.TotalEntities)
	}
	if stats.MatchRate != 0.5 {
		t.Errorf("Expected MatchRate=0.5, got %.4f", stats.MatchRate)
	}
	if stats.UnmatchedTruthRate != 0.25 || stats.UnmatchedTranscribedRate != 0.25 {
		t.Errorf("Expected both unmatched rates=0.25, got %.4f and %.4f",
			stats.UnmatchedTruthRate, stats.UnmatchedTranscribedRate)
	}
	if stats.AverageMatchScore != 80 {
		t.Errorf("Expected AverageMatchScore=80, got %.2f", stats.AverageMatchScore)
	}
	if stats.AverageMatchScore < 60 || stats.AverageMatchScore > 100 {
		t.Errorf("Average score %.2f outside [min, max] of individual scores", stats.AverageMatchScore)
	}
	if stats.TranscriptWER != 0 {
		t.Errorf("Expected TranscriptWER=0 for identical transcripts, got %.4f", stats.TranscriptWER)
	}
}

func TestCalculateAllCandidatesUnmatched(t *testing.T) {
	result := matcher.Result{
		UnmatchedTranscribed: []entity.Occurrence{occ("Acme Corp"), occ("Jon Smith"), occ("Globex")},
	}

	stats := Calculate(result, "", "")

	if stats.TotalEntities != 3 {
		t.Errorf("Expected TotalEntities=3, got %d", stats.TotalEntities)
	}
	if stats.MatchRate != 0 {
		t.Errorf("Expected MatchRate=0, got %.4f", stats.MatchRate)
	}
	if stats.UnmatchedTranscribedRate != 1 {
		t.Errorf("Expected UnmatchedTranscribedRate=1, got %.4f", stats.UnmatchedTranscribedRate)
	}
}

func TestProperNounErrorRate(t *testing.T) {
	if got := ProperNounErrorRate(nil, nil); got != 0 {
		t.Errorf("Expected PNER=0 for empty reference, got %.4f", got)
	}
	if got := ProperNounErrorRate(nil, []string{"Acme"}); got != 0 {
		t.Errorf("Expected PNER=0 for empty reference regardless of candidate, got %.4f", got)
	}

	if got := ProperNounErrorRate([]string{"Acme", "Globex"}, []string{"Acme", "Globex"}); got != 0 {
		t.Errorf("Expected PNER=0 for identical pairs, got %.4f", got)
	}

	got := ProperNounErrorRate([]string{"Jon"}, []string{"John"})
	if got <= 0 || got >= 0.5 {
		t.Errorf("Expected a small positive PNER for a near-miss, got %.4f", got)
	}
}

func TestProperNounWordErrorRate(t *testing.T) {
	if got := ProperNounWordErrorRate(nil, []string{"Acme"}); got != 0 {
		t.Errorf("Expected PNWER=0 for empty reference, got %.4f", got)
	}

	if got := ProperNounWordErrorRate([]string{"Acme", "Globex"}, []string{"Acme", "Globex"}); got != 0 {
		t.Errorf("Expected PNWER=0 for identical lists, got %.4f", got)
	}

	// One substitution out of two reference proper nouns. Comparison is
	// case-sensitive, unlike the matcher's first pass.
	if got := ProperNounWordErrorRate([]string{"Jon", "Globex"}, []string{"John", "Globex"}); got != 0.5 {
		t.Errorf("Expected PNWER=0.5, got %.4f", got)
	}
	if got := ProperNounWordErrorRate([]string{"acme"}, []string{"Acme"}); got != 1 {
		t.Errorf("Expected case difference to count as substitution, got %.4f", got)
	}

	// A length mismatch contributes deletions on top of substitutions.
	if got := ProperNounWordErrorRate([]string{"Acme", "Globex"}, []string{"Acme"}); got != 0.5 {
		t.Errorf("Expected PNWER=0.5 with one implied deletion, got %.4f", got)
	}
}

func TestWordErrorRate(t *testing.T) {
	if got := WordErrorRate("", ""); got != 0 {
		t.Errorf("Expected WER=0 for empty pair, got %.4f", got)
	}
	if got := WordErrorRate("the quick brown fox", "the quick brown fox"); got != 0 {
		t.Errorf("Expected WER=0 for identical transcripts, got %.4f", got)
	}

	// One deleted word out of four.
	if got := WordErrorRate("the quick brown fox", "the quick fox"); got != 0.25 {
		t.Errorf("Expected WER=0.25 for one deletion, got %.4f", got)
	}

	// One substitution out of four.
	if got := WordErrorRate("the quick brown fox", "the quick brown box"); got != 0.25 {
		t.Errorf("Expected WER=0.25 for one substitution, got %.4f", got)
	}

	// One inserted word out of four reference words.
	if got := WordErrorRate("the quick brown fox", "the very quick brown fox"); got != 0.25 {
		t.Errorf("Expected WER=0.25 for one insertion, got %.4f", got)
	}
}
