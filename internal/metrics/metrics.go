// Package metrics derives the aggregate accuracy statistics of one benchmark
// run from a reconciliation result and the two raw transcripts.
package metrics

import (
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/matcher"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/normalize"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/textsim"
)

// Statistics is the read-only aggregate of one run. Field names mirror the
// persisted statistics.json.
type Statistics struct {
	TotalEntities             int     `json:"total_entities"`
	TotalMatches              int     `json:"total_matches"`
	TotalUnmatchedTruth       int     `json:"total_unmatched_truth"`
	TotalUnmatchedTranscribed int     `json:"total_unmatched_transcribed"`
	MatchRate                 float64 `json:"match_rate"`
	UnmatchedTruthRate        float64 `json:"unmatched_truth_rate"`
	UnmatchedTranscribedRate  float64 `json:"unmatched_transcribed_rate"`
	AverageMatchScore         float64 `json:"average_match_score"`
	PNER                      float64 `json:"pner"`
	PNWER                     float64 `json:"pnwer"`
	TranscriptWER             float64 `json:"transcript_wer"`
}

// Calculate derives the full statistics for one run. Entity-level rates come
// purely from the match result; the whole-transcript WER is computed after
// normalizing both raw transcripts and is independent of entity matching.
func Calculate(result matcher.Result, truthTranscript, transcribedTranscript string) Statistics {
	stats := Statistics{
		TotalMatches:              len(result.Matches),
		TotalUnmatchedTruth:       len(result.UnmatchedTruth),
		TotalUnmatchedTranscribed: len(result.UnmatchedTranscribed),
	}
	stats.TotalEntities = stats.TotalMatches + stats.TotalUnmatchedTruth + stats.TotalUnmatchedTranscribed

	if stats.TotalEntities > 0 {
		stats.MatchRate = float64(stats.TotalMatches) / float64(stats.TotalEntities)
		stats.UnmatchedTruthRate = float64(stats.TotalUnmatchedTruth) / float64(stats.TotalEntities)
		stats.UnmatchedTranscribedRate = float64(stats.TotalUnmatchedTranscribed) / float64(stats.TotalEntities)
	}

	if len(result.Matches) > 0 {
		var total float64
		for _, m := range result.Matches {
			total += m.Score
		}
		stats.AverageMatchScore = total / float64(len(result.Matches))
	}

	truthTexts := make([]string, 0, len(result.Matches))
	transcribedTexts := make([]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		truthTexts = append(truthTexts, m.Truth.Text)
		transcribedTexts = append(transcribedTexts, m.Transcribed.Text)
	}

	stats.PNER = ProperNounErrorRate(truthTexts, transcribedTexts)
	stats.PNWER = ProperNounWordErrorRate(truthTexts, transcribedTexts)
	stats.TranscriptWER = WordErrorRate(
		normalize.English(truthTranscript),
		normalize.English(transcribedTranscript),
	)

	return stats
}

// ProperNounErrorRate averages the Jaro-Winkler distance between each matched
// truth/transcribed text pair, taken in match order. It is 0 when there are
// no matched truth entities.
func ProperNounErrorRate(truthTexts, transcribedTexts []string) float64 {
	if len(truthTexts) == 0 {
		return 0
	}

	var totalDistance float64
	for i := 0; i < min(len(truthTexts), len(transcribedTexts)); i++ {
		totalDistance += 1 - textsim.JaroWinkler(truthTexts[i], transcribedTexts[i])
	}

	return totalDistance / float64(len(truthTexts))
}

// ProperNounWordErrorRate counts exact-text substitutions across matched
// pairs plus the insertions or deletions implied by a length mismatch between
// the two lists, over the number of truth proper nouns. With one entry per
// match on each side the length terms are always zero and this reduces to a
// substitution rate.
func ProperNounWordErrorRate(truthTexts, transcribedTexts []string) float64 {
	if len(truthTexts) == 0 {
		return 0
	}

	substitutions := 0
	for i := 0; i < min(len(truthTexts), len(transcribedTexts)); i++ {
		if truthTexts[i] != transcribedTexts[i] {
			substitutions++
		}
	}

	deletions := max(0, len(truthTexts)-len(transcribedTexts))
	insertions := max(0, len(transcribedTexts)-len(truthTexts))

	return float64(substitutions+deletions+insertions) / float64(len(truthTexts))
}
