// Package matcher reconciles two entity occurrence timelines, deciding which
// occurrences from a ground-truth transcript and a candidate transcription
// denote the same real-world mention despite differing surface text, shifted
// positions and transcription noise.
package matcher

import (
	"strings"

	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/entity"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/textsim"
)

// DefaultPositionTolerance is the maximum normalized-position distance at
// which the position-gated passes consider a pair at all.
const DefaultPositionTolerance = 10

// Fixed design constants of the three passes; they are not tuned at runtime.
const (
	exactSentenceThreshold = 80 // pass 1: context similarity gate
	weightedScoreThreshold = 50 // pass 2: minimum combined score
	relaxedScoreThreshold  = 80 // pass 3: stricter bar, no positional evidence
)

// Match pairs one ground-truth occurrence with one transcribed occurrence.
// Score is 100 for first-pass rule matches and the weighted heuristic value
// otherwise, on a 0-100 scale.
type Match struct {
	Truth       entity.Occurrence `json:"truth"`
	Transcribed entity.Occurrence `json:"transcribed"`
	Score       float64           `json:"score"`
}

// Result is the outcome of a reconciliation run. Every input occurrence lands
// in exactly one of Matches, UnmatchedTruth or UnmatchedTranscribed, and no
// occurrence appears in two matches.
type Result struct {
	Matches              []Match             `json:"matches"`
	UnmatchedTruth       []entity.Occurrence `json:"unmatched_truth"`
	UnmatchedTranscribed []entity.Occurrence `json:"unmatched_transcribed"`
}

// Reconcile aligns the transcribed timeline against the ground-truth timeline
// in three greedy passes, each relaxing the matching constraints and
// operating only on what the previous pass left unmatched:
//
//	pass 1: case-insensitive exact text, position within tolerance, and
//	        context similarity above 80 — first satisfying truth entity wins,
//	        scored a flat 100.
//	pass 2: same entity type and position within tolerance; combined score
//	        0.5*sentence + 0.3*position + 0.15*text + 0.05*phonetic, best
//	        truth entity accepted above 50.
//	pass 3: same entity type, position ignored; combined score
//	        0.6*sentence + 0.3*text + 0.1*phonetic, best truth entity
//	        accepted above 80.
//
// Passes never revisit earlier decisions and consume truth entities greedily
// in transcribed-list order, so the result is deterministic for a given input
// order. No globally optimal assignment is attempted.
func Reconcile(truth, transcribed []entity.Occurrence, positionTolerance int) Result {
	truthClaimed := make([]bool, len(truth))
	transClaimed := make([]bool, len(transcribed))

	result := Result{
		Matches:              []Match{},
		UnmatchedTruth:       []entity.Occurrence{},
		UnmatchedTranscribed: []entity.Occurrence{},
	}

	// First pass: exact text, close position, strongly similar context.
	for ti, trans := range transcribed {
		for gi, gt := range truth {
			if truthClaimed[gi] {
				continue
			}
			if !strings.EqualFold(trans.Text, gt.Text) {
				continue
			}
			if abs(trans.Position-gt.Position) > positionTolerance {
				continue
			}
			if textsim.Ratio(trans.Sentence, gt.Sentence) > exactSentenceThreshold {
				result.Matches = append(result.Matches, Match{Truth: gt, Transcribed: trans, Score: 100})
				truthClaimed[gi] = true
				transClaimed[ti] = true
				break
			}
		}
	}

	// Second pass: weighted heuristic over same-type pairs within the
	// position tolerance.
	for ti, trans := range transcribed {
		if transClaimed[ti] {
			continue
		}

		bestIdx := -1
		bestScore := 0.0

		for gi, gt := range truth {
			if truthClaimed[gi] {
				continue
			}
			if trans.EntityType != gt.EntityType {
				continue
			}
			delta := abs(trans.Position - gt.Position)
			if delta > positionTolerance {
				continue
			}

			sentenceSimilarity := textsim.Ratio(trans.Sentence, gt.Sentence)
			textSimilarity := textsim.Ratio(strings.ToLower(trans.Text), strings.ToLower(gt.Text))
			phoneticSimilarity := textsim.PhoneticSimilarity(trans.Text, gt.Text)

			// Deliberately not clamped at zero: a large offset still inside
			// the tolerance drags the combined score down sharply.
			positionScore := 100 - float64(delta)*10

			score := 0.5*sentenceSimilarity + 0.3*positionScore + 0.15*textSimilarity + 0.05*phoneticSimilarity
			if score > bestScore {
				bestScore = score
				bestIdx = gi
			}
		}

		if bestIdx >= 0 && bestScore > weightedScoreThreshold {
			result.Matches = append(result.Matches, Match{Truth: truth[bestIdx], Transcribed: trans, Score: bestScore})
			truthClaimed[bestIdx] = true
			transClaimed[ti] = true
		}
	}

	// Third pass: same-type pairs regardless of position. These pairs already
	// failed proximity, so the acceptance bar is stricter.
	for ti, trans := range transcribed {
		if transClaimed[ti] {
			continue
		}

		bestIdx := -1
		bestScore := 0.0

		for gi, gt := range truth {
			if truthClaimed[gi] {
				continue
			}
			if trans.EntityType != gt.EntityType {
				continue
			}

			sentenceSimilarity := textsim.Ratio(trans.Sentence, gt.Sentence)
			textSimilarity := textsim.Ratio(strings.ToLower(trans.Text), strings.ToLower(gt.Text))
			phoneticSimilarity := textsim.PhoneticSimilarity(trans.Text, gt.Text)

			score := 0.6*sentenceSimilarity + 0.3*textSimilarity + 0.1*phoneticSimilarity
			if score > bestScore {
				bestScore = score
				bestIdx = gi
			}
		}

		if bestIdx >= 0 && bestScore > relaxedScoreThreshold {
			result.Matches = append(result.Matches, Match{Truth: truth[bestIdx], Transcribed: trans, Score: bestScore})
			truthClaimed[bestIdx] = true
			transClaimed[ti] = true
		}
	}

	for gi, gt := range truth {
		if !truthClaimed[gi] {
			result.UnmatchedTruth = append(result.UnmatchedTruth, gt)
		}
	}
	for ti, trans := range transcribed {
		if !transClaimed[ti] {
			result.UnmatchedTranscribed = append(result.UnmatchedTranscribed, trans)
		}
	}

	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
