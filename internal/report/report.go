// Package report persists the analyze stage's outputs: the match report, the
// statistics file and a human-oriented YAML run summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/matcher"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/metrics"
)

// SaveMatches writes the reconciliation result to matches.json in outputDir.
func SaveMatches(result matcher.Result, outputDir string) error {
	return writeJSON(filepath.Join(outputDir, "matches.json"), result)
}

// LoadMatches reads a matches.json produced by SaveMatches.
func LoadMatches(path string) (*matcher.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open matches file: %w", err)
	}
	defer file.Close()

	var result matcher.Result
	if err := json.NewDecoder(file).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}

	return &result, nil
}

// SaveStatistics writes the run statistics to statistics.json in outputDir.
func SaveStatistics(stats metrics.Statistics, outputDir string) error {
	return writeJSON(filepath.Join(outputDir, "statistics.json"), stats)
}

// RunConfig is the configuration section of the YAML summary.
type RunConfig struct {
	TruthTimeline        string `yaml:"truth_timeline"`
	TruthTranscript      string `yaml:"truth_transcript"`
	PredictionTimeline   string `yaml:"prediction_timeline"`
	PredictionTranscript string `yaml:"prediction_transcript"`
	PositionTolerance    int    `yaml:"position_tolerance"`
	Timestamp            string `yaml:"timestamp"`
}

// RunResults is the headline-numbers section of the YAML summary.
type RunResults struct {
	MatchedEntities      int     `yaml:"matched_entities"`
	UnmatchedTruth       int     `yaml:"unmatched_truth"`
	UnmatchedTranscribed int     `yaml:"unmatched_transcribed"`
	MatchRate            float64 `yaml:"match_rate"`
	AverageMatchScore    float64 `yaml:"average_match_score"`
	PNER                 float64 `yaml:"pner"`
	PNWER                float64 `yaml:"pnwer"`
	TranscriptWER        float64 `yaml:"transcript_wer"`
}

// Summary is the complete YAML run summary written next to the JSON reports.
type Summary struct {
	Config  RunConfig  `yaml:"config"`
	Results RunResults `yaml:"results"`
}

// SaveSummaryYAML writes summary.yaml into outputDir: the run parameters plus
// the headline numbers, for humans skimming a directory of benchmark runs.
func SaveSummaryYAML(config RunConfig, result matcher.Result, stats metrics.Statistics, outputDir string) error {
	if config.Timestamp == "" {
		config.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	summary := Summary{
		Config: config,
		Results: RunResults{
			MatchedEntities:      len(result.Matches),
			UnmatchedTruth:       len(result.UnmatchedTruth),
			UnmatchedTranscribed: len(result.UnmatchedTranscribed),
			MatchRate:            stats.MatchRate,
			AverageMatchScore:    stats.AverageMatchScore,
			PNER:                 stats.PNER,
			PNWER:                stats.PNWER,
			TranscriptWER:        stats.TranscriptWER,
		},
	}

	data, err := yaml.Marshal(&summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	summaryPath := filepath.Join(outputDir, "summary.yaml")
	if err := os.WriteFile(summaryPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}

	return nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	return nil
}
