package benchcmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/entity"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/matcher"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/metrics"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/report"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var positionTolerance int

	cmd := &cobra.Command{
		Use:   "analyze <truth-timeline> <truth-transcript> <prediction-timeline> <prediction-transcript> <output-dir>",
		Short: "Match entity timelines and compute transcription accuracy statistics",
		Long: `Reconcile a ground-truth entity timeline against a predicted one and report
how accurately the transcription pipeline handled named entities.

The command writes matches.json (the alignment plus both unmatched pools),
statistics.json (match rates, average match score, PNER, PNWER and the
whole-transcript word error rate) and summary.yaml into the output directory,
then prints the headline numbers.`,
		Example: `  # Compare a Whisper run against the reference transcript
  nebench analyze truth/timeline.json truth.txt whisper/timeline.json whisper.txt ./results

  # Widen the positional gate for long transcripts with drift
  nebench analyze truth/timeline.json truth.txt whisper/timeline.json whisper.txt ./results --position-tolerance 15`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeAnalyze(args[0], args[1], args[2], args[3], args[4], positionTolerance)
		},
	}

	cmd.Flags().IntVar(&positionTolerance, "position-tolerance", matcher.DefaultPositionTolerance,
		"Maximum normalized-position distance for the gated matching passes")

	return cmd
}

func executeAnalyze(truthTimelinePath, truthTranscriptPath, predTimelinePath, predTranscriptPath, outputDir string, positionTolerance int) error {
	truthTimeline, err := entity.LoadTimeline(truthTimelinePath)
	if err != nil {
		return fmt.Errorf("failed to load ground truth timeline: %w", err)
	}

	predTimeline, err := entity.LoadTimeline(predTimelinePath)
	if err != nil {
		return fmt.Errorf("failed to load prediction timeline: %w", err)
	}

	slog.Info("Matching entities", "truth", len(truthTimeline), "predicted", len(predTimeline), "tolerance", positionTolerance)
	result := matcher.Reconcile(truthTimeline, predTimeline, positionTolerance)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := report.SaveMatches(result, outputDir); err != nil {
		return err
	}
	slog.Info("Matching results saved", "file", filepath.Join(outputDir, "matches.json"))

	truthText, err := os.ReadFile(truthTranscriptPath)
	if err != nil {
		return fmt.Errorf("failed to read ground truth transcript: %w", err)
	}
	predText, err := os.ReadFile(predTranscriptPath)
	if err != nil {
		return fmt.Errorf("failed to read prediction transcript: %w", err)
	}

	stats := metrics.Calculate(result, string(truthText), string(predText))

	if err := report.SaveStatistics(stats, outputDir); err != nil {
		return err
	}
	slog.Info("Statistics saved", "file", filepath.Join(outputDir, "statistics.json"))

	config := report.RunConfig{
		TruthTimeline:        truthTimelinePath,
		TruthTranscript:      truthTranscriptPath,
		PredictionTimeline:   predTimelinePath,
		PredictionTranscript: predTranscriptPath,
		PositionTolerance:    positionTolerance,
	}
	if err := report.SaveSummaryYAML(config, result, stats, outputDir); err != nil {
		return err
	}

	printSummary(result, stats)

	return nil
}

func printSummary(result matcher.Result, stats metrics.Statistics) {
	fmt.Printf("Matched entities: %d\n", len(result.Matches))
	fmt.Printf("Unmatched ground truth entities: %d\n", len(result.UnmatchedTruth))
	fmt.Printf("Unmatched predicted entities: %d\n", len(result.UnmatchedTranscribed))
	fmt.Printf("Transcript WER: %.4f\n", stats.TranscriptWER)
}
