package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/benchcmd"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "nebench",
		Short: "Named-entity accuracy benchmark for speech transcription",
		Long: `Nebench measures how well a transcription pipeline handles proper nouns.

It extracts named entities from a ground-truth transcript and a candidate
transcript, reconciles the two entity timelines, and reports how many entities
the pipeline got right alongside a whole-transcript word error rate.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(benchcmd.NewExtractCmd())
	cmd.AddCommand(benchcmd.NewAnalyzeCmd())

	return cmd
}
