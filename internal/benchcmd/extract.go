// Package benchcmd implements the nebench subcommands.
package benchcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/entity"
	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/privateai"
)

// NewExtractCmd creates the extract command
func NewExtractCmd() *cobra.Command {
	var entityTypes []string

	cmd := &cobra.Command{
		Use:   "extract <transcript-file> <output-dir>",
		Short: "Extract named entities from a transcript into timeline artifacts",
		Long: `Extract named entities from a transcript file using the Private AI API.

The command writes two artifacts into the output directory: entities.json,
one entry per unique entity with all of its occurrence positions and context
windows, and timeline.json, the flat position-ordered occurrence list the
analyze command consumes. Both files are pure functions of the API response,
so downstream analysis never needs to call the API again.

Requires the PRIVATE_AI_API_KEY environment variable (a .env file is loaded
if present).`,
		Example: `  # Extract people and organizations (the defaults)
  nebench extract transcript.txt ./truth

  # Custom entity types
  nebench extract transcript.txt ./truth --entity-types NAME,ORGANIZATION,LOCATION`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeExtract(cmd.Context(), args[0], args[1], entityTypes)
		},
	}

	cmd.Flags().StringSliceVar(&entityTypes, "entity-types", []string{"NAME", "ORGANIZATION"}, "Entity types to extract")

	return cmd
}

func executeExtract(ctx context.Context, transcriptPath, outputDir string, entityTypes []string) error {
	// Fail on a missing credential before touching the transcript or network.
	client, err := privateai.NewClient()
	if err != nil {
		return err
	}

	transcriptBytes, err := os.ReadFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("failed to read transcript file: %w", err)
	}
	transcript := string(transcriptBytes)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("Extracting entities", "transcript", transcriptPath, "types", entityTypes)
	detected, err := client.DetectEntities(ctx, transcript, entityTypes)
	if err != nil {
		return fmt.Errorf("failed to extract entities: %w", err)
	}

	entityMap := entity.BuildMap(transcript, detected)
	if err := entity.SaveMap(entityMap, outputDir); err != nil {
		return err
	}
	slog.Info("Entities saved", "file", filepath.Join(outputDir, "entities.json"), "entities", len(entityMap))

	timeline := entityMap.Timeline()
	if err := entity.SaveTimeline(timeline, outputDir); err != nil {
		return err
	}
	slog.Info("Timeline saved", "file", filepath.Join(outputDir, "timeline.json"), "occurrences", len(timeline))

	return nil
}
