// Package entity holds the occurrence data model shared by the extract and
// analyze stages, along with the two persisted artifacts of extraction: the
// entity map (entities.json) and the occurrence timeline (timeline.json).
package entity

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zkleb-aai/named-entity-custom-benchmark/internal/privateai"
)

// contextWindow is the number of words captured on each side of a mention.
const contextWindow = 10

// Occurrence is one located mention of a named entity within a transcript.
//
// Position is the mention's character offset normalized by transcript length
// to [0, 100], which keeps positions comparable between transcripts of
// different lengths. Sentence is a context window of up to ten words before
// and after the mention, used as a matching signal independent of the entity
// text itself.
type Occurrence struct {
	Text       string `json:"text"`
	Position   int    `json:"position"`
	EntityType string `json:"entity_type"`
	EntityKey  string `json:"entity_key"`
	Sentence   string `json:"sentence"`
}

// Record groups every occurrence of one canonical entity within a transcript.
// Positions and Sentences are parallel arrays, one element per occurrence
// with resolvable offsets.
type Record struct {
	Text      string   `json:"text"`
	Type      string   `json:"type"`
	Positions []int    `json:"positions"`
	Sentences []string `json:"sentences"`
}

// Map is the persisted entity map, keyed by canonical entity key.
type Map map[string]*Record

// BuildMap converts a Private AI detection response into an entity map.
//
// Entities missing a canonical key or a type label are skipped with a
// warning: they cannot be identified reliably later. Entities with missing
// or out-of-range span offsets keep their map entry but contribute no
// position or context, so no occurrence is ever fabricated.
func BuildMap(text string, entities []privateai.Entity) Map {
	m := make(Map)
	textLength := len(text)
	words := strings.Fields(text)

	for _, ent := range entities {
		key := ent.ProcessedText
		entityType := ent.BestLabel
		if key == "" || entityType == "" {
			slog.Warn("Skipping entity due to missing key or type", "text", ent.Text)
			continue
		}

		rec, ok := m[key]
		if !ok {
			rec = &Record{
				Text:      ent.Text,
				Type:      entityType,
				Positions: []int{},
				Sentences: []string{},
			}
			m[key] = rec
		}

		if ent.Location == nil || ent.Location.StartIdx == nil || ent.Location.EndIdx == nil {
			slog.Warn("Skipping context extraction for entity due to missing position information", "text", ent.Text)
			continue
		}

		start := *ent.Location.StartIdx
		if start < 0 || start > textLength || textLength == 0 {
			slog.Warn("Skipping context extraction for entity due to invalid offsets", "text", ent.Text, "start", start)
			continue
		}

		rec.Positions = append(rec.Positions, start*100/textLength)

		// The word index of the mention: words fully or partially before it.
		startWord := len(strings.Fields(text[:start]))
		lo := max(0, startWord-contextWindow)
		hi := min(len(words), startWord+contextWindow)
		rec.Sentences = append(rec.Sentences, strings.Join(words[lo:hi], " "))
	}

	return m
}

// Timeline flattens the entity map into a single position-ordered occurrence
// list. Entity keys are visited in sorted order so that occurrences sharing a
// position serialize deterministically across runs.
func (m Map) Timeline() []Occurrence {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	occurrences := make([]Occurrence, 0)
	for _, key := range keys {
		rec := m[key]
		for i, pos := range rec.Positions {
			occurrences = append(occurrences, Occurrence{
				Text:       rec.Text,
				Position:   pos,
				EntityType: rec.Type,
				EntityKey:  key,
				Sentence:   rec.Sentences[i],
			})
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Position < occurrences[j].Position
	})

	return occurrences
}

// SaveMap writes the entity map to entities.json in outputDir.
func SaveMap(m Map, outputDir string) error {
	return writeJSON(filepath.Join(outputDir, "entities.json"), m)
}

// SaveTimeline writes the occurrence timeline to timeline.json in outputDir.
func SaveTimeline(occurrences []Occurrence, outputDir string) error {
	return writeJSON(filepath.Join(outputDir, "timeline.json"), occurrences)
}

// LoadTimeline reads a timeline file produced by SaveTimeline.
func LoadTimeline(path string) ([]Occurrence, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open timeline file: %w", err)
	}
	defer file.Close()

	var occurrences []Occurrence
	if err := json.NewDecoder(file).Decode(&occurrences); err != nil {
		return nil, fmt.Errorf("failed to decode timeline: %w", err)
	}

	return occurrences, nil
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
