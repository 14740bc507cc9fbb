// Package privateai is a minimal client for the Private AI text-analysis API.
// Only the single process/text call this tool needs is covered.
package privateai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://api.private-ai.com/community/v3"

// ErrMissingAPIKey is returned by NewClient when no credential is configured.
// It is a configuration error: nothing was sent over the network.
var ErrMissingAPIKey = errors.New("PRIVATE_AI_API_KEY environment variable not set")

// Entity is one detected entity in a processed text. ProcessedText carries the
// canonical entity key, BestLabel the entity type and Text the raw surface
// form. Any of these may be absent in a response; callers must tolerate that.
type Entity struct {
	ProcessedText string    `json:"processed_text"`
	BestLabel     string    `json:"best_label"`
	Text          string    `json:"text"`
	Location      *Location `json:"location,omitempty"`
}

// Location is a character span into the submitted text. The API omits offsets
// for some entity kinds, so both indices are nullable.
type Location struct {
	StartIdx *int `json:"stt_idx"`
	EndIdx   *int `json:"end_idx"`
}

// APIError is a non-2xx response from the Private AI API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Private AI API returned status %d: %s", e.StatusCode, e.Body)
}

type entityTypeSelector struct {
	Type  string   `json:"type"`
	Value []string `json:"value"`
}

type entityDetection struct {
	Accuracy     string               `json:"accuracy"`
	EntityTypes  []entityTypeSelector `json:"entity_types"`
	ReturnEntity bool                 `json:"return_entity"`
}

type processedTextOptions struct {
	Type    string `json:"type"`
	Pattern string `json:"pattern"`
}

type processTextRequest struct {
	Text            []string             `json:"text"`
	LinkBatch       bool                 `json:"link_batch"`
	EntityDetection entityDetection      `json:"entity_detection"`
	ProcessedText   processedTextOptions `json:"processed_text"`
}

type processTextResponse struct {
	Entities []Entity `json:"entities"`
}

// Client represents a Private AI API client
type Client struct {
	BaseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client from the PRIVATE_AI_API_KEY environment variable.
// The credential is checked here so a missing key fails before any network
// call is attempted.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("PRIVATE_AI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &Client{
		BaseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// DetectEntities sends the whole transcript through the process/text endpoint
// with the given entity types enabled and returns the detected entities. A
// response without an entities collection yields zero entities, not an error.
//
// Authentication (401) and rate-limit (403) failures are logged for operator
// diagnosis before the error is returned. There is no retry or backoff.
func (c *Client) DetectEntities(ctx context.Context, text string, entityTypes []string) ([]Entity, error) {
	selectors := make([]entityTypeSelector, 0, len(entityTypes))
	for _, entityType := range entityTypes {
		selectors = append(selectors, entityTypeSelector{Type: "ENABLE", Value: []string{entityType}})
	}

	payload := processTextRequest{
		Text:      []string{text},
		LinkBatch: false,
		EntityDetection: entityDetection{
			Accuracy:     "high",
			EntityTypes:  selectors,
			ReturnEntity: true,
		},
		ProcessedText: processedTextOptions{
			Type:    "MARKER",
			Pattern: "[UNIQUE_NUMBERED_ENTITY_TYPE]",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/process/text", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	slog.Info("Making request to Private AI API")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Private AI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			slog.Error("Private AI auth error")
		case http.StatusForbidden:
			slog.Error("Private AI rate limited")
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	// The API wraps results in an array, one element per submitted text.
	var processed []processTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&processed); err != nil {
		return nil, fmt.Errorf("failed to decode Private AI response: %w", err)
	}

	if len(processed) == 0 {
		return nil, nil
	}
	return processed[0].Entities, nil
}
