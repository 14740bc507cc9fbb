// Package normalize prepares raw transcripts for word-error-rate comparison.
// It approximates the normalization conventionally applied to spoken-English
// ASR output: lowercasing, contraction and spoken-title expansion,
// punctuation removal and whitespace collapsing. Digits are left as written.
package normalize

import (
	"regexp"
	"strings"
)

// Whole-token contractions that suffix expansion cannot handle.
var contractions = map[string]string{
	"won't":  "will not",
	"can't":  "cannot",
	"shan't": "shall not",
	"let's":  "let us",
	"y'all":  "you all",
}

// Spoken titles and abbreviations, matched after trailing-period removal.
var titles = map[string]string{
	"mr":   "mister",
	"mrs":  "missus",
	"ms":   "miss",
	"dr":   "doctor",
	"prof": "professor",
	"st":   "saint",
	"jr":   "junior",
	"sr":   "senior",
}

var suffixes = []struct {
	suffix    string
	expansion string
}{
	{"n't", " not"},
	{"'re", " are"},
	{"'ve", " have"},
	{"'ll", " will"},
	{"'m", " am"},
	{"'d", " would"},
}

var nonWord = regexp.MustCompile(`[^a-z0-9 ]`)

const trimCutset = ".,!?;:\"'()[]{}«»‐–—…"

// English normalizes a transcript for spoken-text comparison. The output
// contains only lowercase words and digits separated by single spaces, with
// common contractions expanded so that "don't" and "do not" compare equal.
func English(text string) string {
	text = strings.ToLower(text)

	var words []string
	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, trimCutset)
		if token == "" {
			continue
		}

		if expanded, ok := contractions[token]; ok {
			words = append(words, strings.Fields(expanded)...)
			continue
		}
		if expanded, ok := titles[token]; ok {
			words = append(words, expanded)
			continue
		}

		token = expandSuffix(token)
		token = nonWord.ReplaceAllString(token, "")
		words = append(words, strings.Fields(token)...)
	}

	return strings.Join(words, " ")
}

func expandSuffix(token string) string {
	for _, s := range suffixes {
		if rest, ok := strings.CutSuffix(token, s.suffix); ok && rest != "" {
			return rest + s.expansion
		}
	}
	return token
}
