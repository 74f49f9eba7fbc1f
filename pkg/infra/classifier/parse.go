package classifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/safenest/safenest/pkg/domain/moderation"
)

// modelPayload mirrors the JSON shape the prompt requests. Required fields
// are pointers so a missing key is distinguishable from a zero value.
type modelPayload struct {
	ViolenceScore      *float64  `json:"violenceScore"`
	AdultContentScore  *float64  `json:"adultContentScore"`
	InappropriateScore *float64  `json:"inappropriateScore"`
	DetectedCategories *[]string `json:"detectedCategories"`
	Summary            string    `json:"summary"`
	Confidence         *float64  `json:"confidence"`
	Flagged            bool      `json:"flagged"`
	Reason             string    `json:"reason"`
}

// parseScores validates a model completion strictly. Any malformation
// (fenced or not, bad JSON, missing or out-of-range fields) is an error;
// malformed external data never reaches decision logic.
func parseScores(completion string) (moderation.Scores, error) {
	cleaned := stripMarkdownFences(completion)

	var payload modelPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return moderation.Scores{}, fmt.Errorf("malformed JSON: %w", err)
	}

	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"violenceScore", payload.ViolenceScore},
		{"adultContentScore", payload.AdultContentScore},
		{"inappropriateScore", payload.InappropriateScore},
		{"confidence", payload.Confidence},
	} {
		if f.value == nil {
			return moderation.Scores{}, fmt.Errorf("missing field %s", f.name)
		}
		if *f.value < 0 || *f.value > 1 {
			return moderation.Scores{}, fmt.Errorf("field %s out of range: %v", f.name, *f.value)
		}
	}
	if payload.DetectedCategories == nil {
		return moderation.Scores{}, fmt.Errorf("missing field detectedCategories")
	}

	return moderation.Scores{
		ViolenceScore:      *payload.ViolenceScore,
		AdultContentScore:  *payload.AdultContentScore,
		InappropriateScore: *payload.InappropriateScore,
		DetectedCategories: *payload.DetectedCategories,
		Summary:            payload.Summary,
		Confidence:         *payload.Confidence,
		Flagged:            payload.Flagged,
		Reason:             payload.Reason,
	}, nil
}

// stripMarkdownFences removes ```json / ``` wrappers that models emit despite
// being told not to.
func stripMarkdownFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
