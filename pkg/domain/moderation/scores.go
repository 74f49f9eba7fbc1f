package moderation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Severity bands a risk score for parent-facing alert prioritization.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// flagLimit is the classifier-level flag threshold. It is independent of the
// parent-configured thresholds used for notification gating.
const flagLimit = 0.5

// Scores is the classifier output for a single activity observation. All
// numeric fields are in [0,1]. A Scores value is never mutated after the
// flag derivation in Finalize.
type Scores struct {
	ViolenceScore      float64       `json:"violenceScore"`
	AdultContentScore  float64       `json:"adultContentScore"`
	InappropriateScore float64       `json:"inappropriateScore"`
	DetectedCategories CategoryList  `json:"detectedCategories"`
	Summary            string        `json:"summary"`
	Confidence         float64       `json:"confidence"`
	Flagged            bool          `json:"flagged"`
	Reason             string        `json:"reason,omitempty"`
}

type CategoryList []string

// Max returns the highest of the three category scores.
func (s Scores) Max() float64 {
	max := s.ViolenceScore
	if s.AdultContentScore > max {
		max = s.AdultContentScore
	}
	if s.InappropriateScore > max {
		max = s.InappropriateScore
	}
	return max
}

// Finalize recomputes the flag via the OR-rule, regardless of what the
// classifier already supplied. Upstream output may be inconsistent with its
// own scores; the local derivation wins.
func (s *Scores) Finalize() {
	s.Flagged = s.Flagged ||
		s.ViolenceScore > flagLimit ||
		s.AdultContentScore > flagLimit ||
		s.InappropriateScore > flagLimit
}

// Validate checks that every numeric field lies in [0,1].
func (s Scores) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"violenceScore", s.ViolenceScore},
		{"adultContentScore", s.AdultContentScore},
		{"inappropriateScore", s.InappropriateScore},
		{"confidence", s.Confidence},
	} {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("%s out of range: %v", f.name, f.value)
		}
	}
	return nil
}

// SeverityFromScore bands an absolute risk score. Both the notification
// decision and the notification composer use this single implementation so
// the banding cannot drift between them.
func SeverityFromScore(maxScore float64) Severity {
	switch {
	case maxScore >= 0.9:
		return SeverityCritical
	case maxScore >= 0.8:
		return SeverityHigh
	case maxScore >= 0.7:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func (s Scores) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Scores) Scan(value interface{}) error {
	if value == nil {
		*s = Scores{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, s)
}
