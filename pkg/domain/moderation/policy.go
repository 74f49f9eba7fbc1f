package moderation

import "fmt"

// Violation category labels as they appear in notifications and stored
// decisions.
const (
	CategoryViolence      = "violence"
	CategoryAdultContent  = "adult content"
	CategoryInappropriate = "inappropriate content"
)

const (
	DefaultViolenceThreshold      = 0.6
	DefaultInappropriateThreshold = 0.7
	DefaultAdultContentThreshold  = 0.8
)

// ThresholdPolicy is a parent's configured sensitivity. Thresholds are
// independent of each other; there is no ordering constraint between them.
type ThresholdPolicy struct {
	ViolenceThreshold      float64 `json:"violenceThreshold" mapstructure:"violence_threshold"`
	InappropriateThreshold float64 `json:"inappropriateThreshold" mapstructure:"inappropriate_threshold"`
	AdultContentThreshold  float64 `json:"adultContentThreshold" mapstructure:"adult_content_threshold"`
	NotificationsEnabled   bool    `json:"notificationsEnabled" mapstructure:"notifications_enabled"`
}

func DefaultThresholdPolicy() ThresholdPolicy {
	return ThresholdPolicy{
		ViolenceThreshold:      DefaultViolenceThreshold,
		InappropriateThreshold: DefaultInappropriateThreshold,
		AdultContentThreshold:  DefaultAdultContentThreshold,
		NotificationsEnabled:   true,
	}
}

// Validate rejects thresholds outside [0,1]. A malformed policy is a contract
// violation: it is never silently defaulted, since substituting thresholds
// could silently disable protections.
func (p ThresholdPolicy) Validate() error {
	for _, t := range []struct {
		name  string
		value float64
	}{
		{"violenceThreshold", p.ViolenceThreshold},
		{"inappropriateThreshold", p.InappropriateThreshold},
		{"adultContentThreshold", p.AdultContentThreshold},
	} {
		if t.value < 0 || t.value > 1 {
			return fmt.Errorf("%s out of range: %v", t.name, t.value)
		}
	}
	return nil
}

// Decision is the outcome of applying a threshold policy to a score set.
// Flagged reflects the classifier-level judgment and is independent of the
// configured thresholds; a score set can be flagged without notifying and
// vice versa.
type Decision struct {
	Flagged      bool     `json:"flagged"`
	ShouldNotify bool     `json:"shouldNotify"`
	Severity     Severity `json:"severity"`
	Violations   []string `json:"violations,omitempty"`
	MaxScore     float64  `json:"maxScore"`
}

// DecideNotification applies a parent's thresholds to a score set. Pure
// function; callers are responsible for validating both inputs upstream.
//
// Severity reflects absolute risk, not threshold-relative risk: a violation
// recorded at a threshold below the lowest band still yields "low".
func DecideNotification(scores Scores, policy ThresholdPolicy) Decision {
	if !policy.NotificationsEnabled {
		return Decision{Flagged: scores.Flagged, ShouldNotify: false, Severity: SeverityLow}
	}

	var violations []string
	var maxScore float64

	checks := []struct {
		score     float64
		threshold float64
		label     string
	}{
		{scores.ViolenceScore, policy.ViolenceThreshold, CategoryViolence},
		{scores.AdultContentScore, policy.AdultContentThreshold, CategoryAdultContent},
		{scores.InappropriateScore, policy.InappropriateThreshold, CategoryInappropriate},
	}
	for _, c := range checks {
		if c.score >= c.threshold {
			violations = append(violations, c.label)
			if c.score > maxScore {
				maxScore = c.score
			}
		}
	}

	if len(violations) == 0 {
		return Decision{Flagged: scores.Flagged, ShouldNotify: false, Severity: SeverityLow}
	}

	return Decision{
		Flagged:      scores.Flagged,
		ShouldNotify: true,
		Severity:     SeverityFromScore(maxScore),
		Violations:   violations,
		MaxScore:     maxScore,
	}
}
