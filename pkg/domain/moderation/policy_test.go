package moderation_test

import (
	"testing"

	"github.com/safenest/safenest/pkg/domain/moderation"
	"github.com/stretchr/testify/assert"
)

func TestDecideNotification_NotificationsDisabled(t *testing.T) {
	policy := moderation.ThresholdPolicy{
		ViolenceThreshold:      0.1,
		InappropriateThreshold: 0.1,
		AdultContentThreshold:  0.1,
		NotificationsEnabled:   false,
	}
	scores := moderation.Scores{ViolenceScore: 0.99, AdultContentScore: 0.99, InappropriateScore: 0.99}

	decision := moderation.DecideNotification(scores, policy)

	assert.False(t, decision.ShouldNotify)
	assert.Equal(t, moderation.SeverityLow, decision.Severity)
	assert.Empty(t, decision.Violations)
}

func TestDecideNotification_NoViolations(t *testing.T) {
	policy := moderation.DefaultThresholdPolicy()
	scores := moderation.Scores{ViolenceScore: 0.59, AdultContentScore: 0.3, InappropriateScore: 0.1}

	decision := moderation.DecideNotification(scores, policy)

	assert.False(t, decision.ShouldNotify)
	assert.Equal(t, moderation.SeverityLow, decision.Severity)
	assert.Empty(t, decision.Violations)
	assert.Zero(t, decision.MaxScore)
}

func TestDecideNotification_SingleViolationLowSeverity(t *testing.T) {
	policy := moderation.DefaultThresholdPolicy()
	scores := moderation.Scores{ViolenceScore: 0.65, AdultContentScore: 0.1, InappropriateScore: 0.2}

	decision := moderation.DecideNotification(scores, policy)

	assert.True(t, decision.ShouldNotify)
	assert.Equal(t, []string{moderation.CategoryViolence}, decision.Violations)
	assert.InDelta(t, 0.65, decision.MaxScore, 1e-9)
	assert.Equal(t, moderation.SeverityLow, decision.Severity)
}

func TestDecideNotification_CriticalSeverity(t *testing.T) {
	policy := moderation.DefaultThresholdPolicy()
	scores := moderation.Scores{ViolenceScore: 0.95}

	decision := moderation.DecideNotification(scores, policy)

	assert.True(t, decision.ShouldNotify)
	assert.Equal(t, []string{moderation.CategoryViolence}, decision.Violations)
	assert.Equal(t, moderation.SeverityCritical, decision.Severity)
}

func TestDecideNotification_MultipleViolations(t *testing.T) {
	policy := moderation.DefaultThresholdPolicy()
	scores := moderation.Scores{ViolenceScore: 0.7, AdultContentScore: 0.85, InappropriateScore: 0.75}

	decision := moderation.DecideNotification(scores, policy)

	assert.True(t, decision.ShouldNotify)
	assert.Equal(t, []string{
		moderation.CategoryViolence,
		moderation.CategoryAdultContent,
		moderation.CategoryInappropriate,
	}, decision.Violations)
	assert.InDelta(t, 0.85, decision.MaxScore, 1e-9)
	assert.Equal(t, moderation.SeverityHigh, decision.Severity)
}

func TestDecideNotification_FlagIndependentOfThresholds(t *testing.T) {
	// Flagged at the classifier level but below every parent threshold.
	policy := moderation.DefaultThresholdPolicy()
	scores := moderation.Scores{ViolenceScore: 0.55}
	scores.Finalize()

	decision := moderation.DecideNotification(scores, policy)

	assert.True(t, decision.Flagged)
	assert.False(t, decision.ShouldNotify)
}

func TestSeverityFromScore_Banding(t *testing.T) {
	tests := []struct {
		score    float64
		expected moderation.Severity
	}{
		{0.95, moderation.SeverityCritical},
		{0.9, moderation.SeverityCritical},
		{0.85, moderation.SeverityHigh},
		{0.8, moderation.SeverityHigh},
		{0.75, moderation.SeverityMedium},
		{0.7, moderation.SeverityMedium},
		{0.65, moderation.SeverityLow},
		{0, moderation.SeverityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, moderation.SeverityFromScore(tt.score), "score %v", tt.score)
	}
}

func TestThresholdPolicy_Validate(t *testing.T) {
	assert.NoError(t, moderation.DefaultThresholdPolicy().Validate())

	invalid := moderation.DefaultThresholdPolicy()
	invalid.AdultContentThreshold = 1.2
	assert.Error(t, invalid.Validate())

	negative := moderation.DefaultThresholdPolicy()
	negative.ViolenceThreshold = -0.1
	assert.Error(t, negative.Validate())
}
