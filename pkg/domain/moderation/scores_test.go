package moderation_test

import (
	"testing"

	"github.com/safenest/safenest/pkg/domain/moderation"
	"github.com/stretchr/testify/assert"
)

func TestScores_Finalize_ORRule(t *testing.T) {
	scores := moderation.Scores{ViolenceScore: 0.6}
	scores.Finalize()
	assert.True(t, scores.Flagged)

	safe := moderation.Scores{ViolenceScore: 0.5, AdultContentScore: 0.5, InappropriateScore: 0.5}
	safe.Finalize()
	assert.False(t, safe.Flagged)
}

func TestScores_Finalize_Idempotent(t *testing.T) {
	// A classifier-supplied flag survives, and recomputing changes nothing.
	scores := moderation.Scores{InappropriateScore: 0.2, Flagged: true}
	scores.Finalize()
	assert.True(t, scores.Flagged)

	scores.Finalize()
	assert.True(t, scores.Flagged)

	unflagged := moderation.Scores{AdultContentScore: 0.9}
	unflagged.Finalize()
	first := unflagged.Flagged
	unflagged.Finalize()
	assert.Equal(t, first, unflagged.Flagged)
}

func TestScores_Max(t *testing.T) {
	scores := moderation.Scores{ViolenceScore: 0.2, AdultContentScore: 0.8, InappropriateScore: 0.5}
	assert.InDelta(t, 0.8, scores.Max(), 1e-9)
}

func TestScores_Validate(t *testing.T) {
	valid := moderation.Scores{ViolenceScore: 1, Confidence: 0.6}
	assert.NoError(t, valid.Validate())

	outOfRange := moderation.Scores{AdultContentScore: 1.5}
	assert.Error(t, outOfRange.Validate())

	negative := moderation.Scores{InappropriateScore: -0.2}
	assert.Error(t, negative.Validate())
}
