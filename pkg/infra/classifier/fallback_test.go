package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordScorer_Deterministic(t *testing.T) {
	scorer := NewKeywordScorer()
	text := "Epic war combat with guns and blood"

	first := scorer.Score(text)
	second := scorer.Score(text)

	assert.Equal(t, first, second)
}

func TestKeywordScorer_CountsEachKeywordOnce(t *testing.T) {
	scorer := NewKeywordScorer()

	// "gun gun gun" is one hit for "gun", not three.
	scores := scorer.Score("gun gun gun")

	assert.InDelta(t, 0.2, scores.ViolenceScore, 1e-9)
}

func TestKeywordScorer_CapsAtOne(t *testing.T) {
	scorer := NewKeywordScorer()

	scores := scorer.Score("fight kill death blood weapon gun violence attack")

	assert.InDelta(t, 1.0, scores.ViolenceScore, 1e-9)
}

func TestKeywordScorer_SubstringContainment(t *testing.T) {
	scorer := NewKeywordScorer()

	// "war" inside "warm" matches: substring containment is the documented
	// matcher behavior.
	scores := scorer.Score("a warm welcome")

	assert.InDelta(t, 0.2, scores.ViolenceScore, 1e-9)
}

func TestKeywordScorer_InappropriateCategory(t *testing.T) {
	scorer := NewKeywordScorer()

	scores := scorer.Score("online gambling with alcohol ads and explicit content")

	assert.InDelta(t, 0.6, scores.InappropriateScore, 1e-9)
	assert.Zero(t, scores.AdultContentScore)
	assert.Contains(t, []string(scores.DetectedCategories), "Inappropriate Content")
	assert.Equal(t, "Content may contain inappropriate elements", scores.Summary)
}

func TestKeywordScorer_SafeText(t *testing.T) {
	scorer := NewKeywordScorer()

	scores := scorer.Score("learning multiplication tables")

	assert.Zero(t, scores.ViolenceScore)
	assert.Zero(t, scores.InappropriateScore)
	assert.Empty(t, scores.DetectedCategories)
	assert.Equal(t, "Content appears safe", scores.Summary)
	assert.InDelta(t, 0.6, scores.Confidence, 1e-9)
}
