package classifier

import (
	"strings"

	"github.com/safenest/safenest/pkg/domain/moderation"
)

// fallbackConfidence is fixed low: keyword matching is a weaker signal than
// the vision model.
const fallbackConfidence = 0.6

// perKeywordWeight is the score contribution of each distinct keyword hit.
const perKeywordWeight = 0.2

var violenceKeywords = []string{
	"fight", "kill", "death", "blood", "weapon", "gun", "violence",
	"attack", "murder", "war", "combat", "shoot", "stab", "gore",
}

var inappropriateKeywords = []string{
	"adult", "explicit", "mature", "sex", "nude", "porn", "drug",
	"alcohol", "gambling", "profanity", "hate", "discrimination",
}

// KeywordScorer is the deterministic fallback used whenever the model call
// fails or returns invalid data. It is a pure function of the lower-cased
// input text, so identical input always yields identical scores.
type KeywordScorer struct {
	violence      []string
	inappropriate []string
}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{
		violence:      violenceKeywords,
		inappropriate: inappropriateKeywords,
	}
}

// Score counts keyword hits by substring containment, one hit per keyword
// regardless of repetition. Substring matching over-matches words embedded in
// longer words ("war" in "warm"); this mirrors the documented matcher
// behavior rather than switching to whole-word matching.
func (k *KeywordScorer) Score(text string) moderation.Scores {
	lower := strings.ToLower(text)

	violenceHits := countHits(lower, k.violence)
	inappropriateHits := countHits(lower, k.inappropriate)

	violenceScore := capScore(float64(violenceHits) * perKeywordWeight)
	inappropriateScore := capScore(float64(inappropriateHits) * perKeywordWeight)

	var categories moderation.CategoryList
	if violenceScore > 0 {
		categories = append(categories, "Violence")
	}
	if inappropriateScore > 0 {
		categories = append(categories, "Inappropriate Content")
	}

	summary := "Content appears safe"
	if violenceScore > 0.5 || inappropriateScore > 0.5 {
		summary = "Content may contain inappropriate elements"
	}

	return moderation.Scores{
		ViolenceScore:      violenceScore,
		AdultContentScore:  0, // keyword matching has no adult-content signal
		InappropriateScore: inappropriateScore,
		DetectedCategories: categories,
		Summary:            summary,
		Confidence:         fallbackConfidence,
	}
}

func countHits(text string, keywords []string) int {
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			hits++
		}
	}
	return hits
}

func capScore(score float64) float64 {
	if score > 1 {
		return 1
	}
	return score
}
