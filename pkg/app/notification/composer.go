package notification

import (
	"fmt"
	"strings"

	"github.com/safenest/safenest/pkg/domain/activity"
	"github.com/safenest/safenest/pkg/domain/moderation"
)

// Content is the parent-facing rendering of a flagged activity.
type Content struct {
	Title    string              `json:"title"`
	Message  string              `json:"message"`
	Severity moderation.Severity `json:"severity"`
}

// Compose renders alert content from an activity and its scores. The
// severity here is recomputed from the absolute maximum score, independently
// of the threshold decision; it can disagree with the decision's severity
// when a parent's thresholds sit below the banding. Callers that already
// hold a threshold decision overwrite Severity with the decision's value.
// Pure function: absent fields render as empty text.
func Compose(act *activity.Activity, scores moderation.Scores) Content {
	return Content{
		Title:    fmt.Sprintf("⚠️ Alert: %s's %s activity", act.ChildName, act.Kind),
		Message:  composeMessage(act, scores),
		Severity: moderation.SeverityFromScore(scores.Max()),
	}
}

func composeMessage(act *activity.Activity, scores moderation.Scores) string {
	categories := strings.Join(scores.DetectedCategories, ", ")
	return fmt.Sprintf(
		"%s is watching/playing %q which may contain %s. %s",
		act.ChildName, act.ContentTitle, categories, scores.Summary,
	)
}
