package notification_test

import (
	"testing"

	appnotification "github.com/safenest/safenest/pkg/app/notification"
	"github.com/safenest/safenest/pkg/domain/activity"
	"github.com/safenest/safenest/pkg/domain/moderation"
	"github.com/stretchr/testify/assert"
)

func TestCompose_RendersChildAndCategories(t *testing.T) {
	act := &activity.Activity{
		ChildName:    "Emma",
		Kind:         activity.KindVideo,
		ContentTitle: "Zombie Hunters",
	}
	scores := moderation.Scores{
		ViolenceScore:      0.85,
		DetectedCategories: moderation.CategoryList{"weapons", "gore"},
		Summary:            "Graphic combat footage.",
	}

	content := appnotification.Compose(act, scores)

	assert.Equal(t, "⚠️ Alert: Emma's video activity", content.Title)
	assert.Equal(t, `Emma is watching/playing "Zombie Hunters" which may contain weapons, gore. Graphic combat footage.`, content.Message)
	assert.Equal(t, moderation.SeverityHigh, content.Severity)
}

func TestCompose_SeverityMatchesDecisionAtAbsoluteLevels(t *testing.T) {
	// For scores at the absolute banding levels the composer and the
	// threshold decision agree.
	act := &activity.Activity{ChildName: "Leo", Kind: activity.KindGame, ContentTitle: "Arena"}
	scores := moderation.Scores{ViolenceScore: 0.95}

	content := appnotification.Compose(act, scores)
	decision := moderation.DecideNotification(scores, moderation.DefaultThresholdPolicy())

	assert.Equal(t, moderation.SeverityCritical, content.Severity)
	assert.Equal(t, decision.Severity, content.Severity)
}

func TestCompose_DivergesBelowBanding(t *testing.T) {
	// A violation at 0.65 notifies with severity low, and the composer
	// agrees only because both band absolutely; thresholds do not move the
	// composer's result.
	act := &activity.Activity{ChildName: "Leo", Kind: activity.KindGame, ContentTitle: "Arena"}
	scores := moderation.Scores{ViolenceScore: 0.65}

	content := appnotification.Compose(act, scores)

	assert.Equal(t, moderation.SeverityLow, content.Severity)
}

func TestCompose_EmptyFieldsNeverPanic(t *testing.T) {
	content := appnotification.Compose(&activity.Activity{}, moderation.Scores{})

	assert.NotEmpty(t, content.Title)
	assert.Equal(t, moderation.SeverityLow, content.Severity)
}
