package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	appmoderation "github.com/safenest/safenest/pkg/app/moderation"
	appnotification "github.com/safenest/safenest/pkg/app/notification"
	"github.com/safenest/safenest/pkg/app/settings"
	"github.com/safenest/safenest/pkg/domain/activity"
	"github.com/sirupsen/logrus"
)

// Submission is a device-side activity report as received from the child
// app.
type Submission struct {
	ParentID           uuid.UUID
	ChildName          string
	DeviceID           string
	Kind               string
	ContentTitle       string
	ContentDescription string
	AppName            string
	URL                string
	Screenshot         string
	DurationSeconds    int
	ObservedAt         time.Time
}

//go:generate mockery --name=Processor --dir=. --output=./mocks --filename=processor_mock.go --case=underscore --with-expecter

// Processor runs the full monitoring pipeline for a submission and serves
// the history/stats reads around it.
type Processor interface {
	ProcessActivity(ctx context.Context, submission Submission) (*activity.Activity, error)
	History(ctx context.Context, parentID uuid.UUID, filter activity.Filter) ([]activity.Activity, error)
	Stats(ctx context.Context, parentID uuid.UUID, filter activity.Filter) (*activity.Stats, error)
	UpdateDuration(ctx context.Context, activityID uuid.UUID, seconds int) error
}

type processor struct {
	engine     appmoderation.Engine
	parents    settings.Finder
	activities activity.Repository
	sender     appnotification.Sender
	logger     *logrus.Logger
}

func NewProcessor(
	engine appmoderation.Engine,
	parents settings.Finder,
	activities activity.Repository,
	sender appnotification.Sender,
	logger *logrus.Logger,
) Processor {
	return &processor{
		engine:     engine,
		parents:    parents,
		activities: activities,
		sender:     sender,
		logger:     logger,
	}
}

// ProcessActivity classifies the submission, persists it, and dispatches a
// parent notification when the threshold decision requires one. The
// moderation result is unaffected by downstream notification failures.
func (p *processor) ProcessActivity(ctx context.Context, submission Submission) (*activity.Activity, error) {
	p.logger.WithFields(logrus.Fields{
		"child": submission.ChildName,
		"title": submission.ContentTitle,
	}).Info("processing activity")

	owner, err := p.parents.Find(ctx, submission.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parent: %w", err)
	}

	result, err := p.engine.Moderate(ctx, appmoderation.Observation{
		ChildName:          submission.ChildName,
		Kind:               submission.Kind,
		ContentTitle:       submission.ContentTitle,
		ContentDescription: submission.ContentDescription,
		AppName:            submission.AppName,
		URL:                submission.URL,
		Screenshot:         submission.Screenshot,
	}, owner.Settings.ThresholdPolicy)
	if err != nil {
		return nil, err
	}

	entity := &activity.Activity{
		ParentID:           submission.ParentID,
		ChildName:          submission.ChildName,
		DeviceID:           submission.DeviceID,
		Kind:               submission.Kind,
		ContentTitle:       submission.ContentTitle,
		ContentDescription: submission.ContentDescription,
		AppName:            submission.AppName,
		URL:                submission.URL,
		Screenshot:         submission.Screenshot,
		Analysis:           result.Scores,
		Flagged:            result.Decision.Flagged,
		DurationSeconds:    submission.DurationSeconds,
		ObservedAt:         submission.ObservedAt,
	}
	if err := p.activities.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to persist activity: %w", err)
	}

	if result.Decision.ShouldNotify {
		content := appnotification.Compose(entity, result.Scores)
		// The threshold decision's severity wins over the composer's
		// absolute banding.
		content.Severity = result.Decision.Severity

		if _, err := p.sender.Send(ctx, owner, entity.ID, content); err != nil {
			p.logger.WithError(err).WithField("activity_id", entity.ID).Error("failed to send notification")
		} else if err := p.activities.MarkNotificationSent(ctx, entity.ID); err != nil {
			p.logger.WithError(err).WithField("activity_id", entity.ID).Error("failed to mark notification sent")
		} else {
			entity.NotificationSent = true
		}
	}

	p.logger.WithField("activity_id", entity.ID).Info("activity processed")
	return entity, nil
}

func (p *processor) History(ctx context.Context, parentID uuid.UUID, filter activity.Filter) ([]activity.Activity, error) {
	return p.activities.List(ctx, parentID, filter)
}

func (p *processor) Stats(ctx context.Context, parentID uuid.UUID, filter activity.Filter) (*activity.Stats, error) {
	return p.activities.Stats(ctx, parentID, filter)
}

func (p *processor) UpdateDuration(ctx context.Context, activityID uuid.UUID, seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("duration must be >= 0")
	}
	return p.activities.UpdateDuration(ctx, activityID, seconds)
}
