package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	domain "github.com/safenest/safenest/pkg/domain/notification"
	"github.com/safenest/safenest/pkg/domain/parent"
	"github.com/safenest/safenest/pkg/infra/push"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Sender --dir=. --output=./mocks --filename=sender_mock.go --case=underscore --with-expecter

// Sender persists an alert and pushes it to every device the parent has
// registered. Individual push failures are logged and swallowed; the stored
// notification is the source of truth.
type Sender interface {
	Send(ctx context.Context, owner *parent.Parent, activityID uuid.UUID, content Content) (*domain.Notification, error)
}

type sender struct {
	repo       domain.Repository
	dispatcher push.Dispatcher
	logger     *logrus.Logger
}

func NewSender(repo domain.Repository, dispatcher push.Dispatcher, logger *logrus.Logger) Sender {
	return &sender{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (s *sender) Send(
	ctx context.Context,
	owner *parent.Parent,
	activityID uuid.UUID,
	content Content,
) (*domain.Notification, error) {
	entity := &domain.Notification{
		ParentID:   owner.ID,
		ActivityID: activityID,
		Title:      content.Title,
		Message:    content.Message,
		Severity:   content.Severity,
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if !owner.Settings.NotificationsEnabled {
		s.logger.WithField("parent_id", owner.ID).Info("notifications disabled for parent")
		return entity, nil
	}

	for _, token := range owner.DeviceTokens {
		err := s.dispatcher.Send(ctx, push.Message{
			Token: token,
			Title: content.Title,
			Body:  content.Message,
			Data: map[string]string{
				"activityId": activityID.String(),
				"severity":   string(content.Severity),
				"type":       "content_alert",
			},
		})
		if err != nil {
			s.logger.WithError(err).WithField("parent_id", owner.ID).Error("failed to send push notification")
		}
	}

	if err := s.repo.MarkSent(ctx, entity.ID); err != nil {
		s.logger.WithError(err).WithField("notification_id", entity.ID).Error("failed to mark notification sent")
	} else {
		entity.Sent = true
	}

	s.logger.WithFields(logrus.Fields{
		"parent_id":   owner.ID,
		"activity_id": activityID,
		"severity":    content.Severity,
	}).Info("notification sent")

	return entity, nil
}
