package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	appnotification "github.com/safenest/safenest/pkg/app/notification"
	"github.com/safenest/safenest/pkg/domain/moderation"
	domain "github.com/safenest/safenest/pkg/domain/notification"
	"github.com/safenest/safenest/pkg/domain/parent"
	"github.com/safenest/safenest/pkg/infra/push"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationRepo) ListUnread(ctx context.Context, parentID uuid.UUID, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, parentID, limit)
	list, _ := args.Get(0).([]domain.Notification)
	return list, args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, parentID uuid.UUID) error {
	return m.Called(ctx, id, parentID).Error(0)
}

func (m *mockNotificationRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Send(ctx context.Context, msg push.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func testParent(tokens ...string) *parent.Parent {
	return &parent.Parent{
		ID:           uuid.New(),
		Email:        "parent@example.com",
		Name:         "Dana",
		DeviceTokens: tokens,
		Settings:     parent.DefaultSettings(),
	}
}

func testContent() appnotification.Content {
	return appnotification.Content{
		Title:    "⚠️ Alert: Emma's video activity",
		Message:  "Emma is watching something concerning",
		Severity: moderation.SeverityHigh,
	}
}

func TestSend_PushesToAllTokens(t *testing.T) {
	repo := new(mockNotificationRepo)
	dispatcher := new(mockDispatcher)
	owner := testParent("token-a", "token-b")
	activityID := uuid.New()

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("MarkSent", mock.Anything, mock.Anything).Return(nil).Once()
	dispatcher.On("Send", mock.Anything, mock.MatchedBy(func(msg push.Message) bool {
		return msg.Data["type"] == "content_alert" && msg.Data["activityId"] == activityID.String()
	})).Return(nil).Twice()

	sender := appnotification.NewSender(repo, dispatcher, logrus.New())
	entity, err := sender.Send(context.Background(), owner, activityID, testContent())

	require.NoError(t, err)
	assert.True(t, entity.Sent)
	repo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestSend_PushFailureIsSwallowed(t *testing.T) {
	repo := new(mockNotificationRepo)
	dispatcher := new(mockDispatcher)
	owner := testParent("token-a")

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("MarkSent", mock.Anything, mock.Anything).Return(nil).Once()
	dispatcher.On("Send", mock.Anything, mock.Anything).Return(errors.New("unregistered token")).Once()

	sender := appnotification.NewSender(repo, dispatcher, logrus.New())
	_, err := sender.Send(context.Background(), owner, uuid.New(), testContent())

	assert.NoError(t, err)
}

func TestSend_NotificationsDisabledSkipsPush(t *testing.T) {
	repo := new(mockNotificationRepo)
	dispatcher := new(mockDispatcher)
	owner := testParent("token-a")
	owner.Settings.NotificationsEnabled = false

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	sender := appnotification.NewSender(repo, dispatcher, logrus.New())
	entity, err := sender.Send(context.Background(), owner, uuid.New(), testContent())

	require.NoError(t, err)
	assert.False(t, entity.Sent)
	dispatcher.AssertNotCalled(t, "Send")
}

func TestSend_CreateFailurePropagates(t *testing.T) {
	repo := new(mockNotificationRepo)
	dispatcher := new(mockDispatcher)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	sender := appnotification.NewSender(repo, dispatcher, logrus.New())
	_, err := sender.Send(context.Background(), testParent(), uuid.New(), testContent())

	assert.Error(t, err)
	dispatcher.AssertNotCalled(t, "Send")
}
