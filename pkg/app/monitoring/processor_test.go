package monitoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	appmoderation "github.com/safenest/safenest/pkg/app/moderation"
	"github.com/safenest/safenest/pkg/app/monitoring"
	appnotification "github.com/safenest/safenest/pkg/app/notification"
	"github.com/safenest/safenest/pkg/domain/activity"
	"github.com/safenest/safenest/pkg/domain/moderation"
	domainnotification "github.com/safenest/safenest/pkg/domain/notification"
	"github.com/safenest/safenest/pkg/domain/parent"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Moderate(
	ctx context.Context,
	observation appmoderation.Observation,
	policy moderation.ThresholdPolicy,
) (*appmoderation.Result, error) {
	args := m.Called(ctx, observation, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	result, _ := args.Get(0).(*appmoderation.Result)
	return result, args.Error(1)
}

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) Find(ctx context.Context, id uuid.UUID) (*parent.Parent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	entity, _ := args.Get(0).(*parent.Parent)
	return entity, args.Error(1)
}

type mockActivityRepo struct {
	mock.Mock
}

func (m *mockActivityRepo) Create(ctx context.Context, act *activity.Activity) error {
	args := m.Called(ctx, act)
	if args.Error(0) == nil && act.ID == uuid.Nil {
		act.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockActivityRepo) Get(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	args := m.Called(ctx, id)
	act, _ := args.Get(0).(*activity.Activity)
	return act, args.Error(1)
}

func (m *mockActivityRepo) List(ctx context.Context, parentID uuid.UUID, filter activity.Filter) ([]activity.Activity, error) {
	args := m.Called(ctx, parentID, filter)
	list, _ := args.Get(0).([]activity.Activity)
	return list, args.Error(1)
}

func (m *mockActivityRepo) MarkNotificationSent(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockActivityRepo) UpdateDuration(ctx context.Context, id uuid.UUID, seconds int) error {
	return m.Called(ctx, id, seconds).Error(0)
}

func (m *mockActivityRepo) Stats(ctx context.Context, parentID uuid.UUID, filter activity.Filter) (*activity.Stats, error) {
	args := m.Called(ctx, parentID, filter)
	stats, _ := args.Get(0).(*activity.Stats)
	return stats, args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(
	ctx context.Context,
	owner *parent.Parent,
	activityID uuid.UUID,
	content appnotification.Content,
) (*domainnotification.Notification, error) {
	args := m.Called(ctx, owner, activityID, content)
	n, _ := args.Get(0).(*domainnotification.Notification)
	return n, args.Error(1)
}

func testSubmission(parentID uuid.UUID) monitoring.Submission {
	return monitoring.Submission{
		ParentID:     parentID,
		ChildName:    "Emma",
		DeviceID:     "device-1",
		Kind:         activity.KindVideo,
		ContentTitle: "Action Movie Trailer",
	}
}

func flaggedResult() *appmoderation.Result {
	scores := moderation.Scores{ViolenceScore: 0.75, Summary: "Fighting scenes", Flagged: true}
	return &appmoderation.Result{
		Scores:   scores,
		Decision: moderation.DecideNotification(scores, moderation.DefaultThresholdPolicy()),
	}
}

func safeResult() *appmoderation.Result {
	scores := moderation.Scores{ViolenceScore: 0.1, Summary: "Safe"}
	return &appmoderation.Result{
		Scores:   scores,
		Decision: moderation.DecideNotification(scores, moderation.DefaultThresholdPolicy()),
	}
}

func TestProcessActivity_FlaggedSendsNotification(t *testing.T) {
	engine := new(mockEngine)
	finder := new(mockFinder)
	repo := new(mockActivityRepo)
	sender := new(mockSender)

	owner := &parent.Parent{ID: uuid.New(), Email: "p@example.com", Name: "Dana", Settings: parent.DefaultSettings()}
	result := flaggedResult()

	finder.On("Find", mock.Anything, owner.ID).Return(owner, nil).Once()
	engine.On("Moderate", mock.Anything, mock.Anything, owner.Settings.ThresholdPolicy).Return(result, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	sender.On("Send", mock.Anything, owner, mock.Anything, mock.MatchedBy(func(c appnotification.Content) bool {
		// Composer severity is overridden by the decision's severity.
		return c.Severity == result.Decision.Severity
	})).Return(&domainnotification.Notification{}, nil).Once()
	repo.On("MarkNotificationSent", mock.Anything, mock.Anything).Return(nil).Once()

	p := monitoring.NewProcessor(engine, finder, repo, sender, logrus.New())
	entity, err := p.ProcessActivity(context.Background(), testSubmission(owner.ID))

	require.NoError(t, err)
	assert.True(t, entity.Flagged)
	assert.True(t, entity.NotificationSent)
	assert.Equal(t, result.Scores, entity.Analysis)
	engine.AssertExpectations(t)
	sender.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestProcessActivity_SafeContentSkipsNotification(t *testing.T) {
	engine := new(mockEngine)
	finder := new(mockFinder)
	repo := new(mockActivityRepo)
	sender := new(mockSender)

	owner := &parent.Parent{ID: uuid.New(), Email: "p@example.com", Name: "Dana", Settings: parent.DefaultSettings()}

	finder.On("Find", mock.Anything, owner.ID).Return(owner, nil).Once()
	engine.On("Moderate", mock.Anything, mock.Anything, mock.Anything).Return(safeResult(), nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	p := monitoring.NewProcessor(engine, finder, repo, sender, logrus.New())
	entity, err := p.ProcessActivity(context.Background(), testSubmission(owner.ID))

	require.NoError(t, err)
	assert.False(t, entity.Flagged)
	assert.False(t, entity.NotificationSent)
	sender.AssertNotCalled(t, "Send")
}

func TestProcessActivity_SendFailureDoesNotFailPipeline(t *testing.T) {
	engine := new(mockEngine)
	finder := new(mockFinder)
	repo := new(mockActivityRepo)
	sender := new(mockSender)

	owner := &parent.Parent{ID: uuid.New(), Email: "p@example.com", Name: "Dana", Settings: parent.DefaultSettings()}

	finder.On("Find", mock.Anything, owner.ID).Return(owner, nil).Once()
	engine.On("Moderate", mock.Anything, mock.Anything, mock.Anything).Return(flaggedResult(), nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("push backend down")).Once()

	p := monitoring.NewProcessor(engine, finder, repo, sender, logrus.New())
	entity, err := p.ProcessActivity(context.Background(), testSubmission(owner.ID))

	require.NoError(t, err)
	assert.False(t, entity.NotificationSent)
	repo.AssertNotCalled(t, "MarkNotificationSent")
}

func TestProcessActivity_UnknownParent(t *testing.T) {
	engine := new(mockEngine)
	finder := new(mockFinder)
	repo := new(mockActivityRepo)
	sender := new(mockSender)

	parentID := uuid.New()
	finder.On("Find", mock.Anything, parentID).Return(nil, errors.New("record not found")).Once()

	p := monitoring.NewProcessor(engine, finder, repo, sender, logrus.New())
	_, err := p.ProcessActivity(context.Background(), testSubmission(parentID))

	assert.Error(t, err)
	engine.AssertNotCalled(t, "Moderate")
}

func TestUpdateDuration_RejectsNegative(t *testing.T) {
	p := monitoring.NewProcessor(new(mockEngine), new(mockFinder), new(mockActivityRepo), new(mockSender), logrus.New())

	err := p.UpdateDuration(context.Background(), uuid.New(), -5)

	assert.Error(t, err)
}
