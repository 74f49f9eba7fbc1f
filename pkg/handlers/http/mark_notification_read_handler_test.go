package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/notification"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationRepo) ListUnread(ctx context.Context, parentID uuid.UUID, limit int) ([]notification.Notification, error) {
	args := m.Called(ctx, parentID, limit)
	list, _ := args.Get(0).([]notification.Notification)
	return list, args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, parentID uuid.UUID) error {
	return m.Called(ctx, id, parentID).Error(0)
}

func (m *mockNotificationRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestMarkNotificationReadHandler_Operations(t *testing.T) {
	logger := logrus.New()
	repo := new(mockNotificationRepo)

	handler := NewMarkNotificationReadHandler(logger, repo)

	app := fiber.New()
	app.Post("/api/v1/notifications/:notification_id/read", handler.Handle)

	t.Run("marks a notification read", func(t *testing.T) {
		notificationID := uuid.New()
		parentID := uuid.New()
		repo.On("MarkRead", mock.Anything, notificationID, parentID).Return(nil).Once()

		body := []byte(`{"parentId":"` + parentID.String() + `"}`)
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		repo.AssertExpectations(t)
	})

	t.Run("missing notification is not found", func(t *testing.T) {
		notificationID := uuid.New()
		parentID := uuid.New()
		repo.On("MarkRead", mock.Anything, notificationID, parentID).
			Return(fmt.Errorf("%w: %s", notification.ErrNotFound, notificationID)).Once()

		body := []byte(`{"parentId":"` + parentID.String() + `"}`)
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("repository failure is an internal error", func(t *testing.T) {
		notificationID := uuid.New()
		parentID := uuid.New()
		repo.On("MarkRead", mock.Anything, notificationID, parentID).
			Return(assert.AnError).Once()

		body := []byte(`{"parentId":"` + parentID.String() + `"}`)
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("rejects a malformed notification id", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/notifications/nope/read", bytes.NewReader([]byte("{}")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
