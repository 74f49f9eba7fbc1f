package http

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScratchTwice(t *testing.T) {
	logger := logrus.New()
	finder := new(mockFinder)
	updater := new(mockUpdater)
	handler := NewUpdateSettingsHandler(logger, finder, updater)
	app := fiber.New()
	app.Put("/api/v1/parents/:parent_id/settings", handler.Handle)

	for i := 0; i < 3; i++ {
		parentID := uuid.New()
		finder.On("Find", mock.Anything, parentID).Return(storedTestParent(parentID), nil).Once()
		updater.On("Update", mock.Anything, parentID, mock.Anything).Return(nil).Once()
		req := httptest.NewRequest(fiber.MethodPut, "/api/v1/parents/"+parentID.String()+"/settings", bytes.NewReader([]byte(`{"violenceThreshold":0.4}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		if resp.StatusCode != 200 {
			b := make([]byte, 256)
			n, _ := resp.Body.Read(b)
			t.Fatalf("iter %d: status %d body %q", i, resp.StatusCode, b[:n])
		}
		updater.AssertExpectations(t)
	}
}
