package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/safenest/safenest/pkg/infra/metrics"
	"github.com/sirupsen/logrus"
)

// HTTPClient is satisfied by *http.Client; injected so tests can stub the
// transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Message is one push to a single device token.
type Message struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

//go:generate mockery --name=Dispatcher --dir=. --output=./mocks --filename=dispatcher_mock.go --case=underscore --with-expecter

// Dispatcher delivers a push notification. Delivery is fire-and-forget from
// the pipeline's perspective: failures are logged, never propagated into
// moderation output.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Endpoint  string
	ServerKey string
}

type httpDispatcher struct {
	client HTTPClient
	config Config
	logger *logrus.Logger
}

func NewHTTPDispatcher(config Config, client HTTPClient, logger *logrus.Logger) Dispatcher {
	if client == nil {
		client = &http.Client{}
	}
	return &httpDispatcher{
		client: client,
		config: config,
		logger: logger,
	}
}

type pushRequest struct {
	To           string            `json:"to"`
	Notification pushNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (d *httpDispatcher) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(pushRequest{
		To: msg.Token,
		Notification: pushNotification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.config.Endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+d.config.ServerKey)

	resp, err := d.client.Do(req)
	if err != nil {
		metrics.PushDispatchTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("push dispatch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.PushDispatchTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("push endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	metrics.PushDispatchTotal.WithLabelValues("ok").Inc()
	return nil
}

type noopDispatcher struct {
	logger *logrus.Logger
}

// NewNoopDispatcher logs instead of delivering. Used when no push endpoint
// is configured.
func NewNoopDispatcher(logger *logrus.Logger) Dispatcher {
	return &noopDispatcher{logger: logger}
}

func (d *noopDispatcher) Send(ctx context.Context, msg Message) error {
	d.logger.WithFields(logrus.Fields{
		"token": msg.Token,
		"title": msg.Title,
	}).Info("push dispatch disabled, dropping notification")
	return nil
}
