package moderation

import (
	"context"
	"fmt"

	"github.com/safenest/safenest/pkg/domain/activity"
	domain "github.com/safenest/safenest/pkg/domain/moderation"
	"github.com/safenest/safenest/pkg/infra/classifier"
	"github.com/safenest/safenest/pkg/infra/metrics"
	"github.com/sirupsen/logrus"
)

// Observation is one unit of child-device activity submitted for moderation.
type Observation struct {
	ChildName          string
	Kind               string
	ContentTitle       string
	ContentDescription string
	AppName            string
	URL                string
	Screenshot         string
}

// Result pairs the classifier scores with the threshold decision for one
// observation.
type Result struct {
	Scores   domain.Scores   `json:"scores"`
	Decision domain.Decision `json:"decision"`
}

//go:generate mockery --name=Engine --dir=. --output=./mocks --filename=engine_mock.go --case=underscore --with-expecter

// Engine is the moderation decision pipeline: classify, then apply the
// parent's threshold policy. The classifier never fails, so Moderate only
// returns an error on a contract violation in its inputs, which is fatal to
// the request and never silently defaulted.
type Engine interface {
	Moderate(ctx context.Context, observation Observation, policy domain.ThresholdPolicy) (*Result, error)
}

type engine struct {
	classifier classifier.Classifier
	logger     *logrus.Logger
}

func NewEngine(c classifier.Classifier, logger *logrus.Logger) Engine {
	return &engine{
		classifier: c,
		logger:     logger,
	}
}

func (e *engine) Moderate(
	ctx context.Context,
	observation Observation,
	policy domain.ThresholdPolicy,
) (*Result, error) {
	if err := validateObservation(observation); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid threshold policy: %w", err)
	}

	scores := e.classifier.Classify(ctx, classifier.Input{
		ContentTitle:       observation.ContentTitle,
		ContentDescription: observation.ContentDescription,
		AppName:            observation.AppName,
		ContentURL:         observation.URL,
		Kind:               observation.Kind,
		Screenshot:         observation.Screenshot,
	})

	decision := domain.DecideNotification(scores, policy)
	if decision.ShouldNotify {
		metrics.NotificationDecisionsTotal.WithLabelValues(string(decision.Severity)).Inc()
	}

	e.logger.WithFields(logrus.Fields{
		"child":         observation.ChildName,
		"title":         observation.ContentTitle,
		"flagged":       decision.Flagged,
		"should_notify": decision.ShouldNotify,
		"severity":      decision.Severity,
	}).Debug("moderation decision computed")

	return &Result{Scores: scores, Decision: decision}, nil
}

func validateObservation(observation Observation) error {
	if observation.ChildName == "" {
		return fmt.Errorf("observation child name is required")
	}
	if observation.ContentTitle == "" {
		return fmt.Errorf("observation content title is required")
	}
	if !activity.ValidKind(observation.Kind) {
		return fmt.Errorf("invalid activity kind: %q", observation.Kind)
	}
	return nil
}
