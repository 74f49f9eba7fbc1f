package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound reports that no notification matched the given id and parent.
// Callers use it to tell a missing row apart from an infrastructure failure.
var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	ListUnread(ctx context.Context, parentID uuid.UUID, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id, parentID uuid.UUID) error
	MarkSent(ctx context.Context, id uuid.UUID) error
}
