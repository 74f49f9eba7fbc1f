package parent

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Parent, error)
	GetByEmail(ctx context.Context, email string) (*Parent, error)
	Create(ctx context.Context, parent *Parent) error
	UpdateSettings(ctx context.Context, id uuid.UUID, settings Settings) error
	AddDeviceToken(ctx context.Context, id uuid.UUID, token string) error
}
