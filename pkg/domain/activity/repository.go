package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows history queries. Zero values mean "no constraint".
type Filter struct {
	ChildName string
	Kind      string
	Flagged   *bool
	Since     time.Time
	Until     time.Time
	Limit     int
	Offset    int
}

// Stats is the dashboard aggregate over a parent's activities.
type Stats struct {
	TotalActivities   int64            `json:"totalActivities"`
	FlaggedActivities int64            `json:"flaggedActivities"`
	SafeActivities    int64            `json:"safeActivities"`
	ActivitiesByKind  map[string]int64 `json:"activitiesByType"`
	RecentFlags       []Activity       `json:"recentFlags"`
	FlagRate          float64          `json:"flagRate"`
}

type Repository interface {
	Create(ctx context.Context, activity *Activity) error
	Get(ctx context.Context, id uuid.UUID) (*Activity, error)
	List(ctx context.Context, parentID uuid.UUID, filter Filter) ([]Activity, error)
	MarkNotificationSent(ctx context.Context, id uuid.UUID) error
	UpdateDuration(ctx context.Context, id uuid.UUID, seconds int) error
	Stats(ctx context.Context, parentID uuid.UUID, filter Filter) (*Stats, error)
}
