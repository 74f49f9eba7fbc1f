package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/moderation"
	"gorm.io/gorm"
)

// Kind enumerates the activity sources a child device reports.
const (
	KindVideo       = "video"
	KindGame        = "game"
	KindApp         = "app"
	KindWebsite     = "website"
	KindWeb         = "web"
	KindSocial      = "social"
	KindUnmonitored = "unmonitored"
)

var validKinds = map[string]struct{}{
	KindVideo:       {},
	KindGame:        {},
	KindApp:         {},
	KindWebsite:     {},
	KindWeb:         {},
	KindSocial:      {},
	KindUnmonitored: {},
}

// Activity is one reported unit of child-device activity. It is immutable
// once classified except for the duration heartbeat and the notification-sent
// marker.
type Activity struct {
	ID                 uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	ParentID           uuid.UUID         `json:"parentId" gorm:"type:uuid;not null;index:idx_parent_observed"`
	ChildName          string            `json:"childName" gorm:"not null"`
	DeviceID           string            `json:"deviceId"`
	Kind               string            `json:"activityType" gorm:"column:kind;not null"`
	ContentTitle       string            `json:"contentTitle" gorm:"not null"`
	ContentDescription string            `json:"contentDescription,omitempty"`
	AppName            string            `json:"appName,omitempty"`
	URL                string            `json:"url,omitempty"`
	Screenshot         string            `json:"screenshot,omitempty"` // base64 payload or storage ref
	Analysis           moderation.Scores `json:"analysis" gorm:"type:jsonb"`
	Flagged            bool              `json:"flagged" gorm:"index:idx_flagged_notified"`
	NotificationSent   bool              `json:"notificationSent" gorm:"index:idx_flagged_notified"`
	DurationSeconds    int               `json:"duration"`
	ObservedAt         time.Time         `json:"timestamp" gorm:"index:idx_parent_observed,sort:desc"`
	CreatedAt          time.Time         `json:"createdAt"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ObservedAt.IsZero() {
		a.ObservedAt = time.Now()
	}
	return a.Validate()
}

func (a *Activity) Validate() error {
	if a.ParentID == uuid.Nil {
		return fmt.Errorf("activity parent id is required")
	}
	if a.ChildName == "" {
		return fmt.Errorf("activity child name is required")
	}
	if a.ContentTitle == "" {
		return fmt.Errorf("activity content title is required")
	}
	if _, ok := validKinds[a.Kind]; !ok {
		return fmt.Errorf("invalid activity kind: %q", a.Kind)
	}
	if a.DurationSeconds < 0 {
		return fmt.Errorf("activity duration must be >= 0")
	}
	return nil
}

// ValidKind reports whether kind is one of the enumerated activity kinds.
func ValidKind(kind string) bool {
	_, ok := validKinds[kind]
	return ok
}
