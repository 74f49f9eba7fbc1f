package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/moderation"
	"gorm.io/gorm"
)

// Notification is a stored parent-facing alert for a flagged activity.
type Notification struct {
	ID         uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	ParentID   uuid.UUID           `json:"parentId" gorm:"type:uuid;not null;index:idx_parent_read"`
	ActivityID uuid.UUID           `json:"activityId" gorm:"type:uuid;not null"`
	Title      string              `json:"title" gorm:"not null"`
	Message    string              `json:"message" gorm:"not null"`
	Severity   moderation.Severity `json:"severity" gorm:"not null;default:medium"`
	Read       bool                `json:"read" gorm:"index:idx_parent_read"`
	Sent       bool                `json:"sent"`
	SentAt     *time.Time          `json:"sentAt,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return n.Validate()
}

func (n *Notification) Validate() error {
	if n.ParentID == uuid.Nil {
		return fmt.Errorf("notification parent id is required")
	}
	if n.ActivityID == uuid.Nil {
		return fmt.Errorf("notification activity id is required")
	}
	if n.Title == "" {
		return fmt.Errorf("notification title is required")
	}
	if n.Message == "" {
		return fmt.Errorf("notification message is required")
	}
	return nil
}
