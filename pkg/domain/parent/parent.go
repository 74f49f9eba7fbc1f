package parent

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safenest/safenest/pkg/domain/moderation"
	"gorm.io/gorm"
)

// Parent is an account that owns monitored children and receives alerts.
type Parent struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	Name         string         `json:"name" gorm:"not null"`
	DeviceTokens TokensJSON     `json:"deviceTokens,omitempty" gorm:"type:jsonb"`
	Children     ChildrenJSON   `json:"children,omitempty" gorm:"type:jsonb"`
	Settings     Settings       `json:"settings" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Settings is the per-parent configuration: the moderation threshold policy
// plus the monitoring switch.
type Settings struct {
	moderation.ThresholdPolicy `mapstructure:",squash"`

	MonitoringEnabled bool `json:"monitoringEnabled" mapstructure:"monitoring_enabled"`
}

func DefaultSettings() Settings {
	return Settings{
		ThresholdPolicy:   moderation.DefaultThresholdPolicy(),
		MonitoringEnabled: true,
	}
}

type Child struct {
	Name     string `json:"name"`
	Age      int    `json:"age,omitempty"`
	DeviceID string `json:"deviceId,omitempty"`
}

type (
	TokensJSON   []string
	ChildrenJSON []Child
)

func (p *Parent) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return p.Validate()
}

func (p *Parent) Validate() error {
	if p.Email == "" {
		return fmt.Errorf("parent email is required")
	}
	if p.Name == "" {
		return fmt.Errorf("parent name is required")
	}
	return p.Settings.Validate()
}

func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Settings) Scan(value interface{}) error {
	if value == nil {
		*s = DefaultSettings()
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, s)
}

func (t TokensJSON) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *TokensJSON) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, t)
}

func (c ChildrenJSON) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *ChildrenJSON) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, c)
}
