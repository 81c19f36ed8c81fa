package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Campaign statuses
const (
	CampaignStatusDraft     = "Draft"
	CampaignStatusActive    = "Active"
	CampaignStatusPaused    = "Paused"
	CampaignStatusCompleted = "Completed"
)

// Schedule defines when a campaign is allowed to dial. Times are zero-padded
// "HH:MM" strings in the campaign's own timezone; the closed interval
// [StartTime, EndTime] is active on the listed weekday names.
type Schedule struct {
	StartTime string   `json:"start_time" validate:"required,len=5"`
	EndTime   string   `json:"end_time" validate:"required,len=5"`
	Weekdays  []string `json:"weekdays" validate:"required"`
	Timezone  string   `json:"timezone" validate:"required"` // IANA name
}

// Pacing is wizard-written configuration; the scheduler does not pace yet.
type Pacing struct {
	GapMinutes         int `json:"gap_minutes"`
	MaxConcurrentCalls int `json:"max_concurrent_calls"`
}

// RetryRules is wizard-written configuration; retry execution is handled by
// the call-outcome pipeline, not the scheduler.
type RetryRules struct {
	MaxAttempts        int `json:"max_attempts"`
	BackoffTimeMinutes int `json:"backoff_time_minutes"`
}

// Campaign represents an outbound calling campaign tied to one agent and a
// pool of leads. The scheduler reads campaigns, it never writes them.
type Campaign struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  string `gorm:"type:uuid;not null;index" json:"user_id"`
	AgentID string `gorm:"type:uuid;not null;index" json:"agent_id"`

	Name string `gorm:"not null" json:"name"`

	Schedule   Schedule   `gorm:"type:jsonb;serializer:json" json:"schedule"`
	Pacing     Pacing     `gorm:"type:jsonb;serializer:json" json:"pacing"`
	RetryRules RetryRules `gorm:"type:jsonb;serializer:json" json:"retry_rules"`

	Status string `gorm:"not null;default:'Draft';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Agent Agent  `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	Leads []Lead `gorm:"many2many:campaign_leads;" json:"leads,omitempty"`
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
