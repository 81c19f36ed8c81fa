package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead statuses. The scheduler transitions New → Queued as its claim; every
// other transition belongs to the dashboard or the call-outcome webhook.
const (
	LeadStatusNew       = "New"
	LeadStatusQueued    = "Queued"
	LeadStatusCalled    = "Called"
	LeadStatusScheduled = "Scheduled"
	LeadStatusDoNotCall = "Do-Not-Call"
)

// LeadGroup represents a named list of leads (e.g. one CSV import)
type LeadGroup struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	Name string `gorm:"not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Leads []Lead `gorm:"foreignKey:GroupID" json:"leads,omitempty"`
}

func (g *LeadGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// Lead represents a single contact eligible to be called
type Lead struct {
	ID      string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  string  `gorm:"type:uuid;not null;index" json:"user_id"`
	GroupID *string `gorm:"type:uuid;index" json:"group_id,omitempty"`

	Name  string `gorm:"not null" json:"name"`
	Phone string `gorm:"not null" json:"phone"`

	Email    string `json:"email,omitempty"`
	City     string `json:"city,omitempty"`
	Industry string `json:"industry,omitempty"`
	Source   string `json:"source,omitempty"`

	Status string `gorm:"not null;default:'New';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// CampaignLead joins campaigns to leads. Written once by the campaign
// wizard, never mutated by the scheduler.
type CampaignLead struct {
	CampaignID string `gorm:"type:uuid;primaryKey" json:"campaign_id"`
	LeadID     string `gorm:"type:uuid;primaryKey" json:"lead_id"`

	CreatedAt time.Time `json:"created_at"`
}
