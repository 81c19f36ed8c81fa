package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Platform names for voice-AI providers
const (
	PlatformVapi   = "vapi"
	PlatformRetell = "retell"
)

// Agent represents a voice-AI agent configured on an external provider.
// The provider-side identifier is opaque to us.
type Agent struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	Name            string `gorm:"not null" json:"name"`
	Platform        string `gorm:"not null" json:"platform"` // vapi, retell
	ProviderAgentID string `gorm:"not null" json:"provider_agent_id"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
