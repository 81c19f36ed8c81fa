package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service names a connection can be stored under
const (
	ServiceVapi   = "vapi"
	ServiceRetell = "retell"
	ServiceTwilio = "twilio"
	ServiceCalCom = "cal_com"
	ServiceOpenAI = "openai"
	ServiceGmail  = "gmail"
)

// Connection holds one tenant's credentials for one external service.
// The credential map is encrypted as a whole before it hits the database;
// see store.EncodeCredentials / store.DecodeCredentials.
type Connection struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_connections_user_service" json:"user_id"`

	Service string `gorm:"not null;uniqueIndex:idx_connections_user_service" json:"service"`

	// AES-encrypted, base64-encoded JSON object of provider-defined fields
	// (api_key, phone_number_id, ...)
	EncryptedCredentials string `gorm:"column:credentials;type:text;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
