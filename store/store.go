package store

import (
	"fmt"

	"gorm.io/gorm"

	"dialnexy/models"
	"dialnexy/provider"
)

// GormStore exposes the handful of queries the scheduler needs. Everything
// else about the relational store belongs to the dashboard backend.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// ListActiveCampaignsWithAgent returns every Active campaign with its agent
// loaded. The inner join drops campaigns whose agent was deleted.
func (s *GormStore) ListActiveCampaignsWithAgent() ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := s.DB.
		InnerJoins("Agent").
		Where("campaigns.status = ?", models.CampaignStatusActive).
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active campaigns: %w", err)
	}
	return campaigns, nil
}

// ListConnections returns the tenant's decrypted credentials keyed by
// service name.
func (s *GormStore) ListConnections(userID string) (provider.ConnectionSet, error) {
	var connections []models.Connection
	if err := s.DB.Where("user_id = ?", userID).Find(&connections).Error; err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	conns := make(provider.ConnectionSet, len(connections))
	for _, c := range connections {
		creds, err := DecodeCredentials(c.EncryptedCredentials)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt %s credentials: %w", c.Service, err)
		}
		conns[c.Service] = creds
	}
	return conns, nil
}

// claimNextLeadQuery picks the oldest New lead of the campaign and flips it
// to Queued in one statement. SKIP LOCKED plus the status condition means
// two overlapping runs can never claim the same lead; the loser simply sees
// no row.
const claimNextLeadQuery = `
UPDATE leads SET status = ?, updated_at = NOW()
WHERE id = (
	SELECT l.id FROM leads l
	JOIN campaign_leads cl ON cl.lead_id = l.id
	WHERE cl.campaign_id = ? AND l.status = ?
	ORDER BY l.created_at, l.id
	LIMIT 1
	FOR UPDATE OF l SKIP LOCKED
)
AND status = ?
RETURNING id, user_id, group_id, name, phone, email, city, industry, source, status, created_at, updated_at`

// ClaimNextNewLead atomically claims the campaign's next New lead, or
// returns nil when the campaign has none left.
func (s *GormStore) ClaimNextNewLead(campaignID string) (*models.Lead, error) {
	var lead models.Lead
	err := s.DB.Raw(claimNextLeadQuery,
		models.LeadStatusQueued,
		campaignID,
		models.LeadStatusNew,
		models.LeadStatusNew,
	).Scan(&lead).Error
	if err != nil {
		return nil, fmt.Errorf("failed to claim lead: %w", err)
	}
	if lead.ID == "" {
		return nil, nil
	}
	return &lead, nil
}

// SetLeadStatus updates one lead's status. Exposed for the call-outcome
// pipeline; the scheduler itself only moves leads through ClaimNextNewLead.
func (s *GormStore) SetLeadStatus(leadID, status string) error {
	return s.DB.Model(&models.Lead{}).
		Where("id = ?", leadID).
		Update("status", status).
		Error
}
