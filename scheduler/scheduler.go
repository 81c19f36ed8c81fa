package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"dialnexy/models"
	"dialnexy/provider"
)

// Store is the slice of the relational store the scheduler consumes. The
// claim operation must be an atomic conditional update (New → Queued); it is
// the only thing standing between overlapping runs and a double dial.
type Store interface {
	ListActiveCampaignsWithAgent() ([]models.Campaign, error)
	ListConnections(userID string) (provider.ConnectionSet, error)
	ClaimNextNewLead(campaignID string) (*models.Lead, error)
	SetLeadStatus(leadID, status string) error
}

// RunSummary describes one completed scheduler pass.
type RunSummary struct {
	CampaignsSeen int `json:"campaigns_seen"`
	Eligible      int `json:"eligible"`
	Dispatched    int `json:"dispatched"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
}

func (r *RunSummary) Message() string {
	if r.Eligible == 0 {
		return "No active campaigns scheduled for now."
	}
	return fmt.Sprintf("Campaign scheduler executed: %d dispatched, %d skipped, %d failed.",
		r.Dispatched, r.Skipped, r.Failed)
}

// Scheduler runs one stateless pass over all Active campaigns. Campaigns are
// independent units of work: every failure past the campaign listing is
// caught at the per-campaign boundary and never aborts the run.
type Scheduler struct {
	Store   Store
	Dialers map[string]provider.Dialer
	Logger  *logrus.Logger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func New(st Store, dialers []provider.Dialer, logger *logrus.Logger) *Scheduler {
	byPlatform := make(map[string]provider.Dialer, len(dialers))
	for _, d := range dialers {
		byPlatform[d.Platform()] = d
	}
	return &Scheduler{
		Store:   st,
		Dialers: byPlatform,
		Logger:  logger,
		Now:     time.Now,
	}
}

// Run executes one scheduler pass. The returned error is non-nil only when
// the campaign listing itself fails; per-campaign problems are logged and
// counted in the summary.
func (s *Scheduler) Run(ctx context.Context) (*RunSummary, error) {
	campaigns, err := s.Store.ListActiveCampaignsWithAgent()
	if err != nil {
		return nil, fmt.Errorf("campaign listing failed: %w", err)
	}

	summary := &RunSummary{CampaignsSeen: len(campaigns)}
	now := s.Now()

	for _, campaign := range campaigns {
		active, err := IsActiveNow(campaign.Schedule, now)
		if err != nil {
			// Fail closed: a broken schedule means the campaign does
			// not dial, but the run carries on.
			s.campaignLog(campaign).WithError(err).Error("schedule evaluation failed, treating campaign as inactive")
			s.captureFailure(campaign, err)
			summary.Failed++
			continue
		}
		if !active {
			continue
		}

		summary.Eligible++
		switch s.processCampaign(ctx, campaign) {
		case outcomeDispatched:
			summary.Dispatched++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		}
	}

	return summary, nil
}

type outcome int

const (
	outcomeDispatched outcome = iota
	outcomeSkipped
	outcomeFailed
)

// processCampaign runs one campaign's claim-and-dispatch. The lead is
// claimed (New → Queued) before the provider call so an overlapping run
// cannot pick it up mid-flight. A dispatch failure after the claim leaves
// the lead Queued; reconciliation belongs to the call-outcome webhook.
func (s *Scheduler) processCampaign(ctx context.Context, campaign models.Campaign) outcome {
	log := s.campaignLog(campaign)

	conns, err := s.Store.ListConnections(campaign.UserID)
	if err != nil {
		log.WithError(err).Error("failed to load tenant connections")
		s.captureFailure(campaign, err)
		return outcomeFailed
	}

	lead, err := s.Store.ClaimNextNewLead(campaign.ID)
	if err != nil {
		log.WithError(err).Error("failed to claim lead")
		s.captureFailure(campaign, err)
		return outcomeFailed
	}
	if lead == nil {
		log.Debug("no new leads, skipping campaign")
		return outcomeSkipped
	}

	dialer, ok := s.Dialers[campaign.Agent.Platform]
	if !ok {
		err := fmt.Errorf("no dialer registered for platform %q", campaign.Agent.Platform)
		log.WithField("lead_id", lead.ID).WithError(err).Error("cannot dispatch, lead remains queued")
		s.captureFailure(campaign, err)
		return outcomeFailed
	}

	log.WithFields(logrus.Fields{
		"lead_id":  lead.ID,
		"platform": campaign.Agent.Platform,
	}).Info("dispatching call")

	callID, err := dialer.PlaceCall(ctx, conns, campaign.Agent.ProviderAgentID, lead)
	if err != nil {
		log.WithField("lead_id", lead.ID).WithError(err).Error("dispatch failed, lead remains queued")
		s.captureFailure(campaign, err)
		return outcomeFailed
	}

	log.WithFields(logrus.Fields{
		"lead_id":          lead.ID,
		"provider_call_id": callID,
	}).Info("call dispatched")
	return outcomeDispatched
}

func (s *Scheduler) campaignLog(campaign models.Campaign) *logrus.Entry {
	return s.Logger.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"user_id":     campaign.UserID,
	})
}

func (s *Scheduler) captureFailure(campaign models.Campaign, err error) {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("campaign_id", campaign.ID)
		scope.SetTag("user_id", campaign.UserID)
		scope.SetTag("platform", campaign.Agent.Platform)
		sentry.CaptureException(err)
	})
}
