package provider

import (
	"context"
	"fmt"

	"dialnexy/models"
)

// Dialer places one outbound call through a voice-AI platform. Exactly one
// HTTP request per invocation; no internal retry. Implementations resolve
// their own credential requirements from the tenant's connection set, since
// requirements differ per platform (Retell additionally needs a Twilio
// number to originate from).
type Dialer interface {
	Platform() string
	PlaceCall(ctx context.Context, conns ConnectionSet, providerAgentID string, lead *models.Lead) (string, error)
}

// DispatchError reports a non-2xx provider response. The body is kept for
// the operational log.
type DispatchError struct {
	Platform   string
	StatusCode int
	Body       string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Platform, e.StatusCode, e.Body)
}
