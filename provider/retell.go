package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dialnexy/models"
)

// RetellDialer places calls through Retell.ai. Retell dials out over a
// caller-supplied Twilio number, so the tenant needs both a retell
// connection (api_key) and a twilio connection (phone_number) — the absence
// of either is reported separately.
type RetellDialer struct {
	BaseURL string
	Client  *http.Client
}

func NewRetellDialer(baseURL string, timeout time.Duration) *RetellDialer {
	return &RetellDialer{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (d *RetellDialer) Platform() string {
	return models.PlatformRetell
}

type retellCallRequest struct {
	AgentID          string            `json:"agent_id"`
	FromNumber       string            `json:"from_number"`
	ToNumber         string            `json:"to_number"`
	DynamicVariables map[string]string `json:"retell_llm_dynamic_variables"`
}

type retellCallResponse struct {
	CallID string `json:"call_id"`
}

func (d *RetellDialer) PlaceCall(ctx context.Context, conns ConnectionSet, providerAgentID string, lead *models.Lead) (string, error) {
	retellCreds, err := requireFields(conns, models.ServiceRetell, "api_key")
	if err != nil {
		return "", err
	}
	twilioCreds, err := requireFields(conns, models.ServiceTwilio, "phone_number")
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(retellCallRequest{
		AgentID:    providerAgentID,
		FromNumber: twilioCreds["phone_number"],
		ToNumber:   lead.Phone,
		DynamicVariables: map[string]string{
			"lead_name": lead.Name,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.BaseURL+"/create-phone-call", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+retellCreds["api_key"])
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("retell request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &DispatchError{
			Platform:   models.PlatformRetell,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var out retellCallResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("retell response decode failed: %w", err)
	}
	return out.CallID, nil
}
