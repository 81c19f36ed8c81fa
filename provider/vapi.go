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

// VapiDialer places calls through Vapi.ai. Vapi owns the originating phone
// number, so the tenant's vapi connection must carry both the API key and
// the Vapi-side phone number id.
type VapiDialer struct {
	BaseURL string
	Client  *http.Client
}

func NewVapiDialer(baseURL string, timeout time.Duration) *VapiDialer {
	return &VapiDialer{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (d *VapiDialer) Platform() string {
	return models.PlatformVapi
}

type vapiCallRequest struct {
	PhoneNumberID string       `json:"phoneNumberId"`
	AssistantID   string       `json:"assistantId"`
	Customer      vapiCustomer `json:"customer"`
}

type vapiCustomer struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

type vapiCallResponse struct {
	ID string `json:"id"`
}

func (d *VapiDialer) PlaceCall(ctx context.Context, conns ConnectionSet, providerAgentID string, lead *models.Lead) (string, error) {
	creds, err := requireFields(conns, models.ServiceVapi, "api_key", "phone_number_id")
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(vapiCallRequest{
		PhoneNumberID: creds["phone_number_id"],
		AssistantID:   providerAgentID,
		Customer: vapiCustomer{
			Number: lead.Phone,
			Name:   lead.Name,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.BaseURL+"/call/phone", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+creds["api_key"])
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("vapi request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &DispatchError{
			Platform:   models.PlatformVapi,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var out vapiCallResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("vapi response decode failed: %w", err)
	}
	return out.ID, nil
}
