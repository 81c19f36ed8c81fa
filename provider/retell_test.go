package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialnexy/models"
)

func retellConns() ConnectionSet {
	return ConnectionSet{
		models.ServiceRetell: {"api_key": "retell-key"},
		models.ServiceTwilio: {"account_sid": "AC123", "auth_token": "tok", "phone_number": "+15550999"},
	}
}

func TestRetellPlaceCall(t *testing.T) {
	var got retellCallRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create-phone-call", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"call_id":"retell-call-1"}`))
	}))
	defer srv.Close()

	d := NewRetellDialer(srv.URL, 5*time.Second)
	callID, err := d.PlaceCall(context.Background(), retellConns(), "retell-agent", testLead())
	require.NoError(t, err)

	assert.Equal(t, "retell-call-1", callID)
	assert.Equal(t, "Bearer retell-key", auth)
	assert.Equal(t, "retell-agent", got.AgentID)
	// Retell dials out over the tenant's Twilio number
	assert.Equal(t, "+15550999", got.FromNumber)
	assert.Equal(t, "+15550100", got.ToNumber)
	assert.Equal(t, "Ada Lovelace", got.DynamicVariables["lead_name"])
}

func TestRetellPlaceCallNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"invalid from_number"}`))
	}))
	defer srv.Close()

	d := NewRetellDialer(srv.URL, 5*time.Second)
	_, err := d.PlaceCall(context.Background(), retellConns(), "retell-agent", testLead())

	var dispatchErr *DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Equal(t, models.PlatformRetell, dispatchErr.Platform)
	assert.Equal(t, http.StatusUnprocessableEntity, dispatchErr.StatusCode)
	assert.Contains(t, dispatchErr.Body, "invalid from_number")
}

func TestRetellPlaceCallCredentialRequirements(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	d := NewRetellDialer(srv.URL, 5*time.Second)

	t.Run("missing retell connection", func(t *testing.T) {
		conns := ConnectionSet{
			models.ServiceTwilio: {"phone_number": "+15550999"},
		}
		_, err := d.PlaceCall(context.Background(), conns, "retell-agent", testLead())
		var missing *MissingCredentialError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, models.ServiceRetell, missing.Service)
	})

	t.Run("missing twilio connection", func(t *testing.T) {
		conns := ConnectionSet{
			models.ServiceRetell: {"api_key": "retell-key"},
		}
		_, err := d.PlaceCall(context.Background(), conns, "retell-agent", testLead())
		var missing *MissingCredentialError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, models.ServiceTwilio, missing.Service)
	})

	t.Run("twilio connection without phone number", func(t *testing.T) {
		conns := ConnectionSet{
			models.ServiceRetell: {"api_key": "retell-key"},
			models.ServiceTwilio: {"account_sid": "AC123"},
		}
		_, err := d.PlaceCall(context.Background(), conns, "retell-agent", testLead())
		var missing *MissingCredentialError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, models.ServiceTwilio, missing.Service)
		assert.Equal(t, []string{"phone_number"}, missing.Fields)
	})

	assert.Zero(t, requests)
}
