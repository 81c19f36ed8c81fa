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

func vapiConns() ConnectionSet {
	return ConnectionSet{
		models.ServiceVapi: {"api_key": "secret-key", "phone_number_id": "pn-42"},
	}
}

func testLead() *models.Lead {
	return &models.Lead{ID: "l1", Name: "Ada Lovelace", Phone: "+15550100"}
}

func TestVapiPlaceCall(t *testing.T) {
	var got vapiCallRequest
	var auth, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/call/phone", r.URL.Path)
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"call-abc"}`))
	}))
	defer srv.Close()

	d := NewVapiDialer(srv.URL, 5*time.Second)
	callID, err := d.PlaceCall(context.Background(), vapiConns(), "agent-7", testLead())
	require.NoError(t, err)

	assert.Equal(t, "call-abc", callID)
	assert.Equal(t, "Bearer secret-key", auth)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "pn-42", got.PhoneNumberID)
	assert.Equal(t, "agent-7", got.AssistantID)
	assert.Equal(t, "+15550100", got.Customer.Number)
	assert.Equal(t, "Ada Lovelace", got.Customer.Name)
}

func TestVapiPlaceCallNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"message":"insufficient credits"}`))
	}))
	defer srv.Close()

	d := NewVapiDialer(srv.URL, 5*time.Second)
	_, err := d.PlaceCall(context.Background(), vapiConns(), "agent-7", testLead())
	require.Error(t, err)

	var dispatchErr *DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Equal(t, models.PlatformVapi, dispatchErr.Platform)
	assert.Equal(t, http.StatusPaymentRequired, dispatchErr.StatusCode)
	assert.Contains(t, dispatchErr.Body, "insufficient credits")
}

func TestVapiPlaceCallMissingCredentials(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	d := NewVapiDialer(srv.URL, 5*time.Second)

	t.Run("no vapi connection", func(t *testing.T) {
		_, err := d.PlaceCall(context.Background(), ConnectionSet{}, "agent-7", testLead())
		var missing *MissingCredentialError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, models.ServiceVapi, missing.Service)
	})

	t.Run("missing phone_number_id", func(t *testing.T) {
		conns := ConnectionSet{models.ServiceVapi: {"api_key": "secret-key"}}
		_, err := d.PlaceCall(context.Background(), conns, "agent-7", testLead())
		var missing *MissingCredentialError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"phone_number_id"}, missing.Fields)
	})

	// A credential failure never reaches the provider
	assert.Zero(t, requests)
}

func TestVapiPlaceCallUnreachable(t *testing.T) {
	d := NewVapiDialer("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := d.PlaceCall(context.Background(), vapiConns(), "agent-7", testLead())
	assert.Error(t, err)
}
