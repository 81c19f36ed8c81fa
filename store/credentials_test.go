package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialnexy/config"
)

func TestCredentialCodecRoundTrip(t *testing.T) {
	config.AppConfig.EncryptionKey = "0123456789abcdef"

	creds := map[string]string{
		"api_key":         "sk-test",
		"phone_number_id": "pn-1",
	}

	encoded, err := EncodeCredentials(creds)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "sk-test")

	decoded, err := DecodeCredentials(encoded)
	require.NoError(t, err)
	assert.Equal(t, creds, decoded)
}

func TestDecodeCredentialsEmpty(t *testing.T) {
	config.AppConfig.EncryptionKey = "0123456789abcdef"

	decoded, err := DecodeCredentials("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
