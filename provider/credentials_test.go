package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireFields(t *testing.T) {
	conns := ConnectionSet{
		"vapi": {"api_key": "k", "phone_number_id": "p", "extra": "x"},
	}

	t.Run("all present", func(t *testing.T) {
		creds, err := requireFields(conns, "vapi", "api_key", "phone_number_id")
		require.NoError(t, err)
		assert.Equal(t, "k", creds["api_key"])
	})

	t.Run("connection absent", func(t *testing.T) {
		_, err := requireFields(conns, "twilio", "phone_number")
		require.Error(t, err)
		assert.EqualError(t, err, "no twilio connection configured")
	})

	t.Run("fields absent", func(t *testing.T) {
		_, err := requireFields(conns, "vapi", "api_key", "org_id", "region")
		require.Error(t, err)
		assert.EqualError(t, err, "vapi connection is missing org_id, region")
	})

	t.Run("empty value counts as missing", func(t *testing.T) {
		set := ConnectionSet{"vapi": {"api_key": ""}}
		_, err := requireFields(set, "vapi", "api_key")
		assert.Error(t, err)
	})
}
