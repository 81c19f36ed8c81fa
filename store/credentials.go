package store

import (
	"encoding/json"

	"dialnexy/utils"
)

// EncodeCredentials encrypts a credential field map for storage. The
// dashboard writes connections with the same key, so both sides must agree
// on ENCRYPTION_KEY.
func EncodeCredentials(creds map[string]string) (string, error) {
	raw, err := json.Marshal(creds)
	if err != nil {
		return "", err
	}
	return utils.Encrypt(string(raw))
}

// DecodeCredentials decrypts a stored credential blob back into its field
// map.
func DecodeCredentials(encrypted string) (map[string]string, error) {
	raw, err := utils.Decrypt(encrypted)
	if err != nil {
		return nil, err
	}
	creds := make(map[string]string)
	if raw == "" {
		return creds, nil
	}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, err
	}
	return creds, nil
}
