package provider

import (
	"fmt"
	"strings"
)

// ConnectionSet maps a service name (vapi, retell, twilio, ...) to that
// service's decrypted credential fields for one tenant.
type ConnectionSet map[string]map[string]string

// MissingCredentialError reports an absent connection or absent required
// fields on an existing connection.
type MissingCredentialError struct {
	Service string
	Fields  []string
}

func (e *MissingCredentialError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("no %s connection configured", e.Service)
	}
	return fmt.Sprintf("%s connection is missing %s", e.Service, strings.Join(e.Fields, ", "))
}

// requireFields returns the service's credentials once every named field is
// present and non-empty.
func requireFields(conns ConnectionSet, service string, fields ...string) (map[string]string, error) {
	creds, ok := conns[service]
	if !ok {
		return nil, &MissingCredentialError{Service: service}
	}

	var missing []string
	for _, f := range fields {
		if creds[f] == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingCredentialError{Service: service, Fields: missing}
	}
	return creds, nil
}
