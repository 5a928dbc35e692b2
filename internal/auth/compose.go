package auth

import (
	"encoding/base64"

	"github.com/fivetwenty-io/zendesk/internal/constants"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// Identity is a snapshot of the credentials used for one call.
type Identity struct {
	PrimaryUsername   string
	APIKey            string
	OverrideUsername  string
	AnonymousOverride bool
	ResetPolicy       zendesk.ResetPolicy
}

// EffectiveUsername returns the username that authenticates the call, or ""
// for anonymous calls.
func (i Identity) EffectiveUsername() string {
	switch {
	case i.AnonymousOverride:
		return ""
	case i.OverrideUsername != "":
		return i.OverrideUsername
	default:
		return i.PrimaryUsername
	}
}

// ComposeAuthHeader returns the Authorization header value for id. The
// second result is false when the call must be sent without authentication.
func ComposeAuthHeader(id Identity) (string, bool) {
	if id.AnonymousOverride {
		return "", false
	}

	credentials := id.EffectiveUsername() + constants.TokenUserSuffix + ":" + id.APIKey

	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)), true
}
