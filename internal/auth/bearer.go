// Package auth provides bearer credential extraction for API requests.
//
// Tokens are opaque: they are checked for shape only and never verified
// against a credential store.
package auth

import (
	"net/http"
	"strings"

	"github.com/tweesky/treedoc/internal/apierr"
)

const (
	// AuthorizationHeader carries the bearer credential.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the required scheme prefix, including the separating space.
	BearerPrefix = "Bearer "
	// SecuritySchemeName names the bearer scheme in the API description.
	SecuritySchemeName = "bearerAuth"
)

// Client-facing messages for token failures.
const (
	MsgMissingToken = "Missing token"
	MsgInvalidToken = "Invalid token"
)

// Token failures. Both map to 401 responses.
var (
	ErrMissingToken   = apierr.InvalidToken(MsgMissingToken)
	ErrMalformedToken = apierr.InvalidToken(MsgInvalidToken)
)

// ValidateAPIToken checks the Authorization header of r.
// It fails with an InvalidToken error when the header is absent or does not
// use the Bearer scheme, and otherwise returns the token that follows the prefix.
func ValidateAPIToken(r *http.Request) (string, error) {
	values, present := r.Header[AuthorizationHeader]
	if !present || len(values) == 0 {
		return "", ErrMissingToken
	}

	header := values[0]
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", ErrMalformedToken
	}

	return strings.TrimPrefix(header, BearerPrefix), nil
}
