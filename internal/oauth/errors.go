package oauth

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// AuthError reasons.
const (
	ReasonMissingCode           = "missing_code"
	ReasonAuthorizationRejected = "authorization_rejected"
	ReasonRefreshRejected       = "refresh_rejected"
	ReasonNoRefreshToken        = "no_refresh_token"
	ReasonTokenRequestFailed    = "token_request_failed"
)

// AuthError reports that the platform refused (or could not be asked) to
// issue a token. UpstreamStatus and UpstreamBody are set when the token
// endpoint answered with a non-2xx status.
type AuthError struct {
	Reason         string
	UpstreamStatus int
	UpstreamBody   string
	Err            error
}

func (e *AuthError) Error() string {
	switch {
	case e.UpstreamStatus != 0:
		return fmt.Sprintf("oauth %s (status %d): %s", e.Reason, e.UpstreamStatus, e.UpstreamBody)
	case e.Err != nil:
		return fmt.Sprintf("oauth %s: %v", e.Reason, e.Err)
	default:
		return "oauth " + e.Reason
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// newAuthError classifies an error returned by the oauth2 package. Non-2xx
// token endpoint answers keep the given reason; anything else (transport
// failure, malformed response) becomes ReasonTokenRequestFailed.
func newAuthError(reason string, err error) *AuthError {
	var rErr *oauth2.RetrieveError
	if !errors.As(err, &rErr) {
		return &AuthError{Reason: ReasonTokenRequestFailed, Err: err}
	}

	ae := &AuthError{
		Reason:       reason,
		UpstreamBody: string(rErr.Body),
		Err:          err,
	}
	if rErr.Response != nil {
		ae.UpstreamStatus = rErr.Response.StatusCode
	}
	return ae
}
