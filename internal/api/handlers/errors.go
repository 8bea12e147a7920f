package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/marketplace-gateway/internal/platform"
)

// platformError maps a failed platform call onto the HTTP status the caller
// sees. Upstream bodies are not echoed.
func platformError(err error) error {
	var callErr *platform.CallError
	if !errors.As(err, &callErr) {
		return huma.Error500InternalServerError("platform response could not be processed")
	}

	msg := callErr.Op + ": platform " + callErr.Result.Status.String()
	switch callErr.Result.Status {
	case platform.StatusAuthFailed:
		return huma.Error401Unauthorized(msg)
	case platform.StatusForbidden:
		return huma.Error403Forbidden(msg)
	case platform.StatusNotFound:
		return huma.Error404NotFound(msg)
	case platform.StatusTransportError:
		return huma.Error504GatewayTimeout(msg)
	default:
		return huma.Error502BadGateway(msg)
	}
}
