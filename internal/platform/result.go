package platform

import (
	"encoding/json"
	"fmt"
)

// Status classifies the outcome of a platform call. Exactly one status
// holds per call.
type Status int

// Call statuses.
const (
	StatusOK Status = iota
	StatusAuthFailed
	StatusForbidden
	StatusNotFound
	StatusUpstreamError
	StatusTransportError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAuthFailed:
		return "auth_failed"
	case StatusForbidden:
		return "forbidden"
	case StatusNotFound:
		return "not_found"
	case StatusUpstreamError:
		return "upstream_error"
	case StatusTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the typed outcome of Gateway.Call.
type Result struct {
	Status Status
	// Payload is the parsed JSON body of a 2xx response; nil when the body
	// was empty.
	Payload json.RawMessage
	// StatusCode is the HTTP status of the last upstream response; zero when
	// no response was received.
	StatusCode int
	// Body is the raw body of a non-2xx response.
	Body []byte
	// Cause explains AuthFailed without a response, TransportError and
	// malformed 2xx bodies.
	Cause error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// CallError is returned by Client helpers when a gateway call did not
// succeed. The Result is kept so the caller can pick a response.
type CallError struct {
	Op     string
	Result Result
}

func (e *CallError) Error() string {
	switch {
	case e.Result.StatusCode != 0:
		return fmt.Sprintf("%s: platform %s (status %d): %s",
			e.Op, e.Result.Status, e.Result.StatusCode, string(e.Result.Body))
	case e.Result.Cause != nil:
		return fmt.Sprintf("%s: platform %s: %v", e.Op, e.Result.Status, e.Result.Cause)
	default:
		return fmt.Sprintf("%s: platform %s", e.Op, e.Result.Status)
	}
}

func (e *CallError) Unwrap() error {
	return e.Result.Cause
}
