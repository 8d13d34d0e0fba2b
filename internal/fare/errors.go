package fare

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Kind discriminates fare-fetch failures. The taxonomy is flat:
// every error surfaced by this package carries exactly one kind.
type Kind string

const (
	// KindNetwork covers connectivity failures, timeouts, and
	// non-2xx statuses other than 429.
	KindNetwork Kind = "network"
	// KindCORS marks cross-origin policy rejections, detected via
	// message patterns on the transport error.
	KindCORS Kind = "cors"
	// KindInvalidResponse marks payloads that are present but
	// structurally or semantically unusable.
	KindInvalidResponse Kind = "invalid_response"
	// KindRateLimit marks HTTP 429 specifically.
	KindRateLimit Kind = "rate_limit"
)

// Error is the single error type of the fare taxonomy.
type Error struct {
	Kind    Kind
	Context string // which fare class was being fetched
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Context != "" {
		return e.Context + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidResponse, Message: fmt.Sprintf(format, args...)}
}

// classify maps a transport-level failure onto the taxonomy. It runs
// once, at the boundary; the resulting kind is preserved as the
// error bubbles up.
func classify(err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindNetwork, Message: "request timed out", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindNetwork, Message: "request timed out", Err: err}
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"cors", "cross-origin", "access-control-allow"} {
		if strings.Contains(msg, pattern) {
			return &Error{Kind: KindCORS, Err: err}
		}
	}

	return &Error{Kind: KindNetwork, Err: err}
}

// withContext classifies err if needed and appends the operation
// context exactly once. Re-wrapping an already-annotated error does
// not duplicate the context phrase.
func withContext(err error, opContext string) error {
	var fe *Error
	if errors.As(err, &fe) {
		if fe.Context == "" {
			fe.Context = opContext
		}
		return fe
	}
	e := classify(err)
	e.Context = opContext
	return e
}

// ErrorKind reports the taxonomy kind of err, if it carries one.
func ErrorKind(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}
