package fare

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain connectivity", errors.New("connection refused"), KindNetwork},
		{"deadline", fmt.Errorf("do request: %w", context.DeadlineExceeded), KindNetwork},
		{"cors pattern", errors.New("blocked by CORS policy"), KindCORS},
		{"cross-origin pattern", errors.New("Cross-Origin request denied"), KindCORS},
	}
	for _, tt := range tests {
		got := classify(tt.err)
		if got.Kind != tt.want {
			t.Errorf("%s: kind = %s, want %s", tt.name, got.Kind, tt.want)
		}
	}
}

func TestClassify_PreservesExistingKind(t *testing.T) {
	orig := &Error{Kind: KindRateLimit, Message: "status 429"}
	if got := classify(fmt.Errorf("wrapped: %w", orig)); got.Kind != KindRateLimit {
		t.Errorf("kind = %s, want rate_limit preserved through wrapping", got.Kind)
	}
}

func TestWithContext_Idempotent(t *testing.T) {
	err := withContext(errors.New("connection reset"), "single ticket")
	err = withContext(err, "single ticket")
	err = withContext(err, "daily ticket")

	msg := err.Error()
	if strings.Count(msg, "single ticket") != 1 {
		t.Errorf("context phrase duplicated: %q", msg)
	}
	if strings.Contains(msg, "daily ticket") {
		t.Errorf("later context must not replace the original: %q", msg)
	}

	kind, ok := ErrorKind(err)
	if !ok || kind != KindNetwork {
		t.Errorf("kind = %s ok=%v, want network", kind, ok)
	}
}

func TestErrorKind_ForeignError(t *testing.T) {
	if _, ok := ErrorKind(errors.New("plain")); ok {
		t.Error("plain errors carry no taxonomy kind")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := withContext(cause, "season ticket")
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable with errors.Is")
	}
}
