package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	ctx := ContextWithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Fatalf("expected the stored logger to be returned")
	}

	Or(ctx).Info("hello", "key", "value")
	if !strings.Contains(buf.String(), "key=value") {
		t.Errorf("expected structured output, got %q", buf.String())
	}
}

func TestVerboseLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be suppressed, got %q", buf.String())
	}

	New(&buf, true).Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug output in verbose mode, got %q", buf.String())
	}
}

func TestFromContext_Missing(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Errorf("expected nil logger for an empty context")
	}
	// Or never returns nil
	Or(context.Background()).Info("discarded")
}
