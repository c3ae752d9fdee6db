// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewAttachesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Output: &buf, Service: "testsvc", Version: "v9.9.9"})

	logger.Info().Str("event", "test.event").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["service"] != "testsvc" {
		t.Errorf("service = %v, want testsvc", entry["service"])
	}
	if entry["version"] != "v9.9.9" {
		t.Errorf("version = %v, want v9.9.9", entry["version"])
	}
	if entry["event"] != "test.event" {
		t.Errorf("event = %v, want test.event", entry["event"])
	}
}

func TestNewIgnoresInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "not-a-level", Output: &buf})

	logger.Debug().Msg("below default level")
	if buf.Len() != 0 {
		t.Errorf("debug line emitted at default info level: %q", buf.String())
	}

	logger.Info().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("info line missing: %q", buf.String())
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext = %q, want req-123", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext on empty ctx = %q, want empty", got)
	}
}

func TestWithComponentFromContext(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf})

	ctx := ContextWithJobID(ContextWithRequestID(context.Background(), "r1"), "j1")
	logger := WithComponentFromContext(ctx, "jobs")
	logger.Info().Msg("tick")

	line := buf.String()
	for _, marker := range []string{`"component":"jobs"`, `"request_id":"r1"`, `"job_id":"j1"`} {
		if !strings.Contains(line, marker) {
			t.Errorf("log line missing marker %q: %q", marker, line)
		}
	}
}
