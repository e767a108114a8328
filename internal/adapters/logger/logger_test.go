package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tiiuae/ghaf-slim-demo/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, false)

	log.Info("resolving targets")

	out := buf.String()
	if !strings.Contains(out, "level=INFO") {
		t.Errorf("expected INFO level, got: %q", out)
	}
	if !strings.Contains(out, "resolving targets") {
		t.Errorf("expected message, got: %q", out)
	}
}

func TestLogger_DebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, false)

	log.Debug("cache probe")

	if buf.Len() != 0 {
		t.Errorf("expected no output at default level, got: %q", buf.String())
	}
}

func TestLogger_DebugVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, true)

	log.Debug("cache probe")

	if !strings.Contains(buf.String(), "cache probe") {
		t.Errorf("expected debug output, got: %q", buf.String())
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, false)

	log.Error(errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") {
		t.Errorf("expected ERROR level, got: %q", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("expected error text, got: %q", out)
	}
}
