package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestNewLogger(t *testing.T) {
	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		if NewLogger(nil) == nil {
			t.Fatal("expected a logger")
		}
	})

	t.Run("writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("child logger carries key-value pairs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "request_id", "abc-123")

		logger.Info("handled")

		if !strings.Contains(buf.String(), "abc-123") {
			t.Errorf("expected request id in output, got %q", buf.String())
		}
	})

	t.Run("level filters output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)

		logger.Info("quiet")

		if buf.Len() != 0 {
			t.Errorf("expected info suppressed at error level, got %q", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	t.Run("produces a valid uuid", func(t *testing.T) {
		if _, err := uuid.Parse(GenerateID()); err != nil {
			t.Errorf("expected a parseable uuid: %v", err)
		}
	})

	t.Run("ids are unique", func(t *testing.T) {
		if GenerateID() == GenerateID() {
			t.Error("expected unique ids")
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	t.Run("unsupported platform", func(t *testing.T) {
		orig := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = orig }()

		err := OpenBrowser("http://127.0.0.1:8080/auth/login")
		if err == nil || !strings.Contains(err.Error(), "unsupported platform") {
			t.Errorf("expected unsupported platform error, got %v", err)
		}
	})
}
