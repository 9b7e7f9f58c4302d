package logger_test

import (
	"bytes"
	"stackvm/internal/logger"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer

	logger.InitWriter(&buf, false, true)
	log.Debug("hidden step")
	log.Warn("visible warning", "pc", 3)

	out := buf.String()
	if strings.Contains(out, "hidden step") {
		t.Errorf("debug output leaked without verbose mode:\n%s", out)
	}
	if !strings.Contains(out, "visible warning") || !strings.Contains(out, "pc=3") {
		t.Errorf("expected warning with fields:\n%s", out)
	}
	if !strings.Contains(out, "STACKVM") {
		t.Errorf("expected prefix:\n%s", out)
	}

	buf.Reset()
	logger.InitWriter(&buf, true, true)
	log.Debug("shown step")
	if !strings.Contains(buf.String(), "shown step") {
		t.Errorf("expected debug output in verbose mode:\n%s", buf.String())
	}
}
