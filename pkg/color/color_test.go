package color_test

import (
	"stackvm/pkg/color"
	"strings"
	"testing"
)

func TestDisabledColorIsPlain(t *testing.T) {
	color.EnableColor(false)
	defer color.EnableColor(false)

	if color.IsColorEnabled() {
		t.Fatalf("expected color to be disabled")
	}

	for _, got := range []string{color.RedText("x"), color.BoldText("x"), color.GrayText("x")} {
		if got != "x" {
			t.Errorf("expected plain text, got %q", got)
		}
	}

	if got := color.Error("boom"); got != "Error: boom" {
		t.Errorf("unexpected error text %q", got)
	}

	got := color.ErrorWithPosition(4, "unknown mnemonic", "PUSH 2")
	if got != "Error at line 4: unknown mnemonic\n    PUSH 2" {
		t.Errorf("unexpected positioned error %q", got)
	}
}

func TestEnabledColorAddsEscapes(t *testing.T) {
	color.EnableColor(true)
	defer color.EnableColor(false)

	got := color.GreenText("ok")
	if !strings.Contains(got, "ok") || !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escaped text, got %q", got)
	}
}
