package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_FirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})
	log.Debug().Msg("first")

	// A second Init must not rebuild or redirect the logger.
	other := Init(Options{Level: "error", Output: &bytes.Buffer{}})
	other.Debug().Msg("second")

	out := buf.String()
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("expected both messages in the original output, got %q", out)
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Get to panic before Init")
		}
	}()
	Get()
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := levelFor(tt.in); got != tt.want {
			t.Fatalf("levelFor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
