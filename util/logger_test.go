package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		wantInfo  bool
		wantVerb  bool
		wantDebug bool
	}{
		{0, false, false, false},
		{1, true, false, false},
		{2, true, true, false},
		{3, true, true, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		l := NewLogger(tt.verbosity)
		l.SetOutput(&buf)

		l.Info("info message")
		l.Verbose("verbose message")
		l.Debug("debug message")

		out := buf.String()
		if got := strings.Contains(out, "info message"); got != tt.wantInfo {
			t.Errorf("verbosity %d: info printed = %v, want %v", tt.verbosity, got, tt.wantInfo)
		}
		if got := strings.Contains(out, "verbose message"); got != tt.wantVerb {
			t.Errorf("verbosity %d: verbose printed = %v, want %v", tt.verbosity, got, tt.wantVerb)
		}
		if got := strings.Contains(out, "debug message"); got != tt.wantDebug {
			t.Errorf("verbosity %d: debug printed = %v, want %v", tt.verbosity, got, tt.wantDebug)
		}
	}
}

func TestLoggerErrorAlwaysPrints(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(0)
	l.SetOutput(&buf)

	l.Error("something failed: %v", "reason")

	if !strings.Contains(buf.String(), "[ERR] something failed: reason") {
		t.Errorf("error output = %q", buf.String())
	}
}

func TestLoggerDebugTimestamps(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(3)
	l.SetOutput(&buf)

	l.Debug("timestamped")

	// "15:04:05.000 [DBG] timestamped"
	line := buf.String()
	if !strings.Contains(line, "[DBG] timestamped") {
		t.Fatalf("debug output = %q", line)
	}
	if strings.HasPrefix(line, "[DBG]") {
		t.Error("debug level should prefix a timestamp")
	}
}
