package console

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelWarn)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})

	// Act
	Debug("hidden debug")
	Log("hidden info")
	Warn("shown", "warn")
	Error("shown error")

	// Assert
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected messages below warn to be dropped, got '%s'", out)
	}
	if !strings.Contains(out, "WARN shown warn") || !strings.Contains(out, "ERROR shown error") {
		t.Errorf("Expected warn and error lines, got '%s'", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"", LevelInfo, false},
		{"WARNING", LevelWarn, false},
		{"error", LevelError, false},
		{"off", LevelOff, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q): expected (%d, err=%v), got (%d, %v)", tt.in, tt.want, tt.wantErr, got, err)
		}
	}
}
