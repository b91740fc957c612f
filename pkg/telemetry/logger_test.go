package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.level); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")

	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}

	zlog := logger.NewComponentLogger("render").WithBuildID("b-1").Zerolog()
	zlog.Info().Msg("generated config source")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	for _, want := range []string{`"component":"render"`, `"build_id":"b-1"`, "generated config source"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %q in log output: %s", want, data)
		}
	}
}

func TestContextCarriage(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Errorf("FromContext() should return the attached logger")
	}

	if FromContext(context.Background()) == nil {
		t.Errorf("FromContext() without a logger should fall back, not return nil")
	}
}
