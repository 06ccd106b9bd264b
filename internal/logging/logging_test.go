package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"Warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"none", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("level %q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestSetup_File(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	path := filepath.Join(t.TempDir(), "rain.log")
	logger, closeFn, err := Setup(Options{Level: "debug", File: path, OwnsScreen: true})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug().Int("columns", 100).Msg("field resized")
	logger.Trace().Msg("hidden")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"message":"field resized"`) {
		t.Errorf("expected debug entry in log file, got %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("trace entry should be filtered at debug level")
	}
}

func TestSetup_BadFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	_, closeFn, err := Setup(Options{File: filepath.Join(t.TempDir(), "missing", "rain.log")})
	if err == nil {
		t.Fatal("expected error for unwritable log file")
	}
	closeFn()
}
