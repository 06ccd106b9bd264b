package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/digirain/internal/config"
)

func newTestCmd(t *testing.T) *cobra.Command {
	t.Cleanup(func() {
		preset, configFile = "", ""
	})
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "")
	return cmd
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(newTestCmd(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FPS != config.DefaultFPS || cfg.Theme != config.DefaultTheme {
		t.Errorf("expected defaults, got fps=%d theme=%s", cfg.FPS, cfg.Theme)
	}
}

func TestResolveConfig_FlagOverridesPreset(t *testing.T) {
	cmd := newTestCmd(t)
	preset = "storm"
	if err := cmd.Flags().Set("fps", "30"); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.FPS)
	}
	if cfg.Render != config.GetPreset("storm").Render {
		t.Errorf("expected storm render settings, got %+v", cfg.Render)
	}
}

func TestResolveConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rain.yaml")
	saved := config.DefaultConfig()
	saved.FPS = 24
	saved.Theme = "ice"
	if err := config.Save(path, saved); err != nil {
		t.Fatal(err)
	}

	cmd := newTestCmd(t)
	configFile = path
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FPS != 24 || cfg.Theme != "ice" {
		t.Errorf("expected file values, got fps=%d theme=%s", cfg.FPS, cfg.Theme)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	cmd := newTestCmd(t)
	preset = "hail"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}

	cmd = newTestCmd(t)
	if err := cmd.Flags().Set("theme", "neon"); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestEffectiveSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	if got := effectiveSeed(cfg); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	cfg.Seed = 0
	if effectiveSeed(cfg) == 0 {
		t.Error("expected a clock seed")
	}
}
