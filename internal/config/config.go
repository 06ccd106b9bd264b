package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/digirain/internal/rain"
)

const (
	DefaultTheme         = "matrix"
	DefaultFPS           = 60
	DefaultExportWidth   = 840
	DefaultExportHeight  = 600
	DefaultExportFrames  = 120
	DefaultExportSVGLast = 1

	MaxFPS = 240
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Seed    uint64       `yaml:"seed" toml:"seed"`
	Theme   string       `yaml:"theme" toml:"theme"`
	FPS     int          `yaml:"fps" toml:"fps"`
	Status  bool         `yaml:"status" toml:"status"`
	Thunder bool         `yaml:"thunder" toml:"thunder"`
	Glyphs  string       `yaml:"glyphs,omitempty" toml:"glyphs,omitempty"`
	Render  RenderConfig `yaml:"render" toml:"render"`
	Export  ExportConfig `yaml:"export" toml:"export"`
}

type RenderConfig struct {
	FontSize         float64 `yaml:"font_size" toml:"font_size"`
	ColumnWidthRatio float64 `yaml:"column_width_ratio" toml:"column_width_ratio"`
	LineSpacingRatio float64 `yaml:"line_spacing_ratio" toml:"line_spacing_ratio"`
	SpeedMin         float64 `yaml:"speed_min" toml:"speed_min"`
	SpeedMax         float64 `yaml:"speed_max" toml:"speed_max"`
	TextLenMin       int     `yaml:"text_len_min" toml:"text_len_min"`
	TextLenMax       int     `yaml:"text_len_max" toml:"text_len_max"`
	FlashIntervalMin float64 `yaml:"flash_interval_min" toml:"flash_interval_min"`
	FlashIntervalMax float64 `yaml:"flash_interval_max" toml:"flash_interval_max"`
	FlashAlpha       float64 `yaml:"flash_alpha" toml:"flash_alpha"`
	BoltLifeMin      float64 `yaml:"bolt_life_min" toml:"bolt_life_min"`
	BoltLifeMax      float64 `yaml:"bolt_life_max" toml:"bolt_life_max"`
	BoltStepX        float64 `yaml:"bolt_step_x" toml:"bolt_step_x"`
	BoltStepYMin     float64 `yaml:"bolt_step_y_min" toml:"bolt_step_y_min"`
	BoltStepYMax     float64 `yaml:"bolt_step_y_max" toml:"bolt_step_y_max"`
	BoltLineWidth    float64 `yaml:"bolt_line_width" toml:"bolt_line_width"`
	SpawnProbability float64 `yaml:"spawn_probability" toml:"spawn_probability"`
	FadeAlpha        float64 `yaml:"fade_alpha" toml:"fade_alpha"`
}

type ExportConfig struct {
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	Frames    int    `yaml:"frames" toml:"frames"`
	Font      string `yaml:"font,omitempty" toml:"font,omitempty"`
	SVGFrames int    `yaml:"svg_frames" toml:"svg_frames"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:  DefaultTheme,
		FPS:    DefaultFPS,
		Render: FromParams(rain.DefaultParams()),
		Export: ExportConfig{
			Width:     DefaultExportWidth,
			Height:    DefaultExportHeight,
			Frames:    DefaultExportFrames,
			SVGFrames: DefaultExportSVGLast,
		},
	}
}

// FromParams converts effect parameters to their config form.
func FromParams(p rain.Params) RenderConfig {
	return RenderConfig{
		FontSize:         p.FontSize,
		ColumnWidthRatio: p.ColumnWidthRatio,
		LineSpacingRatio: p.LineSpacingRatio,
		SpeedMin:         p.SpeedMin,
		SpeedMax:         p.SpeedMax,
		TextLenMin:       p.TextLenMin,
		TextLenMax:       p.TextLenMax,
		FlashIntervalMin: p.FlashIntervalMin,
		FlashIntervalMax: p.FlashIntervalMax,
		FlashAlpha:       p.FlashAlpha,
		BoltLifeMin:      p.BoltLifeMin,
		BoltLifeMax:      p.BoltLifeMax,
		BoltStepX:        p.BoltStepX,
		BoltStepYMin:     p.BoltStepYMin,
		BoltStepYMax:     p.BoltStepYMax,
		BoltLineWidth:    p.BoltLineWidth,
		SpawnProbability: p.SpawnProbability,
		FadeAlpha:        p.FadeAlpha,
	}
}

// Params returns the effect parameters described by the render section.
func (c *Config) Params() rain.Params {
	r := c.Render
	return rain.Params{
		FontSize:         r.FontSize,
		ColumnWidthRatio: r.ColumnWidthRatio,
		LineSpacingRatio: r.LineSpacingRatio,
		SpeedMin:         r.SpeedMin,
		SpeedMax:         r.SpeedMax,
		TextLenMin:       r.TextLenMin,
		TextLenMax:       r.TextLenMax,
		FlashIntervalMin: r.FlashIntervalMin,
		FlashIntervalMax: r.FlashIntervalMax,
		FlashAlpha:       r.FlashAlpha,
		BoltLifeMin:      r.BoltLifeMin,
		BoltLifeMax:      r.BoltLifeMax,
		BoltStepX:        r.BoltStepX,
		BoltStepYMin:     r.BoltStepYMin,
		BoltStepYMax:     r.BoltStepYMax,
		BoltLineWidth:    r.BoltLineWidth,
		SpawnProbability: r.SpawnProbability,
		FadeAlpha:        r.FadeAlpha,
	}
}

// GlyphSet returns the configured alphabet, or the default one.
func (c *Config) GlyphSet() rain.GlyphSet {
	if c.Glyphs == "" {
		return rain.DefaultGlyphs
	}
	return rain.GlyphSet([]rune(c.Glyphs))
}

func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > MaxFPS {
		return fmt.Errorf("%w: fps %d not in [1, %d]", ErrInvalidConfig, c.FPS, MaxFPS)
	}
	if c.Theme == "" {
		return fmt.Errorf("%w: empty theme", ErrInvalidConfig)
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		return fmt.Errorf("%w: export size %dx%d", ErrInvalidConfig, c.Export.Width, c.Export.Height)
	}
	if c.Export.Frames <= 0 {
		return fmt.Errorf("%w: export frames %d", ErrInvalidConfig, c.Export.Frames)
	}
	if c.Export.SVGFrames < 0 || c.Export.SVGFrames > c.Export.Frames {
		return fmt.Errorf("%w: svg frames %d not in [0, %d]", ErrInvalidConfig, c.Export.SVGFrames, c.Export.Frames)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: render: %w", err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML or TOML file, chosen by extension, on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// YAML renders the config the way Save writes .yaml files.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
