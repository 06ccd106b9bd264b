package rain

const (
	DefaultFontSize         = 14.0
	DefaultColumnWidthRatio = 0.6
	DefaultLineSpacingRatio = 0.8
	DefaultSpawnProbability = 0.03
	DefaultFadeAlpha        = 0.1
	DefaultFlashAlpha       = 0.8
	DefaultBoltLineWidth    = 2.0

	// tailFade is how much opacity a column loses from head to tail.
	tailFade = 0.8
)

// Params holds every tunable constant of the effect. The zero value is not
// usable; start from [DefaultParams].
type Params struct {
	FontSize         float64
	ColumnWidthRatio float64
	LineSpacingRatio float64

	SpeedMin, SpeedMax                 float64
	TextLenMin, TextLenMax             int
	FlashIntervalMin, FlashIntervalMax float64
	FlashAlpha                         float64

	BoltLifeMin, BoltLifeMax   float64
	BoltStepX                  float64
	BoltStepYMin, BoltStepYMax float64
	BoltLineWidth              float64
	SpawnProbability           float64

	FadeAlpha float64
}

// DefaultParams returns the constants of the classic effect.
func DefaultParams() Params {
	return Params{
		FontSize:         DefaultFontSize,
		ColumnWidthRatio: DefaultColumnWidthRatio,
		LineSpacingRatio: DefaultLineSpacingRatio,
		SpeedMin:         1,
		SpeedMax:         4,
		TextLenMin:       10,
		TextLenMax:       30,
		FlashIntervalMin: 50,
		FlashIntervalMax: 250,
		FlashAlpha:       DefaultFlashAlpha,
		BoltLifeMin:      100,
		BoltLifeMax:      300,
		BoltStepX:        25,
		BoltStepYMin:     10,
		BoltStepYMax:     30,
		BoltLineWidth:    DefaultBoltLineWidth,
		SpawnProbability: DefaultSpawnProbability,
		FadeAlpha:        DefaultFadeAlpha,
	}
}

// ColumnWidth is the horizontal distance between two columns.
func (p Params) ColumnWidth() float64 { return p.FontSize * p.ColumnWidthRatio }

// LineHeight is the vertical distance between two glyphs of a column.
func (p Params) LineHeight() float64 { return p.FontSize * p.LineSpacingRatio }

// Validate checks that every range is non-empty and that the bolt path is
// guaranteed to make downward progress.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float64
		ok   bool
	}{
		{"font_size", p.FontSize, p.FontSize > 0},
		{"column_width_ratio", p.ColumnWidthRatio, p.ColumnWidthRatio > 0},
		{"line_spacing_ratio", p.LineSpacingRatio, p.LineSpacingRatio > 0},
		{"speed_min", p.SpeedMin, p.SpeedMin > 0},
		{"speed_max", p.SpeedMax, p.SpeedMax >= p.SpeedMin},
		{"text_len_min", float64(p.TextLenMin), p.TextLenMin >= 1},
		{"text_len_max", float64(p.TextLenMax), p.TextLenMax > p.TextLenMin},
		{"flash_interval_min", p.FlashIntervalMin, p.FlashIntervalMin >= 0},
		{"flash_interval_max", p.FlashIntervalMax, p.FlashIntervalMax >= p.FlashIntervalMin},
		{"flash_alpha", p.FlashAlpha, p.FlashAlpha >= 0 && p.FlashAlpha <= 1},
		{"bolt_life_min", p.BoltLifeMin, p.BoltLifeMin >= 0},
		{"bolt_life_max", p.BoltLifeMax, p.BoltLifeMax >= p.BoltLifeMin},
		{"bolt_step_x", p.BoltStepX, p.BoltStepX >= 0},
		{"bolt_step_y_min", p.BoltStepYMin, p.BoltStepYMin > 0},
		{"bolt_step_y_max", p.BoltStepYMax, p.BoltStepYMax >= p.BoltStepYMin},
		{"bolt_line_width", p.BoltLineWidth, p.BoltLineWidth > 0},
		{"spawn_probability", p.SpawnProbability, p.SpawnProbability >= 0 && p.SpawnProbability <= 1},
		{"fade_alpha", p.FadeAlpha, p.FadeAlpha >= 0 && p.FadeAlpha <= 1},
	}
	for _, c := range checks {
		if !c.ok {
			return boundsError(c.name, c.v)
		}
	}
	return nil
}
