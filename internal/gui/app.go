package gui

import (
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/viz"
)

// fontCandidates are tried in order when no font is configured. The first
// ones cover katakana.
var fontCandidates = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/liberation/LiberationMono-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
}

// Options configures an App.
type Options struct {
	Width, Height int
	FPS           int
	FontPath      string
	Theme         viz.Theme
	Status        bool
	Logger        zerolog.Logger
	DriverOptions []rain.Option
}

// App shows the effect in a resizable window. Frames accumulate in a
// persistent render texture so the fade leaves trails, as on a canvas.
type App struct {
	Font   rl.Font
	Target rl.RenderTexture2D

	surface   *Surface
	collector *metrics.Collector
	driver    *rain.Driver
	loop      *rain.Loop
	status    bool
	quit      bool
	start     time.Time
	log       zerolog.Logger
	theme     viz.Theme
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "digirain")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(rl.KeyEscape)
}

// loadFont loads the configured font, or the first candidate present, with
// every glyph of the alphabet. It reports false when only the built-in ASCII
// font is available.
func loadFont(path string, size int32, glyphs rain.GlyphSet) (rl.Font, bool) {
	paths := fontCandidates
	if path != "" {
		paths = []string{path}
	}
	codepoints := make([]rune, 0, len(glyphs)+95)
	for r := rune(32); r < 127; r++ {
		codepoints = append(codepoints, r)
	}
	codepoints = append(codepoints, glyphs...)

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		font := rl.LoadFontEx(p, size, codepoints, int32(len(codepoints)))
		rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
		return font, true
	}
	return rl.GetFontDefault(), false
}

// Run opens the window and blocks until it is closed.
func Run(field *rain.Field, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("gui: invalid window size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Theme.Name == "" {
		opts.Theme = viz.DefaultTheme
	}
	initWindow(opts)
	defer rl.CloseWindow()

	app := NewApp(field, opts)
	defer app.Close()
	app.RunLoop()
	return nil
}

// NewApp needs an open window.
func NewApp(field *rain.Field, opts Options) *App {
	p := field.Params()
	font, full := loadFont(opts.FontPath, int32(p.FontSize*2), field.Glyphs())
	if !full {
		opts.Logger.Warn().Msg("no font with katakana found, drawing digits")
	}

	a := &App{
		Font:   font,
		loop:   &rain.Loop{},
		status: opts.Status,
		start:  time.Now(),
		log:    opts.Logger,
		theme:  opts.Theme,
	}
	a.surface = NewSurface(font, opts.Theme, !full)
	a.collector = metrics.NewCollector(a.surface)
	a.driver = rain.NewDriver(field, a.collector, a.loop, opts.DriverOptions...)
	a.resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))

	rl.BeginTextureMode(a.Target)
	a.driver.Start()
	rl.EndTextureMode()
	a.collector.Commit(a.driver.Stats())
	return a
}

func (a *App) resize(w, h int) {
	if a.Target.ID != 0 {
		rl.UnloadRenderTexture(a.Target)
	}
	a.Target = rl.LoadRenderTexture(int32(w), int32(h))
	rl.BeginTextureMode(a.Target)
	rl.ClearBackground(a.surface.color(rain.Black))
	rl.EndTextureMode()
	a.driver.Resize(float64(w), float64(h))
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update handles resizing and renders the next frame into the texture.
func (a *App) Update() {
	if rl.IsWindowResized() {
		a.resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	rl.BeginTextureMode(a.Target)
	a.loop.Step(rain.Millis(time.Since(a.start)))
	rl.EndTextureMode()
	a.collector.Commit(a.driver.Stats())
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.surface.color(rain.Black))

	w, h := float32(a.Target.Texture.Width), float32(a.Target.Texture.Height)
	// Render textures are stored upside down.
	rl.DrawTextureRec(a.Target.Texture, rl.NewRectangle(0, 0, w, -h), rl.NewVector2(0, 0), rl.White)

	if a.status {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	s := a.driver.Stats()
	muted := a.surface.color(rain.Green.WithAlpha(0.5))
	h := rl.GetScreenHeight()
	a.drawText(fmt.Sprintf("%d FPS  bolts %d  frames %d", rl.GetFPS(), s.Live, s.Frames), 10, int(h)-24, 14, muted)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// Close releases GPU resources.
func (a *App) Close() {
	rl.UnloadRenderTexture(a.Target)
	if a.Font.Texture.ID != rl.GetFontDefault().Texture.ID {
		rl.UnloadFont(a.Font)
	}
	a.log.Debug().Int("frames", a.driver.Stats().Frames).Msg("window closed")
}
