package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"

	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/viz"
)

// Options configures a Screen.
type Options struct {
	FPS           int
	Theme         viz.Theme
	Status        bool
	Logger        zerolog.Logger
	DriverOptions []rain.Option
}

// Screen runs the effect full-screen on a tcell screen. Input events are read
// on their own goroutine and handed to the loop goroutine over a channel, so
// ticks and resizes are never processed concurrently.
type Screen struct {
	screen    tcell.Screen
	surface   *viz.CellSurface
	collector *metrics.Collector
	driver    *rain.Driver
	loop      *rain.Loop
	theme     viz.Theme
	interval  time.Duration
	status    bool
	start     time.Time
	log       zerolog.Logger
	styles    map[colorful.Color]tcell.Style
}

// New sizes field to screen, which must already be initialized, and draws the
// first frame.
func New(screen tcell.Screen, field *rain.Field, opts Options) *Screen {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Theme.Name == "" {
		opts.Theme = viz.DefaultTheme
	}
	s := &Screen{
		screen:   screen,
		surface:  viz.NewCellSurface(0, 0, field.Params()),
		loop:     &rain.Loop{},
		theme:    opts.Theme,
		interval: time.Second / time.Duration(opts.FPS),
		status:   opts.Status,
		start:    time.Now(),
		log:      opts.Logger,
		styles:   make(map[colorful.Color]tcell.Style),
	}
	s.collector = metrics.NewCollector(s.surface)
	s.driver = rain.NewDriver(field, s.collector, s.loop, opts.DriverOptions...)
	s.resize(screen.Size())
	s.driver.Start()
	s.collector.Commit(s.driver.Stats())
	return s
}

func (s *Screen) resize(w, h int) {
	if s.status {
		h--
	}
	s.surface.Resize(w, h)
	pw, ph := s.surface.PixelSize()
	s.driver.Resize(pw, ph)
}

// Run drives the effect until ctx is done or the user quits, then restores
// the terminal.
func (s *Screen) Run(ctx context.Context) error {
	defer s.screen.Fini()
	s.screen.HideCursor()

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(s.screen, events, done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if s.HandleEvent(ev) {
				s.log.Debug().Int("frames", s.driver.Stats().Frames).Msg("quit")
				return nil
			}
		case now := <-ticker.C:
			s.Step(now)
			s.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized, closing
// events, or until done is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one input event and reports whether the user quit.
func (s *Screen) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.resize(ev.Size())
		s.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		}
	}
	return false
}

// Step runs the pending frame for wall-clock time now.
func (s *Screen) Step(now time.Time) {
	s.loop.Step(rain.Millis(now.Sub(s.start)))
	s.collector.Commit(s.driver.Stats())
}

func (s *Screen) style(c rain.RGBA) tcell.Style {
	shade := s.theme.Shade(c)
	if st, ok := s.styles[shade]; ok {
		return st
	}
	bg := s.theme.Shade(rain.RGBA{})
	st := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(rgb(shade))).
		Background(tcell.NewRGBColor(rgb(bg)))
	s.styles[shade] = st
	return st
}

// Draw copies the cell surface and the status line to the screen.
func (s *Screen) Draw() {
	s.surface.Each(func(col, row int, r rune, c rain.RGBA) {
		s.screen.SetContent(col, row, r, nil, s.style(c))
	})
	if s.status {
		_, rows := s.surface.Size()
		st := s.driver.Stats()
		fps, _ := s.collector.Value("fps")
		line := fmt.Sprintf(" fps %.1f  bolts %d  frames %d  q quit", fps, st.Live, st.Frames)
		s.drawText(0, rows, line, s.style(rain.Green.WithAlpha(0.6)))
	}
	s.screen.Show()
}

func (s *Screen) drawText(x, y int, text string, style tcell.Style) {
	w, _ := s.screen.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (s *Screen) Driver() *rain.Driver          { return s.driver }
func (s *Screen) Surface() *viz.CellSurface     { return s.surface }
func (s *Screen) Collector() *metrics.Collector { return s.collector }

func rgb(c colorful.Color) (int32, int32, int32) {
	r, g, b := c.RGB255()
	return int32(r), int32(g), int32(b)
}
