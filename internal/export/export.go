// Package export renders the effect headlessly at a fixed timestep and writes
// the frames as PNG files, an animated GIF and an SVG snapshot.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/raster"
)

var ErrNoOutput = errors.New("export: no output selected")

type Options struct {
	Width, Height int
	Frames        int
	FPS           int
	OutDir        string

	PNG       bool
	GIF       bool
	GIFScale  float64
	SVG       bool
	SVGFrames int

	FontPath string
	Tint     func(rain.RGBA) rain.RGBA
	Logger   zerolog.Logger

	DriverOptions []rain.Option
}

type Result struct {
	Frames  int
	PNGs    []string
	GIF     string
	SVG     string
	Elapsed time.Duration
	Stats   rain.Stats
	Metrics map[string]float64
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("export: invalid size %dx%d", o.Width, o.Height)
	}
	if o.Frames <= 0 {
		return fmt.Errorf("export: invalid frame count %d", o.Frames)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("export: invalid fps %d", o.FPS)
	}
	if !o.PNG && !o.GIF && !o.SVG {
		return ErrNoOutput
	}
	return nil
}

// Run drives field for opts.Frames frames, frame i at t = i*1000/fps ms, and
// writes the selected outputs into opts.OutDir. The field is resized to the
// output size first. Cancelling ctx stops between frames; files written so
// far are kept and listed in the result. PNG frames are encoded concurrently
// while later frames render.
func Run(ctx context.Context, field *rain.Field, opts Options) (Result, error) {
	var res Result
	if err := opts.validate(); err != nil {
		return res, err
	}
	log := opts.Logger
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return res, fmt.Errorf("export: %w", err)
	}

	surf, err := raster.New(opts.Width, opts.Height, raster.Options{
		FallbackFont: opts.FontPath,
		Tint:         opts.Tint,
	})
	if err != nil {
		return res, err
	}
	defer surf.Close()

	targets := rain.Surface(surf)
	var svg *SVGRecorder
	if opts.SVG {
		svg = NewSVGRecorder(opts.Width, opts.Height, opts.SVGFrames, opts.Tint)
		targets = Tee{surf, svg}
	}
	var pngs *frameWriter
	if opts.PNG {
		pngs = newFrameWriter(runtime.GOMAXPROCS(0))
		defer pngs.Close()
	}
	var anim *GIFWriter
	if opts.GIF {
		anim = NewGIFWriter(Palette(opts.Tint), opts.FPS, opts.GIFScale)
	}

	w, h := float64(opts.Width), float64(opts.Height)
	if field.Width() != w || field.Height() != h {
		field.Resize(w, h)
	}
	collector := metrics.NewCollector(targets)
	loop := &rain.Loop{}
	driver := rain.NewDriver(field, collector, loop, opts.DriverOptions...)

	step := 1000 / float64(opts.FPS)
	start := time.Now()
	log.Info().Int("frames", opts.Frames).Int("width", opts.Width).Int("height", opts.Height).
		Str("out", opts.OutDir).Msg("export started")

	for i := range opts.Frames {
		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
		if i == 0 {
			driver.Start()
		} else {
			loop.Step(float64(i) * step)
		}
		if err := surf.Err(); err != nil {
			return res, fmt.Errorf("export: frame %d: %w", i, err)
		}
		collector.Commit(driver.Stats())
		if svg != nil {
			svg.EndFrame()
		}
		img := surf.Image()
		if anim != nil {
			anim.Add(img)
		}
		if pngs != nil {
			if err := pngs.Err(); err != nil {
				return res, err
			}
			name := filepath.Join(opts.OutDir, fmt.Sprintf("frame_%04d.png", i))
			pngs.Write(name, img)
			res.PNGs = append(res.PNGs, name)
		}
		res.Frames++
		log.Debug().Int("frame", i).Int("live", driver.Stats().Live).Msg("frame rendered")
	}

	if pngs != nil {
		if err := pngs.Close(); err != nil {
			return res, err
		}
	}
	if anim != nil {
		res.GIF = filepath.Join(opts.OutDir, "rain.gif")
		if err := writeFile(res.GIF, anim.Encode); err != nil {
			return res, err
		}
	}
	if svg != nil {
		res.SVG = filepath.Join(opts.OutDir, "rain.svg")
		err := writeFile(res.SVG, func(f io.Writer) error {
			_, err := svg.WriteTo(f)
			return err
		})
		if err != nil {
			return res, err
		}
	}

	res.Elapsed = time.Since(start)
	res.Stats = driver.Stats()
	res.Metrics = make(map[string]float64)
	for _, m := range collector.Metrics() {
		res.Metrics[m.Name()] = m.Value()
	}
	log.Info().Int("frames", res.Frames).Dur("elapsed", res.Elapsed).
		Int("bolts", res.Stats.Spawned).Msg("export finished")
	return res, nil
}

func writeFile(name string, encode func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("export: encode %s: %w", filepath.Base(name), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
