// Package raster draws the rain effect into an in-memory RGBA image using
// the gg 2D graphics library.
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/san-kum/digirain/internal/rain"
)

// Options configures a Surface.
type Options struct {
	// FallbackFont is a TTF/OTF file consulted for glyphs Go Mono lacks,
	// typically a CJK font. Glyphs no font has are drawn as digits.
	FallbackFont string
	// Tint maps effect colors before drawing. Nil draws them unchanged.
	Tint func(rain.RGBA) rain.RGBA
}

// Surface is a rain.Surface backed by a gg context. Drawing errors do not
// interrupt a frame; the first one is kept and reported by Err.
type Surface struct {
	ctx     *gg.Context
	sources []*text.FontSource
	faces   map[float64]text.Face
	align   rain.Align
	tint    func(rain.RGBA) rain.RGBA
	err     error
}

// New creates a width x height surface cleared to opaque black.
func New(width, height int, opts Options) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	mono, err := text.NewFontSource(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: load go mono: %w", err)
	}
	s := &Surface{
		ctx:     gg.NewContext(width, height),
		sources: []*text.FontSource{mono},
		faces:   make(map[float64]text.Face),
		tint:    opts.Tint,
	}
	if opts.FallbackFont != "" {
		fb, err := text.NewFontSourceFromFile(opts.FallbackFont)
		if err != nil {
			return nil, fmt.Errorf("raster: load fallback font: %w", err)
		}
		s.sources = append(s.sources, fb)
	}
	if s.tint == nil {
		s.tint = func(c rain.RGBA) rain.RGBA { return c }
	}
	s.Clear(rain.Black)
	return s, nil
}

func (s *Surface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

func (s *Surface) rgba(c rain.RGBA) gg.RGBA {
	t := s.tint(c)
	return gg.RGBA{R: t.R, G: t.G, B: t.B, A: t.A}
}

func (s *Surface) face(size float64) (text.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	faces := make([]text.Face, 0, len(s.sources))
	for _, src := range s.sources {
		faces = append(faces, src.Face(size))
	}
	var f text.Face = faces[0]
	if len(faces) > 1 {
		mf, err := text.NewMultiFace(faces...)
		if err != nil {
			return nil, err
		}
		f = mf
	}
	s.faces[size] = f
	return f, nil
}

// Clear fills the whole image with c.
func (s *Surface) Clear(c rain.RGBA) {
	s.ctx.ClearWithColor(s.rgba(c))
}

func (s *Surface) FillRect(x, y, w, h float64, c rain.RGBA) {
	col := s.rgba(c)
	s.ctx.SetRGBA(col.R, col.G, col.B, col.A)
	s.ctx.DrawRectangle(x, y, w, h)
	s.keep(s.ctx.Fill())
}

func (s *Surface) SetFont(f rain.Font, a rain.Align) {
	s.align = a
	face, err := s.face(f.Size)
	if err != nil {
		s.keep(fmt.Errorf("raster: font face: %w", err))
		return
	}
	s.ctx.SetFont(face)
}

func (s *Surface) DrawGlyph(op rain.GlyphOp) {
	g := op.Glyph
	if f := s.ctx.Font(); f != nil && !f.HasGlyph(g) {
		g = '0' + g%10
	}
	ax := 0.0
	switch s.align {
	case rain.AlignCenter:
		ax = 0.5
	case rain.AlignRight:
		ax = 1
	}
	col := s.rgba(op.Color)
	s.ctx.SetRGBA(col.R, col.G, col.B, col.A)
	s.ctx.DrawStringAnchored(string(g), op.X, op.Y, ax, 0)
}

func (s *Surface) StrokePath(op rain.StrokeOp) {
	if len(op.Path) < 2 {
		return
	}
	brush := gg.NewLinearGradientBrush(op.From.X, op.From.Y, op.To.X, op.To.Y)
	for _, st := range op.Stops {
		brush.AddColorStop(st.Offset, s.rgba(st.Color))
	}
	s.ctx.SetStrokeBrush(brush)
	s.ctx.SetLineWidth(op.Width)
	s.ctx.MoveTo(op.Path[0].X, op.Path[0].Y)
	for _, p := range op.Path[1:] {
		s.ctx.LineTo(p.X, p.Y)
	}
	s.keep(s.ctx.Stroke())
}

// Resize changes the image size. The content is cleared to black.
func (s *Surface) Resize(width, height int) error {
	if err := s.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("raster: resize: %w", err)
	}
	s.Clear(rain.Black)
	return nil
}

func (s *Surface) Width() int  { return s.ctx.Width() }
func (s *Surface) Height() int { return s.ctx.Height() }

// Image returns a copy of the current frame.
func (s *Surface) Image() image.Image {
	s.keep(s.ctx.FlushGPU())
	return s.ctx.Image()
}

func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.ctx.FlushGPU(); err != nil {
		return err
	}
	return s.ctx.EncodePNG(w)
}

// Err returns the first drawing error since the last call.
func (s *Surface) Err() error {
	err := s.err
	s.err = nil
	return err
}

func (s *Surface) Close() error {
	return errors.Join(s.Err(), s.ctx.Close())
}
