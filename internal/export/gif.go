package export

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/digirain/internal/rain"
)

// Palette returns a 256 color ramp from black through green to white, the
// only hues the effect draws, mapped through tint.
func Palette(tint func(rain.RGBA) rain.RGBA) color.Palette {
	if tint == nil {
		tint = func(c rain.RGBA) rain.RGBA { return c }
	}
	pal := make(color.Palette, 0, 256)
	for i := range 256 {
		var c rain.RGBA
		if i < 160 {
			c = rain.Black.Lerp(rain.Green, float64(i)/159)
		} else {
			c = rain.Green.Lerp(rain.White, float64(i-159)/96)
		}
		t := tint(c)
		pal = append(pal, color.RGBA{R: to8(t.R), G: to8(t.G), B: to8(t.B), A: 255})
	}
	return pal
}

// GIFWriter accumulates paletted frames for an animated GIF.
type GIFWriter struct {
	pal   color.Palette
	scale float64
	delay int
	anim  gif.GIF
}

// NewGIFWriter creates a writer for frames shown at fps, scaled by scale
// (1 keeps the source size).
func NewGIFWriter(pal color.Palette, fps int, scale float64) *GIFWriter {
	delay := 2
	if fps > 0 {
		delay = max(1, 100/fps)
	}
	if scale <= 0 {
		scale = 1
	}
	return &GIFWriter{pal: pal, scale: scale, delay: delay}
}

// Add quantizes img to the palette and appends it.
func (g *GIFWriter) Add(img image.Image) {
	b := img.Bounds()
	src := img
	if g.scale != 1 {
		w := max(1, int(float64(b.Dx())*g.scale))
		h := max(1, int(float64(b.Dy())*g.scale))
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		src = dst
	}
	sb := src.Bounds()
	frame := image.NewPaletted(image.Rect(0, 0, sb.Dx(), sb.Dy()), g.pal)
	xdraw.Draw(frame, frame.Bounds(), src, sb.Min, xdraw.Src)
	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

func (g *GIFWriter) Len() int { return len(g.anim.Image) }

func (g *GIFWriter) Encode(w io.Writer) error {
	g.anim.LoopCount = 0
	return gif.EncodeAll(w, &g.anim)
}
