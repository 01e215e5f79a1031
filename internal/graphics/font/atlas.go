// Package font bakes a glyph atlas for screen-space text.
package font

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	firstRune = ' '
	lastRune  = '~'
	atlasW    = 512
	padding   = 1
)

// Glyph is one character's placement in the atlas and its metrics, in pixels.
type Glyph struct {
	X, Y          int // top-left in the atlas
	Width, Height int
	// BearingX is the offset from the pen to the bitmap's left edge,
	// BearingY from the baseline up to the bitmap's top edge.
	BearingX, BearingY int
	Advance            float32
}

// Atlas holds the printable ASCII glyphs of one face baked into an alpha image.
type Atlas struct {
	Image  *image.Alpha
	Glyphs map[rune]Glyph
	// Ascent and LineHeight are the face metrics in pixels.
	Ascent     float32
	LineHeight float32
}

// Bake rasterizes the Go Regular font at the given pixel size.
func Bake(pixels float64) (*Atlas, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: pixels, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer face.Close()
	return bakeFace(face), nil
}

func bakeFace(face font.Face) *Atlas {
	type baked struct {
		r     rune
		dr    image.Rectangle
		mask  image.Image
		maskp image.Point
		adv   fixed.Int26_6
	}
	var glyphs []baked
	for r := rune(firstRune); r <= lastRune; r++ {
		dr, mask, maskp, adv, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, baked{r, dr, mask, maskp, adv})
	}

	// shelf packing: place glyphs left to right, start a new row when full
	places := make([]image.Point, len(glyphs))
	x, y, rowH := 0, 0, 0
	for i, g := range glyphs {
		w, h := g.dr.Dx(), g.dr.Dy()
		if x+w > atlasW {
			x, y, rowH = 0, y+rowH+padding, 0
		}
		places[i] = image.Pt(x, y)
		x += w + padding
		rowH = max(rowH, h)
	}

	img := image.NewAlpha(image.Rect(0, 0, atlasW, max(nextPow2(y+rowH), 1)))
	m := face.Metrics()
	a := &Atlas{
		Image:      img,
		Glyphs:     make(map[rune]Glyph, len(glyphs)),
		Ascent:     float32(m.Ascent.Round()),
		LineHeight: float32(m.Height.Round()),
	}
	for i, g := range glyphs {
		p := places[i]
		w, h := g.dr.Dx(), g.dr.Dy()
		if w > 0 && h > 0 && g.mask != nil {
			draw.Draw(img, image.Rect(p.X, p.Y, p.X+w, p.Y+h), g.mask, g.maskp, draw.Src)
		}
		a.Glyphs[g.r] = Glyph{
			X: p.X, Y: p.Y,
			Width: w, Height: h,
			BearingX: g.dr.Min.X,
			BearingY: -g.dr.Min.Y,
			Advance:  float32(g.adv) / 64,
		}
	}
	return a
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// glyph returns the glyph for r, falling back to '?' for runes outside the atlas.
func (a *Atlas) glyph(r rune) (Glyph, bool) {
	if g, ok := a.Glyphs[r]; ok {
		return g, true
	}
	g, ok := a.Glyphs['?']
	return g, ok
}

// Measure returns the size text occupies at scale: the sum of advances by the
// line height.
func (a *Atlas) Measure(text string, scale float32) (w, h float32) {
	for _, r := range text {
		if g, ok := a.glyph(r); ok {
			w += g.Advance * scale
		}
	}
	return w, a.LineHeight * scale
}

// Quads appends two triangles per visible glyph of text, as x, y, u, v
// vertices. (x, y) is the top-left of the line box.
func (a *Atlas) Quads(dst []float32, text string, x, y, scale float32) []float32 {
	iw := float32(a.Image.Bounds().Dx())
	ih := float32(a.Image.Bounds().Dy())
	baseline := y + a.Ascent*scale
	for _, r := range text {
		g, ok := a.glyph(r)
		if !ok {
			continue
		}
		if g.Width > 0 && g.Height > 0 {
			x0 := x + float32(g.BearingX)*scale
			y0 := baseline - float32(g.BearingY)*scale
			x1 := x0 + float32(g.Width)*scale
			y1 := y0 + float32(g.Height)*scale
			u0, v0 := float32(g.X)/iw, float32(g.Y)/ih
			u1, v1 := float32(g.X+g.Width)/iw, float32(g.Y+g.Height)/ih
			dst = append(dst,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += g.Advance * scale
	}
	return dst
}
