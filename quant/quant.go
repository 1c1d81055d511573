/*
Package quant reduces an image to a small palette of representative colors
and an index per pixel, the input of every device bitmap format.
*/
package quant

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/esimov/colorquant"
)

var (
	// ErrNoColors is returned when a quantizer produces an empty palette.
	ErrNoColors = errors.New("quant: empty palette")
	// ErrTooManyColors is returned when a quantizer produces more colors
	// than were asked for.
	ErrTooManyColors = errors.New("quant: too many colors")
)

// Quantizer maps m onto at most n colors. The returned image has the same
// bounds as m and a palette of at most n entries.
type Quantizer interface {
	Quantize(m image.Image, n int) (*image.Paletted, error)
}

// MedianCut quantizes by recursive median cut of the color space without
// dithering.
type MedianCut struct{}

// Quantize implements the Quantizer interface.
func (MedianCut) Quantize(m image.Image, n int) (*image.Paletted, error) {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, n), m)
	if len(p) == 0 {
		return nil, ErrNoColors
	}
	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm, nil
}

var floydSteinberg = [][]float32{
	{0, 0, 7.0 / 16.0},
	{3.0 / 16.0, 5.0 / 16.0, 1.0 / 16.0},
}

// Colorquant quantizes with the median cut implementation of
// github.com/esimov/colorquant, optionally applying Floyd-Steinberg error
// diffusion.
type Colorquant struct {
	Dither bool
}

// Quantize implements the Quantizer interface.
func (q Colorquant) Quantize(m image.Image, n int) (*image.Paletted, error) {
	b := m.Bounds()

	pm, err := index(colorquant.NoDither.Quantize(m, image.NewPaletted(b, palette.Plan9), n, false, true), n)
	if err != nil || !q.Dither {
		return pm, err
	}

	// Error is diffused against the destination palette, so it must
	// already be the n colors chosen above
	dst := image.NewPaletted(b, pm.Palette)
	out := colorquant.Dither{Filter: floydSteinberg}.Quantize(m, dst, n, true, true)

	return index(out, n)
}

// index rebuilds m as a paletted image whose palette holds the distinct
// colors of m in the order they are first seen.
func index(m image.Image, n int) (*image.Paletted, error) {
	b := m.Bounds()
	seen := make(map[color.RGBA]uint8)
	var p color.Palette

	pix := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
			i, ok := seen[c]
			if !ok {
				if len(p) == n {
					return nil, fmt.Errorf("%w: more than %d", ErrTooManyColors, n)
				}
				i = uint8(len(p))
				seen[c] = i
				p = append(p, c)
			}
			pix = append(pix, i)
		}
	}
	if len(p) == 0 {
		return nil, ErrNoColors
	}

	return &image.Paletted{
		Pix:     pix,
		Stride:  b.Dx(),
		Rect:    b,
		Palette: p,
	}, nil
}

// Fit pads the palette of pm with black to exactly n entries and moves its
// origin to (0, 0). A palette that is empty or larger than n is an error.
func Fit(pm *image.Paletted, n int) error {
	switch {
	case len(pm.Palette) == 0:
		return ErrNoColors
	case len(pm.Palette) > n:
		return fmt.Errorf("%w: got %d, want %d", ErrTooManyColors, len(pm.Palette), n)
	}

	for len(pm.Palette) < n {
		pm.Palette = append(pm.Palette, color.RGBA{0, 0, 0, 0xff})
	}

	if pm.Rect.Min != (image.Point{}) {
		pm.Rect = pm.Rect.Sub(pm.Rect.Min)
	}

	return nil
}

var quantizers = map[string]Quantizer{
	"mediancut":         MedianCut{},
	"colorquant":        Colorquant{},
	"colorquant-dither": Colorquant{Dither: true},
}

// Names returns the names accepted by Parse, sorted.
func Names() []string {
	names := make([]string, 0, len(quantizers))
	for name := range quantizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse returns the quantizer registered under name.
func Parse(name string) (Quantizer, error) {
	q, ok := quantizers[name]
	if !ok {
		return nil, fmt.Errorf("quant: unknown quantizer %q", name)
	}
	return q, nil
}
