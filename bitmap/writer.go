package bitmap

import (
	"image"
	"io"

	"github.com/bodgit/tft/rgb565"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m *image.Paletted) error {
	b := m.Bounds()

	// Collect the indices in raster order regardless of stride
	pix := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		pix = append(pix, m.Pix[i:i+b.Dx()]...)
	}

	packed, err := Pack(pix)
	if err != nil {
		return err
	}

	if err := rgb565.EncodePalette(e.w, m.Palette); err != nil {
		return err
	}

	_, err = e.w.Write(packed)
	return err
}

// Encode writes m to w as a single record. m must have a palette of exactly
// Colors entries.
func Encode(w io.Writer, m *image.Paletted) error {
	b := m.Bounds()
	if !validDimensions(b.Dx(), b.Dy()) {
		return errBadDimension
	}
	if len(m.Palette) != Colors {
		return errBadPalette
	}

	e := encoder{w: w}

	return e.encode(m)
}
