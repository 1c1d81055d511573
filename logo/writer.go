package logo

import (
	"image"
	"io"

	"github.com/bodgit/tft/rgb565"
)

type encoder struct {
	w        io.Writer
	boundary int
}

func (e *encoder) encode(m *image.Paletted) error {
	b := m.Bounds()

	pix := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		for _, idx := range m.Pix[i : i+b.Dx()] {
			if int(idx) >= len(m.Palette) {
				return errBadIndex
			}
			pix = append(pix, idx)
		}
	}

	runs, err := Runs(pix, e.boundary)
	if err != nil {
		return err
	}

	out := rgb565.AppendPalette(make([]byte, 0, len(m.Palette)*rgb565.Size+len(runs)*2), m.Palette)
	for _, r := range runs {
		out = append(out, r.Color, r.Length)
	}

	_, err = e.w.Write(out)
	return err
}

// Encode writes m to w. boundary is the number of pixels in each chunk the
// display is fed at once, normally the width multiplied by the number of
// lines per transfer.
func Encode(w io.Writer, m *image.Paletted, boundary int) error {
	if len(m.Palette) == 0 || len(m.Palette) > 256 {
		return errBadPalette
	}

	e := encoder{w: w, boundary: boundary}

	return e.encode(m)
}
