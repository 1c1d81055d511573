package logo

import (
	"bufio"
	"image"
	"io"

	"github.com/bodgit/tft/rgb565"
)

type decoder struct {
	r io.Reader

	width  int
	height int
	colors int
}

func (d *decoder) decode() (*image.Paletted, error) {
	p, err := rgb565.DecodePalette(d.r, d.colors)
	if err != nil {
		return nil, err
	}

	m := image.NewPaletted(image.Rect(0, 0, d.width, d.height), p)

	br := bufio.NewReader(d.r)
	var n int
	var tmp [2]byte
	for n < len(m.Pix) {
		if _, err := io.ReadFull(br, tmp[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, errNotEnough
			}
			return nil, err
		}

		r := Run{Color: tmp[0], Length: tmp[1]}
		switch {
		case int(r.Color) >= d.colors:
			return nil, errBadIndex
		case r.Length == 0:
			return nil, errBadRun
		case n+int(r.Length) > len(m.Pix):
			return nil, errTooMuch
		}

		for i := 0; i < int(r.Length); i++ {
			m.Pix[n] = r.Color
			n++
		}
	}

	if _, err := br.ReadByte(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, errTooMuch
	}

	return m, nil
}

// Decode reads a width by height logo with a palette of colors entries from
// r. r must be exhausted once every pixel has been read.
func Decode(r io.Reader, width, height, colors int) (*image.Paletted, error) {
	if colors <= 0 || colors > 256 {
		return nil, errBadPalette
	}
	if width <= 0 || height <= 0 {
		return nil, errEmpty
	}

	d := decoder{r: r, width: width, height: height, colors: colors}

	return d.decode()
}
