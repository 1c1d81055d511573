package bitmap

import (
	"bufio"
	"image"
	"io"

	"github.com/bodgit/tft/rgb565"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r      io.Reader
	width  int
	height int
}

func (d *decoder) decode() (*image.Paletted, error) {
	p, err := rgb565.DecodePalette(d.r, Colors)
	if err != nil {
		return nil, err
	}

	tmp := make([]byte, PixelBytes(d.width, d.height))
	if err := readFull(d.r, tmp); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, errNotEnough
	}

	return &image.Paletted{
		Pix:     Unpack(tmp),
		Stride:  d.width,
		Rect:    image.Rect(0, 0, d.width, d.height),
		Palette: p,
	}, nil
}

// Decode reads a single width by height record from r.
func Decode(r io.Reader, width, height int) (*image.Paletted, error) {
	if !validDimensions(width, height) {
		return nil, errBadDimension
	}
	d := decoder{r: r, width: width, height: height}
	return d.decode()
}

// DecodeAll reads records from r until it is exhausted. A trailing partial
// record is an error.
func DecodeAll(r io.Reader, width, height int) ([]*image.Paletted, error) {
	if !validDimensions(width, height) {
		return nil, errBadDimension
	}

	br := bufio.NewReader(r)

	var images []*image.Paletted
	for {
		if _, err := br.Peek(1); err != nil {
			if err == io.EOF {
				return images, nil
			}
			return nil, err
		}

		d := decoder{r: br, width: width, height: height}
		m, err := d.decode()
		if err != nil {
			return nil, err
		}
		images = append(images, m)
	}
}
