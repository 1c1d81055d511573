package tft

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/tft/letterbox"
	"github.com/bodgit/tft/quant"
)

// format describes how one kind of asset is encoded.
type format struct {
	name   string
	colors int
	encode func(io.Writer, *image.Paletted) error
}

// key identifies every parameter that changes the encoded bytes of f.
func (g *Generator) key(f format) string {
	return fmt.Sprintf("%s/%s/%s/%s", f.name, g.config, g.filterName, g.quantizerName)
}

// paletted decodes file, letterboxes it onto the display canvas and
// quantizes it to exactly f.colors colors.
func (g *Generator) paletted(file string, b []byte, f format) (*image.Paletted, error) {
	m, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &DecodeError{File: file, Err: err}
	}

	canvas := g.compositor.Compose(m)

	pm, err := g.quantizer.Quantize(canvas, f.colors)
	if err != nil {
		return nil, &QuantizeError{File: file, Want: f.colors, Got: -1, Err: err}
	}

	got := len(pm.Palette)
	if err := quant.Fit(pm, f.colors); err != nil {
		return nil, &QuantizeError{File: file, Want: f.colors, Got: got, Err: err}
	}

	if sb := m.Bounds(); !sb.Empty() {
		r := letterbox.Placement(sb.Dx(), sb.Dy(), g.config.Width, g.config.Height)
		g.logger.Printf("Encoded \"%s\" (%dx%d -> %dx%d at %d,%d, %d colors)\n", filepath.Base(file), sb.Dx(), sb.Dy(), r.Dx(), r.Dy(), r.Min.X, r.Min.Y, got)
	}

	return pm, nil
}

// encodeFile returns the encoded record for file, consulting the cache if
// there is one.
func (g *Generator) encodeFile(file string, f format) ([]byte, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, &DecodeError{File: file, Err: err}
	}

	var sha, key string
	if g.cache != nil {
		sha = fmt.Sprintf("%X", sha1.Sum(b))
		key = g.key(f)

		data, err := g.cache.Find(sha, key)
		if err != nil {
			return nil, err
		}
		if data != nil {
			g.logger.Printf("Cached \"%s\" (%s)\n", filepath.Base(file), sha)
			return data, nil
		}
	}

	pm, err := g.paletted(file, b, f)
	if err != nil {
		return nil, err
	}

	out := new(bytes.Buffer)
	if err := f.encode(out, pm); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	if g.cache != nil {
		if err := g.cache.Add(sha, key, out.Bytes()); err != nil {
			return nil, err
		}
	}

	return out.Bytes(), nil
}
