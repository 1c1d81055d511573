package tft

import (
	"context"
	"image"
	"io"

	"github.com/bodgit/tft/logo"
)

func (g *Generator) logoFormat() format {
	return format{
		name:   "logo",
		colors: g.config.LogoColors,
		encode: func(w io.Writer, m *image.Paletted) error {
			return logo.Encode(w, m, g.config.LineBoundary())
		},
	}
}

// Logo encodes file as the contents of logo.bin.
func (g *Generator) Logo(ctx context.Context, file string) ([]byte, error) {
	records, err := g.encodeAll(ctx, []string{file}, g.logoFormat())
	if err != nil {
		return nil, err
	}
	return records[0], nil
}

// WriteLogo encodes file and writes the result to out.
func (g *Generator) WriteLogo(ctx context.Context, file, out string) error {
	b, err := g.Logo(ctx, file)
	if err != nil {
		return err
	}
	g.logger.Printf("Encoded logo, %d bytes\n", len(b))

	return writeFiles(output{out, b})
}
