package tft

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bodgit/tft/bitmap"
	"github.com/bodgit/tft/manifest"
)

// listImages returns the names of the regular files in dir, sorted.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		// Ignore any hidden files, otherwise we end up fighting with things like Spotlight, etc.
		if e.Name()[0] == '.' {
			continue
		}
		if !e.Type().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}

func (g *Generator) imageFormat() format {
	return format{
		name:   "images",
		colors: g.config.Colors,
		encode: bitmap.Encode,
	}
}

// Images encodes every image in dir, sorted by name, and returns the names
// along with the concatenated records of images.bin.
func (g *Generator) Images(ctx context.Context, dir string) ([]string, []byte, error) {
	names, err := listImages(dir)
	if err != nil {
		return nil, nil, err
	}

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}

	records, err := g.encodeAll(ctx, files, g.imageFormat())
	if err != nil {
		return nil, nil, err
	}

	b := new(bytes.Buffer)
	b.Grow(len(records) * g.config.ImageBytes())
	for i, r := range records {
		if len(r) != g.config.ImageBytes() {
			return nil, nil, fmt.Errorf("%s: record is %d bytes, want %d", files[i], len(r), g.config.ImageBytes())
		}
		b.Write(r)
	}

	g.logger.Printf("Encoded %d images, %d bytes\n", len(names), b.Len())

	return names, b.Bytes(), nil
}

// WriteImages encodes every image in dir and writes binFile and
// manifestFile. Neither file is touched unless every image encodes.
func (g *Generator) WriteImages(ctx context.Context, dir, binFile, manifestFile string) error {
	names, data, err := g.Images(ctx, dir)
	if err != nil {
		return err
	}

	list, err := manifest.New(names).MarshalText()
	if err != nil {
		return err
	}

	return writeFiles(output{binFile, data}, output{manifestFile, list})
}
