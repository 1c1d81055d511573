package tft

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/tft/bitmap"
	"github.com/bodgit/tft/logo"
	"github.com/bodgit/tft/manifest"
)

func encodePNG(m image.Image) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := png.Encode(b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// DumpImages decodes every record in binFile and writes each as a PNG in
// outDir. When manifestFile is not empty the PNGs are named after the
// source images it lists, otherwise they are numbered.
func (g *Generator) DumpImages(binFile, manifestFile, outDir string) error {
	f, err := os.Open(binFile)
	if err != nil {
		return err
	}
	defer f.Close()

	images, err := bitmap.DecodeAll(f, g.config.Width, g.config.Height)
	if err != nil {
		return fmt.Errorf("%s: %w", binFile, err)
	}

	var names []string
	if manifestFile != "" {
		b, err := os.ReadFile(manifestFile)
		if err != nil {
			return err
		}
		var l manifest.List
		if err := l.UnmarshalText(b); err != nil {
			return fmt.Errorf("%s: %w", manifestFile, err)
		}
		if l.Length() != len(images) {
			return fmt.Errorf("%s lists %d names but %s holds %d images", manifestFile, l.Length(), binFile, len(images))
		}
		names = l.Names
	}

	// Sources differing only by extension would collide, those are numbered
	pngNames := make([]string, len(images))
	count := make(map[string]int)
	for i := range pngNames {
		pngNames[i] = fmt.Sprintf("%03d.png", i)
		if names != nil {
			pngNames[i] = strings.TrimSuffix(filepath.Base(names[i]), filepath.Ext(names[i])) + ".png"
		}
		count[pngNames[i]]++
	}

	outputs := make([]output, 0, len(images))
	for i, m := range images {
		name := pngNames[i]
		if count[name] > 1 {
			name = fmt.Sprintf("%03d.png", i)
		}

		b, err := encodePNG(m)
		if err != nil {
			return err
		}
		outputs = append(outputs, output{filepath.Join(outDir, name), b})
		g.logger.Printf("Decoded image %d as \"%s\"\n", i, name)
	}

	return writeFiles(outputs...)
}

// DumpLogo decodes binFile and writes it as a PNG to out.
func (g *Generator) DumpLogo(binFile, out string) error {
	f, err := os.Open(binFile)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := logo.Decode(f, g.config.Width, g.config.Height, g.config.LogoColors)
	if err != nil {
		return fmt.Errorf("%s: %w", binFile, err)
	}

	b, err := encodePNG(m)
	if err != nil {
		return err
	}

	return writeFiles(output{out, b})
}
