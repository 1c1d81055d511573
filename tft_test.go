package tft

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/tft/bitmap"
	"github.com/bodgit/tft/logo"
	"github.com/bodgit/tft/rgb565"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, file string, w, h int, at func(x, y int) color.Color) {
	t.Helper()
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, at(x, y))
		}
	}
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func solid(c color.Color) func(int, int) color.Color {
	return func(int, int) color.Color { return c }
}

func stripes(x, _ int) color.Color {
	if x/10%2 == 0 {
		return color.RGBA{0xf8, 0x00, 0x00, 0xff}
	}
	return color.RGBA{0xff, 0xff, 0xff, 0xff}
}

func newGenerator(t *testing.T, options ...Option) *Generator {
	t.Helper()
	g, err := New(DefaultConfig(), nil, options...)
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	_, err := New(Config{}, nil)
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))

	_, err = New(DefaultConfig(), nil, WithFilter("box"))
	assert.Error(t, err)

	_, err = New(DefaultConfig(), nil, WithQuantizer("octree"))
	assert.Error(t, err)

	_, err = New(DefaultConfig(), nil, WithWorkers(0))
	assert.Error(t, err)

	g := newGenerator(t, WithFilter("lanczos3"), WithQuantizer("colorquant"), WithWorkers(2))
	assert.Equal(t, "images/320x240/4/3/60/lanczos3/colorquant", g.key(g.imageFormat()))
	assert.Equal(t, DefaultConfig(), g.Config())
}

func TestImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 400, 200, stripes)
	writePNG(t, filepath.Join(dir, "a.png"), 320, 240, solid(color.RGBA{0x00, 0x00, 0xf8, 0xff}))
	writePNG(t, filepath.Join(dir, ".hidden.png"), 8, 8, stripes)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	// Nearest neighbor keeps the stripes to exactly two colors
	g := newGenerator(t, WithFilter("nearest"))
	names, data, err := g.Images(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png", "b.png"}, names)
	require.Len(t, data, 2*(4*2+320*240/4))

	images, err := bitmap.DecodeAll(bytes.NewReader(data), 320, 240)
	require.NoError(t, err)
	require.Len(t, images, 2)

	// a.png fills the canvas with one color, the palette is padded with black
	assert.Equal(t, rgb565.FromRGB(0x00, 0x00, 0xf8), images[0].Palette[images[0].ColorIndexAt(0, 0)])

	// b.png is letterboxed, the top and bottom 40 rows are background
	b := images[1]
	bg := b.ColorIndexAt(0, 0)
	assert.Equal(t, rgb565.Color(0), b.Palette[bg])
	for y := 0; y < 240; y++ {
		if y >= 40 && y < 200 {
			continue
		}
		for x := 0; x < 320; x++ {
			require.Equal(t, bg, b.ColorIndexAt(x, y), "pixel (%d, %d)", x, y)
		}
	}
	assert.NotEqual(t, bg, b.ColorIndexAt(160, 120))
}

func TestWriteImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "one.png"), 32, 24, stripes)
	writePNG(t, filepath.Join(dir, "two.png"), 24, 32, stripes)

	out := t.TempDir()
	binFile := filepath.Join(out, "images.bin")
	jsFile := filepath.Join(out, "images.js")

	g := newGenerator(t)
	require.NoError(t, g.WriteImages(context.Background(), dir, binFile, jsFile))

	js, err := os.ReadFile(jsFile)
	require.NoError(t, err)
	assert.Equal(t, `const IMAGE_NAMES = ["one.png", "two.png"];`, string(js))

	info, err := os.Stat(binFile)
	require.NoError(t, err)
	assert.Equal(t, int64(2*g.Config().ImageBytes()), info.Size())

	// No temporary files left behind
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	dump := t.TempDir()
	require.NoError(t, g.DumpImages(binFile, jsFile, dump))
	for _, name := range []string{"one.png", "two.png"} {
		f, err := os.Open(filepath.Join(dump, name))
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 320, cfg.Width)
		assert.Equal(t, 240, cfg.Height)
	}

	numbered := t.TempDir()
	require.NoError(t, g.DumpImages(binFile, "", numbered))
	_, err = os.Stat(filepath.Join(numbered, "001.png"))
	assert.NoError(t, err)
}

func TestDumpImagesSameBaseName(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 32, 24, stripes)
	writePNG(t, filepath.Join(dir, "b.png"), 32, 24, stripes)

	// Decoding sniffs the content, so the extension alone differs
	writePNG(t, filepath.Join(dir, "a.jpg"), 32, 24, solid(color.White))

	out := t.TempDir()
	binFile := filepath.Join(out, "images.bin")
	jsFile := filepath.Join(out, "images.js")

	g := newGenerator(t)
	require.NoError(t, g.WriteImages(context.Background(), dir, binFile, jsFile))

	dump := t.TempDir()
	require.NoError(t, g.DumpImages(binFile, jsFile, dump))

	entries, err := os.ReadDir(dump)
	require.NoError(t, err)
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}

	// a.jpg and a.png sort first and would both become a.png
	assert.Equal(t, []string{"000.png", "001.png", "b.png"}, got)
}

func TestWriteImagesDecodeError(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "good.png"), 32, 24, stripes)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644))

	out := t.TempDir()
	binFile := filepath.Join(out, "images.bin")
	jsFile := filepath.Join(out, "images.js")

	g := newGenerator(t)
	err := g.WriteImages(context.Background(), dir, binFile, jsFile)

	var de *DecodeError
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, filepath.Join(dir, "notes.txt"), de.File)
	assert.Contains(t, err.Error(), "notes.txt")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// tooManyColors returns one color more than asked for
type tooManyColors struct{}

func (tooManyColors) Quantize(m image.Image, n int) (*image.Paletted, error) {
	p := make(color.Palette, n+1)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	return image.NewPaletted(m.Bounds(), p), nil
}

func TestQuantizeError(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 32, 24, stripes)

	g := newGenerator(t)
	g.quantizer = tooManyColors{}

	_, _, err := g.Images(context.Background(), dir)

	var qe *QuantizeError
	require.True(t, errors.As(err, &qe), "got %v", err)
	assert.Equal(t, 4, qe.Want)
	assert.Equal(t, 5, qe.Got)
}

// failingQuantizer never produces a palette
type failingQuantizer struct{}

func (failingQuantizer) Quantize(image.Image, int) (*image.Paletted, error) {
	return nil, errors.New("no palette")
}

func TestQuantizeErrorUnknownCount(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 32, 24, stripes)

	g := newGenerator(t)
	g.quantizer = failingQuantizer{}

	_, _, err := g.Images(context.Background(), dir)

	var qe *QuantizeError
	require.True(t, errors.As(err, &qe), "got %v", err)
	assert.Equal(t, 4, qe.Want)
	assert.Equal(t, -1, qe.Got)
	assert.Contains(t, err.Error(), "want 4 colors: no palette")
	assert.NotContains(t, err.Error(), ", got ")
}

func gradient(x, y int) color.Color {
	return color.RGBA{uint8(x * 255 / 319), uint8(y * 255 / 239), uint8((x + y) * 255 / 558), 0xff}
}

func TestDitheredQuantizer(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "g.png")
	writePNG(t, src, 320, 240, gradient)

	g := newGenerator(t, WithQuantizer("colorquant-dither"))

	names, data, err := g.Images(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"g.png"}, names)
	assert.Len(t, data, g.Config().ImageBytes())

	b, err := g.Logo(context.Background(), src)
	require.NoError(t, err)

	m, err := logo.Decode(bytes.NewReader(b), 320, 240, 3)
	require.NoError(t, err)
	assert.Len(t, m.Palette, 3)
}

func TestImagesOrder(t *testing.T) {
	dir := t.TempDir()

	var want []rgb565.Color
	for i := 0; i < 12; i++ {
		c := color.RGBA{uint8(i * 16), uint8(255 - i*20), uint8(i * 8), 0xff}
		want = append(want, rgb565.FromRGB(c.R, c.G, c.B))
		writePNG(t, filepath.Join(dir, fmt.Sprintf("%02d.png", i)), 320, 240, solid(c))
	}

	g := newGenerator(t, WithWorkers(4))
	names, data, err := g.Images(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, names, 12)

	images, err := bitmap.DecodeAll(bytes.NewReader(data), 320, 240)
	require.NoError(t, err)
	for i, m := range images {
		assert.Equal(t, fmt.Sprintf("%02d.png", i), names[i])
		assert.Equal(t, want[i], m.Palette[m.ColorIndexAt(100, 100)], "image %d", i)
	}
}

func TestImagesCancelled(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 32, 24, stripes)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newGenerator(t).Images(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogo(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	writePNG(t, src, 320, 240, solid(color.RGBA{0xff, 0xff, 0xff, 0xff}))

	out := filepath.Join(dir, "logo.bin")
	g := newGenerator(t)
	require.NoError(t, g.WriteLogo(context.Background(), src, out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	// Four chunks of 19200 pixels, each 75 runs of 255 and a run of 75
	require.Len(t, b, 3*2+4*76*2)
	assert.Equal(t, []byte{0xff, 0xff}, b[:2])

	var sum int
	for i := 6; i < len(b); i += 2 {
		assert.Equal(t, byte(0), b[i])
		sum += int(b[i+1])
	}
	assert.Equal(t, 320*240, sum)

	m, err := logo.Decode(bytes.NewReader(b), 320, 240, 3)
	require.NoError(t, err)
	assert.Equal(t, rgb565.Color(0xffff), m.Palette[m.ColorIndexAt(319, 239)])

	require.NoError(t, g.DumpLogo(out, filepath.Join(dir, "dump.png")))
	_, err = os.Stat(filepath.Join(dir, "dump.png"))
	assert.NoError(t, err)
}

func TestLogoDecodeError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(src, []byte("GIF89a but not really"), 0644))

	out := filepath.Join(dir, "logo.bin")
	err := newGenerator(t).WriteLogo(context.Background(), src, out)

	var de *DecodeError
	require.True(t, errors.As(err, &de), "got %v", err)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))

	err = newGenerator(t).WriteLogo(context.Background(), filepath.Join(dir, "missing.png"), out)
	assert.True(t, errors.As(err, &de), "got %v", err)
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 32, 24, stripes)
	writePNG(t, filepath.Join(dir, "b.png"), 24, 32, stripes)

	cache, err := NewCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	logs := new(bytes.Buffer)
	g, err := New(DefaultConfig(), log.New(logs, "", 0), WithCache(cache))
	require.NoError(t, err)

	_, first, err := g.Images(context.Background(), dir)
	require.NoError(t, err)

	n, err := cache.Length()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NotContains(t, logs.String(), "Cached")

	logs.Reset()
	_, second, err := g.Images(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, strings.Count(logs.String(), "Cached"))

	// A different encoding is cached separately
	_, err = g.Logo(context.Background(), filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	n, err = cache.Length()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, cache.Clear())
	n, err = cache.Length()
	require.NoError(t, err)
	assert.Zero(t, n)
}
