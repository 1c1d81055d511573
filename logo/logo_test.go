package logo

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/bodgit/tft/rgb565"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = color.Palette{
	rgb565.Color(0x0000),
	rgb565.Color(0xffff),
	rgb565.Color(0xf800),
}

func TestRuns(t *testing.T) {
	tests := []struct {
		name     string
		pix      []uint8
		boundary int
		want     []Run
	}{
		{"single pixel", []uint8{2}, 4, []Run{{2, 1}}},
		{"color change", []uint8{0, 0, 1, 1, 1}, 100, []Run{{0, 2}, {1, 3}}},
		{"boundary splits same color", []uint8{1, 1, 1, 1, 1, 1}, 4, []Run{{1, 4}, {1, 2}}},
		{"boundary and color change together", []uint8{0, 0, 1, 1}, 2, []Run{{0, 2}, {1, 2}}},
		{"boundary of one", []uint8{0, 0, 0}, 1, []Run{{0, 1}, {0, 1}, {0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Runs(tt.pix, tt.boundary)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunsMaxRun(t *testing.T) {
	pix := make([]uint8, 600)
	runs, err := Runs(pix, 1000)
	require.NoError(t, err)
	assert.Equal(t, []Run{{0, 255}, {0, 255}, {0, 90}}, runs)
}

func TestRunsErrors(t *testing.T) {
	_, err := Runs(nil, 10)
	assert.Equal(t, errEmpty, err)

	_, err = Runs([]uint8{0}, 0)
	assert.Equal(t, errBadBoundary, err)
}

// checkRuns verifies the properties every encoding must have: it expands
// back to the input, no run is longer than MaxRun and no run crosses a
// multiple of boundary.
func checkRuns(t *testing.T, pix []uint8, boundary int, runs []Run) {
	t.Helper()

	require.Equal(t, pix, Expand(runs))

	var start int
	for _, r := range runs {
		require.NotZero(t, r.Length)
		require.LessOrEqual(t, int(r.Length), MaxRun)
		end := start + int(r.Length)
		require.Equal(t, start/boundary, (end-1)/boundary, "run [%d, %d) crosses a boundary", start, end)
		start = end
	}
	require.Equal(t, len(pix), start)
}

func TestRunsProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, boundary := range []int{1, 3, 7, 255, 256, 1000, 19200} {
		for _, change := range []int{1, 10, 100, 1000} {
			pix := make([]uint8, 5000)
			var c uint8
			for i := range pix {
				if r.Intn(change) == 0 {
					c = uint8(r.Intn(3))
				}
				pix[i] = c
			}

			runs, err := Runs(pix, boundary)
			require.NoError(t, err)
			checkRuns(t, pix, boundary, runs)
		}
	}
}

func TestUniformLogo(t *testing.T) {
	const (
		width    = 320
		height   = 240
		boundary = 60 * width
	)

	m := image.NewPaletted(image.Rect(0, 0, width, height), testPalette)
	for i := range m.Pix {
		m.Pix[i] = 1
	}

	runs, err := Runs(m.Pix, boundary)
	require.NoError(t, err)
	checkRuns(t, m.Pix, boundary, runs)

	// Each chunk of 19200 pixels is 75 full runs plus a run of 75
	perChunk := (boundary + MaxRun - 1) / MaxRun
	require.Equal(t, 76, perChunk)
	require.Len(t, runs, 4*perChunk)
	for chunk := 0; chunk < 4; chunk++ {
		for i := 0; i < perChunk-1; i++ {
			assert.Equal(t, Run{1, 255}, runs[chunk*perChunk+i])
		}
		assert.Equal(t, Run{1, 75}, runs[chunk*perChunk+perChunk-1])
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m, boundary))
	assert.Equal(t, len(testPalette)*2+len(runs)*2, b.Len())
}

func TestEncodeDecode(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 32, 8), testPalette)
	for y := 0; y < 8; y++ {
		for x := 0; x < 32; x++ {
			m.SetColorIndex(x, y, uint8((x/5+y)%3))
		}
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m, 2*32))

	// Palette comes first
	assert.Equal(t, []byte{0x00, 0x00, 0xff, 0xff, 0xf8, 0x00}, b.Bytes()[:6])

	got, err := Decode(bytes.NewReader(b.Bytes()), 32, 8, 3)
	require.NoError(t, err)
	assert.Equal(t, m.Pix, got.Pix)
	assert.Equal(t, testPalette, got.Palette)
}

func TestEncodeErrors(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 4, 1), testPalette)
	m.Pix[2] = 3
	assert.Equal(t, errBadIndex, Encode(new(bytes.Buffer), m, 4))

	m = image.NewPaletted(image.Rect(0, 0, 4, 1), nil)
	assert.Equal(t, errBadPalette, Encode(new(bytes.Buffer), m, 4))
}

func TestDecodeErrors(t *testing.T) {
	palette := []byte{0x00, 0x00, 0xff, 0xff, 0xf8, 0x00}

	tests := []struct {
		name string
		runs []byte
		want error
	}{
		{"short", []byte{0, 3}, errNotEnough},
		{"half run", []byte{0, 3, 1}, errNotEnough},
		{"overlong run", []byte{0, 5}, errTooMuch},
		{"trailing data", []byte{0, 4, 0}, errTooMuch},
		{"bad index", []byte{3, 4}, errBadIndex},
		{"zero length", []byte{0, 0, 0, 4}, errBadRun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(append(append([]byte{}, palette...), tt.runs...)), 4, 1, 3)
			assert.Equal(t, tt.want, err)
		})
	}
}
