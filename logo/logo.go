/*
Package logo implements the run-length encoded startup logo stored in
logo.bin.

The file is a palette of 16-bit 5-6-5 colors, stored high byte first,
followed by runs of two bytes each: the palette index and the number of
consecutive pixels, 1 to 255, in raster order. The runs continue until every
pixel of the screen is accounted for.

The display is fed several lines at a time, so a run never spans the start
of such a chunk. Every chunk boundary starts a new run even when the color
does not change, which lets the firmware expand each chunk independently.
*/
package logo

import (
	"errors"
)

// MaxRun is the longest run that fits in the length byte.
const MaxRun = 255

var (
	errNotEnough   = errors.New("logo: not enough image data")
	errTooMuch     = errors.New("logo: too much image data")
	errEmpty       = errors.New("logo: no pixels to encode")
	errBadBoundary = errors.New("logo: line boundary must be positive")
	errBadIndex    = errors.New("logo: palette index out of range")
	errBadRun      = errors.New("logo: zero length run")
	errBadPalette  = errors.New("logo: palette must have between 1 and 256 colors")
)

// Run is a palette index repeated Length times.
type Run struct {
	Color  uint8
	Length uint8
}

// Runs encodes pix as a sequence of runs. A run is closed when the index
// changes, when it reaches MaxRun pixels, or when the next pixel starts a
// new multiple of boundary pixels.
func Runs(pix []uint8, boundary int) ([]Run, error) {
	if boundary <= 0 {
		return nil, errBadBoundary
	}
	if len(pix) == 0 {
		return nil, errEmpty
	}

	var runs []Run
	current := Run{Color: pix[0], Length: 1}
	for i := 1; i < len(pix); i++ {
		if pix[i] != current.Color || i%boundary == 0 || current.Length == MaxRun {
			runs = append(runs, current)
			current = Run{Color: pix[i], Length: 1}
			continue
		}
		current.Length++
	}

	return append(runs, current), nil
}

// Expand is the reverse of Runs.
func Expand(runs []Run) []uint8 {
	var n int
	for _, r := range runs {
		n += int(r.Length)
	}
	pix := make([]uint8, 0, n)
	for _, r := range runs {
		for i := 0; i < int(r.Length); i++ {
			pix = append(pix, r.Color)
		}
	}
	return pix
}
