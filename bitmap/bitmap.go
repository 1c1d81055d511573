/*
Package bitmap implements the indexed image record stored in images.bin.

Each record is a palette of four colors, each a 16-bit 5-6-5 value stored
high byte first, followed by the pixels in raster order packed four to a
byte. The first pixel of each group of four occupies the two least
significant bits:

	bits:  7 6   5 4   3 2   1 0
	pixel:  3     2     1     0

There is no header or length prefix; a file is simply records laid end to
end, so both the dimensions and the palette size must be known to the reader.
*/
package bitmap

import (
	"errors"

	"github.com/bodgit/tft/rgb565"
)

const (
	// BitsPerPixel is the width of each packed palette index.
	BitsPerPixel  = 2
	pixelsPerByte = 8 / BitsPerPixel
	pixelMask     = 1<<BitsPerPixel - 1

	// Colors is the number of palette entries in every record.
	Colors = 1 << BitsPerPixel
)

var (
	errNotEnough    = errors.New("bitmap: not enough image data")
	errBadIndex     = errors.New("bitmap: index out of range")
	errBadPalette   = errors.New("bitmap: palette must have exactly 4 colors")
	errBadDimension = errors.New("bitmap: pixel count must be a positive multiple of 4")
)

// PixelBytes returns the number of bytes used by the packed pixels of a
// width by height image.
func PixelBytes(width, height int) int {
	return width * height / pixelsPerByte
}

// RecordSize returns the size in bytes of one record for a width by height
// image.
func RecordSize(width, height int) int {
	return Colors*rgb565.Size + PixelBytes(width, height)
}

func validDimensions(width, height int) bool {
	n := width * height
	return width > 0 && height > 0 && n%pixelsPerByte == 0
}

// Pack packs the palette indices in pix four to a byte. len(pix) must be a
// multiple of 4 and every index must be less than Colors.
func Pack(pix []uint8) ([]byte, error) {
	if len(pix)%pixelsPerByte != 0 {
		return nil, errBadDimension
	}
	b := make([]byte, len(pix)/pixelsPerByte)
	for i, idx := range pix {
		if idx > pixelMask {
			return nil, errBadIndex
		}
		b[i/pixelsPerByte] |= idx << (i % pixelsPerByte * BitsPerPixel)
	}
	return b, nil
}

// Unpack is the reverse of Pack.
func Unpack(b []byte) []uint8 {
	pix := make([]uint8, len(b)*pixelsPerByte)
	for i := range pix {
		pix[i] = b[i/pixelsPerByte] >> (i % pixelsPerByte * BitsPerPixel) & pixelMask
	}
	return pix
}
