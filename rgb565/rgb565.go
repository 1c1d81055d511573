/*
Package rgb565 implements the 16-bit packed color used by the LCD controller.

Each color is 5 bits of red, 6 bits of green and 5 bits of blue, most
significant bit first, and is stored on the wire as two bytes with the high
byte first:

	byte 0: RRRRRGGG
	byte 1: GGGBBBBB

Conversion from 8-bit channels truncates the low bits, it never rounds.
*/
package rgb565

import (
	"encoding/binary"
	"errors"
	"image/color"
	"io"
)

// Size is the number of bytes used to store one color.
const Size = 2

var errNotEnough = errors.New("rgb565: not enough palette data")

// Color is a packed 5-6-5 color. It implements the color.Color interface.
type Color uint16

// FromRGB packs the 8-bit channels r, g and b.
func FromRGB(r, g, b uint8) Color {
	return Color(r&0xf8)<<8 | Color(g&0xfc)<<3 | Color(b>>3)
}

// Components returns the raw 5-bit red, 6-bit green and 5-bit blue values.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 11), uint8(c>>5) & 0x3f, uint8(c) & 0x1f
}

// RGBA expands c to 16 bits per channel, replicating the high bits into the
// low bits so that full intensity maps to 0xffff.
func (c Color) RGBA() (r, g, b, a uint32) {
	r5, g6, b5 := c.Components()
	r = uint32(r5<<3 | r5>>2)
	g = uint32(g6<<2 | g6>>4)
	b = uint32(b5<<3 | b5>>2)
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

// Bytes returns c in wire order.
func (c Color) Bytes() [Size]byte {
	var b [Size]byte
	binary.BigEndian.PutUint16(b[:], uint16(c))
	return b
}

func convert(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return FromRGB(rgba.R, rgba.G, rgba.B)
}

// Model converts any color to a Color, dropping alpha.
var Model = color.ModelFunc(convert)

// AppendPalette appends the wire encoding of every color in p to b.
func AppendPalette(b []byte, p color.Palette) []byte {
	for _, c := range p {
		b = binary.BigEndian.AppendUint16(b, uint16(Model.Convert(c).(Color)))
	}
	return b
}

// EncodePalette writes every color in p to w in palette order.
func EncodePalette(w io.Writer, p color.Palette) error {
	_, err := w.Write(AppendPalette(make([]byte, 0, len(p)*Size), p))
	return err
}

// DecodePalette reads n colors from r.
func DecodePalette(r io.Reader, n int) (color.Palette, error) {
	b := make([]byte, n*Size)
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errNotEnough
		}
		return nil, err
	}
	p := make(color.Palette, n)
	for i := range p {
		p[i] = Color(binary.BigEndian.Uint16(b[i*Size:]))
	}
	return p, nil
}
