/*
Package letterbox scales an image to fit a fixed size canvas without
distorting its aspect ratio, filling the unused border with a solid
background color.
*/
package letterbox

import (
	"image"
	"image/color"
	"image/draw"
)

// Compositor composes source images onto a Width by Height canvas.
type Compositor struct {
	Width      int
	Height     int
	Background color.Color
	Filter     Filter
}

// Placement returns the rectangle within a width by height canvas that a
// source image of iw by ih pixels occupies once scaled to fit. Odd leftover
// space puts the extra pixel on the trailing edge.
func Placement(iw, ih, width, height int) image.Rectangle {
	scale := float64(width) / float64(iw)
	if s := float64(height) / float64(ih); s < scale {
		scale = s
	}

	sw := int(float64(iw) * scale)
	sh := int(float64(ih) * scale)
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}

	x := (width - sw) / 2
	y := (height - sh) / 2

	return image.Rect(x, y, x+sw, y+sh)
}

// Compose returns a new canvas with m scaled and centered on it. Transparent
// source pixels are blended over the background so the canvas is opaque.
func (c Compositor) Compose(m image.Image) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))

	bg := c.Background
	if bg == nil {
		bg = color.Black
	}
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	b := m.Bounds()
	if b.Empty() {
		return canvas
	}

	r := Placement(b.Dx(), b.Dy(), c.Width, c.Height)

	f := c.Filter
	if f == nil {
		f = CatmullRom
	}

	scaled := m
	if r.Dx() != b.Dx() || r.Dy() != b.Dy() {
		scaled = f.Resize(m, r.Dx(), r.Dy())
	}
	draw.Draw(canvas, r, scaled, scaled.Bounds().Min, draw.Over)

	return canvas
}
