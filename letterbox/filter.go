package letterbox

import (
	"fmt"
	"image"
	"sort"

	"github.com/KononK/resize"
	"golang.org/x/image/draw"
)

// Filter resamples an image to a new size.
type Filter interface {
	Resize(m image.Image, width, height int) image.Image
}

type interpolator struct {
	draw.Interpolator
}

func (f interpolator) Resize(m image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	f.Scale(dst, dst.Bounds(), m, m.Bounds(), draw.Src, nil)
	return dst
}

type interpolationFunction resize.InterpolationFunction

func (f interpolationFunction) Resize(m image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), m, resize.InterpolationFunction(f))
}

var (
	// NearestNeighbor is the fastest and lowest quality filter.
	NearestNeighbor Filter = interpolator{draw.NearestNeighbor}
	// BiLinear uses the tent kernel.
	BiLinear Filter = interpolator{draw.BiLinear}
	// CatmullRom is a bicubic filter and the default.
	CatmullRom Filter = interpolator{draw.CatmullRom}
	// Lanczos3 is the sharpest filter.
	Lanczos3 Filter = interpolationFunction(resize.Lanczos3)
)

var filters = map[string]Filter{
	"nearest":    NearestNeighbor,
	"bilinear":   BiLinear,
	"catmullrom": CatmullRom,
	"lanczos3":   Lanczos3,
}

// FilterNames returns the names accepted by ParseFilter, sorted.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseFilter returns the filter registered under name.
func ParseFilter(name string) (Filter, error) {
	f, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("letterbox: unknown filter %q", name)
	}
	return f, nil
}
