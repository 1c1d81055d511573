package tft

import (
	"errors"
	"fmt"

	"github.com/bodgit/tft/bitmap"
	"github.com/bodgit/tft/header"
	"github.com/bodgit/tft/rgb565"
)

// Names of the header defines read by LoadHeader.
const (
	DefineWidth         = "LCD_WIDTH"
	DefineHeight        = "LCD_HEIGHT"
	DefinePaletteSize   = "PALATTE_SIZE"
	DefineParallelLines = "PARALLEL_LINES"
	DefineLogoColors    = "LOGO_COLORS"
)

const defaultLogoColors = 3

// Config holds the display constants shared with the firmware.
type Config struct {
	// Width and Height of the display in pixels
	Width  int
	Height int
	// Colors is the palette size of each image in images.bin
	Colors int
	// LogoColors is the palette size of logo.bin
	LogoColors int
	// ParallelLines is the number of lines sent to the display per transfer
	ParallelLines int
}

// DefaultConfig returns the constants of the stock 320x240 display.
func DefaultConfig() Config {
	return Config{
		Width:         320,
		Height:        240,
		Colors:        bitmap.Colors,
		LogoColors:    defaultLogoColors,
		ParallelLines: 60,
	}
}

// LoadHeader reads the display constants from a C header. LOGO_COLORS is
// optional and defaults to 3, everything else must be defined as an integer.
func LoadHeader(file string) (Config, error) {
	d, err := header.ParseFile(file)
	if err != nil {
		return Config{}, &ConfigError{Name: file, Err: err}
	}

	c := Config{LogoColors: defaultLogoColors}
	for _, def := range []struct {
		name string
		v    *int
	}{
		{DefineWidth, &c.Width},
		{DefineHeight, &c.Height},
		{DefinePaletteSize, &c.Colors},
		{DefineParallelLines, &c.ParallelLines},
		{DefineLogoColors, &c.LogoColors},
	} {
		v, err := d.Int(def.name)
		switch {
		case errors.Is(err, header.ErrNotDefined) && def.name == DefineLogoColors:
			continue
		case err != nil:
			return Config{}, &ConfigError{Name: def.name, Err: err}
		}
		*def.v = v
	}

	return c, c.Validate()
}

// Validate checks the constants describe a display the formats can encode.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{Name: DefineWidth, Err: fmt.Errorf("must be positive, got %d", c.Width)}
	case c.Height <= 0:
		return &ConfigError{Name: DefineHeight, Err: fmt.Errorf("must be positive, got %d", c.Height)}
	case c.Colors != bitmap.Colors:
		return &ConfigError{Name: DefinePaletteSize, Err: fmt.Errorf("must be %d for %d-bit pixels, got %d", bitmap.Colors, bitmap.BitsPerPixel, c.Colors)}
	case c.Width*c.Height%(8/bitmap.BitsPerPixel) != 0:
		return &ConfigError{Name: DefineWidth, Err: fmt.Errorf("%dx%d pixels do not pack into whole bytes", c.Width, c.Height)}
	case c.LogoColors < 1 || c.LogoColors > 256:
		return &ConfigError{Name: DefineLogoColors, Err: fmt.Errorf("must be between 1 and 256, got %d", c.LogoColors)}
	case c.ParallelLines <= 0:
		return &ConfigError{Name: DefineParallelLines, Err: fmt.Errorf("must be positive, got %d", c.ParallelLines)}
	case c.Height%c.ParallelLines != 0:
		return &ConfigError{Name: DefineParallelLines, Err: fmt.Errorf("%d does not divide the height %d", c.ParallelLines, c.Height)}
	}
	return nil
}

// LineBoundary returns the number of pixels sent to the display in one
// transfer.
func (c Config) LineBoundary() int {
	return c.ParallelLines * c.Width
}

// ImageBytes returns the size of one record in images.bin.
func (c Config) ImageBytes() int {
	return bitmap.RecordSize(c.Width, c.Height)
}

// LogoPaletteBytes returns the size of the palette at the start of logo.bin.
func (c Config) LogoPaletteBytes() int {
	return c.LogoColors * rgb565.Size
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d/%d/%d/%d", c.Width, c.Height, c.Colors, c.LogoColors, c.ParallelLines)
}
