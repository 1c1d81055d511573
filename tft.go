/*
Package tft builds the image assets embedded in the LCD firmware.

Source images are letterboxed onto a canvas the size of the display,
quantized to a small palette and packed into one of two formats: the
records of images.bin, written alongside an images.js name list, or the run
length encoded logo.bin shown at startup.
*/
package tft

import (
	"fmt"
	_ "image/gif"  // register GIF sources
	_ "image/jpeg" // register JPEG sources
	_ "image/png"  // register PNG sources
	"io/ioutil"
	"log"
	"runtime"

	"github.com/bodgit/tft/letterbox"
	"github.com/bodgit/tft/quant"
	_ "golang.org/x/image/bmp"  // register BMP sources
	_ "golang.org/x/image/tiff" // register TIFF sources
	_ "golang.org/x/image/webp" // register WebP sources
)

const (
	defaultFilter    = "catmullrom"
	defaultQuantizer = "mediancut"
)

// Generator encodes source images for a particular display.
type Generator struct {
	config     Config
	compositor letterbox.Compositor
	quantizer  quant.Quantizer
	cache      *Cache
	workers    int
	logger     *log.Logger

	filterName    string
	quantizerName string
}

// Option configures a Generator.
type Option func(*Generator) error

// WithFilter selects the resampling filter by name, see
// letterbox.FilterNames.
func WithFilter(name string) Option {
	return func(g *Generator) error {
		f, err := letterbox.ParseFilter(name)
		if err != nil {
			return err
		}
		g.compositor.Filter = f
		g.filterName = name
		return nil
	}
}

// WithQuantizer selects the quantizer by name, see quant.Names.
func WithQuantizer(name string) Option {
	return func(g *Generator) error {
		q, err := quant.Parse(name)
		if err != nil {
			return err
		}
		g.quantizer = q
		g.quantizerName = name
		return nil
	}
}

// WithCache stores and reuses encoded records in c.
func WithCache(c *Cache) Option {
	return func(g *Generator) error {
		g.cache = c
		return nil
	}
}

// WithWorkers sets how many images are encoded concurrently.
func WithWorkers(n int) Option {
	return func(g *Generator) error {
		if n < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", n)
		}
		g.workers = n
		return nil
	}
}

// New returns a Generator for the display described by config. A nil
// logger discards all output.
func New(config Config, logger *log.Logger, options ...Option) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	g := &Generator{
		config: config,
		compositor: letterbox.Compositor{
			Width:  config.Width,
			Height: config.Height,
		},
		workers: runtime.NumCPU(),
		logger:  logger,
	}

	for _, o := range append([]Option{WithFilter(defaultFilter), WithQuantizer(defaultQuantizer)}, options...) {
		if err := o(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Config returns the display constants used by g.
func (g *Generator) Config() Config {
	return g.config
}
