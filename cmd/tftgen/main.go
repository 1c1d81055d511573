package main

import (
	"context"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bodgit/tft"
	"github.com/bodgit/tft/letterbox"
	"github.com/bodgit/tft/quant"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadConfig(c *cli.Context) (tft.Config, error) {
	config := tft.DefaultConfig()
	if file := c.String("header"); file != "" {
		var err error
		if config, err = tft.LoadHeader(file); err != nil {
			return tft.Config{}, err
		}
	}
	if c.IsSet("logo-colors") {
		config.LogoColors = c.Int("logo-colors")
	}
	return config, config.Validate()
}

// withGenerator builds a Generator from the global flags, including the
// optional cache, and passes it to fn.
func withGenerator(c *cli.Context, fn func(*tft.Generator) error) error {
	config, err := loadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	options := []tft.Option{
		tft.WithFilter(c.String("filter")),
		tft.WithQuantizer(c.String("quantizer")),
		tft.WithWorkers(c.Int("workers")),
	}

	if file := c.String("cache"); file != "" {
		cache, err := tft.NewCache(file)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer cache.Close()
		options = append(options, tft.WithCache(cache))
	}

	g, err := tft.New(config, newLogger(c), options...)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := fn(g); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "tftgen"
	app.Usage = "Generate LCD image and logo assets for the firmware"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "header",
			EnvVars: []string{"TFT_HEADER"},
			Usage:   "C header defining LCD_WIDTH, LCD_HEIGHT, PALATTE_SIZE and PARALLEL_LINES (default 320x240, 4 colors, 60 lines)",
		},
		&cli.IntFlag{
			Name:  "logo-colors",
			Value: 3,
			Usage: "number of colors in the logo palette, overrides LOGO_COLORS",
		},
		&cli.StringFlag{
			Name:  "filter",
			Value: "catmullrom",
			Usage: "resampling filter, one of " + strings.Join(letterbox.FilterNames(), ", "),
		},
		&cli.StringFlag{
			Name:  "quantizer",
			Value: "mediancut",
			Usage: "color quantizer, one of " + strings.Join(quant.Names(), ", "),
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: runtime.NumCPU(),
			Usage: "number of images to encode concurrently",
		},
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"TFT_CACHE"},
			Usage:   "path to encode cache database, disabled if empty",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "images",
			Usage:       "Encode a directory of images into images.bin and images.js",
			Description: "Every regular file in DIRECTORY is encoded in name order.",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "bin",
					Value: filepath.Join("data", "images.bin"),
					Usage: "output image records",
				},
				&cli.StringFlag{
					Name:  "manifest",
					Value: filepath.Join("data", "images.js"),
					Usage: "output name list",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withGenerator(c, func(g *tft.Generator) error {
					return g.WriteImages(context.Background(), c.Args().First(), c.String("bin"), c.String("manifest"))
				})
			},
		},
		{
			Name:        "logo",
			Usage:       "Encode an image into logo.bin",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Value: filepath.Join("data", "logo.bin"),
					Usage: "output logo",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withGenerator(c, func(g *tft.Generator) error {
					return g.WriteLogo(context.Background(), c.Args().First(), c.String("out"))
				})
			},
		},
		{
			Name:        "dump",
			Usage:       "Decode images.bin back into PNG files",
			Description: "",
			ArgsUsage:   "IMAGES.BIN DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "manifest",
					Usage: "name list used to name the PNG files",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withGenerator(c, func(g *tft.Generator) error {
					return g.DumpImages(c.Args().Get(0), c.String("manifest"), c.Args().Get(1))
				})
			},
		},
		{
			Name:        "dump-logo",
			Usage:       "Decode logo.bin back into a PNG file",
			Description: "",
			ArgsUsage:   "LOGO.BIN FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				return withGenerator(c, func(g *tft.Generator) error {
					return g.DumpLogo(c.Args().Get(0), c.Args().Get(1))
				})
			},
		},
		{
			Name:        "clear-cache",
			Usage:       "Remove every record from the encode cache",
			Description: "",
			Action: func(c *cli.Context) error {
				file := c.String("cache")
				if file == "" {
					return cli.NewExitError("no cache configured", 1)
				}

				cache, err := tft.NewCache(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer cache.Close()

				if err := cache.Clear(); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
