package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/asciiimage"
	"github.com/bodgit/asciiimage/convert"
	"github.com/bodgit/asciiimage/render"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var renderFlags = []cli.Flag{
	&cli.IntFlag{
		Name:    "size",
		Aliases: []string{"s"},
		Value:   render.DefaultSize,
		Usage:   fmt.Sprintf("size option [%d-%d]", render.MinSize, render.MaxSize),
	},
	&cli.IntFlag{
		Name:    "bits",
		Aliases: []string{"b"},
		Value:   render.DefaultDepth,
		Usage:   "bit graphic option: 1 bit .. 4 bit",
	},
	&cli.BoolFlag{
		Name:    "invert",
		Aliases: []string{"i"},
		Usage:   "invert ascii colors",
	},
	&cli.BoolFlag{
		Name:  "html",
		Usage: "print image to .html file",
	},
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// setup opens the cache, if any, and returns the AsciiImage along with a
// function to release it
func setup(c *cli.Context) (*asciiimage.AsciiImage, func(), error) {
	logger := newLogger(c)

	if c.String("cache") == "" {
		return asciiimage.New(nil, logger), func() {}, nil
	}

	cache, err := asciiimage.NewCache(c.String("cache"))
	if err != nil {
		return nil, nil, err
	}

	return asciiimage.New(cache, logger), func() { cache.Close() }, nil
}

// options merges the defaults, the configuration file and any flags set on
// the command line, in that order
func options(c *cli.Context) (asciiimage.Options, error) {
	o := asciiimage.DefaultOptions()
	if file := c.String("config"); file != "" {
		var err error
		if o, err = asciiimage.LoadOptions(file); err != nil {
			return o, err
		}
	}

	if c.IsSet("size") {
		o.Size = c.Int("size")
	}
	if c.IsSet("bits") {
		o.Bits = c.Int("bits")
	}
	if c.IsSet("invert") {
		o.Invert = c.Bool("invert")
	}
	if c.IsSet("html") {
		o.HTML = c.Bool("html")
	}

	return o, nil
}

func exitError(err error) error {
	return cli.Exit(err, asciiimage.ExitCode(err))
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "asciiimage"
	app.Usage = "Print 24-bit .bmp images as ASCII art"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"ASCIIIMAGE_CONFIG"},
			Usage:   "path to YAML file with default render options",
		},
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"ASCIIIMAGE_CACHE"},
			Usage:   "path to render cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "render",
			Usage:       "Print image as ASCII art",
			Description: "The image is printed on standard output, or to FILE.html with --html.",
			ArgsUsage:   "FILE",
			Flags:       renderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				o, err := options(c)
				if err != nil {
					return exitError(err)
				}

				a, done, err := setup(c)
				if err != nil {
					return exitError(err)
				}
				defer done()

				cfg := a.Config(o)
				file := c.Args().First()

				if cfg.Mode == render.StyledDocument {
					out, err := a.RenderFile(file, cfg)
					if err != nil {
						return exitError(err)
					}
					fmt.Printf(" Ascii image printed to file %s\n", out)
					return nil
				}

				if err := a.Render(file, cfg, render.NewTextSink(os.Stdout)); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Print image info",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				a := asciiimage.New(nil, newLogger(c))
				if err := a.Info(c.Args().First(), os.Stdout); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Render every .bmp image below a directory",
			Description: "Each image is written to a .txt file alongside it, or .html with --html.",
			ArgsUsage:   "DIRECTORY",
			Flags:       renderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				o, err := options(c)
				if err != nil {
					return exitError(err)
				}

				a, done, err := setup(c)
				if err != nil {
					return exitError(err)
				}
				defer done()

				if err := a.Scan(c.Args().First(), a.Config(o)); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert a PNG, JPEG or GIF image to a 24-bit .bmp image",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Usage: fmt.Sprintf("reduce to at most this many colors, up to %d; 0 keeps all colors", convert.MaxColors),
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, defaults to FILE with a .bmp extension",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				in := c.Args().First()
				out := c.String("output")
				if out == "" {
					out = strings.TrimSuffix(in, filepath.Ext(in)) + ".bmp"
				}
				if out == in {
					return cli.Exit(errors.New("output would overwrite input"), 1)
				}

				if err := convert.File(in, out, c.Int("colors")); err != nil {
					return cli.Exit(err, 1)
				}

				newLogger(c).Printf("Converted %s to %s\n", in, out)

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
