// Command kernelop applies a convolution kernel to an image file.
//
// Usage:
//
//	kernelop -in photo.jpg -out edges.png -preset edge
//	kernelop -in photo.png -out blur.bmp -kernel "1,1,1; 1,1,1; 1,1,1" -workers 4
//
// The input is converted to grayscale before filtering. Malformed kernel
// cells are reported and treated as 0.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/kernelop"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "kernelop:", err)
		}
		os.Exit(1)
	}
}

type config struct {
	in       string
	out      string
	kernel   string
	preset   string
	border   string
	rounding string
	workers  int
	quality  int
	fit      int
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("kernelop", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.in, "in", "", "input image (png, jpg, bmp, webp)")
	fs.StringVar(&cfg.out, "out", "", "output image (png, jpg, bmp)")
	fs.StringVar(&cfg.kernel, "kernel", "", `kernel rows separated by ';', e.g. "0,-1,0; -1,5,-1; 0,-1,0"`)
	fs.StringVar(&cfg.preset, "preset", "", "named kernel: "+strings.Join(kernelop.PresetNames(), ", "))
	fs.StringVar(&cfg.border, "border", "zero", "border policy: zero or copy")
	fs.StringVar(&cfg.rounding, "round", "trunc", "rounding: trunc or nearest")
	fs.IntVar(&cfg.workers, "workers", 1, "goroutines used for filtering")
	fs.IntVar(&cfg.quality, "quality", 0, "JPEG quality 1-100 (0 = default)")
	fs.IntVar(&cfg.fit, "fit", 0, "scale the input so neither side exceeds N pixels (0 = off)")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.in == "" || cfg.out == "" {
		return cfg, errors.New("-in and -out are required")
	}
	if (cfg.kernel == "") == (cfg.preset == "") {
		return cfg, errors.New("exactly one of -kernel or -preset is required")
	}
	return cfg, nil
}

func run(args []string, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	kernelop.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer kernelop.SetLogger(nil)

	border, ok := kernelop.ParseBorder(cfg.border)
	if !ok {
		return fmt.Errorf("unknown border policy %q", cfg.border)
	}
	rounding, ok := kernelop.ParseRounding(cfg.rounding)
	if !ok {
		return fmt.Errorf("unknown rounding mode %q", cfg.rounding)
	}

	k, err := loadKernel(cfg)
	if err != nil {
		return err
	}

	s := kernelop.NewSession(
		kernelop.WithBorder(border),
		kernelop.WithRounding(rounding),
		kernelop.WithWorkers(cfg.workers),
		kernelop.WithJPEGQuality(cfg.quality),
	)
	defer s.Close()

	if err := s.Load(cfg.in); err != nil {
		return err
	}
	if cfg.fit > 0 {
		if err := s.Resize(cfg.fit); err != nil {
			return err
		}
	}
	if err := s.Apply(k); err != nil {
		return err
	}
	return s.Save(cfg.out)
}

func loadKernel(cfg config) (kernelop.Kernel, error) {
	if cfg.preset != "" {
		k, ok := kernelop.Preset(cfg.preset)
		if !ok {
			return kernelop.Kernel{}, fmt.Errorf("unknown preset %q (have %s)", cfg.preset, strings.Join(kernelop.PresetNames(), ", "))
		}
		return k, nil
	}

	// Malformed cells were already logged as warnings and read as 0.
	k, _, err := kernelop.ParseKernelText(cfg.kernel)
	return k, err
}
