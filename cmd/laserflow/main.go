// Command laserflow shows the laser beam background animation.
//
// Usage:
//
//	laserflow [flags]
//
// The -host flag picks the output:
//
//	window    a GPU-composited gogpu window (default)
//	ebiten    an Ebitengine window
//	terminal  the current terminal, in truecolor half blocks
//	png       a numbered PNG sequence rendered in software
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gogpu/laserflow"
	"github.com/gogpu/laserflow/host/ebitenhost"
	"github.com/gogpu/laserflow/host/gogpuhost"
	"github.com/gogpu/laserflow/host/termhost"
)

var errUsage = errors.New("invalid flags")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "laserflow:", err)
		}
		stop()
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type options struct {
	host    string
	width   int
	height  int
	frames  int
	dir     string
	verbose bool
	config  laserflow.Config
}

func parseFlags(args []string) (options, error) {
	def := laserflow.DefaultConfig()
	var (
		o      options
		colors string
	)
	fs := flag.NewFlagSet("laserflow", flag.ContinueOnError)
	fs.StringVar(&o.host, "host", "window", "output: window, ebiten, terminal or png")
	fs.IntVar(&o.width, "width", 1024, "window or image width")
	fs.IntVar(&o.height, "height", 640, "window or image height")
	fs.IntVar(&o.frames, "png-frames", 60, "number of frames for -host png")
	fs.StringVar(&o.dir, "png-dir", "frames", "output directory for -host png")
	fs.BoolVar(&o.verbose, "v", false, "log lifecycle events to stderr")

	cfg := def
	fs.IntVar(&cfg.BeamCount, "beams", def.BeamCount, "number of beams")
	fs.Float64Var(&cfg.Speed, "speed", def.Speed, "speed multiplier")
	fs.StringVar(&colors, "colors", strings.Join(def.Colors, ","), "comma-separated beam colors")
	fs.Float64Var(&cfg.MinLineWidth, "min-width", def.MinLineWidth, "minimum line width")
	fs.Float64Var(&cfg.MaxLineWidth, "max-width", def.MaxLineWidth, "maximum line width")
	fs.Float64Var(&cfg.MinLength, "min-length", def.MinLength, "minimum beam length")
	fs.Float64Var(&cfg.MaxLength, "max-length", def.MaxLength, "maximum beam length")
	fs.Float64Var(&cfg.MinOpacity, "min-opacity", def.MinOpacity, "minimum peak opacity")
	fs.Float64Var(&cfg.MaxOpacity, "max-opacity", def.MaxOpacity, "maximum peak opacity")
	fs.BoolVar(&cfg.GlowEnabled, "glow", def.GlowEnabled, "draw a glow under every beam")
	fs.Float64Var(&cfg.GlowBlur, "glow-blur", def.GlowBlur, "glow radius")
	fs.BoolVar(&cfg.PauseOnHidden, "pause-hidden", def.PauseOnHidden, "pause while the output is hidden")
	fs.BoolVar(&cfg.AdaptivePerformance, "adaptive", def.AdaptivePerformance, "reduce quality on low-end devices")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return o, err
		}
		return o, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("%w: unexpected arguments %q", errUsage, fs.Args())
	}

	cfg.Colors = splitColors(colors)
	if err := cfg.Validate(); err != nil {
		return o, fmt.Errorf("%w: %w", errUsage, err)
	}
	if o.width <= 0 || o.height <= 0 {
		return o, fmt.Errorf("%w: size %dx%d must be positive", errUsage, o.width, o.height)
	}
	o.config = cfg
	return o, nil
}

func splitColors(s string) []string {
	var colors []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}
	return colors
}

func run(ctx context.Context, args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	if o.verbose {
		laserflow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	copts := []laserflow.Option{laserflow.WithConfig(o.config)}
	switch o.host {
	case "window":
		return gogpuhost.Run(ctx, gogpuhost.Options{Width: o.width, Height: o.height, Controller: copts})
	case "ebiten":
		return ebitenhost.Run(ctx, ebitenhost.Options{Width: o.width, Height: o.height, Controller: copts})
	case "terminal":
		return termhost.Run(ctx, termhost.Options{Controller: copts})
	case "png":
		return renderPNG(ctx, o, copts)
	default:
		return fmt.Errorf("%w: unknown host %q", errUsage, o.host)
	}
}

// renderPNG renders o.frames frames at a steady 60 Hz into numbered PNG
// files, independent of wall-clock time.
func renderPNG(ctx context.Context, o options, copts []laserflow.Option) error {
	if o.frames <= 0 {
		return fmt.Errorf("%w: -png-frames must be positive", errUsage)
	}
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", o.dir, err)
	}

	surface := laserflow.NewImageSurface()
	defer surface.Close()
	queue := laserflow.NewFrameQueue()
	c := laserflow.New(surface, append(copts, laserflow.WithScheduler(queue))...)
	defer c.Dispose()

	c.Resize(float64(o.width), float64(o.height))
	c.Start()

	const frameTime = time.Second / 60
	for i := range o.frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		queue.Fire(time.Duration(i) * frameTime)
		path := filepath.Join(o.dir, fmt.Sprintf("frame_%04d.png", i))
		if err := surface.SavePNG(path); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	laserflow.Logger().Info("laserflow: frames written", "count", o.frames, "dir", o.dir)
	return nil
}
