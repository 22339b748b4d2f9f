package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cdr.dev/slog"
	"github.com/spf13/pflag"

	"github.com/gridwire/gridwire/diagram"
	"github.com/gridwire/gridwire/layout"
	"github.com/gridwire/gridwire/lib/log"
	"github.com/gridwire/gridwire/render"
)

type opts struct {
	layout string
	watch  bool
	host   string
	port   string
	open   bool

	fill   string
	stroke string

	inputPath  string
	outputPath string
}

func main() {
	var o opts
	layoutDefault := os.Getenv("GRIDWIRE_LAYOUT")
	if layoutDefault == "" {
		layoutDefault = "hierarchical"
	}
	pflag.StringVarP(&o.layout, "layout", "l", layoutDefault, fmt.Sprintf("layout engine, one of %v", layout.List()))
	pflag.BoolVarP(&o.watch, "watch", "w", false, "watch the input file, recompile on change and live-reload browsers")
	pflag.StringVar(&o.host, "host", "localhost", "host to listen on in watch mode")
	pflag.StringVar(&o.port, "port", "0", "port to listen on in watch mode")
	pflag.BoolVar(&o.open, "open", false, "open the browser in watch mode")
	pflag.StringVar(&o.fill, "fill", render.DefaultFill, "node fill color")
	pflag.StringVar(&o.stroke, "stroke", render.DefaultStroke, "edge stroke color")
	debug := pflag.BoolP("debug", "d", false, "enable debug logging")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: gridwire [flags] input.json [output.svg]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *debug {
		os.Setenv("DEBUG", "1")
	}
	ctx := log.Stderr(context.Background())
	defer log.Sync(ctx)

	args := pflag.Args()
	if len(args) < 1 || len(args) > 2 {
		pflag.Usage()
		os.Exit(2)
	}
	o.inputPath = args[0]
	if len(args) == 2 {
		o.outputPath = args[1]
	} else {
		o.outputPath = strings.TrimSuffix(o.inputPath, filepath.Ext(o.inputPath)) + ".svg"
	}

	if err := run(ctx, o); err != nil {
		log.Error(ctx, "gridwire failed", slog.Error(err))
		log.Sync(ctx)
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	if _, err := layout.Find(o.layout); err != nil {
		return err
	}

	if o.watch {
		w, err := newWatcher(ctx, o)
		if err != nil {
			return err
		}
		return w.run()
	}

	svg, err := compile(ctx, o)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.outputPath, svg, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info(ctx, "wrote svg", slog.F("path", o.outputPath), slog.F("bytes", len(svg)))
	return nil
}

// compile runs the full pipeline: decode, lay out, route, render.
func compile(ctx context.Context, o opts) ([]byte, error) {
	f, err := os.Open(o.inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	d, err := diagram.Decode(f)
	if err != nil {
		return nil, err
	}

	engine, err := layout.Find(o.layout)
	if err != nil {
		return nil, err
	}
	if err := engine(ctx, d); err != nil {
		return nil, fmt.Errorf("layout %q: %w", o.layout, err)
	}

	routes := d.RouteEdges()
	return render.Render(ctx, d, routes, &render.Opts{Fill: o.fill, Stroke: o.stroke})
}
