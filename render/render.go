// Package render turns a laid-out, routed diagram into SVG.
package render

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"cdr.dev/slog"

	"github.com/gridwire/gridwire/diagram"
	"github.com/gridwire/gridwire/edgeroute"
	"github.com/gridwire/gridwire/lib/color"
	"github.com/gridwire/gridwire/lib/geo"
	"github.com/gridwire/gridwire/lib/log"
	"github.com/gridwire/gridwire/lib/svg"
)

const (
	DefaultFill   = "#f4f6fb"
	DefaultStroke = "#0d32b2"

	pad        = 20.
	nodeRadius = 4.
	fontSize   = 14.
	fontFamily = "ui-sans-serif, system-ui, sans-serif"
)

type Opts struct {
	// Fill paints node boxes; borders derive from it by darkening.
	Fill string
	// Stroke paints edge paths and arrowheads.
	Stroke string
}

func (o *Opts) withDefaults() (Opts, error) {
	out := Opts{Fill: DefaultFill, Stroke: DefaultStroke}
	if o != nil {
		if o.Fill != "" {
			out.Fill = o.Fill
		}
		if o.Stroke != "" {
			out.Stroke = o.Stroke
		}
	}
	if err := color.Validate(out.Fill); err != nil {
		return out, fmt.Errorf("invalid fill color %q: %w", out.Fill, err)
	}
	if err := color.Validate(out.Stroke); err != nil {
		return out, fmt.Errorf("invalid stroke color %q: %w", out.Stroke, err)
	}
	return out, nil
}

// Render draws the diagram with the given edge routes. The canvas is sized
// to the content bounding box plus padding, so callers never pass
// dimensions.
func Render(ctx context.Context, d *diagram.Diagram, routes map[string]geo.Route, opts *Opts) ([]byte, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	tl, br := bounds(d, routes)
	w := br.X - tl.X + 2*pad
	h := br.Y - tl.Y + 2*pad
	// Translate content so the top-left sits at the padding inset.
	offset := geo.NewPoint(pad-tl.X, pad-tl.Y)

	borderColor, err := color.Darken(o.Fill)
	if err != nil {
		return nil, fmt.Errorf("deriving border color: %w", err)
	}
	labelColor := color.ContrastingText(o.Fill)

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		int(math.Ceil(w)), int(math.Ceil(h)), int(math.Ceil(w)), int(math.Ceil(h)),
	)
	fmt.Fprintf(buf,
		`<defs><marker id="arrowhead" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker></defs>`,
		o.Stroke,
	)

	for _, e := range d.Edges {
		route, ok := routes[e.ID]
		if !ok || len(route) < 2 {
			continue
		}
		fmt.Fprintf(buf,
			`<path d="%s" fill="none" stroke="%s" stroke-width="2" marker-end="url(#arrowhead)"/>`,
			pathData(route, offset), o.Stroke,
		)
	}

	for _, n := range d.Nodes {
		fmt.Fprintf(buf,
			`<rect x="%v" y="%v" width="%v" height="%v" rx="%v" fill="%s" stroke="%s"/>`,
			n.X+offset.X, n.Y+offset.Y, n.Width, n.Height, nodeRadius, o.Fill, borderColor,
		)
		label := n.Label
		if label == "" {
			label = n.ID
		}
		fmt.Fprintf(buf,
			`<text x="%v" y="%v" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%v" fill="%s">%s</text>`,
			n.X+n.Width/2+offset.X, n.Y+n.Height/2+offset.Y,
			fontFamily, fontSize, labelColor, svg.EscapeText(label),
		)
	}

	buf.WriteString(`</svg>`)
	log.Debug(ctx, "rendered svg",
		slog.F("nodes", len(d.Nodes)),
		slog.F("edges", len(d.Edges)),
		slog.F("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

func pathData(route geo.Route, offset *geo.Point) string {
	pc := svg.NewSVGPathContext(offset, 1, 1)
	for _, cmd := range edgeroute.RoundCorners(route, edgeroute.CornerRadius) {
		switch cmd.Kind {
		case edgeroute.MoveTo:
			pc.StartAt(cmd.To.X, cmd.To.Y)
		case edgeroute.LineTo:
			pc.L(cmd.To.X, cmd.To.Y)
		case edgeroute.QuadTo:
			pc.Q(cmd.Control.X, cmd.Control.Y, cmd.To.X, cmd.To.Y)
		}
	}
	return pc.PathData()
}

func bounds(d *diagram.Diagram, routes map[string]geo.Route) (tl, br *geo.Point) {
	tl = geo.NewPoint(math.Inf(1), math.Inf(1))
	br = geo.NewPoint(math.Inf(-1), math.Inf(-1))
	grow := func(x, y float64) {
		tl.X = math.Min(tl.X, x)
		tl.Y = math.Min(tl.Y, y)
		br.X = math.Max(br.X, x)
		br.Y = math.Max(br.Y, y)
	}
	for _, n := range d.Nodes {
		grow(n.X, n.Y)
		grow(n.X+n.Width, n.Y+n.Height)
	}
	for _, route := range routes {
		for _, p := range route {
			grow(p.X, p.Y)
		}
	}
	if math.IsInf(tl.X, 1) {
		tl = geo.NewPoint(0, 0)
		br = geo.NewPoint(0, 0)
	}
	return tl, br
}
