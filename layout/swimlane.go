package layout

import (
	"context"
	"sort"

	"cdr.dev/slog"

	"github.com/gridwire/gridwire/diagram"
	"github.com/gridwire/gridwire/lib/go2"
	"github.com/gridwire/gridwire/lib/log"
)

// Swimlane groups nodes into horizontal lanes by their Lane field and packs
// each lane left to right. Nodes without a lane share an unnamed lane at the
// top. Lanes are ordered by name so the layout reproduces across runs.
func Swimlane(ctx context.Context, d *diagram.Diagram) error {
	applyDefaultSizes(d)
	if len(d.Nodes) == 0 {
		return nil
	}

	lanes := make(map[string][]*diagram.Node)
	for _, n := range d.Nodes {
		lanes[n.Lane] = append(lanes[n.Lane], n)
	}

	names := make([]string, 0, len(lanes))
	for name := range lanes {
		names = append(names, name)
	}
	sort.Strings(names)
	log.Debug(ctx, "swimlane layout", slog.F("lanes", len(names)))

	y := 0.
	for _, name := range names {
		nodes := lanes[name]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

		x := 0.
		laneHeight := 0.
		for _, n := range nodes {
			if !n.Pinned {
				n.X = x
				n.Y = y
			}
			x += n.Width + nodeGap
			laneHeight = go2.Max(laneHeight, n.Height)
		}
		y += laneHeight + nodeGap
	}
	return nil
}
