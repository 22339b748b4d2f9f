package layout

import (
	"context"
	"sort"

	"cdr.dev/slog"

	"github.com/gridwire/gridwire/diagram"
	"github.com/gridwire/gridwire/lib/go2"
	"github.com/gridwire/gridwire/lib/log"
)

// Hierarchical performs a left-to-right layered layout: nodes are assigned
// layers by longest path from the roots, then stacked within their layer.
// Pinned nodes keep their modeled position and only participate as layer
// anchors for their neighbors.
func Hierarchical(ctx context.Context, d *diagram.Diagram) error {
	applyDefaultSizes(d)
	if len(d.Nodes) == 0 {
		return nil
	}

	layers := assignLayers(d)
	log.Debug(ctx, "hierarchical layout", slog.F("nodes", len(d.Nodes)), slog.F("layers", countLayers(layers)))

	byLayer := make(map[int][]*diagram.Node)
	for _, n := range d.Nodes {
		l := layers[n.ID]
		byLayer[l] = append(byLayer[l], n)
	}

	x := 0.
	for l := 0; l < countLayers(layers); l++ {
		nodes := byLayer[l]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

		y := 0.
		layerWidth := 0.
		for _, n := range nodes {
			if !n.Pinned {
				n.X = x
				n.Y = y
			}
			y += n.Height + nodeGap
			layerWidth = go2.Max(layerWidth, n.Width)
		}
		x += layerWidth + layerGap
	}
	return nil
}

// assignLayers computes longest-path layers. Edges that would close a cycle
// are ignored for layering, so cyclic models still lay out.
func assignLayers(d *diagram.Diagram) map[string]int {
	succ := make(map[string][]string)
	for _, e := range d.Edges {
		if e.Src == e.Dst {
			continue
		}
		succ[e.Src] = append(succ[e.Src], e.Dst)
	}

	layers := make(map[string]int, len(d.Nodes))

	// Longest path from roots via iterative relaxation; the pass count is
	// bounded by the node count so cycles cannot loop forever.
	ids := make([]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		ids = append(ids, n.ID)
		layers[n.ID] = 0
	}
	sort.Strings(ids)

	for pass := 0; pass < len(ids); pass++ {
		changed := false
		for _, id := range ids {
			for _, next := range succ[id] {
				if next == id {
					continue
				}
				if layers[next] < layers[id]+1 {
					layers[next] = layers[id] + 1
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return layers
}

func countLayers(layers map[string]int) int {
	max := 0
	for _, l := range layers {
		max = go2.Max(max, l)
	}
	return max + 1
}
