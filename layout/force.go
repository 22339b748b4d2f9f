package layout

import (
	"context"
	"math"
	"sort"

	"cdr.dev/slog"

	"github.com/gridwire/gridwire/diagram"
	"github.com/gridwire/gridwire/lib/go2"
	"github.com/gridwire/gridwire/lib/log"
)

const (
	forceIterations = 300
	idealEdgeLength = 260.
)

// Force is a spring-embedder layout: nodes repel each other, edges pull
// their endpoints toward an ideal length, and the step size cools over the
// iterations. Start positions derive from the node IDs, not a random seed,
// so the same model always lays out the same way and routed edges stay
// byte-identical across runs.
func Force(ctx context.Context, d *diagram.Diagram) error {
	applyDefaultSizes(d)
	if len(d.Nodes) == 0 {
		return nil
	}

	nodes := make([]*diagram.Node, len(d.Nodes))
	copy(nodes, d.Nodes)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	// Seed positions on a circle, perturbed per node by an ID hash so
	// symmetric models still break symmetry deterministically.
	radius := idealEdgeLength * float64(len(nodes)) / (2 * math.Pi)
	radius = math.Max(radius, idealEdgeLength)
	for i, n := range nodes {
		if n.Pinned {
			continue
		}
		angle := 2 * math.Pi * float64(i) / float64(len(nodes))
		jitter := float64(go2.StringToIntHash(n.ID)%100) / 100
		n.X = (radius + jitter*nodeGap) * math.Cos(angle)
		n.Y = (radius + jitter*nodeGap) * math.Sin(angle)
	}

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	dx := make([]float64, len(nodes))
	dy := make([]float64, len(nodes))
	temperature := radius / 2

	for iter := 0; iter < forceIterations; iter++ {
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		// pairwise repulsion between node centers
		for i := 0; i < len(nodes); i++ {
			ci := nodes[i].Box().Center()
			for j := i + 1; j < len(nodes); j++ {
				cj := nodes[j].Box().Center()
				ddx := ci.X - cj.X
				ddy := ci.Y - cj.Y
				distSq := ddx*ddx + ddy*ddy
				if distSq == 0 {
					distSq = 0.01
				}
				f := idealEdgeLength * idealEdgeLength / distSq
				dist := math.Sqrt(distSq)
				dx[i] += ddx / dist * f
				dy[i] += ddy / dist * f
				dx[j] -= ddx / dist * f
				dy[j] -= ddy / dist * f
			}
		}

		// spring attraction along edges
		for _, e := range d.Edges {
			if e.Src == e.Dst {
				continue
			}
			i := index[e.Src]
			j := index[e.Dst]
			ci := nodes[i].Box().Center()
			cj := nodes[j].Box().Center()
			ddx := cj.X - ci.X
			ddy := cj.Y - ci.Y
			dist := math.Sqrt(ddx*ddx + ddy*ddy)
			if dist == 0 {
				continue
			}
			f := (dist - idealEdgeLength) / 2
			dx[i] += ddx / dist * f
			dy[i] += ddy / dist * f
			dx[j] -= ddx / dist * f
			dy[j] -= ddy / dist * f
		}

		for i, n := range nodes {
			if n.Pinned {
				continue
			}
			step := math.Sqrt(dx[i]*dx[i] + dy[i]*dy[i])
			if step == 0 {
				continue
			}
			limited := math.Min(step, temperature)
			n.X += dx[i] / step * limited
			n.Y += dy[i] / step * limited
		}
		temperature *= 0.97
	}

	// Snap to integers so downstream geometry compares exactly.
	anyPinned := false
	minX, minY := math.Inf(1), math.Inf(1)
	for _, n := range nodes {
		if n.Pinned {
			anyPinned = true
			continue
		}
		n.X = math.Round(n.X)
		n.Y = math.Round(n.Y)
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
	}
	// Shift to the origin, but only when no pinned node holds the frame in
	// place.
	if !anyPinned {
		for _, n := range nodes {
			n.X -= minX
			n.Y -= minY
		}
	}

	log.Debug(ctx, "force layout", slog.F("nodes", len(nodes)), slog.F("iterations", forceIterations))
	return nil
}
