// Package layout assigns positions and sizes to diagram nodes. Engines are
// interchangeable: they decide where nodes go, and the edge router consumes
// whatever boxes they produce.
package layout

import (
	"context"
	"fmt"
	"sort"

	"github.com/gridwire/gridwire/diagram"
)

const (
	DefaultNodeWidth  = 160.
	DefaultNodeHeight = 66.

	layerGap = 140.
	nodeGap  = 60.
)

type Engine func(ctx context.Context, d *diagram.Diagram) error

var engines = map[string]Engine{
	"hierarchical": Hierarchical,
	"force":        Force,
	"swimlane":     Swimlane,
}

func Find(name string) (Engine, error) {
	e, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout engine %q, available: %v", name, List())
	}
	return e, nil
}

func List() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyDefaultSizes fills in sizes for nodes the model leaves unsized.
// Every engine calls it first so the router always sees real boxes.
func applyDefaultSizes(d *diagram.Diagram) {
	for _, n := range d.Nodes {
		if n.Width == 0 {
			n.Width = DefaultNodeWidth
		}
		if n.Height == 0 {
			n.Height = DefaultNodeHeight
		}
	}
}
