// Package diagram holds the model the layout engines and the edge router
// consume: nodes with boxes, edges between them, and the JSON form the CLI
// reads.
package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/gridwire/gridwire/edgeroute"
	"github.com/gridwire/gridwire/lib/geo"
)

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	// Lane groups nodes into rows for the swimlane layout.
	Lane string `json:"lane,omitempty"`
	// Pinned nodes keep their modeled position; layout engines skip them.
	Pinned bool `json:"pinned,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

func (n *Node) Box() *geo.Box {
	return geo.NewBox(geo.NewPoint(n.X, n.Y), n.Width, n.Height)
}

type Edge struct {
	ID  string `json:"id"`
	Src string `json:"src"`
	Dst string `json:"dst"`

	SrcSide edgeroute.Side `json:"srcSide,omitempty"`
	DstSide edgeroute.Side `json:"dstSide,omitempty"`

	// Waypoints, when present, bypass routing entirely and are drawn
	// verbatim. They come from manual dragging in an editor.
	Waypoints geo.Route `json:"waypoints,omitempty"`
}

type Diagram struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`

	byID map[string]*Node
}

// Decode reads a JSON model and validates it. Validation is the precondition
// boundary for the router: past this point coordinates are known finite, so
// the geometry arithmetic downstream cannot silently corrupt paths.
func Decode(r io.Reader) (*Diagram, error) {
	var d Diagram
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding diagram: %w", err)
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Diagram) init() error {
	d.byID = make(map[string]*Node, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if _, ok := d.byID[n.ID]; ok {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		for _, v := range []float64{n.X, n.Y, n.Width, n.Height} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("node %q has a non-finite coordinate", n.ID)
			}
		}
		if n.Width < 0 || n.Height < 0 {
			return fmt.Errorf("node %q has a negative size", n.ID)
		}
		d.byID[n.ID] = n
	}
	seenEdges := make(map[string]struct{}, len(d.Edges))
	for _, e := range d.Edges {
		if e.ID == "" {
			return fmt.Errorf("edge with empty id")
		}
		if _, ok := seenEdges[e.ID]; ok {
			return fmt.Errorf("duplicate edge id %q", e.ID)
		}
		seenEdges[e.ID] = struct{}{}
		if _, ok := d.byID[e.Src]; !ok {
			return fmt.Errorf("edge %q references unknown node %q", e.ID, e.Src)
		}
		if _, ok := d.byID[e.Dst]; !ok {
			return fmt.Errorf("edge %q references unknown node %q", e.ID, e.Dst)
		}
		for _, s := range []edgeroute.Side{e.SrcSide, e.DstSide} {
			switch s {
			case "", edgeroute.SideTop, edgeroute.SideBottom, edgeroute.SideLeft, edgeroute.SideRight:
			default:
				return fmt.Errorf("edge %q has invalid side %q", e.ID, s)
			}
		}
	}
	return nil
}

func (d *Diagram) Node(id string) *Node {
	if d.byID == nil {
		d.byID = make(map[string]*Node, len(d.Nodes))
		for _, n := range d.Nodes {
			d.byID[n.ID] = n
		}
	}
	return d.byID[id]
}

// Obstacles returns the boxes of every node other than the edge's own
// endpoints, which is exactly what the router treats as blocking.
func (d *Diagram) Obstacles(e *Edge) []*geo.Box {
	out := make([]*geo.Box, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == e.Src || n.ID == e.Dst {
			continue
		}
		out = append(out, n.Box())
	}
	return out
}

// AnchorPoint is the midpoint of the given node side, the nominal endpoint
// before multi-edge spacing adjusts it.
func AnchorPoint(n *Node, side edgeroute.Side) *geo.Point {
	switch side {
	case edgeroute.SideTop:
		return geo.NewPoint(n.X+n.Width/2, n.Y)
	case edgeroute.SideBottom:
		return geo.NewPoint(n.X+n.Width/2, n.Y+n.Height)
	case edgeroute.SideLeft:
		return geo.NewPoint(n.X, n.Y+n.Height/2)
	default:
		return geo.NewPoint(n.X+n.Width, n.Y+n.Height/2)
	}
}

// Sides picks connection sides for an edge when the model leaves them
// unset: the dominant axis between the node centers decides whether the
// edge runs horizontally or vertically.
func (d *Diagram) Sides(e *Edge) (edgeroute.Side, edgeroute.Side) {
	srcSide, dstSide := e.SrcSide, e.DstSide
	if srcSide != "" && dstSide != "" {
		return srcSide, dstSide
	}

	src := d.Node(e.Src)
	dst := d.Node(e.Dst)
	dx := dst.Box().Center().X - src.Box().Center().X
	dy := dst.Box().Center().Y - src.Box().Center().Y

	var autoSrc, autoDst edgeroute.Side
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			autoSrc, autoDst = edgeroute.SideRight, edgeroute.SideLeft
		} else {
			autoSrc, autoDst = edgeroute.SideLeft, edgeroute.SideRight
		}
	} else {
		if dy >= 0 {
			autoSrc, autoDst = edgeroute.SideBottom, edgeroute.SideTop
		} else {
			autoSrc, autoDst = edgeroute.SideTop, edgeroute.SideBottom
		}
	}
	if srcSide == "" {
		srcSide = autoSrc
	}
	if dstSide == "" {
		dstSide = autoDst
	}
	return srcSide, dstSide
}
