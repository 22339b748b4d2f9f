package edgeroute

import (
	"sort"

	"github.com/gridwire/gridwire/lib/geo"
)

// Anchor is one edge endpoint attached to a node side. FanOut adjusts Point
// in place; the adjusted point is what routing consumes.
type Anchor struct {
	EdgeID string
	NodeID string
	Side   Side
	Point  *geo.Point
}

// FanOut spreads the anchors of edges sharing a node side so parallel edges
// fan out instead of overlapping. Within a group, edges are ordered
// lexicographically by edge ID so layouts reproduce across runs, and each
// gets an offset of (index - (count-1)/2) * AnchorSpacing perpendicular to
// the side's normal. The fan stays centered on the original anchor point.
// This runs once, before any routing strategy sees the request.
func FanOut(anchors []Anchor) {
	type groupKey struct {
		nodeID string
		side   Side
	}
	groups := make(map[groupKey][]Anchor)
	for _, a := range anchors {
		k := groupKey{a.NodeID, a.Side}
		groups[k] = append(groups[k], a)
	}

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].EdgeID < group[j].EdgeID
		})
		for i, a := range group {
			offset := fanOffset(i, len(group))
			if a.Side.IsHorizontal() {
				a.Point.Y += offset
			} else {
				a.Point.X += offset
			}
		}
	}
}

func fanOffset(index, count int) float64 {
	return (float64(index) - float64(count-1)/2) * AnchorSpacing
}
