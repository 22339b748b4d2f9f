package diagram

import (
	"github.com/gridwire/gridwire/edgeroute"
	"github.com/gridwire/gridwire/lib/geo"
)

// RouteEdges computes the drawn polyline for every edge of a laid-out
// diagram. Edges with manual waypoints are used verbatim; the rest get
// fanned-out anchors and a routed orthogonal path.
func (d *Diagram) RouteEdges() map[string]geo.Route {
	type endpoints struct {
		src, dst         *geo.Point
		srcSide, dstSide edgeroute.Side
	}

	eps := make(map[string]*endpoints, len(d.Edges))
	var anchors []edgeroute.Anchor
	for _, e := range d.Edges {
		if len(e.Waypoints) > 0 {
			continue
		}
		srcSide, dstSide := d.Sides(e)
		ep := &endpoints{
			src:     AnchorPoint(d.Node(e.Src), srcSide),
			dst:     AnchorPoint(d.Node(e.Dst), dstSide),
			srcSide: srcSide,
			dstSide: dstSide,
		}
		eps[e.ID] = ep
		anchors = append(anchors,
			edgeroute.Anchor{EdgeID: e.ID, NodeID: e.Src, Side: srcSide, Point: ep.src},
			edgeroute.Anchor{EdgeID: e.ID, NodeID: e.Dst, Side: dstSide, Point: ep.dst},
		)
	}
	// Spacing adjusts the nominal anchors before any routing runs.
	edgeroute.FanOut(anchors)

	routes := make(map[string]geo.Route, len(d.Edges))
	for _, e := range d.Edges {
		if len(e.Waypoints) > 0 {
			routes[e.ID] = e.Waypoints.Copy()
			continue
		}
		ep := eps[e.ID]
		routes[e.ID] = edgeroute.Route(edgeroute.Request{
			Src:       ep.src,
			Dst:       ep.dst,
			SrcSide:   ep.srcSide,
			DstSide:   ep.dstSide,
			Obstacles: d.Obstacles(e),
			SrcBox:    d.Node(e.Src).Box(),
			DstBox:    d.Node(e.Dst).Box(),
		})
	}
	return routes
}
