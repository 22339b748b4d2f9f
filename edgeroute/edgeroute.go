// Package edgeroute computes orthogonal, obstacle-avoiding routes between
// connection points on a diagram.
//
// A request is routed by a cascade of strategies ordered by cost: a direct
// elbow with a single bend, a 5-segment channel route, and finally an A*
// search over a sparse Hanan grid built from the obstacle edges. The first
// strategy that produces a collision-free path wins. If all of them fail the
// ratio-0.5 elbow is returned without collision checks so the caller always
// has something to draw.
package edgeroute

import (
	"github.com/gridwire/gridwire/lib/geo"
)

const (
	// CollisionMargin is the clearance added around every obstacle when
	// testing a segment for collisions, so routes keep visual distance from
	// node borders.
	CollisionMargin = 10.

	// GridMargin offsets Hanan grid candidate coordinates from obstacle
	// edges. It is intentionally larger than CollisionMargin so grid lines
	// sit outside the collision clearance.
	GridMargin = 20.

	// ChannelMargin is the length of the stub leaving each endpoint in the
	// channel strategy.
	ChannelMargin = 20.

	// ChannelRange is how far beyond the endpoints' perpendicular extent the
	// channel scan reaches, and ChannelStep is its granularity.
	ChannelRange = 200.
	ChannelStep  = 20.

	// TurnPenalty is added to the A* transition cost whenever the direction
	// of travel changes. It biases the search toward routes with fewer bends.
	TurnPenalty = 100.

	// MaxExpansions bounds the A* phase so worst-case latency stays fixed.
	MaxExpansions = 2000

	// CornerRadius is the default rounding radius applied to bends.
	CornerRadius = 8.

	// AnchorSpacing separates the endpoints of edges sharing a node side.
	AnchorSpacing = 10.

	collinearTolerance = 0.1
)

// Side is the compass direction at which an edge leaves or enters a node.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// IsHorizontal reports whether an edge on this side leaves the node
// traveling horizontally.
func (s Side) IsHorizontal() bool {
	return s == SideLeft || s == SideRight
}

// Normal is the outward unit normal of the side.
func (s Side) Normal() geo.Vector {
	switch s {
	case SideTop:
		return geo.NewVector(0, -1)
	case SideBottom:
		return geo.NewVector(0, 1)
	case SideLeft:
		return geo.NewVector(-1, 0)
	default:
		return geo.NewVector(1, 0)
	}
}

// Request describes a single routing call. Obstacles are the boxes of every
// node other than the edge's own endpoints. SrcBox and DstBox optionally name
// the endpoint-owning boxes so the A* phase can forbid re-entering them.
//
// The router does not validate coordinates; callers are responsible for
// keeping them finite and for placing Src/Dst on their owner boundaries.
type Request struct {
	Src     *geo.Point
	Dst     *geo.Point
	SrcSide Side
	DstSide Side

	Obstacles []*geo.Box

	SrcBox *geo.Box
	DstBox *geo.Box
}

type strategy func(Request) geo.Route

// Route computes an orthogonal path from req.Src to req.Dst that avoids
// req.Obstacles where possible. The returned polyline starts at req.Src,
// ends at req.Dst, and has no redundant collinear points. It never fails:
// when no collision-free path is found within the iteration cap, the
// ratio-0.5 elbow is returned as a best effort.
//
// Route is a pure function: identical requests produce identical routes.
func Route(req Request) geo.Route {
	for _, s := range []strategy{directElbow, channelRoute, gridRoute} {
		if path := s(req); path != nil {
			return Simplify(path)
		}
	}
	return Simplify(elbowAt(req, 0.5))
}

// segmentClear reports whether the segment a->b stays CollisionMargin away
// from every obstacle.
func segmentClear(obstacles []*geo.Box, a, b *geo.Point) bool {
	seg := geo.Segment{Start: a, End: b}
	for _, obstacle := range obstacles {
		if obstacle.Expanded(CollisionMargin).IntersectsSegment(seg) {
			return false
		}
	}
	return true
}

func pathClear(obstacles []*geo.Box, path geo.Route) bool {
	for i := 0; i < len(path)-1; i++ {
		if !segmentClear(obstacles, path[i], path[i+1]) {
			return false
		}
	}
	return true
}
