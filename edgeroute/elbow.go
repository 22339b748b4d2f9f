package edgeroute

import (
	"github.com/gridwire/gridwire/lib/geo"
)

// Center first, then symmetric pairs moving outward. The ordering biases
// toward visually centered bends and must stay stable across releases so
// diagrams do not shift between runs.
var elbowRatios = []float64{0.5, 0.3, 0.7, 0.2, 0.8, 0.1, 0.9}

// directElbow is the cheapest strategy: a single bend at a split ratio
// between the endpoints. Returns nil when no ratio yields a collision-free
// path.
func directElbow(req Request) geo.Route {
	for _, ratio := range elbowRatios {
		path := elbowAt(req, ratio)
		if pathClear(req.Obstacles, path) {
			return path
		}
	}
	return nil
}

// elbowAt builds the 4-point elbow path at the given split ratio. The split
// axis follows the source side: a horizontally-leaving edge splits on x, a
// vertically-leaving edge on y.
func elbowAt(req Request, ratio float64) geo.Route {
	if req.SrcSide.IsHorizontal() {
		midX := req.Src.X + ratio*(req.Dst.X-req.Src.X)
		return geo.Route{
			req.Src.Copy(),
			geo.NewPoint(midX, req.Src.Y),
			geo.NewPoint(midX, req.Dst.Y),
			req.Dst.Copy(),
		}
	}
	midY := req.Src.Y + ratio*(req.Dst.Y-req.Src.Y)
	return geo.Route{
		req.Src.Copy(),
		geo.NewPoint(req.Src.X, midY),
		geo.NewPoint(req.Dst.X, midY),
		req.Dst.Copy(),
	}
}
