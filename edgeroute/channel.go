package edgeroute

import (
	"math"
	"sort"

	"github.com/gridwire/gridwire/lib/geo"
)

// channelRoute builds a 5-segment path: a stub out of each endpoint and a
// shared perpendicular channel connecting the two stubs. Candidate channel
// positions are scanned outward from the center of the endpoints' extent,
// so the first collision-free candidate is also the most visually centered
// one. Returns nil when every candidate within range collides.
func channelRoute(req Request) geo.Route {
	exit := req.Src.AddVector(req.SrcSide.Normal().Multiply(ChannelMargin))
	entry := req.Dst.AddVector(req.DstSide.Normal().Multiply(ChannelMargin))

	if req.SrcSide.IsHorizontal() {
		for _, y := range channelCandidates(req.Src.Y, req.Dst.Y) {
			path := geo.Route{
				req.Src.Copy(),
				geo.NewPoint(exit.X, req.Src.Y),
				geo.NewPoint(exit.X, y),
				geo.NewPoint(entry.X, y),
				geo.NewPoint(entry.X, req.Dst.Y),
				req.Dst.Copy(),
			}
			if pathClear(req.Obstacles, path) {
				return path
			}
		}
		return nil
	}

	for _, x := range channelCandidates(req.Src.X, req.Dst.X) {
		path := geo.Route{
			req.Src.Copy(),
			geo.NewPoint(req.Src.X, exit.Y),
			geo.NewPoint(x, exit.Y),
			geo.NewPoint(x, entry.Y),
			geo.NewPoint(req.Dst.X, entry.Y),
			req.Dst.Copy(),
		}
		if pathClear(req.Obstacles, path) {
			return path
		}
	}
	return nil
}

// channelCandidates returns the channel positions between a and b extended
// by ChannelRange on both ends, stepped by ChannelStep, ordered by distance
// from the center of the range. Ties resolve to the smaller coordinate so
// scans stay deterministic.
func channelCandidates(a, b float64) []float64 {
	lo := math.Min(a, b) - ChannelRange
	hi := math.Max(a, b) + ChannelRange
	center := (lo + hi) / 2

	var vals []float64
	for v := lo; v <= hi; v += ChannelStep {
		vals = append(vals, v)
	}
	sort.SliceStable(vals, func(i, j int) bool {
		di := math.Abs(vals[i] - center)
		dj := math.Abs(vals[j] - center)
		if di == dj {
			return vals[i] < vals[j]
		}
		return di < dj
	})
	return vals
}
