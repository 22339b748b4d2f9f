package edgeroute

import (
	"github.com/gridwire/gridwire/lib/geo"
)

// Simplify removes adjacent duplicate points and any interior point whose
// neighbors share its x or its y within tolerance, since such a point
// contributes no visual bend. The endpoints are always preserved.
func Simplify(route geo.Route) geo.Route {
	route = dedupe(route)
	if len(route) < 3 {
		return route
	}

	out := geo.Route{route[0]}
	for i := 1; i < len(route)-1; i++ {
		prev := out[len(out)-1]
		curr := route[i]
		next := route[i+1]

		sameX := geo.PrecisionCompare(prev.X, curr.X, collinearTolerance) == 0 &&
			geo.PrecisionCompare(curr.X, next.X, collinearTolerance) == 0
		sameY := geo.PrecisionCompare(prev.Y, curr.Y, collinearTolerance) == 0 &&
			geo.PrecisionCompare(curr.Y, next.Y, collinearTolerance) == 0
		if sameX || sameY {
			continue
		}
		out = append(out, curr)
	}
	return append(out, route[len(route)-1])
}

func dedupe(route geo.Route) geo.Route {
	if len(route) == 0 {
		return route
	}
	out := geo.Route{route[0]}
	for _, p := range route[1:] {
		last := out[len(out)-1]
		if geo.PrecisionCompare(p.X, last.X, collinearTolerance) == 0 &&
			geo.PrecisionCompare(p.Y, last.Y, collinearTolerance) == 0 {
			continue
		}
		out = append(out, p)
	}
	// A trailing near-duplicate must not displace the endpoint itself.
	last := route[len(route)-1]
	if len(out) > 1 && !out[len(out)-1].Equals(last) {
		out[len(out)-1] = last
	}
	return out
}
