package edgeroute

import (
	"math"

	"github.com/gridwire/gridwire/lib/geo"
)

// CommandKind discriminates the drawing instructions produced by
// RoundCorners. The sequence is renderer-agnostic: an SVG backend maps them
// to M/L/Q, a canvas backend to moveTo/lineTo/quadraticCurveTo.
type CommandKind int8

const (
	MoveTo CommandKind = iota
	LineTo
	QuadTo
)

// Command is one drawing instruction. Control is set for QuadTo only and
// holds the original sharp corner.
type Command struct {
	Kind    CommandKind
	To      *geo.Point
	Control *geo.Point
}

// RoundCorners converts a polyline into drawing commands where every bend is
// replaced by two straight sub-segments joined by a quadratic curve whose
// control point is the original corner. The radius is capped at half of
// either adjacent segment so neighboring corners never overshoot into each
// other. Near-zero-length segments pass through as straight lines.
func RoundCorners(route geo.Route, radius float64) []Command {
	if len(route) == 0 {
		return nil
	}
	cmds := []Command{{Kind: MoveTo, To: route[0].Copy()}}
	for i := 1; i < len(route)-1; i++ {
		corner := route[i]
		in := route[i-1].VectorTo(corner)
		out := corner.VectorTo(route[i+1])
		inLen := in.Length()
		outLen := out.Length()

		if inLen < collinearTolerance || outLen < collinearTolerance {
			cmds = append(cmds, Command{Kind: LineTo, To: corner.Copy()})
			continue
		}

		r := math.Min(radius, math.Min(inLen/2, outLen/2))
		curveStart := corner.AddVector(in.Unit().Multiply(-r))
		curveEnd := corner.AddVector(out.Unit().Multiply(r))
		cmds = append(cmds,
			Command{Kind: LineTo, To: curveStart},
			Command{Kind: QuadTo, To: curveEnd, Control: corner.Copy()},
		)
	}
	if len(route) > 1 {
		cmds = append(cmds, Command{Kind: LineTo, To: route[len(route)-1].Copy()})
	}
	return cmds
}
