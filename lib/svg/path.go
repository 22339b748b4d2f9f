package svg

import (
	"fmt"
	"math"
	"strings"

	"github.com/gridwire/gridwire/lib/geo"
)

// SvgPathContext accumulates SVG path commands in diagram coordinates,
// translated by TopLeft and scaled by ScaleX/ScaleY.
type SvgPathContext struct {
	Commands []string
	Start    *geo.Point
	Current  *geo.Point
	TopLeft  *geo.Point
	ScaleX   float64
	ScaleY   float64
}

func chopPrecision(f float64) float64 {
	return math.Round(f*10000) / 10000
}

func NewSVGPathContext(tl *geo.Point, sx, sy float64) *SvgPathContext {
	return &SvgPathContext{TopLeft: tl.Copy(), ScaleX: sx, ScaleY: sy}
}

func (c *SvgPathContext) Absolute(x, y float64) *geo.Point {
	return geo.NewPoint(chopPrecision(c.TopLeft.X+c.ScaleX*x), chopPrecision(c.TopLeft.Y+c.ScaleY*y))
}

func (c *SvgPathContext) StartAt(x, y float64) {
	p := c.Absolute(x, y)
	c.Start = p
	c.Commands = append(c.Commands, fmt.Sprintf("M %v %v", p.X, p.Y))
	c.Current = p.Copy()
}

func (c *SvgPathContext) L(x, y float64) {
	endPoint := c.Absolute(x, y)
	c.Commands = append(c.Commands, fmt.Sprintf("L %v %v", endPoint.X, endPoint.Y))
	c.Current = endPoint.Copy()
}

// Q appends a quadratic curve through control point (cx, cy) to (x, y).
func (c *SvgPathContext) Q(cx, cy, x, y float64) {
	control := c.Absolute(cx, cy)
	endPoint := c.Absolute(x, y)
	c.Commands = append(c.Commands, fmt.Sprintf(
		"Q %v %v %v %v",
		control.X, control.Y,
		endPoint.X, endPoint.Y,
	))
	c.Current = endPoint.Copy()
}

func (c *SvgPathContext) Z() {
	c.Commands = append(c.Commands, "Z")
	c.Current = c.Start.Copy()
}

func (c *SvgPathContext) PathData() string {
	return strings.Join(c.Commands, " ")
}
