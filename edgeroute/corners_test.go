package edgeroute

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridwire/gridwire/lib/geo"
)

func TestRoundCornersSingleBend(t *testing.T) {
	cmds := RoundCorners(geo.Route{
		geo.NewPoint(0, 0),
		geo.NewPoint(100, 0),
		geo.NewPoint(100, 100),
	}, CornerRadius)

	// MoveTo, LineTo up to the curve, QuadTo through the corner, LineTo end
	assert.Equal(t, 4, len(cmds))
	assert.Equal(t, MoveTo, cmds[0].Kind)
	assert.True(t, cmds[0].To.Equals(geo.NewPoint(0, 0)))

	assert.Equal(t, LineTo, cmds[1].Kind)
	assert.True(t, cmds[1].To.Equals(geo.NewPoint(92, 0)))

	assert.Equal(t, QuadTo, cmds[2].Kind)
	assert.True(t, cmds[2].Control.Equals(geo.NewPoint(100, 0)))
	assert.True(t, cmds[2].To.Equals(geo.NewPoint(100, 8)))

	assert.Equal(t, LineTo, cmds[3].Kind)
	assert.True(t, cmds[3].To.Equals(geo.NewPoint(100, 100)))
}

func TestRoundCornersRadiusCap(t *testing.T) {
	// a 10-unit middle segment caps the radius at 5 on both of its corners
	cmds := RoundCorners(geo.Route{
		geo.NewPoint(0, 0),
		geo.NewPoint(100, 0),
		geo.NewPoint(100, 10),
		geo.NewPoint(200, 10),
	}, CornerRadius)

	assert.Equal(t, 6, len(cmds))
	assert.True(t, cmds[1].To.Equals(geo.NewPoint(95, 0)))
	assert.True(t, cmds[2].To.Equals(geo.NewPoint(100, 5)))
	assert.True(t, cmds[3].To.Equals(geo.NewPoint(100, 5)))
	assert.True(t, cmds[4].To.Equals(geo.NewPoint(105, 10)))
}

func TestRoundCornersDegenerateSegment(t *testing.T) {
	// the near-zero middle segment passes through as a straight line
	cmds := RoundCorners(geo.Route{
		geo.NewPoint(0, 0),
		geo.NewPoint(100, 0),
		geo.NewPoint(100.05, 0),
		geo.NewPoint(200, 0),
	}, CornerRadius)

	for _, cmd := range cmds {
		assert.NotEqual(t, QuadTo, cmd.Kind)
	}
}

func TestRoundCornersNoBend(t *testing.T) {
	cmds := RoundCorners(geo.Route{
		geo.NewPoint(0, 0),
		geo.NewPoint(200, 0),
	}, CornerRadius)

	assert.Equal(t, 2, len(cmds))
	assert.Equal(t, MoveTo, cmds[0].Kind)
	assert.Equal(t, LineTo, cmds[1].Kind)
}

func TestRoundCornersEmpty(t *testing.T) {
	assert.Nil(t, RoundCorners(nil, CornerRadius))
}
