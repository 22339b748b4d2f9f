package edgeroute

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridwire/gridwire/lib/geo"
)

func TestFanOutFiveEdges(t *testing.T) {
	// five edges on the same side, registered out of order: offsets follow
	// lexicographic edge-ID order and center around the anchor
	points := make([]*geo.Point, 5)
	anchors := make([]Anchor, 5)
	ids := []string{"e3", "e0", "e4", "e2", "e1"}
	for i, id := range ids {
		points[i] = geo.NewPoint(100, 50)
		anchors[i] = Anchor{EdgeID: id, NodeID: "n1", Side: SideRight, Point: points[i]}
	}

	FanOut(anchors)

	offsets := map[string]float64{}
	for i, id := range ids {
		offsets[id] = points[i].Y - 50
	}
	assert.Equal(t, -20., offsets["e0"])
	assert.Equal(t, -10., offsets["e1"])
	assert.Equal(t, 0., offsets["e2"])
	assert.Equal(t, 10., offsets["e3"])
	assert.Equal(t, 20., offsets["e4"])

	// x is untouched on a left/right side
	for _, p := range points {
		assert.Equal(t, 100., p.X)
	}
}

func TestFanOutEvenCount(t *testing.T) {
	p1 := geo.NewPoint(0, 0)
	p2 := geo.NewPoint(0, 0)
	FanOut([]Anchor{
		{EdgeID: "a", NodeID: "n", Side: SideTop, Point: p1},
		{EdgeID: "b", NodeID: "n", Side: SideTop, Point: p2},
	})

	// symmetric around zero, spaced by AnchorSpacing, applied on x for a
	// top/bottom side
	assert.Equal(t, -5., p1.X)
	assert.Equal(t, 5., p2.X)
	assert.Equal(t, 0., p1.Y)
	assert.Equal(t, 0., p2.Y)
}

func TestFanOutSingleEdgeUntouched(t *testing.T) {
	p := geo.NewPoint(30, 40)
	FanOut([]Anchor{{EdgeID: "only", NodeID: "n", Side: SideLeft, Point: p}})
	assert.True(t, p.Equals(geo.NewPoint(30, 40)))
}

func TestFanOutSeparatesGroups(t *testing.T) {
	// same side on different nodes must not interfere
	p1 := geo.NewPoint(0, 0)
	p2 := geo.NewPoint(0, 0)
	FanOut([]Anchor{
		{EdgeID: "a", NodeID: "n1", Side: SideRight, Point: p1},
		{EdgeID: "b", NodeID: "n2", Side: SideRight, Point: p2},
	})
	assert.True(t, p1.Equals(geo.NewPoint(0, 0)))
	assert.True(t, p2.Equals(geo.NewPoint(0, 0)))
}

func TestFanOffsetsSymmetric(t *testing.T) {
	for _, count := range []int{2, 3, 4, 7} {
		sum := 0.
		for i := 0; i < count; i++ {
			sum += fanOffset(i, count)
		}
		assert.Equal(t, 0., sum, "offsets for %d edges are not centered", count)
		if count > 1 {
			assert.Equal(t, AnchorSpacing*1., fanOffset(1, count)-fanOffset(0, count))
		}
	}
}
