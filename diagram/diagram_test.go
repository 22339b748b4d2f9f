package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridwire/gridwire/edgeroute"
	"github.com/gridwire/gridwire/lib/geo"
)

func geoRoute(coords ...float64) geo.Route {
	route := make(geo.Route, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		route = append(route, geo.NewPoint(coords[i], coords[i+1]))
	}
	return route
}

func TestDecode(t *testing.T) {
	src := `{
		"nodes": [
			{"id": "a", "label": "Service A", "x": 0, "y": 0, "width": 100, "height": 60},
			{"id": "b", "x": 300, "y": 0, "width": 100, "height": 60}
		],
		"edges": [
			{"id": "e1", "src": "a", "dst": "b", "srcSide": "right", "dstSide": "left"}
		]
	}`
	d, err := Decode(strings.NewReader(src))
	assert.NoError(t, err)
	assert.Len(t, d.Nodes, 2)
	assert.Len(t, d.Edges, 1)
	assert.Equal(t, "Service A", d.Node("a").Label)
	assert.Equal(t, edgeroute.SideRight, d.Edges[0].SrcSide)
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want string
	}{
		{
			"bad json",
			`{"nodes": [`,
			"decoding diagram",
		},
		{
			"empty node id",
			`{"nodes": [{"id": ""}]}`,
			"empty id",
		},
		{
			"duplicate node id",
			`{"nodes": [{"id": "a"}, {"id": "a"}]}`,
			`duplicate node id "a"`,
		},
		{
			"negative size",
			`{"nodes": [{"id": "a", "width": -5}]}`,
			"negative size",
		},
		{
			"empty edge id",
			`{"nodes": [{"id": "a"}], "edges": [{"id": "", "src": "a", "dst": "a"}]}`,
			"edge with empty id",
		},
		{
			"duplicate edge id",
			`{"nodes": [{"id": "a"}], "edges": [{"id": "e", "src": "a", "dst": "a"}, {"id": "e", "src": "a", "dst": "a"}]}`,
			`duplicate edge id "e"`,
		},
		{
			"unknown src",
			`{"nodes": [{"id": "a"}], "edges": [{"id": "e", "src": "x", "dst": "a"}]}`,
			`unknown node "x"`,
		},
		{
			"unknown dst",
			`{"nodes": [{"id": "a"}], "edges": [{"id": "e", "src": "a", "dst": "x"}]}`,
			`unknown node "x"`,
		},
		{
			"invalid side",
			`{"nodes": [{"id": "a"}], "edges": [{"id": "e", "src": "a", "dst": "a", "srcSide": "middle"}]}`,
			`invalid side "middle"`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.src))
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestObstacles(t *testing.T) {
	d := &Diagram{
		Nodes: []*Node{
			{ID: "a", X: 0, Y: 0, Width: 100, Height: 60},
			{ID: "b", X: 300, Y: 0, Width: 100, Height: 60},
			{ID: "c", X: 150, Y: 0, Width: 60, Height: 60},
		},
		Edges: []*Edge{{ID: "e1", Src: "a", Dst: "b"}},
	}
	obstacles := d.Obstacles(d.Edges[0])
	assert.Len(t, obstacles, 1)
	assert.Equal(t, 150., obstacles[0].TopLeft.X)
}

func TestAnchorPoint(t *testing.T) {
	n := &Node{ID: "a", X: 100, Y: 200, Width: 80, Height: 40}

	assert.True(t, AnchorPoint(n, edgeroute.SideTop).Equals(geo.NewPoint(140, 200)))
	assert.True(t, AnchorPoint(n, edgeroute.SideBottom).Equals(geo.NewPoint(140, 240)))
	assert.True(t, AnchorPoint(n, edgeroute.SideLeft).Equals(geo.NewPoint(100, 220)))
	assert.True(t, AnchorPoint(n, edgeroute.SideRight).Equals(geo.NewPoint(180, 220)))
}

func TestSidesAuto(t *testing.T) {
	d := &Diagram{
		Nodes: []*Node{
			{ID: "a", X: 0, Y: 0, Width: 100, Height: 60},
			{ID: "right", X: 400, Y: 10, Width: 100, Height: 60},
			{ID: "below", X: 10, Y: 400, Width: 100, Height: 60},
		},
	}

	src, dst := d.Sides(&Edge{ID: "e1", Src: "a", Dst: "right"})
	assert.Equal(t, edgeroute.SideRight, src)
	assert.Equal(t, edgeroute.SideLeft, dst)

	src, dst = d.Sides(&Edge{ID: "e2", Src: "a", Dst: "below"})
	assert.Equal(t, edgeroute.SideBottom, src)
	assert.Equal(t, edgeroute.SideTop, dst)

	src, dst = d.Sides(&Edge{ID: "e3", Src: "right", Dst: "a"})
	assert.Equal(t, edgeroute.SideLeft, src)
	assert.Equal(t, edgeroute.SideRight, dst)

	// Explicit sides win over the auto pick.
	src, dst = d.Sides(&Edge{ID: "e4", Src: "a", Dst: "right", SrcSide: edgeroute.SideTop, DstSide: edgeroute.SideBottom})
	assert.Equal(t, edgeroute.SideTop, src)
	assert.Equal(t, edgeroute.SideBottom, dst)
}

func TestRouteEdges(t *testing.T) {
	d := &Diagram{
		Nodes: []*Node{
			{ID: "a", X: 0, Y: 0, Width: 100, Height: 60},
			{ID: "b", X: 300, Y: 0, Width: 100, Height: 60},
		},
		Edges: []*Edge{
			{ID: "e1", Src: "a", Dst: "b"},
		},
	}
	routes := d.RouteEdges()
	assert.Len(t, routes, 1)

	route := routes["e1"]
	assert.GreaterOrEqual(t, len(route), 2)
	// Straight horizontal shot between facing sides collapses to a line.
	assert.Equal(t, 100., route[0].X)
	assert.Equal(t, 30., route[0].Y)
	assert.Equal(t, 300., route[len(route)-1].X)
	assert.Equal(t, 30., route[len(route)-1].Y)
}

func TestRouteEdgesWaypoints(t *testing.T) {
	wp := geoRoute(0, 0, 50, 0, 50, 100)
	d := &Diagram{
		Nodes: []*Node{
			{ID: "a", X: 0, Y: 0, Width: 100, Height: 60},
			{ID: "b", X: 300, Y: 0, Width: 100, Height: 60},
		},
		Edges: []*Edge{
			{ID: "manual", Src: "a", Dst: "b", Waypoints: wp},
		},
	}
	routes := d.RouteEdges()

	got := routes["manual"]
	assert.Len(t, got, 3)
	for i := range wp {
		assert.True(t, got[i].Equals(wp[i]))
		// Copied, not aliased.
		assert.NotSame(t, wp[i], got[i])
	}
}

func TestRouteEdgesFanOut(t *testing.T) {
	d := &Diagram{
		Nodes: []*Node{
			{ID: "hub", X: 0, Y: 0, Width: 100, Height: 100},
			{ID: "b", X: 300, Y: 0, Width: 100, Height: 100},
		},
		Edges: []*Edge{
			{ID: "e1", Src: "hub", Dst: "b"},
			{ID: "e2", Src: "hub", Dst: "b"},
		},
	}
	routes := d.RouteEdges()

	// Two parallel edges leave the hub's right side at distinct heights.
	y1 := routes["e1"][0].Y
	y2 := routes["e2"][0].Y
	assert.NotEqual(t, y1, y2)
	assert.Equal(t, 10., y2-y1)
}
