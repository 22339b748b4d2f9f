package edgeroute

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridwire/gridwire/lib/geo"
)

func TestSimplifyStraightLine(t *testing.T) {
	// the centered elbow between aligned endpoints: a duplicated bend point
	// and a collinear run collapse to a single segment
	path := Simplify(geo.Route{
		geo.NewPoint(0, 50),
		geo.NewPoint(150, 50),
		geo.NewPoint(150, 50),
		geo.NewPoint(300, 50),
	})

	assert.Equal(t, 2, len(path))
	assert.True(t, path[0].Equals(geo.NewPoint(0, 50)))
	assert.True(t, path[1].Equals(geo.NewPoint(300, 50)))
}

func TestSimplifyKeepsBends(t *testing.T) {
	original := geo.Route{
		geo.NewPoint(0, 0),
		geo.NewPoint(50, 0),
		geo.NewPoint(50, 100),
		geo.NewPoint(100, 100),
	}
	path := Simplify(original)

	assert.Equal(t, 4, len(path))
	for i := range original {
		assert.True(t, path[i].Equals(original[i]))
	}
}

func TestSimplifyTolerance(t *testing.T) {
	// 0.05 is within the 0.1 tolerance: the jitter point is dropped
	path := Simplify(geo.Route{
		geo.NewPoint(0, 0),
		geo.NewPoint(50, 0.05),
		geo.NewPoint(100, 0),
	})
	assert.Equal(t, 2, len(path))

	// 0.5 is a real bend
	path = Simplify(geo.Route{
		geo.NewPoint(0, 0),
		geo.NewPoint(50, 0.5),
		geo.NewPoint(100, 0),
	})
	assert.Equal(t, 3, len(path))
}

func TestSimplifyShortRoutes(t *testing.T) {
	single := Simplify(geo.Route{geo.NewPoint(5, 5)})
	assert.Equal(t, 1, len(single))

	pair := Simplify(geo.Route{geo.NewPoint(0, 0), geo.NewPoint(10, 0)})
	assert.Equal(t, 2, len(pair))
}

func TestSimplifyPreservesEndpoints(t *testing.T) {
	path := Simplify(geo.Route{
		geo.NewPoint(0, 0),
		geo.NewPoint(0, 0),
		geo.NewPoint(80, 0),
		geo.NewPoint(80, 40),
		geo.NewPoint(80, 40),
	})

	assert.True(t, path[0].Equals(geo.NewPoint(0, 0)))
	assert.True(t, path[len(path)-1].Equals(geo.NewPoint(80, 40)))
}
