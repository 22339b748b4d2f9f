package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentCrosses(t *testing.T) {
	// mid crossing
	s1 := NewSegment(NewPoint(0, 0), NewPoint(10, 10))
	s2 := NewSegment(NewPoint(0, 10), NewPoint(10, 0))
	assert.True(t, s1.Crosses(*s2))

	// touching at an endpoint is not a crossing
	s3 := NewSegment(NewPoint(10, 10), NewPoint(10, 0))
	assert.False(t, s1.Crosses(*s3))
	s4 := NewSegment(NewPoint(0, 0), NewPoint(0, 10))
	assert.False(t, s1.Crosses(*s4))

	// disjoint
	s5 := NewSegment(NewPoint(3, 8), NewPoint(2, 15))
	assert.False(t, s1.Crosses(*s5))

	// parallel, overlapping lines have a zero determinant
	s6 := NewSegment(NewPoint(0, 0), NewPoint(5, 5))
	assert.False(t, s1.Crosses(*s6))

	// zero-length segment
	s7 := NewSegment(NewPoint(5, 5), NewPoint(5, 5))
	assert.False(t, s1.Crosses(*s7))
}

func TestSegmentLength(t *testing.T) {
	assert.Equal(t, 10., NewSegment(NewPoint(0, 0), NewPoint(10, 0)).Length())
	assert.Equal(t, 10., NewSegment(NewPoint(3, 0), NewPoint(3, 10)).Length())
	assert.Equal(t, 5., NewSegment(NewPoint(0, 0), NewPoint(3, 4)).Length())
}
