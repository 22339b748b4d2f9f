package geo

import (
	"fmt"
)

type Segment struct {
	Start *Point
	End   *Point
}

func NewSegment(from, to *Point) *Segment {
	return &Segment{from, to}
}

func (s Segment) ToString() string {
	return fmt.Sprintf("%v -> %v", s.Start.ToString(), s.End.ToString())
}

func (s Segment) Length() float64 {
	return EuclideanDistance(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

func (s Segment) ToVector() Vector {
	return NewVector(s.End.X-s.Start.X, s.End.Y-s.Start.Y)
}

// Crosses reports whether the two segments cross in their strict interiors.
// Touching at an endpoint does not count, and parallel (zero-determinant)
// segments never cross.
func (s Segment) Crosses(other Segment) bool {
	// Parametrize both segments and solve with Cramer's rule:
	//   s.Start + t*(s.End-s.Start) == other.Start + u*(other.End-other.Start)
	dx1 := s.End.X - s.Start.X
	dy1 := s.End.Y - s.Start.Y
	dx2 := other.End.X - other.Start.X
	dy2 := other.End.Y - other.Start.Y

	denom := dx1*dy2 - dy1*dx2
	if denom == 0 {
		return false
	}

	ex := other.Start.X - s.Start.X
	ey := other.Start.Y - s.Start.Y

	t := (ex*dy2 - ey*dx2) / denom
	u := (ex*dy1 - ey*dx1) / denom

	return t > 0 && t < 1 && u > 0 && u < 1
}
