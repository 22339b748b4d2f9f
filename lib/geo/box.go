package geo

import "fmt"

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

// Expanded returns a copy of b grown by margin on all four sides.
func (b *Box) Expanded(margin float64) *Box {
	return NewBox(
		NewPoint(b.TopLeft.X-margin, b.TopLeft.Y-margin),
		b.Width+2*margin,
		b.Height+2*margin,
	)
}

// Contains is an inclusive boundary test.
func (b *Box) Contains(p *Point) bool {
	return p.X >= b.TopLeft.X && p.X <= b.TopLeft.X+b.Width &&
		p.Y >= b.TopLeft.Y && p.Y <= b.TopLeft.Y+b.Height
}

func (b *Box) Edges() []Segment {
	tl := b.TopLeft
	tr := NewPoint(tl.X+b.Width, tl.Y)
	br := NewPoint(tr.X, tr.Y+b.Height)
	bl := NewPoint(tl.X, br.Y)
	return []Segment{
		{tl, tr},
		{tr, br},
		{br, bl},
		{bl, tl},
	}
}

// IntersectsSegment reports whether s has either endpoint inside b or
// crosses any of b's four edges.
func (b *Box) IntersectsSegment(s Segment) bool {
	if b.Contains(s.Start) || b.Contains(s.End) {
		return true
	}
	for _, edge := range b.Edges() {
		if s.Crosses(edge) {
			return true
		}
	}
	return false
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
