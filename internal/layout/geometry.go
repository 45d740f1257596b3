package layout

import (
	"fmt"
	"math"
)

// Point is a location on a page.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Rect is an axis-aligned rectangle. Y1 is the top edge, Y2 the bottom.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Union returns the smallest rectangle covering all rects.
// The union of nothing is the zero rectangle.
func Union(rects ...Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	u := rects[0]
	for _, r := range rects[1:] {
		u.X1 = math.Min(u.X1, r.X1)
		u.Y1 = math.Max(u.Y1, r.Y1)
		u.X2 = math.Max(u.X2, r.X2)
		u.Y2 = math.Min(u.Y2, r.Y2)
	}
	return u
}

// Overlaps reports whether r and o intersect, edges included.
func (r Rect) Overlaps(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 >= o.Y2 && r.Y2 <= o.Y1
}

func (r Rect) Width() float64  { return math.Abs(r.X1 - r.X2) }
func (r Rect) Height() float64 { return math.Abs(r.Y1 - r.Y2) }

func (r Rect) TopLeft() Point     { return Point{X: r.X1, Y: r.Y1} }
func (r Rect) TopRight() Point    { return Point{X: r.X2, Y: r.Y1} }
func (r Rect) BottomLeft() Point  { return Point{X: r.X1, Y: r.Y2} }
func (r Rect) BottomRight() Point { return Point{X: r.X2, Y: r.Y2} }

func (r Rect) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", r.X1, r.Y1, r.X2, r.Y2)
}
