// Package geometry provides the 2D primitives and coordinate-frame
// transforms shared by every component: points, lines, bounding boxes, and
// the mediabox↔visual transform pair driven by PDF page rotation.
package geometry

import "math"

// Point is a 2D coordinate in PDF points.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// BBox is an axis-aligned bounding box, (X0,Y0) top-left, (X1,Y1) bottom-right.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

func (b BBox) Center() Point {
	return Point{X: (b.X0 + b.X1) / 2, Y: (b.Y0 + b.Y1) / 2}
}

func (b BBox) Width() float64  { return b.X1 - b.X0 }
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }
func (b BBox) Area() float64   { return b.Width() * b.Height() }

func (b BBox) Contains(p Point) bool {
	return b.X0 <= p.X && p.X <= b.X1 && b.Y0 <= p.Y && p.Y <= b.Y1
}

func (b BBox) Overlaps(o BBox) bool {
	return !(b.X1 < o.X0 || o.X1 < b.X0 || b.Y1 < o.Y0 || o.Y1 < b.Y0)
}

func (b BBox) Expand(margin float64) BBox {
	return BBox{X0: b.X0 - margin, Y0: b.Y0 - margin, X1: b.X1 + margin, Y1: b.Y1 + margin}
}

// Intersection returns the overlapping region, or ok=false if disjoint.
func (b BBox) Intersection(o BBox) (BBox, bool) {
	x0 := math.Max(b.X0, o.X0)
	y0 := math.Max(b.Y0, o.Y0)
	x1 := math.Min(b.X1, o.X1)
	y1 := math.Min(b.Y1, o.Y1)
	if x0 < x1 && y0 < y1 {
		return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}, true
	}
	return BBox{}, false
}

// Line is a vector line segment with its PDF stroke width and color.
type Line struct {
	P1, P2 Point
	Length float64
	Angle  float64 // degrees, 0=right, 90=down, taken mod 360
	Width  float64
	Color  []float64
}

// NewLine builds a Line from two endpoints, computing length/angle.
func NewLine(p1, p2 Point, width float64, color []float64) Line {
	length := Dist(p1, p2)
	angle := math.Mod(math.Atan2(p2.Y-p1.Y, p2.X-p1.X)*180/math.Pi, 360)
	if angle < 0 {
		angle += 360
	}
	if width == 0 {
		width = 1.0
	}
	return Line{P1: p1, P2: p2, Length: length, Angle: angle, Width: width, Color: color}
}

func (l Line) Midpoint() Point {
	return Point{X: (l.P1.X + l.P2.X) / 2, Y: (l.P1.Y + l.P2.Y) / 2}
}

// IsHorizontal reports whether the line's angle mod 180 falls within
// toleranceDeg of 0 or 180.
func IsHorizontal(l Line, toleranceDeg float64) bool {
	a := math.Mod(l.Angle, 180)
	return a < toleranceDeg || a > (180-toleranceDeg)
}

// IsVertical reports whether the line's angle mod 180 falls within
// toleranceDeg of 90.
func IsVertical(l Line, toleranceDeg float64) bool {
	a := math.Mod(l.Angle, 180)
	return math.Abs(a-90) < toleranceDeg
}

// PointToLineDistance returns the perpendicular distance from point to the
// line segment, clamped to the segment's extent.
func PointToLineDistance(p Point, l Line) float64 {
	dx := l.P2.X - l.P1.X
	dy := l.P2.Y - l.P1.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq < 1e-10 {
		return Dist(p, l.P1)
	}
	t := ((p.X-l.P1.X)*dx + (p.Y-l.P1.Y)*dy) / lengthSq
	t = math.Max(0.0, math.Min(1.0, t))
	proj := Point{X: l.P1.X + t*dx, Y: l.P1.Y + t*dy}
	return Dist(p, proj)
}

// PointToSegmentDistance is an alias kept for leader-tracing call sites that
// operate on raw coordinates rather than a Line value.
func PointToSegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	return PointToLineDistance(Point{X: px, Y: py}, Line{P1: Point{X: x1, Y: y1}, P2: Point{X: x2, Y: y2}})
}

// ToVisual transforms a mediabox point to visual (rendered) coordinates
// given the page rotation (0/90/180/270) and mediabox width/height.
func ToVisual(mx, my float64, rot int, mw, mh float64) (float64, float64) {
	switch rot {
	case 270:
		return my, mw - mx
	case 90:
		return mh - my, mx
	case 180:
		return mw - mx, mh - my
	default:
		return mx, my
	}
}

// ToMediabox transforms a visual point back to mediabox coordinates.
func ToMediabox(vx, vy float64, rot int, mw, mh float64) (float64, float64) {
	switch rot {
	case 270:
		return mw - vy, vx
	case 90:
		return vy, mh - vx
	case 180:
		return mw - vx, mh - vy
	default:
		return vx, vy
	}
}

// VisRectToMediabox converts a visual-space rectangle to a mediabox BBox,
// taking the bounding box of all four transformed corners (rotation can
// swap min/max ordering).
func VisRectToMediabox(vx0, vy0, vx1, vy1 float64, rot int, mw, mh float64) BBox {
	type corner struct{ x, y float64 }
	corners := make([]corner, 4)
	xs := [2]float64{vx0, vx1}
	ys := [2]float64{vy0, vy1}
	i := 0
	for _, vx := range xs {
		for _, vy := range ys {
			x, y := ToMediabox(vx, vy, rot, mw, mh)
			corners[i] = corner{x, y}
			i++
		}
	}
	minX, minY := corners[0].x, corners[0].y
	maxX, maxY := corners[0].x, corners[0].y
	for _, c := range corners[1:] {
		minX = math.Min(minX, c.x)
		maxX = math.Max(maxX, c.x)
		minY = math.Min(minY, c.y)
		maxY = math.Max(maxY, c.y)
	}
	return BBox{X0: minX, Y0: minY, X1: maxX, Y1: maxY}
}
