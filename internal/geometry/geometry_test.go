package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToVisual_RoundTrip(t *testing.T) {
	for _, rot := range []int{0, 90, 180, 270} {
		mw, mh := 612.0, 792.0
		mx, my := 100.0, 200.0
		vx, vy := ToVisual(mx, my, rot, mw, mh)
		bx, by := ToMediabox(vx, vy, rot, mw, mh)
		assert.InDelta(t, mx, bx, 1e-9, "rot=%d", rot)
		assert.InDelta(t, my, by, 1e-9, "rot=%d", rot)
	}
}

func TestIsHorizontalVertical(t *testing.T) {
	h := NewLine(Point{X: 0, Y: 0}, Point{X: 100, Y: 1}, 1, nil)
	v := NewLine(Point{X: 0, Y: 0}, Point{X: 1, Y: 100}, 1, nil)
	assert.True(t, IsHorizontal(h, 5.0))
	assert.False(t, IsVertical(h, 5.0))
	assert.True(t, IsVertical(v, 5.0))
	assert.False(t, IsHorizontal(v, 5.0))
}

func TestPointToLineDistance_ClampsToSegment(t *testing.T) {
	l := NewLine(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, 1, nil)
	assert.InDelta(t, 5.0, PointToLineDistance(Point{X: 5, Y: 5}, l), 1e-9)
	assert.InDelta(t, 5.0, PointToLineDistance(Point{X: -3, Y: 4}, l), 1e-9)
}

func TestBBoxIntersection(t *testing.T) {
	a := BBox{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := BBox{X0: 5, Y0: 5, X1: 15, Y1: 15}
	i, ok := a.Intersection(b)
	assert.True(t, ok)
	assert.Equal(t, BBox{X0: 5, Y0: 5, X1: 10, Y1: 10}, i)

	c := BBox{X0: 20, Y0: 20, X1: 30, Y1: 30}
	_, ok = a.Intersection(c)
	assert.False(t, ok)
}
