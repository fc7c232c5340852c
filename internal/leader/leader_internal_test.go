package leader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/model"
)

// With no lines at all there is no candidate junction near the label, so no
// leader tips are returned.
func TestFindLeaderTips_NoLinesNoTips(t *testing.T) {
	cfg := config.DefaultConfig()
	tips := findLeaderTips(100, 100, nil, cfg)
	assert.Empty(t, tips)
}

func TestDetermineOrientation_TwoTipsSpreadInY(t *testing.T) {
	cfg := config.DefaultConfig()
	tips := []model.LeaderTip{
		{X: 100, Y: 100, Length: 10},
		{X: 100, Y: 300, Length: 20},
	}
	orientation := determineOrientation(tips, nil, 90, 100, cfg)
	assert.Equal(t, "x", orientation, "tips spread more in Y means the member runs along X")
}

func TestDetermineOrientation_SingleTipThickLineWins(t *testing.T) {
	cfg := config.DefaultConfig()
	// Tip sits within OrientationSearchRadius of the thick line's endpoint.
	tips := []model.LeaderTip{{X: 110, Y: 95, Length: 40}}
	vertical := geometry.NewLine(geometry.Point{X: 110, Y: 100}, geometry.Point{X: 110, Y: 300}, cfg.ThickStrokeWidth, nil)
	orientation := determineOrientation(tips, []geometry.Line{vertical}, 100, 100, cfg)
	assert.Equal(t, "y", orientation)
}

func TestCountStructuralLines_CountsEqualLengthVerticals(t *testing.T) {
	cfg := config.DefaultConfig()
	// The tip sits at the top endpoint of the first vertical line, so the
	// nearest-thick-line search can actually anchor on it.
	tips := []model.LeaderTip{{X: 110, Y: 100, Length: 40}}
	bbox := &model.DrawingBBox{X0: 0, Y0: 0, X1: 1000, Y1: 1000}

	// Three vertical thick lines of the same length at different X
	// positions, beyond the minimum structural length.
	lines := []geometry.Line{
		geometry.NewLine(geometry.Point{X: 110, Y: 100}, geometry.Point{X: 110, Y: 300}, cfg.ThickStrokeWidth, nil),
		geometry.NewLine(geometry.Point{X: 300, Y: 100}, geometry.Point{X: 300, Y: 300}, cfg.ThickStrokeWidth, nil),
		geometry.NewLine(geometry.Point{X: 500, Y: 100}, geometry.Point{X: 500, Y: 300}, cfg.ThickStrokeWidth, nil),
	}

	count, positions := countStructuralLines("y", tips, lines, bbox, cfg)
	assert.Equal(t, 3, count)
	assert.Len(t, positions, 3)
}

func TestCountStructuralLines_XOrientationCountsTips(t *testing.T) {
	cfg := config.DefaultConfig()
	tips := []model.LeaderTip{
		{X: 100, Y: 100, Length: 10},
		{X: 300, Y: 100, Length: 10},
	}
	count, positions := countStructuralLines("x", tips, nil, nil, cfg)
	assert.Equal(t, 2, count)
	assert.Len(t, positions, 2)
}
