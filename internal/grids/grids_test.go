package grids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/model"
)

func textAt(text string, x, y float64) model.TextSpan {
	return model.TextSpan{
		Text:   text,
		BBox:   geometry.BBox{X0: x - 5, Y0: y - 5, X1: x + 5, Y1: y + 5},
		Center: geometry.Point{X: x, Y: y},
	}
}

func TestBuild_NumericLabels(t *testing.T) {
	cfg := config.DefaultConfig()
	v := model.View{
		Texts: []model.TextSpan{textAt("X1", 0, 0), textAt("X2", 100, 0), textAt("Y1", 0, 0)},
	}
	gs := Build(v, 0, cfg)
	require.Len(t, gs.XLabels, 2)
	require.Len(t, gs.YLabels, 1)
	assert.Equal(t, 1, gs.XLabels[0].Index)
	assert.Equal(t, 2, gs.XLabels[1].Index)
}

func TestBuild_SymbolicLabel(t *testing.T) {
	cfg := config.DefaultConfig()
	v := model.View{Texts: []model.TextSpan{textAt("Xn+1", 0, 0)}}
	gs := Build(v, 0, cfg)
	require.Len(t, gs.XLabels, 1)
	assert.Equal(t, SymbolicIndex, gs.XLabels[0].Index)
}

func TestBuild_AssociatesNearbyLine(t *testing.T) {
	cfg := config.DefaultConfig()
	line := geometry.NewLine(geometry.Point{X: 10, Y: 0}, geometry.Point{X: 10, Y: 500}, 1, nil)
	v := model.View{
		Texts: []model.TextSpan{textAt("X1", 10, -5)},
		Lines: []geometry.Line{line},
	}
	gs := Build(v, 0, cfg)
	require.Len(t, gs.XLabels, 1)
	require.NotNil(t, gs.XLabels[0].Line)
}

// Under rotation 90/270 the mediabox axes are transposed relative to the
// visual drawing: an X-label's associated line is a *horizontal* mediabox
// line, and the label's scalar position must come from that line's Y
// coordinate, not X.
func TestBuild_PositionSwapsUnderRotation90(t *testing.T) {
	cfg := config.DefaultConfig()
	// A long horizontal mediabox line (matches an X-label under rot=90).
	line := geometry.NewLine(geometry.Point{X: 0, Y: 75}, geometry.Point{X: 500, Y: 75}, 1, nil)
	v := model.View{
		Texts: []model.TextSpan{textAt("X1", 10, 75)},
		Lines: []geometry.Line{line},
	}
	gs := Build(v, 90, cfg)
	require.Len(t, gs.XLabels, 1)
	require.NotNil(t, gs.XLabels[0].Line)
	assert.InDelta(t, 75, gs.XLabels[0].Position, 0.01)
}

// Unmatched labels fall back to the text centre along the label's own
// (rotation-aware) axis.
func TestBuild_FallbackPositionSwapsUnderRotation90(t *testing.T) {
	cfg := config.DefaultConfig()
	v := model.View{
		Texts: []model.TextSpan{textAt("X1", 10, 75)},
	}
	gs := Build(v, 90, cfg)
	require.Len(t, gs.XLabels, 1)
	assert.Nil(t, gs.XLabels[0].Line)
	assert.InDelta(t, 75, gs.XLabels[0].Position, 0.01, "under rot=90, X-label position falls back to text-centre Y, not X")
}

func TestAssociationRatio(t *testing.T) {
	line := geometry.NewLine(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 0, Y: 10}, 1, nil)
	gs := model.GridSystem{
		XLabels: []model.GridLabel{{Line: &line}, {Line: nil}},
	}
	assert.InDelta(t, 0.5, AssociationRatio(gs), 1e-9)
}
