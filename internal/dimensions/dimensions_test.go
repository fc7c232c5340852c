package dimensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/model"
)

func span(text string, x, y float64) model.TextSpan {
	return model.TextSpan{
		Text:   text,
		BBox:   geometry.BBox{X0: x - 5, Y0: y - 5, X1: x + 5, Y1: y + 5},
		Center: geometry.Point{X: x, Y: y},
	}
}

func TestExtract_PlainDimension(t *testing.T) {
	v := model.View{Texts: []model.TextSpan{span("1820", 0, 0)}}
	dims := Extract(v, config.DefaultConfig())
	require.Len(t, dims, 1)
	assert.Equal(t, model.DimSingle, dims[0].DimType)
	assert.Equal(t, 1820.0, dims[0].Value)
}

func TestExtract_PlainDimension_RejectsUnderTen(t *testing.T) {
	v := model.View{Texts: []model.TextSpan{span("5", 0, 0)}}
	dims := Extract(v, config.DefaultConfig())
	assert.Empty(t, dims)
}

func TestExtract_PitchDimension(t *testing.T) {
	v := model.View{Texts: []model.TextSpan{span("@910", 0, 0)}}
	dims := Extract(v, config.DefaultConfig())
	require.Len(t, dims, 1)
	assert.Equal(t, model.DimPitch, dims[0].DimType)
	assert.Equal(t, 910.0, dims[0].Value)
}

func TestExtract_RepeatDimension(t *testing.T) {
	v := model.View{Texts: []model.TextSpan{span("910×6", 0, 0)}}
	dims := Extract(v, config.DefaultConfig())
	require.Len(t, dims, 1)
	assert.Equal(t, model.DimRepeat, dims[0].DimType)
	require.NotNil(t, dims[0].RepeatCount)
	assert.Equal(t, 6, *dims[0].RepeatCount)
}

func TestExtract_RepeatSymbolicDimension(t *testing.T) {
	v := model.View{Texts: []model.TextSpan{span("910×n", 0, 0)}}
	dims := Extract(v, config.DefaultConfig())
	require.Len(t, dims, 1)
	assert.Equal(t, model.DimRepeat, dims[0].DimType)
	assert.Nil(t, dims[0].RepeatCount)
}

func TestExtract_IgnoresNonDimensionText(t *testing.T) {
	v := model.View{Texts: []model.TextSpan{span("屋根伏図", 0, 0)}}
	dims := Extract(v, config.DefaultConfig())
	assert.Empty(t, dims)
}
