package heights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelscan/steelscan/internal/heights"
	"github.com/steelscan/steelscan/internal/model"
)

func findHeight(hs []model.HeightParam, t model.HeightType) *model.HeightParam {
	for i := range hs {
		if hs[i].HeightType == t {
			return &hs[i]
		}
	}
	return nil
}

func TestExtract_EaveAndMaxHeight(t *testing.T) {
	elev := model.View{
		ViewType: model.ViewElevation,
		Texts: []model.TextSpan{
			{Text: "軒高=5000"},
			{Text: "最高高さ:7500"},
		},
	}
	hs := heights.Extract([]model.View{elev})

	eave := findHeight(hs, model.HeightEave)
	require.NotNil(t, eave)
	require.NotNil(t, eave.Value)
	assert.Equal(t, 5000.0, *eave.Value)

	maxH := findHeight(hs, model.HeightMax)
	require.NotNil(t, maxH)
	require.NotNil(t, maxH.Value)
	assert.Equal(t, 7500.0, *maxH.Value)
}

func TestExtract_DesignGLNotConfusedWithGL(t *testing.T) {
	v := model.View{
		ViewType: model.ViewSection,
		Texts:    []model.TextSpan{{Text: "設計GL=100.5"}},
	}
	hs := heights.Extract([]model.View{v})
	require.Len(t, hs, 1)
	assert.Equal(t, model.HeightDesignGL, hs[0].HeightType)
}

func TestExtract_GLAndFLNotDeduplicated(t *testing.T) {
	v1 := model.View{ViewType: model.ViewSection, Texts: []model.TextSpan{{Text: "FL=500"}}}
	v2 := model.View{ViewType: model.ViewSection, Texts: []model.TextSpan{{Text: "FL=2800"}}}
	hs := heights.Extract([]model.View{v1, v2})

	count := 0
	for _, h := range hs {
		if h.HeightType == model.HeightFL {
			count++
		}
	}
	assert.Equal(t, 2, count, "FL may repeat across floors and must not be deduplicated")
}

func TestExtract_PrefersElevationOverPlan(t *testing.T) {
	plan := model.View{ViewType: model.ViewFloorPlan, Texts: []model.TextSpan{{Text: "軒高=4000"}}}
	elev := model.View{ViewType: model.ViewElevation, Texts: []model.TextSpan{{Text: "軒高=5000"}}}
	hs := heights.Extract([]model.View{plan, elev})

	eave := findHeight(hs, model.HeightEave)
	require.NotNil(t, eave)
	require.NotNil(t, eave.Value)
	assert.Equal(t, 5000.0, *eave.Value, "elevation source must win over floor plan")
}
