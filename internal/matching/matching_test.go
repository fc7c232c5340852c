package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/matching"
	"github.com/steelscan/steelscan/internal/model"
)

func intPtr(i int) *int { return &i }

// S2: plan pitch text "@2000", repeat text "2000x5", plus SINGLE 10000 -
// bay_pitch=2000, bay_count=5, length=10000, pitch*count=length -> PASS.
func TestMatch_PitchRepeatSingle(t *testing.T) {
	cfg := config.DefaultConfig()
	plan := model.View{ViewType: model.ViewFloorPlan, TitleText: "平面図"}
	dims := []model.Dimension{
		{Value: 2000, DimType: model.DimPitch, RawText: "@2000", SourceView: model.ViewFloorPlan},
		{Value: 2000, DimType: model.DimRepeat, RepeatCount: intPtr(5), RawText: "2000x5", SourceView: model.ViewFloorPlan},
		{Value: 10000, DimType: model.DimSingle, RawText: "10000", SourceView: model.ViewFloorPlan},
	}
	grid := model.GridSystem{}

	result := matching.Match(
		[]model.View{plan},
		[]model.GridSystem{grid},
		[][]model.Dimension{dims},
		nil,
		cfg,
	)

	require.NotNil(t, result.BayPitch)
	assert.InDelta(t, 2000, *result.BayPitch, 0.01)
	require.NotNil(t, result.BayCount)
	assert.Equal(t, 5, *result.BayCount)
	require.NotNil(t, result.Length)
	assert.InDelta(t, 10000, *result.Length, 0.01)

	var pitchCheck *model.QualityCheck
	for i := range result.ConsistencyChecks {
		if result.ConsistencyChecks[i].Name == "pitch_times_count" {
			pitchCheck = &result.ConsistencyChecks[i]
		}
	}
	require.NotNil(t, pitchCheck)
	assert.Equal(t, model.GatePass, pitchCheck.Status)
}

// S3: plan Y-distance grid match yields 7500; SECTION view contains a
// SINGLE "15000" dimension. Expect span=15000 via the multi-span rule.
func TestMatch_MultiSpan(t *testing.T) {
	cfg := config.DefaultConfig()
	// Two Y grid lines 7500mm apart (in points) on the floor plan, with a
	// matching 7500 dimension so the grid-distance strategy finds it.
	distPt := 7500.0 * cfg.PointToMM
	plan := model.View{ViewType: model.ViewFloorPlan, TitleText: "平面図"}
	planGrid := model.GridSystem{
		YLabels: []model.GridLabel{
			{Axis: model.AxisY, Label: "Y1", Index: 1, Position: 0},
			{Axis: model.AxisY, Label: "Y2", Index: 2, Position: distPt},
		},
	}
	planDims := []model.Dimension{
		{Value: 7500, DimType: model.DimSingle, RawText: "7500", SourceView: model.ViewFloorPlan},
	}

	section := model.View{ViewType: model.ViewSection, TitleText: "断面図"}
	sectionGrid := model.GridSystem{}
	sectionDims := []model.Dimension{
		{Value: 15000, DimType: model.DimSingle, RawText: "15000", SourceView: model.ViewSection},
	}

	result := matching.Match(
		[]model.View{plan, section},
		[]model.GridSystem{planGrid, sectionGrid},
		[][]model.Dimension{planDims, sectionDims},
		nil,
		cfg,
	)

	require.NotNil(t, result.Span)
	assert.InDelta(t, 15000, *result.Span, 0.01)
}

func TestMatch_NoDataReturnsNils(t *testing.T) {
	cfg := config.DefaultConfig()
	result := matching.Match(nil, nil, nil, nil, cfg)
	assert.Nil(t, result.Span)
	assert.Nil(t, result.Length)
	assert.Nil(t, result.BayPitch)
	assert.Nil(t, result.BayCount)
}

func TestMatch_HeightsCopiedFromHeightParams(t *testing.T) {
	cfg := config.DefaultConfig()
	eave := 5000.0
	maxH := 7500.0
	heights := []model.HeightParam{
		{HeightType: model.HeightEave, Value: &eave, SourceView: model.ViewElevation},
		{HeightType: model.HeightMax, Value: &maxH, SourceView: model.ViewElevation},
	}
	result := matching.Match(nil, nil, nil, heights, cfg)
	require.NotNil(t, result.EaveHeight)
	assert.Equal(t, eave, *result.EaveHeight)
	require.NotNil(t, result.MaxHeight)
	assert.Equal(t, maxH, *result.MaxHeight)
}

func TestMatch_ElevationSideFromTitle(t *testing.T) {
	cfg := config.DefaultConfig()
	elev := model.View{ViewType: model.ViewElevation, TitleText: "立面図(Y1通り)", Region: geometry.BBox{}}
	result := matching.Match(
		[]model.View{elev},
		[]model.GridSystem{{}},
		[][]model.Dimension{nil},
		nil,
		cfg,
	)
	require.Len(t, result.ViewGridInfo, 1)
	assert.Equal(t, "Y1", result.ViewGridInfo[0].GridSide)
}
