package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steelscan/steelscan/internal/model"
)

func TestReport_AllGatesPass(t *testing.T) {
	views := []model.View{
		{ViewType: model.ViewFloorPlan},
		{ViewType: model.ViewElevation},
	}
	eave := 3000.0
	maxH := 5000.0
	grid := model.GridSystem{
		XLabels: []model.GridLabel{{}, {}},
		YLabels: []model.GridLabel{{}},
	}
	dims := make([]model.Dimension, 6)
	heights := []model.HeightParam{
		{HeightType: model.HeightEave, Value: &eave},
		{HeightType: model.HeightMax, Value: &maxH},
	}

	report := Report(views, &grid, 0.9, dims, heights)
	assert.Equal(t, model.GatePass, report.Overall)
	for _, c := range report.Checks {
		assert.Equal(t, model.GatePass, c.Status, c.Name)
	}
}

func TestReport_NoViewsFails(t *testing.T) {
	report := Report(nil, nil, 0, nil, nil)
	assert.Equal(t, model.GateFail, report.Overall)
}

func TestReport_OneViewWarns(t *testing.T) {
	views := []model.View{{ViewType: model.ViewFloorPlan}}
	grid := model.GridSystem{XLabels: []model.GridLabel{{}, {}}, YLabels: []model.GridLabel{{}}}
	dims := make([]model.Dimension, 6)
	eave := 3000.0
	maxH := 5000.0
	heights := []model.HeightParam{
		{HeightType: model.HeightEave, Value: &eave},
		{HeightType: model.HeightMax, Value: &maxH},
	}
	report := Report(views, &grid, 0.9, dims, heights)
	assert.Equal(t, model.GateWarn, report.Overall)
}
