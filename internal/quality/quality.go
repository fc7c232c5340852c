// Package quality implements Component F: the seven advisory gates that
// flag a drawing set's extraction confidence without ever blocking the
// pipeline.
package quality

import (
	"fmt"

	"github.com/steelscan/steelscan/internal/model"
)

// Report runs all seven gates and rolls them up into an overall verdict.
func Report(views []model.View, grid *model.GridSystem, assocRatio float64, dims []model.Dimension, heights []model.HeightParam) model.QualityReport {
	checks := []model.QualityCheck{
		viewsCheck(views),
		floorPlanCheck(views),
		gridLabelsCheck(grid),
		gridAssociationCheck(grid, assocRatio),
		dimensionsCheck(dims),
		heightsCheck(heights),
		keyHeightsCheck(heights),
	}

	overall := model.GatePass
	for _, c := range checks {
		switch c.Status {
		case model.GateFail:
			overall = model.GateFail
		case model.GateWarn:
			if overall != model.GateFail {
				overall = model.GateWarn
			}
		}
	}
	return model.QualityReport{Overall: overall, Checks: checks}
}

func viewsCheck(views []model.View) model.QualityCheck {
	n := len(views)
	switch {
	case n >= 2:
		return model.QualityCheck{Name: "views", Status: model.GatePass, Message: fmt.Sprintf("%d views segmented", n)}
	case n == 1:
		return model.QualityCheck{Name: "views", Status: model.GateWarn, Message: "only one view segmented"}
	default:
		return model.QualityCheck{Name: "views", Status: model.GateFail, Message: "no views segmented"}
	}
}

func floorPlanCheck(views []model.View) model.QualityCheck {
	for _, v := range views {
		if v.ViewType == model.ViewFloorPlan {
			return model.QualityCheck{Name: "floor_plan_present", Status: model.GatePass, Message: "floor plan found"}
		}
	}
	return model.QualityCheck{Name: "floor_plan_present", Status: model.GateFail, Message: "no floor plan view found"}
}

func gridLabelsCheck(grid *model.GridSystem) model.QualityCheck {
	if grid == nil {
		return model.QualityCheck{Name: "grid_labels", Status: model.GateFail, Message: "no grid system extracted"}
	}
	if len(grid.XLabels) >= 2 && len(grid.YLabels) >= 1 {
		return model.QualityCheck{Name: "grid_labels", Status: model.GatePass, Message: fmt.Sprintf("%d X labels, %d Y labels", len(grid.XLabels), len(grid.YLabels))}
	}
	return model.QualityCheck{Name: "grid_labels", Status: model.GateWarn, Message: fmt.Sprintf("%d X labels, %d Y labels", len(grid.XLabels), len(grid.YLabels))}
}

func gridAssociationCheck(grid *model.GridSystem, ratio float64) model.QualityCheck {
	if grid == nil || (len(grid.XLabels)+len(grid.YLabels)) == 0 {
		return model.QualityCheck{Name: "grid_line_association", Status: model.GateFail, Message: "no grid labels to associate"}
	}
	if ratio >= 0.8 {
		return model.QualityCheck{Name: "grid_line_association", Status: model.GatePass, Message: fmt.Sprintf("association ratio %.2f", ratio)}
	}
	return model.QualityCheck{Name: "grid_line_association", Status: model.GateWarn, Message: fmt.Sprintf("association ratio %.2f", ratio)}
}

func dimensionsCheck(dims []model.Dimension) model.QualityCheck {
	n := len(dims)
	switch {
	case n >= 5:
		return model.QualityCheck{Name: "dimensions", Status: model.GatePass, Message: fmt.Sprintf("%d dimensions parsed", n)}
	case n >= 1:
		return model.QualityCheck{Name: "dimensions", Status: model.GateWarn, Message: fmt.Sprintf("only %d dimensions parsed", n)}
	default:
		return model.QualityCheck{Name: "dimensions", Status: model.GateFail, Message: "no dimensions parsed"}
	}
}

func heightsCheck(heights []model.HeightParam) model.QualityCheck {
	if len(heights) >= 1 {
		return model.QualityCheck{Name: "heights", Status: model.GatePass, Message: fmt.Sprintf("%d height parameters found", len(heights))}
	}
	return model.QualityCheck{Name: "heights", Status: model.GateFail, Message: "no height parameters found"}
}

func keyHeightsCheck(heights []model.HeightParam) model.QualityCheck {
	haveEave, haveMax := false, false
	for _, h := range heights {
		if h.HeightType == model.HeightEave && h.Value != nil {
			haveEave = true
		}
		if h.HeightType == model.HeightMax && h.Value != nil {
			haveMax = true
		}
	}
	switch {
	case haveEave && haveMax:
		return model.QualityCheck{Name: "key_heights", Status: model.GatePass, Message: "eave and max height both found"}
	case haveEave || haveMax:
		return model.QualityCheck{Name: "key_heights", Status: model.GateWarn, Message: "only one of eave/max height found"}
	default:
		return model.QualityCheck{Name: "key_heights", Status: model.GateFail, Message: "neither eave nor max height found"}
	}
}
