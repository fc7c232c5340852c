// Package matching implements Component G: reconciling the grid system,
// dimensions, and heights recovered independently from each view into one
// coherent set of building parameters (span, length, bay pitch, bay count,
// eave/max height), plus the cross-view consistency checks that flag when
// that reconciliation disagrees with itself.
package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/model"
)

// perViewData bundles a view with the grid system and dimensions already
// extracted for it, since those are built per-view by earlier components.
type perViewData struct {
	view model.View
	grid model.GridSystem
	dims []model.Dimension
}

// Match reconciles every view's independent extraction into one
// MatchingResult.
func Match(views []model.View, grids []model.GridSystem, dims [][]model.Dimension, heights []model.HeightParam, cfg *config.Config) model.MatchingResult {
	pv := make([]perViewData, len(views))
	for i := range views {
		pv[i] = perViewData{view: views[i], grid: grids[i], dims: dims[i]}
	}

	canonical := pickCanonicalGrid(pv)
	result := model.MatchingResult{}
	if canonical != nil {
		result.CanonicalGridSource = canonical.view.ViewType
	}

	for _, p := range pv {
		result.ViewGridInfo = append(result.ViewGridInfo, buildViewGridInfo(p))
	}
	result.FrameLinks = buildFrameLinks(canonical, pv)

	span := findSpan(pv, cfg)
	length := findLength(pv, span, cfg)
	pitch := findBayPitch(pv, canonical, cfg)
	bayCount := findBayCount(pv, length, pitch, cfg)

	result.Span = span
	result.Length = length
	result.BayPitch = pitch
	result.BayCount = bayCount
	result.EaveHeight = heightValue(heights, model.HeightEave)
	result.MaxHeight = heightValue(heights, model.HeightMax)

	result.AnchoredParams = buildAnchoredParams(result)
	result.ConsistencyChecks = consistencyChecks(pv, result)

	return result
}

func heightValue(heights []model.HeightParam, t model.HeightType) *float64 {
	for _, h := range heights {
		if h.HeightType == t && h.Value != nil {
			v := *h.Value
			return &v
		}
	}
	return nil
}

func pickCanonicalGrid(pv []perViewData) *perViewData {
	var best *perViewData
	bestScore := -1
	for i := range pv {
		p := &pv[i]
		score := len(p.grid.XLabels) + len(p.grid.YLabels)
		if p.view.ViewType == model.ViewFloorPlan {
			score += 100
		} else if p.view.ViewType == model.ViewRoofPlan {
			score += 50
		}
		if score > bestScore && (len(p.grid.XLabels)+len(p.grid.YLabels)) > 0 {
			bestScore = score
			best = p
		}
	}
	return best
}

func buildViewGridInfo(p perViewData) model.ViewGridInfo {
	info := model.ViewGridInfo{
		ViewType:  p.view.ViewType,
		ViewTitle: p.view.TitleText,
	}
	for _, l := range p.grid.XLabels {
		info.XLabels = append(info.XLabels, l.Label)
	}
	for _, l := range p.grid.YLabels {
		info.YLabels = append(info.YLabels, l.Label)
	}
	if p.view.ViewType == model.ViewElevation || p.view.ViewType == model.ViewSection {
		info.GridSide = gridSideFromTitle(p.view.TitleText)
		if info.GridSide == "" {
			switch {
			case len(info.XLabels) > 0 && len(info.YLabels) == 0:
				info.GridSide = "Y-side"
			case len(info.YLabels) > 0 && len(info.XLabels) == 0:
				info.GridSide = "X-side"
			}
		}
	}
	return info
}

// gridSideFromTitle picks out which 通り an elevation/section view shows,
// from its title or subtitle text (e.g. "Y1通り").
func gridSideFromTitle(title string) string {
	sides := []string{"Y1", "Y2", "X1", "Xn+1", "X2", "Xn"}
	for _, s := range sides {
		if containsASCIIFold(title, s) {
			return s
		}
	}
	return ""
}

func containsASCIIFold(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if strings.EqualFold(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}

func buildFrameLinks(canonical *perViewData, pv []perViewData) []model.FrameLink {
	if canonical == nil {
		return nil
	}
	var links []model.FrameLink
	for _, xl := range canonical.grid.XLabels {
		link := model.FrameLink{XLabel: xl.Label}
		pos := xl.Position
		link.PlanXPosition = &pos
		for _, p := range pv {
			if p.view.ViewType != model.ViewElevation && p.view.ViewType != model.ViewSection {
				continue
			}
			for _, l := range p.grid.XLabels {
				if l.Label == xl.Label {
					link.InElevationSides = append(link.InElevationSides, p.view.TitleText)
					break
				}
			}
		}
		links = append(links, link)
	}
	return links
}

// findDistinctGridLines returns the deduplicated grid-line positions along
// one axis, clustering within cfg.GridLineClusterTol.
func findDistinctGridLines(grid model.GridSystem, axis model.GridAxis, cfg *config.Config) []float64 {
	var positions []float64
	labels := grid.XLabels
	if axis == model.AxisY {
		labels = grid.YLabels
	}
	for _, l := range labels {
		positions = append(positions, l.Position)
	}
	sort.Float64s(positions)
	var out []float64
	for _, p := range positions {
		if len(out) == 0 || math.Abs(p-out[len(out)-1]) > cfg.GridLineClusterTol {
			out = append(out, p)
		}
	}
	return out
}

// matchGridDistance looks for a pair of grid-line positions whose spacing
// (converted point->mm) matches a dimension value within tolerance,
// preferring the largest matching dimension.
func matchGridDistance(positions []float64, dims []model.Dimension, cfg *config.Config, minLength float64) (*float64, *model.Dimension) {
	var bestVal float64
	var bestDim *model.Dimension
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			distPt := math.Abs(positions[j] - positions[i])
			distMM := distPt / cfg.PointToMM
			if distMM < minLength {
				continue
			}
			for d := range dims {
				dim := dims[d]
				if dim.Value <= 0 {
					continue
				}
				if relDiff(distMM, dim.Value) <= cfg.GridDistanceTolerance {
					if bestDim == nil || dim.Value > bestVal {
						bestVal = dim.Value
						dd := dim
						bestDim = &dd
					}
				}
			}
		}
	}
	if bestDim == nil {
		return nil, nil
	}
	return &bestVal, bestDim
}

func relDiff(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a - b)
	}
	return math.Abs(a-b) / b
}

// findSpan implements the three-stage span cascade: grid-distance match in
// the floor/roof plan (with a multi-span override for buildings whose plan
// dimension is a literal fraction of the real span), cross-view largest
// single dimension among Y-direction elevations, and finally a grid
// Y-position spread fallback.
func findSpan(pv []perViewData, cfg *config.Config) *float64 {
	for _, p := range pv {
		if p.view.ViewType != model.ViewFloorPlan && p.view.ViewType != model.ViewRoofPlan {
			continue
		}
		positions := findDistinctGridLines(p.grid, model.AxisY, cfg)
		if val, _ := matchGridDistance(positions, p.dims, cfg, cfg.GridLineMinLength); val != nil {
			if confirmed := checkMultiSpan(*val, pv, cfg); confirmed != nil {
				return confirmed
			}
			return val
		}
	}

	var best *float64
	for _, p := range pv {
		if p.view.ViewType != model.ViewSection && !(p.view.ViewType == model.ViewElevation && isXDirectionView(p.view)) {
			continue
		}
		for _, d := range p.dims {
			if d.DimType != model.DimSingle || d.Value < 1000 {
				continue
			}
			if best == nil || d.Value > *best {
				v := d.Value
				best = &v
			}
		}
	}
	if best != nil {
		return best
	}

	for _, p := range pv {
		positions := findDistinctGridLines(p.grid, model.AxisY, cfg)
		if len(positions) >= 2 {
			spread := positions[len(positions)-1] - positions[0]
			v := spread / cfg.PointToMM
			return &v
		}
	}
	return nil
}

func isXDirectionView(v model.View) bool {
	side := gridSideFromTitle(v.TitleText)
	return side == "X1" || side == "Xn+1" || side == "X2" || side == "Xn"
}

// checkMultiSpan tests whether a plan-measured half-span is actually a
// fraction of a larger building span: a gabled or multi-ridge roof can show
// only one bay's worth of span in plan while the true span (confirmed by a
// section/elevation dimension) is 2x or 3x that.
func checkMultiSpan(halfSpan float64, pv []perViewData, cfg *config.Config) *float64 {
	for _, factor := range cfg.MultiSpanFactors {
		candidate := halfSpan * float64(factor)
		for _, p := range pv {
			if p.view.ViewType != model.ViewSection && !(p.view.ViewType == model.ViewElevation && isXDirectionView(p.view)) {
				continue
			}
			for _, d := range p.dims {
				if relDiff(candidate, d.Value) <= cfg.MultiSpanTolerance {
					v := candidate
					return &v
				}
			}
		}
	}
	return nil
}

// findLength implements the length cascade: grid-distance match along the
// plan's X axis (rejected if it's actually the span value seen from
// another angle), a repeat-dimension chain sum, then a grid-spread
// fallback.
func findLength(pv []perViewData, span *float64, cfg *config.Config) *float64 {
	for _, p := range pv {
		if p.view.ViewType != model.ViewFloorPlan && p.view.ViewType != model.ViewRoofPlan {
			continue
		}
		positions := findDistinctGridLines(p.grid, model.AxisX, cfg)
		if val, _ := matchGridDistance(positions, p.dims, cfg, cfg.GridLineMinLength); val != nil {
			if span == nil || relDiff(*val, *span) > cfg.MultiSpanTolerance {
				return val
			}
		}
	}

	for _, p := range pv {
		if val := computeLengthFromRepeat(p.dims); val != nil {
			return val
		}
	}

	for _, p := range pv {
		positions := findDistinctGridLines(p.grid, model.AxisX, cfg)
		if len(positions) >= 2 {
			spread := positions[len(positions)-1] - positions[0]
			v := spread / cfg.PointToMM
			return &v
		}
	}
	return nil
}

// computeLengthFromRepeat sums a chain of REPEAT-dimension bays
// ("N×M" callouts) into a total building length.
func computeLengthFromRepeat(dims []model.Dimension) *float64 {
	var total float64
	found := false
	for _, d := range dims {
		if d.DimType != model.DimRepeat || d.RepeatCount == nil {
			continue
		}
		total += d.Value * float64(*d.RepeatCount)
		found = true
	}
	if !found {
		return nil
	}
	return &total
}

// findBayPitch prefers an explicit "@N" pitch or "N×M" repeat callout,
// falling back to the spacing between consecutive canonical X-grid lines if
// that spacing is uniform.
func findBayPitch(pv []perViewData, canonical *perViewData, cfg *config.Config) *float64 {
	for _, p := range pv {
		for _, d := range p.dims {
			if d.DimType == model.DimPitch || d.DimType == model.DimRepeat {
				v := d.Value
				return &v
			}
		}
	}
	if canonical == nil {
		return nil
	}
	positions := findDistinctGridLines(canonical.grid, model.AxisX, cfg)
	if len(positions) < 3 {
		return nil
	}
	var spacings []float64
	for i := 1; i < len(positions); i++ {
		spacings = append(spacings, positions[i]-positions[i-1])
	}
	mean := 0.0
	for _, s := range spacings {
		mean += s
	}
	mean /= float64(len(spacings))
	for _, s := range spacings {
		if relDiff(s, mean) > cfg.PitchUniformityTol {
			return nil
		}
	}
	v := mean / cfg.PointToMM
	return &v
}

// findBayCount prefers an explicit REPEAT-dimension count, falls back to
// length/pitch if that divides cleanly, then to the largest single
// dimension dividing cleanly by pitch.
func findBayCount(pv []perViewData, length, pitch *float64, cfg *config.Config) *int {
	for _, p := range pv {
		for _, d := range p.dims {
			if d.DimType == model.DimRepeat && d.RepeatCount != nil {
				c := *d.RepeatCount
				return &c
			}
		}
	}

	if length != nil && pitch != nil && *pitch > 0 {
		ratio := *length / *pitch
		rounded := math.Round(ratio)
		if relDiff(ratio, rounded) <= cfg.BayCountDivisionTol {
			c := int(rounded)
			return &c
		}
	}

	if pitch != nil && *pitch > 0 {
		var bestVal float64
		var bestCount *int
		for _, p := range pv {
			for _, d := range p.dims {
				if d.DimType != model.DimSingle {
					continue
				}
				ratio := d.Value / *pitch
				rounded := math.Round(ratio)
				if rounded < 1 {
					continue
				}
				if relDiff(ratio, rounded) <= cfg.BayCountFallbackTol && d.Value > bestVal {
					bestVal = d.Value
					c := int(rounded)
					bestCount = &c
				}
			}
		}
		if bestCount != nil {
			return bestCount
		}
	}
	return nil
}

func buildAnchoredParams(r model.MatchingResult) []model.AnchoredParam {
	var out []model.AnchoredParam
	add := func(name string, v *float64) {
		if v == nil {
			return
		}
		out = append(out, model.AnchoredParam{Name: name, Value: *v, Unit: "mm"})
	}
	add("span", r.Span)
	add("length", r.Length)
	add("bay_pitch", r.BayPitch)
	if r.BayCount != nil {
		out = append(out, model.AnchoredParam{Name: "bay_count", Value: float64(*r.BayCount), Unit: "count", Computed: true})
	}
	add("eave_height", r.EaveHeight)
	add("max_height", r.MaxHeight)
	return out
}

// consistencyChecks runs the four cross-view agreement gates.
func consistencyChecks(pv []perViewData, r model.MatchingResult) []model.QualityCheck {
	var checks []model.QualityCheck
	checks = append(checks, gridContinuityCheck(r))
	checks = append(checks, pitchTimesCountCheck(r))
	checks = append(checks, elevationSidesCheck(pv))
	checks = append(checks, buildingParamsCheck(r))
	return checks
}

func gridContinuityCheck(r model.MatchingResult) model.QualityCheck {
	matched := 0
	for _, l := range r.FrameLinks {
		if len(l.InElevationSides) > 0 {
			matched++
		}
	}
	switch {
	case matched >= 2:
		return model.QualityCheck{Name: "grid_continuity", Status: model.GatePass, Message: fmt.Sprintf("%d X labels continue into elevations", matched)}
	case matched == 1:
		return model.QualityCheck{Name: "grid_continuity", Status: model.GateWarn, Message: "only one X label continues into an elevation"}
	default:
		return model.QualityCheck{Name: "grid_continuity", Status: model.GateFail, Message: "no X labels continue into elevations"}
	}
}

func pitchTimesCountCheck(r model.MatchingResult) model.QualityCheck {
	if r.BayPitch == nil || r.BayCount == nil || r.Length == nil {
		return model.QualityCheck{Name: "pitch_times_count", Status: model.GateWarn, Message: "insufficient data to cross-check pitch*count against length"}
	}
	computed := *r.BayPitch * float64(*r.BayCount)
	if relDiff(computed, *r.Length) <= 0.05 {
		return model.QualityCheck{Name: "pitch_times_count", Status: model.GatePass, Message: fmt.Sprintf("pitch*count=%.1f vs length=%.1f", computed, *r.Length)}
	}
	return model.QualityCheck{Name: "pitch_times_count", Status: model.GateWarn, Message: fmt.Sprintf("pitch*count=%.1f disagrees with length=%.1f", computed, *r.Length)}
}

func elevationSidesCheck(pv []perViewData) model.QualityCheck {
	sides := map[string]bool{}
	haveElevations := false
	for _, p := range pv {
		if p.view.ViewType != model.ViewElevation {
			continue
		}
		haveElevations = true
		if s := gridSideFromTitle(p.view.TitleText); s != "" {
			sides[s] = true
		}
	}
	if !haveElevations {
		return model.QualityCheck{Name: "elevation_sides", Status: model.GatePass, Message: "no elevation views to check"}
	}
	switch {
	case len(sides) >= 2:
		return model.QualityCheck{Name: "elevation_sides", Status: model.GatePass, Message: fmt.Sprintf("%d elevation sides identified", len(sides))}
	case len(sides) == 1:
		return model.QualityCheck{Name: "elevation_sides", Status: model.GateWarn, Message: "only one elevation side identified"}
	default:
		return model.QualityCheck{Name: "elevation_sides", Status: model.GateFail, Message: "no elevation side identified"}
	}
}

func buildingParamsCheck(r model.MatchingResult) model.QualityCheck {
	present := 0
	if r.Span != nil {
		present++
	}
	if r.Length != nil {
		present++
	}
	if r.BayPitch != nil {
		present++
	}
	if r.BayCount != nil {
		present++
	}
	switch {
	case present == 4:
		return model.QualityCheck{Name: "building_parameters", Status: model.GatePass, Message: "span, length, pitch, and bay count all found"}
	case present >= 2:
		return model.QualityCheck{Name: "building_parameters", Status: model.GateWarn, Message: fmt.Sprintf("%d/4 building parameters found", present)}
	default:
		return model.QualityCheck{Name: "building_parameters", Status: model.GateFail, Message: fmt.Sprintf("%d/4 building parameters found", present)}
	}
}
