// Package heights implements Component E: extracting the building's
// characteristic height parameters (eave height, max/ridge height, GL/FL
// reference levels, design GL) from view text.
package heights

import (
	"regexp"
	"strconv"

	"github.com/steelscan/steelscan/internal/model"
)

type heightPattern struct {
	heightType model.HeightType
	re         *regexp.Regexp
}

// Patterns are tried in order; DESIGN_GL must precede GL since "設計GL" would
// otherwise also satisfy the bare GL pattern.
var patterns = []heightPattern{
	{model.HeightEave, regexp.MustCompile(`軒[\s\x{3000}]*高[\s\x{3000}]*[:：=]?[\s\x{3000}]*([0-9]{3,5})`)},
	{model.HeightMax, regexp.MustCompile(`(?:最[\s\x{3000}]*高[\s\x{3000}]*高[\s\x{3000}]*さ|棟[\s\x{3000}]*高)[\s\x{3000}]*[:：=]?[\s\x{3000}]*([0-9]{3,5})`)},
	{model.HeightDesignGL, regexp.MustCompile(`設[\s\x{3000}]*計[\s\x{3000}]*GL(?:[\s\x{3000}]*[:：=][\s\x{3000}]*([\-+]?[0-9]+\.?[0-9]*))?`)},
	// GL and FL may stand alone (no printed value) or carry a floor-number
	// prefix directly abutting the letters, e.g. "1FL", "GL=500".
	{model.HeightGL, regexp.MustCompile(`[0-9]*[\s\x{3000}]*GL(?:[\s\x{3000}]*[:：=][\s\x{3000}]*([\-+]?[0-9]+\.?[0-9]*))?`)},
	{model.HeightFL, regexp.MustCompile(`[0-9]*[\s\x{3000}]*FL(?:[\s\x{3000}]*[:：=][\s\x{3000}]*([\-+]?[0-9]+\.?[0-9]*))?`)},
}

// priorityOrder ranks which view a duplicate height should be taken from:
// elevations and sections carry height callouts most reliably, plans least.
var priorityOrder = map[model.ViewType]int{
	model.ViewElevation: 0,
	model.ViewSection:   1,
	model.ViewRoofPlan:  2,
	model.ViewFloorPlan: 3,
	model.ViewUnknown:   4,
}

// Extract scans every view's text for height callouts, keeping the
// highest-priority match per HeightType except GL/FL, which may each
// legitimately appear more than once (multiple floor levels).
func Extract(views []model.View) []model.HeightParam {
	var all []model.HeightParam
	for _, v := range views {
		for _, t := range v.Texts {
			for _, hp := range patterns {
				m := hp.re.FindStringSubmatch(t.Text)
				if m == nil {
					continue
				}
				val, err := strconv.ParseFloat(m[1], 64)
				var valPtr *float64
				if err == nil {
					valPtr = &val
				}
				all = append(all, model.HeightParam{
					HeightType: hp.heightType,
					Value:      valPtr,
					RawText:    t.Text,
					TextSpan:   t,
					SourceView: v.ViewType,
				})
				break
			}
		}
	}

	best := map[model.HeightType]model.HeightParam{}
	var passthrough []model.HeightParam
	for _, h := range all {
		if h.HeightType == model.HeightGL || h.HeightType == model.HeightFL {
			passthrough = append(passthrough, h)
			continue
		}
		cur, ok := best[h.HeightType]
		if !ok || priorityOrder[h.SourceView] < priorityOrder[cur.SourceView] {
			best[h.HeightType] = h
		}
	}

	out := make([]model.HeightParam, 0, len(best)+len(passthrough))
	for _, h := range best {
		out = append(out, h)
	}
	out = append(out, passthrough...)
	return out
}
