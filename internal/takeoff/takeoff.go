// Package takeoff implements Component I: grouping the reconstructed 3D
// members into a quantity table by type and (tolerance-rounded) length.
package takeoff

import (
	"math"
	"sort"

	"github.com/steelscan/steelscan/internal/model"
)

var typeOrder = map[model.MemberType]int{
	model.MemberColumn:    0,
	model.MemberRafter:    1,
	model.MemberRidgeBeam: 2,
	model.MemberPurlin:    3,
}

// Compute groups a structural model's members into a QuantityTakeoff,
// rounding each member's length to the nearest multiple of tolerance
// before grouping so that near-identical spans collapse into one group.
func Compute(sm model.StructuralModel, tolerance float64) model.QuantityTakeoff {
	type key struct {
		t    model.MemberType
		rlen float64
	}
	groups := map[key]*model.MemberGroup{}
	var order []key

	for _, mem := range sm.Members {
		rlen := roundTo(mem.Length, tolerance)
		k := key{t: mem.MemberType, rlen: rlen}
		g, ok := groups[k]
		if !ok {
			g = &model.MemberGroup{MemberType: mem.MemberType, UnitLength: rlen}
			groups[k] = g
			order = append(order, k)
		}
		g.Count++
		g.MemberLabels = append(g.MemberLabels, mem.Label)
	}

	result := make([]model.MemberGroup, 0, len(groups))
	for _, k := range order {
		g := groups[k]
		g.TotalLength = g.UnitLength * float64(g.Count)
		result = append(result, *g)
	}

	sort.Slice(result, func(i, j int) bool {
		oi, oj := typeOrder[result[i].MemberType], typeOrder[result[j].MemberType]
		if oi != oj {
			return oi < oj
		}
		return result[i].UnitLength > result[j].UnitLength
	})

	totalMembers := 0
	totalLength := 0.0
	for _, g := range result {
		totalMembers += g.Count
		totalLength += g.TotalLength
	}

	return model.QuantityTakeoff{
		Groups:         result,
		TotalMembers:   totalMembers,
		TotalLength:    totalLength,
		GroupTolerance: tolerance,
	}
}

// roundTo rounds value to the nearest multiple of tolerance, or to one
// decimal place if tolerance is non-positive.
func roundTo(value, tolerance float64) float64 {
	if tolerance <= 0 {
		return math.Round(value*10) / 10
	}
	return math.Round(value/tolerance) * tolerance
}
