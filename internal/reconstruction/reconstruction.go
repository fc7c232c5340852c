// Package reconstruction implements Component H: turning the matched
// building parameters into a 3D wireframe of columns, rafters, a ridge
// beam, and purlins.
package reconstruction

import (
	"math"
	"strconv"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/model"
)

// Reconstruct builds the 3D structural model, or returns nil if any of
// span/eave height/max height/bay pitch/bay count is missing — there is
// not enough information to place a single member.
func Reconstruct(m model.MatchingResult, grid model.GridSystem, cfg *config.Config) *model.StructuralModel {
	if m.Span == nil || m.EaveHeight == nil || m.MaxHeight == nil || m.BayPitch == nil || m.BayCount == nil {
		return nil
	}
	span := *m.Span
	eave := *m.EaveHeight
	ridge := *m.MaxHeight
	pitch := *m.BayPitch
	bayCount := *m.BayCount

	length := pitch * float64(bayCount)
	if m.Length != nil {
		length = *m.Length
	}

	xPositions := make([]float64, bayCount+1)
	for i := range xPositions {
		xPositions[i] = float64(i) * pitch
	}
	yPositions := buildYPositions(span, grid)

	var members []model.Member3D
	for frameIdx, x := range xPositions {
		members = append(members, generateFrameMembers(frameIdx, x, yPositions, span, eave, ridge)...)
	}

	yRidge := span / 2
	members = append(members, makeMember(model.MemberRidgeBeam, "RB",
		model.Point3D{X: 0, Y: yRidge, Z: ridge},
		model.Point3D{X: length, Y: yRidge, Z: ridge}, nil))

	members = append(members, generatePurlins(xPositions, span, eave, ridge, cfg.PurlinsPerSlope)...)

	summary := map[string]int{}
	for _, mem := range members {
		summary[string(mem.MemberType)]++
	}

	return &model.StructuralModel{
		Members: members,
		Envelope: model.BuildingEnvelope{
			Length:      length,
			Span:        span,
			EaveHeight:  eave,
			RidgeHeight: ridge,
		},
		FrameCount:     len(xPositions),
		BayCount:       bayCount,
		BayPitch:       pitch,
		XGridPositions: xPositions,
		YGridPositions: yPositions,
		MemberSummary:  summary,
	}
}

// buildYPositions defaults to the two eave lines at 0 and span, but
// distributes proportionally across intermediate Y-grid labels when at
// least 3 are present (a building with an internal ridge-support line).
func buildYPositions(span float64, grid model.GridSystem) []float64 {
	if len(grid.YLabels) < 3 {
		return []float64{0.0, span}
	}
	positions := make([]float64, len(grid.YLabels))
	for i, l := range grid.YLabels {
		positions[i] = l.Position
	}
	pMin, pMax := positions[0], positions[0]
	for _, p := range positions {
		if p < pMin {
			pMin = p
		}
		if p > pMax {
			pMax = p
		}
	}
	if pMax == pMin {
		return []float64{0.0, span}
	}
	out := make([]float64, len(positions))
	for i, p := range positions {
		out[i] = (p - pMin) / (pMax - pMin) * span
	}
	return out
}

func generateFrameMembers(frameIdx int, x float64, yPositions []float64, span, eave, ridge float64) []model.Member3D {
	var out []model.Member3D
	idx := frameIdx
	for j, y := range yPositions {
		label := labelFor("C-F", idx, "-Y", j+1)
		out = append(out, makeMember(model.MemberColumn, label,
			model.Point3D{X: x, Y: y, Z: 0},
			model.Point3D{X: x, Y: y, Z: eave}, &idx))
	}

	yRidge := span / 2
	eaveY0, eaveY1 := 0.0, span
	if len(yPositions) > 0 {
		eaveY0 = yPositions[0]
		eaveY1 = yPositions[len(yPositions)-1]
	}

	out = append(out, makeMember(model.MemberRafter, "R-F"+strconv.Itoa(idx)+"-L",
		model.Point3D{X: x, Y: eaveY0, Z: eave},
		model.Point3D{X: x, Y: yRidge, Z: ridge}, &idx))
	out = append(out, makeMember(model.MemberRafter, "R-F"+strconv.Itoa(idx)+"-R",
		model.Point3D{X: x, Y: eaveY1, Z: eave},
		model.Point3D{X: x, Y: yRidge, Z: ridge}, &idx))
	return out
}

func labelFor(prefix string, idx int, sep string, n int) string {
	return prefix + strconv.Itoa(idx) + sep + strconv.Itoa(n)
}

// generatePurlins places n purlins evenly along each roof slope between
// every pair of adjacent frames, on both the left and right slope.
func generatePurlins(xPositions []float64, span, eave, ridge float64, n int) []model.Member3D {
	if n <= 0 || len(xPositions) < 2 {
		return nil
	}
	yRidge := span / 2
	var out []model.Member3D
	for bayIdx := 0; bayIdx < len(xPositions)-1; bayIdx++ {
		x0 := xPositions[bayIdx]
		x1 := xPositions[bayIdx+1]
		for k := 1; k <= n; k++ {
			t := float64(k) / float64(n+1)

			leftY0, leftZ0 := 0.0, eave
			leftY1, leftZ1 := yRidge, ridge
			y0 := lerp(leftY0, leftY1, t)
			z0 := lerp(leftZ0, leftZ1, t)
			out = append(out, makeMember(model.MemberPurlin, "P-B"+strconv.Itoa(bayIdx)+"-L"+strconv.Itoa(k),
				model.Point3D{X: x0, Y: y0, Z: z0},
				model.Point3D{X: x1, Y: y0, Z: z0}, nil))

			rightY0, rightZ0 := span, eave
			y1 := lerp(rightY0, leftY1, t)
			z1 := lerp(rightZ0, leftZ1, t)
			out = append(out, makeMember(model.MemberPurlin, "P-B"+strconv.Itoa(bayIdx)+"-R"+strconv.Itoa(k),
				model.Point3D{X: x0, Y: y1, Z: z1},
				model.Point3D{X: x1, Y: y1, Z: z1}, nil))
		}
	}
	return out
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func makeMember(t model.MemberType, label string, start, end model.Point3D, frameIdx *int) model.Member3D {
	length := compute3DLength(start, end)
	return model.Member3D{
		MemberType: t,
		Label:      label,
		Start:      start,
		End:        end,
		Length:     math.Round(length*10) / 10,
		FrameIndex: frameIdx,
	}
}

func compute3DLength(a, b model.Point3D) float64 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
