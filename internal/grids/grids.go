// Package grids implements Component C: recovering the 通り芯 grid-axis
// labels (X1, X2, ..., the symbolic "Xn+1" bay-count placeholder, Y1, Y2)
// from a view's text spans and associating each label with its grid line.
package grids

import (
	"regexp"
	"strconv"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/model"
	"golang.org/x/text/width"
)

// SymbolicIndex is the sentinel index assigned to a symbolic label like
// "Xn+1", whose numeric position in the bay sequence is not yet known.
const SymbolicIndex = 999

var numericPattern = regexp.MustCompile(`^([XY])[\s\x{3000}]*([0-9]{1,2})$`)
var symbolicPattern = regexp.MustCompile(`(?i)^([XY])[\s\x{3000}]*n[\s\x{3000}]*\+[\s\x{3000}]*1$`)

// Build recovers the grid system visible in one view.
func Build(v model.View, rot int, cfg *config.Config) model.GridSystem {
	gs := model.GridSystem{SourceView: v.ViewType}
	seen := map[string]bool{}

	for _, t := range v.Texts {
		norm := width.Fold.String(t.Text)
		var label model.GridLabel
		ok := false
		if m := numericPattern.FindStringSubmatch(norm); m != nil {
			idx, _ := strconv.Atoi(m[2])
			if idx >= 1 && idx <= 99 {
				label = model.GridLabel{
					Axis:     axisFor(m[1]),
					Label:    m[1] + m[2],
					Index:    idx,
					TextSpan: t,
				}
				ok = true
			}
		} else if m := symbolicPattern.FindStringSubmatch(norm); m != nil {
			label = model.GridLabel{
				Axis:     axisFor(m[1]),
				Label:    m[1] + "n+1",
				Index:    SymbolicIndex,
				TextSpan: t,
			}
			ok = true
		}
		if !ok || seen[label.Label] {
			continue
		}
		seen[label.Label] = true

		// Under rotation 90/270 the mediabox axes are transposed relative
		// to the visual drawing, so the scalar position of an X-axis
		// label is read from the matched line's/text's mediabox Y
		// coordinate instead of X, and vice versa for Y — the same swap
		// associateLine applies when choosing which line orientation to
		// look for.
		wantVertical := label.Axis == model.AxisX
		if rot == 90 || rot == 270 {
			wantVertical = !wantVertical
		}

		line := associateLine(label, v.Lines, rot, cfg)
		if line != nil {
			label.Line = line
			label.Position = lineAxisCoord(*line, wantVertical)
		} else if wantVertical {
			label.Position = t.Center.X
		} else {
			label.Position = t.Center.Y
		}

		if label.Axis == model.AxisX {
			gs.XLabels = append(gs.XLabels, label)
		} else {
			gs.YLabels = append(gs.YLabels, label)
		}
	}
	return gs
}

func axisFor(s string) model.GridAxis {
	if s == "X" || s == "x" {
		return model.AxisX
	}
	return model.AxisY
}

// associateLine finds the grid line nearest a label by distance from the
// label centre to the line segment. X labels mark vertical grid lines, Y
// labels mark horizontal ones — except when the page is rotated 90/270,
// where visual verticality swaps with mediabox verticality, so the wanted
// orientation is swapped and tested on the raw mediabox line.
func associateLine(label model.GridLabel, lines []geometry.Line, rot int, cfg *config.Config) *geometry.Line {
	wantVertical := label.Axis == model.AxisX
	if rot == 90 || rot == 270 {
		wantVertical = !wantVertical
	}

	var best *geometry.Line
	bestDist := cfg.GridMaxAssocDistance
	for i := range lines {
		l := lines[i]
		if l.Length < cfg.MinGridLineLength {
			continue
		}
		isVert := geometry.IsVertical(l, cfg.GridOrientationTolDeg)
		isHorz := geometry.IsHorizontal(l, cfg.GridOrientationTolDeg)
		if wantVertical && !isVert {
			continue
		}
		if !wantVertical && !isHorz {
			continue
		}
		d := geometry.PointToLineDistance(label.TextSpan.Center, l)
		if d < bestDist {
			bestDist = d
			ln := l
			best = &ln
		}
	}
	return best
}

// lineAxisCoord returns a grid line's defining coordinate: its average X
// for a vertical line, or average Y for a horizontal line. Which one that
// is for a given label depends on the label's axis XOR the page rotation
// (see the call site in Build), not on the label's axis alone.
func lineAxisCoord(l geometry.Line, vertical bool) float64 {
	if vertical {
		return (l.P1.X + l.P2.X) / 2
	}
	return (l.P1.Y + l.P2.Y) / 2
}

// AssociationRatio is the fraction of labels that matched a grid line,
// consulted by Component F's grid-association quality gate.
func AssociationRatio(gs model.GridSystem) float64 {
	total := len(gs.XLabels) + len(gs.YLabels)
	if total == 0 {
		return 0
	}
	matched := 0
	for _, l := range gs.XLabels {
		if l.Line != nil {
			matched++
		}
	}
	for _, l := range gs.YLabels {
		if l.Line != nil {
			matched++
		}
	}
	return float64(matched) / float64(total)
}
