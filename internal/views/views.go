// Package views implements Component B: locating the titled drawing panels
// (屋根伏図/平面図/立面図/断面図) on a sheet, detecting the reference-info
// panel so it doesn't get annexed into a view region, and partitioning the
// remaining area into one visual rectangle per view.
package views

import (
	"regexp"
	"sort"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/model"
	"github.com/steelscan/steelscan/internal/primitives"
)

// viewPatterns match a view-type title allowing the full-width spaces
// AutoCAD text styles commonly insert between kanji (屋　根　伏　図).
var viewPatterns = map[model.ViewType]*regexp.Regexp{
	model.ViewRoofPlan:  regexp.MustCompile(`屋[\s\x{3000}]*根[\s\x{3000}]*伏[\s\x{3000}]*図`),
	model.ViewFloorPlan: regexp.MustCompile(`平[\s\x{3000}]*面[\s\x{3000}]*図`),
	model.ViewElevation: regexp.MustCompile(`立[\s\x{3000}]*面[\s\x{3000}]*図`),
	model.ViewSection:   regexp.MustCompile(`断[\s\x{3000}]*面[\s\x{3000}]*図`),
}

var scalePattern = regexp.MustCompile(`[Ss]\s*[=＝]\s*1\s*/\s*([0-9]+)`)

var subtitlePattern = regexp.MustCompile(`[XYxy][0-9]+(?:[~～][XYxy]?[0-9]+)?[\s\x{3000}]*通[\s\x{3000}]*り`)

type titleCandidate struct {
	viewType model.ViewType
	title    model.TextSpan
	scale    string
	score    int
}

// Detect segments a page's primitives into Views.
func Detect(prims model.PagePrimitives, rotation int, cfg *config.Config) []model.View {
	candidates := findAllViewTitles(prims.Texts, cfg)
	if len(candidates) == 0 {
		return nil
	}

	panels := detectInfoPanels(prims.Lines, prims.PageWidth, prims.PageHeight, rotation, cfg)
	regions := buildVisualRegions(candidates, prims.PageWidth, prims.PageHeight, rotation, cfg)
	regions = clipRegionsAgainstPanels(regions, panels)

	views := make([]model.View, 0, len(regions))
	for _, r := range regions {
		texts := primitives.TextsInBBox(prims.Texts, r.mediaBox)
		lines := primitives.LinesInBBox(prims.Lines, r.mediaBox)
		title := r.cand.title.Text
		if r.cand.viewType == model.ViewElevation {
			if sub := FindSubtitle(prims.Texts, r.cand.title, cfg); sub != "" && sub != title {
				title += " " + sub
			}
		}
		views = append(views, model.View{
			ViewType:  r.cand.viewType,
			TitleText: title,
			TitleBBox: r.cand.title.BBox,
			Region:    r.mediaBox,
			Scale:     r.cand.scale,
			Texts:     texts,
			Lines:     lines,
		})
	}
	return views
}

func findAllViewTitles(texts []model.TextSpan, cfg *config.Config) []titleCandidate {
	var out []titleCandidate
	for _, t := range texts {
		var matched []model.ViewType
		for vt, re := range viewPatterns {
			if re.MatchString(t.Text) {
				matched = append(matched, vt)
			}
		}
		if len(matched) == 0 {
			continue
		}
		scale := ""
		if m := scalePattern.FindStringSubmatch(t.Text); m != nil {
			scale = "1/" + m[1]
		} else {
			for _, nb := range primitives.NearbyTexts(texts, t.Center.X, t.Center.Y, cfg.ScaleSearchRadiusX) {
				if dy := abs(nb.Center.Y - t.Center.Y); dy > cfg.ScaleSearchRadiusY {
					continue
				}
				if m := scalePattern.FindStringSubmatch(nb.Text); m != nil {
					scale = "1/" + m[1]
					break
				}
			}
		}

		for _, vt := range matched {
			score := 0
			if len([]rune(t.Text)) <= 30 {
				score += 5
			}
			if scale != "" {
				score += 10
			}
			if len(matched) > 1 {
				score -= 20
			}
			if score <= 0 {
				continue
			}
			out = append(out, titleCandidate{viewType: vt, title: t, scale: scale, score: score})
		}
	}
	return out
}

type lineCluster struct {
	x0, x1 float64
	ys     []float64
}

// detectInfoPanels finds the sheet's reference-info block: a cluster of ≥5
// long horizontal rule lines sitting in the right portion of the sheet.
func detectInfoPanels(lines []geometry.Line, mw, mh float64, rot int, cfg *config.Config) []geometry.BBox {
	visW, visH := mw, mh
	if rot == 90 || rot == 270 {
		visW, visH = mh, mw
	}

	var clusters []lineCluster
	for _, l := range lines {
		vx1, vy1 := geometry.ToVisual(l.P1.X, l.P1.Y, rot, mw, mh)
		vx2, vy2 := geometry.ToVisual(l.P2.X, l.P2.Y, rot, mw, mh)
		if abs(vy1-vy2) > 2 {
			continue
		}
		if l.Length < 100 {
			continue
		}
		x0, x1 := vx1, vx2
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		if x0 < visW*0.6 {
			continue
		}
		matched := false
		for i := range clusters {
			if abs(clusters[i].x0-x0) <= cfg.InfoPanelXTolerance && abs(clusters[i].x1-x1) <= cfg.InfoPanelXTolerance {
				clusters[i].ys = append(clusters[i].ys, vy1)
				matched = true
				break
			}
		}
		if !matched {
			clusters = append(clusters, lineCluster{x0: x0, x1: x1, ys: []float64{vy1}})
		}
	}

	var panels []geometry.BBox
	for _, c := range clusters {
		if len(c.ys) < cfg.InfoPanelMinCluster {
			continue
		}
		yMin, yMax := c.ys[0], c.ys[0]
		for _, y := range c.ys {
			if y < yMin {
				yMin = y
			}
			if y > yMax {
				yMax = y
			}
		}
		panels = append(panels, geometry.VisRectToMediabox(c.x0-cfg.InfoPanelMargin, yMin-cfg.InfoPanelMargin, c.x1+cfg.InfoPanelMargin, yMax+cfg.InfoPanelMargin, rot, mw, mh))
	}
	_ = visH
	return panels
}

type visualRegion struct {
	cand     titleCandidate
	mediaBox geometry.BBox
}

// buildVisualRegions clusters title candidates into rows by visual Y, then
// splits each row into columns at the midpoints between adjacent titles.
func buildVisualRegions(cands []titleCandidate, mw, mh float64, rot int, cfg *config.Config) []visualRegion {
	type placed struct {
		cand titleCandidate
		vx   float64
		vy   float64
	}
	ps := make([]placed, 0, len(cands))
	for _, c := range cands {
		vx, vy := geometry.ToVisual(c.title.Center.X, c.title.Center.Y, rot, mw, mh)
		ps = append(ps, placed{cand: c, vx: vx, vy: vy})
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].vy < ps[j].vy })

	var rows [][]placed
	for _, p := range ps {
		placedRow := false
		for i := range rows {
			if abs(rows[i][0].vy-p.vy) <= cfg.ViewRowThreshold {
				rows[i] = append(rows[i], p)
				placedRow = true
				break
			}
		}
		if !placedRow {
			rows = append(rows, []placed{p})
		}
	}

	visW, visH := mw, mh
	if rot == 90 || rot == 270 {
		visW, visH = mh, mw
	}

	// Each row's bottom edge is its own max title-Y plus the label pad; each
	// row's top edge is simply the previous row's bottom — a cascade with no
	// midpoint, so the rows' regions always abut with no gap between them.
	rowBottoms := make([]float64, len(rows))
	for ri, row := range rows {
		maxLabelY := row[0].vy
		for _, p := range row {
			if p.vy > maxLabelY {
				maxLabelY = p.vy
			}
		}
		rowBottoms[ri] = maxLabelY + cfg.ViewLabelPad
	}
	if len(rowBottoms) > 0 {
		rowBottoms[len(rowBottoms)-1] = visH
	}

	var out []visualRegion
	for ri, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].vx < row[j].vx })

		rowTop := 0.0
		if ri > 0 {
			rowTop = rowBottoms[ri-1]
		}
		rowBottom := rowBottoms[ri]

		for ci, p := range row {
			colLeft := 0.0
			if ci > 0 {
				colLeft = (row[ci-1].vx + p.vx) / 2
			}
			colRight := visW
			if ci < len(row)-1 {
				colRight = (p.vx + row[ci+1].vx) / 2
			}
			mb := geometry.VisRectToMediabox(colLeft, rowTop, colRight, rowBottom, rot, mw, mh)
			out = append(out, visualRegion{cand: p.cand, mediaBox: mb})
		}
	}
	return out
}

// clipRegionsAgainstPanels trims a region's far edge when it overlaps a
// detected info panel, so panel text never gets attributed to a view.
func clipRegionsAgainstPanels(regions []visualRegion, panels []geometry.BBox) []visualRegion {
	if len(panels) == 0 {
		return regions
	}
	for i, r := range regions {
		for _, p := range panels {
			if !r.mediaBox.Overlaps(p) {
				continue
			}
			clipped := r.mediaBox
			if p.X0 >= r.mediaBox.X0 && p.X0 <= r.mediaBox.X1 {
				clipped.X1 = p.X0
			}
			if p.Y0 >= r.mediaBox.Y0 && p.Y0 <= r.mediaBox.Y1 {
				clipped.Y1 = p.Y0
			}
			regions[i].mediaBox = clipped
		}
	}
	return regions
}

// FindSubtitle locates a "通り" grid-side subtitle near a view's title,
// e.g. "Y1通り" under an elevation title.
func FindSubtitle(texts []model.TextSpan, title model.TextSpan, cfg *config.Config) string {
	for _, nb := range primitives.NearbyTexts(texts, title.Center.X, title.Center.Y, cfg.SubtitleRadiusX) {
		if abs(nb.Center.Y-title.Center.Y) > cfg.SubtitleRadiusY {
			continue
		}
		if subtitlePattern.MatchString(nb.Text) {
			return nb.Text
		}
		if len([]rune(nb.Text)) < 20 && containsRune(nb.Text, '通') {
			return nb.Text
		}
	}
	return ""
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
