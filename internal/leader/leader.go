// Package leader implements Component J: tracing leader lines from a
// member-number callout to the structural line(s) it points at, across the
// roof framing plan (小屋伏図) and the five 軸組図/断面図 elevation sub-views.
// All six sub-views share one detection core — only the page finder and
// drawing-bbox finder differ per sub-view.
package leader

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/model"
	"github.com/steelscan/steelscan/internal/pdfdoc"
)

var (
	memberPattern   = regexp.MustCompile(`^([1-9]|1[0-2])$`)
	modifierPattern = regexp.MustCompile(`^(内側|外側)$`)
	scalePattern    = regexp.MustCompile(`[Ss][=＝]1/([0-9]+)`)
)

// vtext is a text run positioned in visual (rotation-normalized)
// coordinates, the frame every leader-tracing helper operates in.
type vtext struct {
	text string
	vx   float64
	vy   float64
}

// bboxFinder isolates one sub-view's drawing area from the full set of
// page texts, given the page's visual width and height. Each of the five
// axial-frame sub-views (and 小屋伏図) supplies its own, since they share a
// page but occupy distinct quadrants keyed off the view's title position.
type bboxFinder func(texts []vtext, pageWidth, pageHeight float64) *model.DrawingBBox

// toVisualSimple is koyafuse.py's own simpler 2-arg width _to_visual
// (it never had access to mh for every rotation branch) — kept distinct
// from geometry.ToVisual, which the view-segmentation path uses, because
// the two behave differently at rot=90/180 and both are ground truth.
func toVisualSimple(mx, my float64, rot int, mw float64) (float64, float64) {
	switch rot {
	case 270:
		return my, mw - mx
	case 90:
		return mw - my, mx
	case 180:
		return mw - mx, mw - my
	default:
		return mx, my
	}
}

// DetectKoyafuse finds the roof-framing-plan page (小屋伏図) and traces its
// leader-numbered members. Requires a multi-page document.
func DetectKoyafuse(doc *pdfdoc.Document, cfg *config.Config) (*model.LeaderPageResult, error) {
	if doc.PageCount() < 2 {
		return nil, nil
	}
	pageIdx, page, err := findPageContaining(doc, 1, []string{"小屋伏図", "小　屋　伏　図"})
	if err != nil || page == nil {
		return nil, err
	}
	return traceMembersOnPage(pageIdx, page, cfg, []string{"小屋", "伏図"}, func(texts []vtext, _, _ float64) *model.DrawingBBox {
		return findDrawingBBox(texts)
	})
}

// DetectAxialFrameY1 finds the Y1通り elevation leader tracing: the top
// half of the 軸組図 page, bounded left/right by the X1/Xn+1 grid labels.
func DetectAxialFrameY1(doc *pdfdoc.Document, cfg *config.Config) (*model.LeaderPageResult, error) {
	return detectAxialSide(doc, cfg, func(texts []vtext, _, pageHeight float64) *model.DrawingBBox {
		return findY1BBox(texts, pageHeight)
	})
}

// DetectAxialFrameY2 finds the Y2通り elevation leader tracing: the same
// 軸組図 page as Y1, but the bottom half.
func DetectAxialFrameY2(doc *pdfdoc.Document, cfg *config.Config) (*model.LeaderPageResult, error) {
	return detectAxialSide(doc, cfg, func(texts []vtext, _, pageHeight float64) *model.DrawingBBox {
		return findY2BBox(texts, pageHeight)
	})
}

// DetectAxialFrameX1 traces the X1通り elevation: the top-left quadrant of
// the X-frame page, bounded by its Y1/Y2 grid labels.
func DetectAxialFrameX1(doc *pdfdoc.Document, cfg *config.Config) (*model.LeaderPageResult, error) {
	return detectXFramePage(doc, cfg, findX1BBox)
}

// DetectAxialFrameXn1 traces the Xn+1通り elevation: the bottom-left
// quadrant of the X-frame page (opposite end from X1).
func DetectAxialFrameXn1(doc *pdfdoc.Document, cfg *config.Config) (*model.LeaderPageResult, error) {
	return detectXFramePage(doc, cfg, findXn1BBox)
}

// DetectAxialFrameX2Xn traces the X2~Xn通り/断面図 section: the
// bottom-right quadrant of the X-frame page.
func DetectAxialFrameX2Xn(doc *pdfdoc.Document, cfg *config.Config) (*model.LeaderPageResult, error) {
	return detectXFramePage(doc, cfg, findX2XnBBox)
}

func detectAxialSide(doc *pdfdoc.Document, cfg *config.Config, bboxFn bboxFinder) (*model.LeaderPageResult, error) {
	if doc.PageCount() < 3 {
		return nil, nil
	}
	pageIdx, page, err := findPageContaining(doc, 1, []string{"軸組図", "軸　組　図"})
	if err != nil || page == nil {
		return nil, err
	}
	return traceMembersOnPage(pageIdx, page, cfg, []string{"軸", "組", "断面"}, bboxFn)
}

// detectXFramePage finds the X-frame page: when ≥2 axial-or-section pages
// exist, it is the second one; otherwise fall back to scanning annotation
// text for an X-grid label.
func detectXFramePage(doc *pdfdoc.Document, cfg *config.Config, bboxFn bboxFinder) (*model.LeaderPageResult, error) {
	if doc.PageCount() < 3 {
		return nil, nil
	}
	var axialPages []int
	for i := 1; i < doc.PageCount(); i++ {
		page, err := doc.Page(i)
		if err != nil {
			continue
		}
		text := page.GetText()
		if strings.Contains(text, "軸組図") || strings.Contains(text, "断面図") ||
			strings.Contains(text, "軸　組　図") || strings.Contains(text, "断　面　図") {
			axialPages = append(axialPages, i)
		}
	}
	if len(axialPages) >= 2 {
		idx := axialPages[1]
		page, err := doc.Page(idx)
		if err != nil {
			return nil, err
		}
		return traceMembersOnPage(idx, page, cfg, []string{"軸", "組", "断面"}, bboxFn)
	}

	for i := 1; i < doc.PageCount(); i++ {
		page, err := doc.Page(i)
		if err != nil {
			continue
		}
		text := page.GetText()
		if strings.Contains(text, "X1通") || strings.Contains(text, "Xn") || strings.Contains(text, "XN") {
			return traceMembersOnPage(i, page, cfg, []string{"軸", "組", "断面"}, bboxFn)
		}
	}
	return nil, nil
}

func findPageContaining(doc *pdfdoc.Document, startIdx int, needles []string) (int, *pdfdoc.Page, error) {
	for i := startIdx; i < doc.PageCount(); i++ {
		page, err := doc.Page(i)
		if err != nil {
			continue
		}
		text := page.GetText()
		for _, n := range needles {
			if strings.Contains(text, n) {
				return i, page, nil
			}
		}
	}
	return -1, nil, nil
}

// traceMembersOnPage is the shared detection core: find the drawing scale,
// the drawing bbox, the leader-numbered member labels within it, and for
// each label trace its leader tips back to the structural line(s) it
// points at.
func traceMembersOnPage(pageIdx int, page *pdfdoc.Page, cfg *config.Config, scalePreference []string, bboxFn bboxFinder) (*model.LeaderPageResult, error) {
	rot := page.Rotation
	mw := page.MediaWidth
	mh := page.MediaHeight
	visualWidth, visualHeight := mw, mh
	if rot == 90 || rot == 270 {
		visualWidth, visualHeight = mh, mw
	}

	texts := make([]vtext, 0, len(page.Texts))
	for _, t := range page.Texts {
		cx := (t.BBox.X0 + t.BBox.X1) / 2
		cy := (t.BBox.Y0 + t.BBox.Y1) / 2
		vx, vy := toVisualSimple(cx, cy, rot, mw)
		texts = append(texts, vtext{text: t.Text, vx: vx, vy: vy})
	}

	scale := findScale(page, scalePreference)
	bbox := bboxFn(texts, visualWidth, visualHeight)

	type labelCand struct {
		num      string
		modifier string
		vx, vy   float64
	}
	var labels []labelCand
	for i, t := range texts {
		if !memberPattern.MatchString(t.text) {
			continue
		}
		if bbox != nil {
			if t.vx < bbox.X0 || t.vx > bbox.X1 || t.vy < bbox.Y0 || t.vy > bbox.Y1 {
				continue
			}
		} else if t.vx > 830 || t.vy < 50 {
			continue
		}
		modifier := ""
		for j, o := range texts {
			if j == i {
				continue
			}
			if modifierPattern.MatchString(o.text) {
				d := math.Hypot(o.vx-t.vx, o.vy-t.vy)
				if d <= 40 {
					modifier = o.text
					break
				}
			}
		}
		labels = append(labels, labelCand{num: t.text, modifier: modifier, vx: t.vx, vy: t.vy})
	}

	visLines := make([]geometry.Line, len(page.Lines))
	for i, l := range page.Lines {
		vx1, vy1 := toVisualSimple(l.P1.X, l.P1.Y, rot, mw)
		vx2, vy2 := toVisualSimple(l.P2.X, l.P2.Y, rot, mw)
		visLines[i] = geometry.NewLine(geometry.Point{X: vx1, Y: vy1}, geometry.Point{X: vx2, Y: vy2}, l.Width, l.Color)
	}

	var members []model.DetectedMember
	for _, lc := range labels {
		tips := findLeaderTips(lc.vx, lc.vy, visLines, cfg)
		orientation := determineOrientation(tips, visLines, lc.vx, lc.vy, cfg)
		lineCount, linePositions := countStructuralLines(orientation, tips, visLines, bbox, cfg)

		label := lc.num + lc.modifier
		members = append(members, model.DetectedMember{
			MemberNumber:  lc.num,
			Modifier:      lc.modifier,
			Label:         label,
			LabelX:        lc.vx,
			LabelY:        lc.vy,
			LeaderTips:    tips,
			TipCount:      len(tips),
			LineCount:     lineCount,
			LinePositions: linePositions,
			Orientation:   orientation,
		})
	}

	sort.Slice(members, func(i, j int) bool {
		ni, _ := strconv.Atoi(members[i].MemberNumber)
		nj, _ := strconv.Atoi(members[j].MemberNumber)
		if ni != nj {
			return ni < nj
		}
		return members[i].Modifier < members[j].Modifier
	})

	result := &model.LeaderPageResult{
		PageIndex:       pageIdx,
		Scale:           scale,
		DetectedMembers: members,
		MediaboxWidth:   mw,
	}
	if bbox != nil {
		result.DrawingBBox = bbox
	}
	return result, nil
}

func findScale(page *pdfdoc.Page, preference []string) string {
	var first string
	for _, t := range page.Texts {
		m := scalePattern.FindString(t.Text)
		if m == "" {
			continue
		}
		if first == "" {
			first = m
		}
		for _, pref := range preference {
			if strings.Contains(t.Text, pref) {
				return m
			}
		}
	}
	return first
}

// findDrawingBBox locates the 小屋伏図 drawing area from its X1/Xn+1/Y1/Y2
// grid labels, with asymmetric margins matching the original's hand-tuned
// padding. Unlike the axial-frame finders below, 小屋伏図 has the whole
// page to itself, so no quadrant discrimination is needed.
func findDrawingBBox(texts []vtext) *model.DrawingBBox {
	var x1Pos, xEndPos, y1Pos, y2Pos *geometry.Point
	for _, t := range texts {
		switch strings.TrimSpace(t.text) {
		case "X1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			x1Pos = &p
		case "Xn+1", "XN+1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			xEndPos = &p
		case "Y1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			y1Pos = &p
		case "Y2":
			p := geometry.Point{X: t.vx, Y: t.vy}
			y2Pos = &p
		}
	}
	if x1Pos == nil || xEndPos == nil || y1Pos == nil || y2Pos == nil {
		return nil
	}

	xMin := math.Min(x1Pos.X, xEndPos.X)
	xMax := math.Max(x1Pos.X, xEndPos.X)
	yMin := math.Min(y2Pos.Y, y1Pos.Y) // Y2 is typically upper, Y1 lower
	yMax := math.Max(y2Pos.Y, y1Pos.Y)

	return &model.DrawingBBox{
		X0: xMin - 30,
		Y0: yMin - 30,
		X1: xMax + 50,
		Y1: yMax + 30,
	}
}

// findY1BBox isolates the Y1通り elevation: the top half of the 軸組図
// page, bounded left/right by the X1/Xn+1 grid labels found up there.
func findY1BBox(texts []vtext, pageHeight float64) *model.DrawingBBox {
	var y1TitleY, y2TitleY *float64
	for _, t := range texts {
		if strings.Contains(t.text, "Y1通り") || strings.Contains(t.text, "Y1通") {
			v := t.vy
			y1TitleY = &v
		}
		if strings.Contains(t.text, "Y2通り") || strings.Contains(t.text, "Y2通") {
			v := t.vy
			y2TitleY = &v
		}
	}

	pageMid := pageHeight / 2
	var x1Pos, xEndPos *geometry.Point
	topY := pageHeight

	for _, t := range texts {
		if t.vy > pageMid+50 {
			continue
		}
		switch strings.TrimSpace(t.text) {
		case "X1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			x1Pos = &p
			if t.vy < topY {
				topY = t.vy
			}
		case "Xn+1", "XN+1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			xEndPos = &p
			if t.vy < topY {
				topY = t.vy
			}
		}
	}

	if x1Pos == nil || xEndPos == nil {
		if y1TitleY != nil && y2TitleY != nil {
			bottom := math.Min(*y1TitleY, *y2TitleY)
			return &model.DrawingBBox{X0: 30, Y0: 20, X1: pageHeight * 0.7, Y1: bottom + 20}
		}
		return nil
	}

	xMin := math.Min(x1Pos.X, xEndPos.X)
	xMax := math.Max(x1Pos.X, xEndPos.X)
	bottomY := pageMid
	if y1TitleY != nil {
		bottomY = *y1TitleY + 30
	}

	return &model.DrawingBBox{X0: xMin - 40, Y0: topY - 40, X1: xMax + 50, Y1: bottomY}
}

// findY2BBox isolates the Y2通り elevation: the bottom half of the same
// 軸組図 page Y1 occupies the top half of.
func findY2BBox(texts []vtext, pageHeight float64) *model.DrawingBBox {
	var y2TitleY *float64
	for _, t := range texts {
		if strings.Contains(t.text, "Y2通り") || strings.Contains(t.text, "Y2通") {
			v := t.vy
			y2TitleY = &v
		}
	}

	pageMid := pageHeight / 2
	var x1Pos, xEndPos *geometry.Point
	topY := pageHeight

	for _, t := range texts {
		if t.vy < pageMid-50 {
			continue
		}
		switch strings.TrimSpace(t.text) {
		case "X1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			x1Pos = &p
			if t.vy < topY {
				topY = t.vy
			}
		case "Xn+1", "XN+1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			xEndPos = &p
			if t.vy < topY {
				topY = t.vy
			}
		}
	}

	if x1Pos == nil || xEndPos == nil {
		if y2TitleY != nil {
			return &model.DrawingBBox{X0: 30, Y0: pageMid - 30, X1: pageHeight * 0.7, Y1: *y2TitleY + 30}
		}
		return nil
	}

	xMin := math.Min(x1Pos.X, xEndPos.X)
	xMax := math.Max(x1Pos.X, xEndPos.X)
	bottomY := pageHeight - 40
	if y2TitleY != nil {
		bottomY = *y2TitleY + 30
	}

	return &model.DrawingBBox{X0: xMin - 40, Y0: topY - 40, X1: xMax + 50, Y1: bottomY}
}

// findX1BBox isolates the X1通り elevation: the top-left quadrant of the
// X-frame page. Its grid labels are Y2 (left) and Y1 (right).
func findX1BBox(texts []vtext, pageWidth, pageHeight float64) *model.DrawingBBox {
	var titleY *float64
	for _, t := range texts {
		if strings.Contains(t.text, "X1通") && t.vx < pageWidth/2 {
			v := t.vy
			titleY = &v
		}
	}

	pageMidY := pageHeight / 2
	var y2Pos, y1Pos *geometry.Point
	topY := pageHeight

	for _, t := range texts {
		if t.vy > pageMidY+50 || t.vx > pageWidth/2 {
			continue
		}
		switch strings.TrimSpace(t.text) {
		case "Y2":
			p := geometry.Point{X: t.vx, Y: t.vy}
			y2Pos = &p
			if t.vy < topY {
				topY = t.vy
			}
		case "Y1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			y1Pos = &p
			if t.vy < topY {
				topY = t.vy
			}
		}
	}

	if y2Pos == nil || y1Pos == nil {
		if titleY != nil {
			return &model.DrawingBBox{X0: 30, Y0: 20, X1: pageWidth * 0.48, Y1: *titleY + 30}
		}
		return nil
	}

	xMin := math.Min(y2Pos.X, y1Pos.X)
	xMax := math.Max(y2Pos.X, y1Pos.X)
	bottomY := pageMidY
	if titleY != nil {
		bottomY = *titleY + 30
	}

	return &model.DrawingBBox{X0: xMin - 40, Y0: topY - 40, X1: xMax + 50, Y1: bottomY}
}

// findXn1BBox isolates the Xn+1通り elevation: the bottom-left quadrant of
// the X-frame page. Its grid labels are Y1 (left) and Y2 (right).
func findXn1BBox(texts []vtext, pageWidth, pageHeight float64) *model.DrawingBBox {
	var titleY *float64
	for _, t := range texts {
		if (strings.Contains(t.text, "Xn+1通") || strings.Contains(t.text, "XN+1通") || strings.Contains(t.text, "Xn 1通")) && t.vx < pageWidth/2 {
			v := t.vy
			titleY = &v
		}
		if titleY == nil && strings.Contains(t.text, "Xn") && t.vx < pageWidth/2 && t.vy > pageHeight/2-50 {
			v := t.vy
			titleY = &v
		}
	}

	pageMidY := pageHeight / 2
	var y1Pos, y2Pos *geometry.Point
	topY := pageHeight

	for _, t := range texts {
		if t.vy < pageMidY-50 || t.vx > pageWidth/2 {
			continue
		}
		switch strings.TrimSpace(t.text) {
		case "Y1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			y1Pos = &p
			if t.vy < topY {
				topY = t.vy
			}
		case "Y2":
			p := geometry.Point{X: t.vx, Y: t.vy}
			y2Pos = &p
			if t.vy < topY {
				topY = t.vy
			}
		}
	}

	if y1Pos == nil || y2Pos == nil {
		if titleY != nil {
			return &model.DrawingBBox{X0: 30, Y0: pageMidY - 30, X1: pageWidth * 0.48, Y1: *titleY + 30}
		}
		return nil
	}

	xMin := math.Min(y1Pos.X, y2Pos.X)
	xMax := math.Max(y1Pos.X, y2Pos.X)
	bottomY := pageHeight - 40
	if titleY != nil {
		bottomY = *titleY + 30
	}

	return &model.DrawingBBox{X0: xMin - 40, Y0: topY - 40, X1: xMax + 50, Y1: bottomY}
}

// findX2XnBBox isolates the X2~Xn通り/断面図 section: the bottom-right
// quadrant of the X-frame page. Its grid labels are Y2 (left) and Y1
// (right).
func findX2XnBBox(texts []vtext, pageWidth, pageHeight float64) *model.DrawingBBox {
	var titleY *float64
	for _, t := range texts {
		if t.vx > pageWidth/2 {
			if (strings.Contains(t.text, "X2") && strings.Contains(t.text, "Xn")) ||
				strings.Contains(t.text, "X2~Xn") || strings.Contains(t.text, "X2～Xn") {
				v := t.vy
				titleY = &v
			}
			if titleY == nil && strings.Contains(t.text, "断面図") {
				v := t.vy
				titleY = &v
			}
		}
	}

	pageMidY := pageHeight / 2
	var y2Pos, y1Pos *geometry.Point
	topY := pageHeight

	for _, t := range texts {
		if t.vy < pageMidY-50 || t.vx < pageWidth/2 {
			continue
		}
		switch strings.TrimSpace(t.text) {
		case "Y2":
			p := geometry.Point{X: t.vx, Y: t.vy}
			y2Pos = &p
			if t.vy < topY {
				topY = t.vy
			}
		case "Y1":
			p := geometry.Point{X: t.vx, Y: t.vy}
			y1Pos = &p
			if t.vy < topY {
				topY = t.vy
			}
		}
	}

	if y2Pos == nil || y1Pos == nil {
		if titleY != nil {
			return &model.DrawingBBox{X0: pageWidth * 0.52, Y0: pageMidY - 30, X1: pageWidth - 30, Y1: *titleY + 30}
		}
		return nil
	}

	xMin := math.Min(y2Pos.X, y1Pos.X)
	xMax := math.Max(y2Pos.X, y1Pos.X)
	bottomY := pageHeight - 40
	if titleY != nil {
		bottomY = *titleY + 30
	}

	return &model.DrawingBBox{X0: xMin - 40, Y0: topY - 40, X1: xMax + 50, Y1: bottomY}
}

// findLeaderTips resolves the best leader-line junction near a member
// label and returns the thin-line tips fanning out from it, away from the
// label, nearest (shortest) first.
func findLeaderTips(lx, ly float64, lines []geometry.Line, cfg *config.Config) []model.LeaderTip {
	isThin := func(l geometry.Line) bool {
		return math.Abs(l.Width-cfg.ThinStrokeWidth) <= cfg.StrokeWidthBand
	}

	type junction struct {
		x, y       float64
		maxLen     float64
		proximity  float64
		count      int
	}
	var junctions []junction
	for _, l := range lines {
		if !isThin(l) || l.Length < cfg.LeaderMinTipLength {
			continue
		}
		for _, near := range [][2]geometry.Point{{l.P1, l.P2}, {l.P2, l.P1}} {
			nearPt, farPt := near[0], near[1]
			if geometry.Dist(geometry.Point{X: lx, Y: ly}, nearPt) > cfg.LeaderNearRadius {
				continue
			}
			found := false
			for i := range junctions {
				if math.Hypot(junctions[i].x-farPt.X, junctions[i].y-farPt.Y) <= cfg.LeaderSnapTolerance {
					junctions[i].count++
					if l.Length > junctions[i].maxLen {
						junctions[i].maxLen = l.Length
					}
					found = true
					break
				}
			}
			if !found {
				junctions = append(junctions, junction{
					x: farPt.X, y: farPt.Y,
					maxLen:    l.Length,
					proximity: -geometry.Dist(geometry.Point{X: lx, Y: ly}, farPt),
					count:     1,
				})
			}
		}
	}
	if len(junctions) == 0 {
		return nil
	}
	sort.Slice(junctions, func(i, j int) bool {
		if junctions[i].maxLen != junctions[j].maxLen {
			return junctions[i].maxLen > junctions[j].maxLen
		}
		if junctions[i].proximity != junctions[j].proximity {
			return junctions[i].proximity > junctions[j].proximity
		}
		return junctions[i].count > junctions[j].count
	})
	best := junctions[0]

	type tip struct {
		x, y, length float64
	}
	seen := map[[2]int]bool{}
	var tips []tip
	for _, l := range lines {
		if !isThin(l) {
			continue
		}
		for _, near := range [][2]geometry.Point{{l.P1, l.P2}, {l.P2, l.P1}} {
			nearPt, farPt := near[0], near[1]
			if math.Hypot(nearPt.X-best.x, nearPt.Y-best.y) > cfg.LeaderSnapTolerance {
				continue
			}
			distFarToLabel := geometry.Dist(geometry.Point{X: lx, Y: ly}, farPt)
			distJunctionToLabel := geometry.Dist(geometry.Point{X: lx, Y: ly}, geometry.Point{X: best.x, Y: best.y})
			if distFarToLabel <= distJunctionToLabel {
				continue
			}
			key := [2]int{int(math.Round(farPt.X)), int(math.Round(farPt.Y))}
			if seen[key] {
				continue
			}
			seen[key] = true
			tips = append(tips, tip{x: farPt.X, y: farPt.Y, length: l.Length})
		}
	}
	sort.Slice(tips, func(i, j int) bool { return tips[i].length < tips[j].length })

	out := make([]model.LeaderTip, len(tips))
	for i, t := range tips {
		out[i] = model.LeaderTip{X: t.x, Y: t.y, Length: t.length}
	}
	return out
}

// determineOrientation decides whether a traced member runs along the X
// (longitudinal) or Y (transverse) axis of the drawing.
func determineOrientation(tips []model.LeaderTip, lines []geometry.Line, lx, ly float64, cfg *config.Config) string {
	if len(tips) >= 2 {
		xMin, xMax := tips[0].X, tips[0].X
		yMin, yMax := tips[0].Y, tips[0].Y
		for _, t := range tips {
			if t.X < xMin {
				xMin = t.X
			}
			if t.X > xMax {
				xMax = t.X
			}
			if t.Y < yMin {
				yMin = t.Y
			}
			if t.Y > yMax {
				yMax = t.Y
			}
		}
		if (yMax - yMin) > (xMax - xMin) {
			return "x"
		}
		return "y"
	}
	if len(tips) != 1 {
		return ""
	}
	tip := tips[0]

	// Phase 1: sum thick-line lengths near the tip, split into
	// horizontal/vertical by angle.
	var horizLen, vertLen float64
	haveThick := false
	for _, l := range lines {
		if math.Abs(l.Width-cfg.ThickStrokeWidth) > cfg.StrokeWidthBand {
			continue
		}
		if geometry.Dist(geometry.Point{X: tip.X, Y: tip.Y}, l.P1) > cfg.OrientationSearchRadius &&
			geometry.Dist(geometry.Point{X: tip.X, Y: tip.Y}, l.P2) > cfg.OrientationSearchRadius {
			continue
		}
		dx := l.P2.X - l.P1.X
		dy := l.P2.Y - l.P1.Y
		angle := math.Atan2(math.Abs(dy), math.Abs(dx)) * 180 / math.Pi
		haveThick = true
		if angle < 30 {
			horizLen += l.Length
		} else if angle > 60 {
			vertLen += l.Length
		}
	}
	if haveThick && (horizLen > 0 || vertLen > 0) {
		if horizLen >= vertLen {
			return "x"
		}
		return "y"
	}

	// Phase 2 fallback: count all lines near the tip (excluding the tip's
	// own thin leader stub) by direction.
	horizCount, vertCount := 0, 0
	for _, l := range lines {
		if l.Length < 3 {
			continue
		}
		d1 := geometry.Dist(geometry.Point{X: tip.X, Y: tip.Y}, l.P1)
		d2 := geometry.Dist(geometry.Point{X: tip.X, Y: tip.Y}, l.P2)
		nearest := math.Min(d1, d2)
		if nearest > cfg.OrientationSearchRadius {
			continue
		}
		if nearest < cfg.LeaderSnapTolerance && math.Abs(l.Width-cfg.ThinStrokeWidth) <= cfg.StrokeWidthBand {
			continue
		}
		dx := l.P2.X - l.P1.X
		dy := l.P2.Y - l.P1.Y
		angle := math.Atan2(math.Abs(dy), math.Abs(dx)) * 180 / math.Pi
		if angle < 45 {
			horizCount++
		} else {
			vertCount++
		}
	}
	if horizCount >= vertCount {
		return "x"
	}
	return "y"
}

// countStructuralLines counts the structural members a traced leader
// actually identifies: for "x"-oriented members each tip is one purlin
// line; for "y"-oriented members it finds the thick reference line nearest
// the first tip and counts every thick vertical line of similar length in
// the drawing area.
func countStructuralLines(orientation string, tips []model.LeaderTip, lines []geometry.Line, bbox *model.DrawingBBox, cfg *config.Config) (int, [][2]float64) {
	if orientation == "x" {
		positions := make([][2]float64, len(tips))
		for i, t := range tips {
			positions[i] = [2]float64{t.X, t.Y}
		}
		return len(tips), positions
	}

	if len(tips) == 0 {
		return 0, nil
	}
	ref := tips[0]

	var refLine *geometry.Line
	bestDist := cfg.OrientationSearchRadius
	for i := range lines {
		l := lines[i]
		if math.Abs(l.Width-cfg.ThickStrokeWidth) > cfg.StrokeWidthBand {
			continue
		}
		if l.Length < cfg.StructuralMinLength {
			continue
		}
		angle := math.Mod(l.Angle, 180)
		if angle < 80 || angle > 100 {
			continue
		}
		d := math.Min(geometry.Dist(geometry.Point{X: ref.X, Y: ref.Y}, l.P1), geometry.Dist(geometry.Point{X: ref.X, Y: ref.Y}, l.P2))
		if d < bestDist {
			bestDist = d
			ln := l
			refLine = &ln
		}
	}
	if refLine == nil {
		return 0, nil
	}

	type cluster struct {
		x     float64
		count int
	}
	var clusters []cluster
	for _, l := range lines {
		if math.Abs(l.Width-cfg.ThickStrokeWidth) > cfg.StrokeWidthBand {
			continue
		}
		if !geometry.IsVertical(l, 10) {
			continue
		}
		if math.Abs(l.Length-refLine.Length)/refLine.Length > 0.05 {
			continue
		}
		if bbox != nil {
			cx := (l.P1.X + l.P2.X) / 2
			cy := (l.P1.Y + l.P2.Y) / 2
			if cx < bbox.X0 || cx > bbox.X1 || cy < bbox.Y0 || cy > bbox.Y1 {
				continue
			}
		}
		x := (l.P1.X + l.P2.X) / 2
		matched := false
		for i := range clusters {
			if math.Abs(clusters[i].x-x) <= 5 {
				clusters[i].count++
				matched = true
				break
			}
		}
		if !matched {
			clusters = append(clusters, cluster{x: x, count: 1})
		}
	}

	var positions [][2]float64
	for _, c := range clusters {
		positions = append(positions, [2]float64{c.x, 0})
	}
	return len(clusters), positions
}
