// Package primitives implements Component A: turning one page of a PDF into
// the normalized PagePrimitives every later component consumes, plus the
// small geometric query helpers (texts/lines in a bbox, nearby search) that
// those components share.
package primitives

import (
	"sort"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/model"
	"github.com/steelscan/steelscan/internal/pdfdoc"
)

// Extract builds PagePrimitives for one page, merging SHX-font annotation
// text in with ordinary content-stream text runs and dropping degenerate
// (near-zero-length) line segments.
func Extract(page *pdfdoc.Page, cfg *config.Config) model.PagePrimitives {
	texts := make([]model.TextSpan, 0, len(page.Texts)+len(page.Annotations))
	for _, t := range page.Texts {
		texts = append(texts, toTextSpan(t.Text, t.BBox, t.Font, t.Size))
	}
	for _, a := range page.Annotations {
		if a.Content == "" {
			continue
		}
		texts = append(texts, toTextSpan(a.Content, a.Rect, "SHX", 0))
	}

	lines := make([]geometry.Line, 0, len(page.Lines))
	for _, l := range page.Lines {
		if l.Length >= cfg.MinLineLength {
			lines = append(lines, l)
		}
	}

	return model.PagePrimitives{
		PageIndex:  page.Index,
		PageWidth:  page.MediaWidth,
		PageHeight: page.MediaHeight,
		Texts:      texts,
		Lines:      lines,
		Rects:      page.Rects,
	}
}

func toTextSpan(text string, bbox geometry.BBox, font string, size float64) model.TextSpan {
	return model.TextSpan{
		Text:   text,
		BBox:   bbox,
		Center: bbox.Center(),
		Font:   font,
		Size:   size,
	}
}

// TextsInBBox returns every text span whose center falls inside box.
func TextsInBBox(texts []model.TextSpan, box geometry.BBox) []model.TextSpan {
	var out []model.TextSpan
	for _, t := range texts {
		if box.Contains(t.Center) {
			out = append(out, t)
		}
	}
	return out
}

// LinesInBBox returns every line with at least one endpoint inside box.
func LinesInBBox(lines []geometry.Line, box geometry.BBox) []geometry.Line {
	var out []geometry.Line
	for _, l := range lines {
		if box.Contains(l.P1) || box.Contains(l.P2) {
			out = append(out, l)
		}
	}
	return out
}

// NearbyTexts returns texts within radius of (x,y), sorted by ascending
// distance.
func NearbyTexts(texts []model.TextSpan, x, y, radius float64) []model.TextSpan {
	type scored struct {
		t model.TextSpan
		d float64
	}
	var cand []scored
	for _, t := range texts {
		d := geometry.Dist(geometry.Point{X: x, Y: y}, t.Center)
		if d <= radius {
			cand = append(cand, scored{t, d})
		}
	}
	sort.Slice(cand, func(i, j int) bool { return cand[i].d < cand[j].d })
	out := make([]model.TextSpan, len(cand))
	for i, c := range cand {
		out[i] = c.t
	}
	return out
}

// NearbyLines returns lines passing within radius of (x,y), sorted by
// ascending distance to the nearest point on the segment.
func NearbyLines(lines []geometry.Line, x, y, radius float64) []geometry.Line {
	type scored struct {
		l geometry.Line
		d float64
	}
	var cand []scored
	p := geometry.Point{X: x, Y: y}
	for _, l := range lines {
		d := geometry.PointToLineDistance(p, l)
		if d <= radius {
			cand = append(cand, scored{l, d})
		}
	}
	sort.Slice(cand, func(i, j int) bool { return cand[i].d < cand[j].d })
	out := make([]geometry.Line, len(cand))
	for i, c := range cand {
		out[i] = c.l
	}
	return out
}
