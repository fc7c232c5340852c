// Package analyze is the top-level orchestrator: it wires Components A
// through K into the single synchronous call an embedding service or CLI
// makes, exactly mirroring the deterministic one-shot analyze(pdf_bytes)
// entry point the original analyzer module exposed, less its FastAPI/LLM/
// rasterization surface.
package analyze

import (
	"time"

	"github.com/google/uuid"

	"github.com/steelscan/steelscan/internal/apperrors"
	"github.com/steelscan/steelscan/internal/catalog"
	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/dimensions"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/grids"
	"github.com/steelscan/steelscan/internal/heights"
	"github.com/steelscan/steelscan/internal/leader"
	"github.com/steelscan/steelscan/internal/logger"
	"github.com/steelscan/steelscan/internal/matching"
	"github.com/steelscan/steelscan/internal/metrics"
	"github.com/steelscan/steelscan/internal/model"
	"github.com/steelscan/steelscan/internal/pdfdoc"
	"github.com/steelscan/steelscan/internal/primitives"
	"github.com/steelscan/steelscan/internal/quality"
	"github.com/steelscan/steelscan/internal/reconstruction"
	"github.com/steelscan/steelscan/internal/takeoff"
	"github.com/steelscan/steelscan/internal/views"
)

// HeightDiag is a compact (type, value) pair for the diagnostics bag.
type HeightDiag struct {
	Type  model.HeightType
	Value *float64
}

// Diagnostics is a free-form summary of what each component found,
// intended for operator troubleshooting rather than programmatic
// consumption — callers that need structured data should read Result's
// typed fields instead.
type Diagnostics struct {
	TextCount       int
	LineCount       int
	RectCount       int
	ViewsFound      []model.ViewType
	GridXLabels     []string
	GridYLabels     []string
	DimensionCount  int
	DimensionValues []float64 // first 20
	Heights         []HeightDiag

	MatchingSpan       *float64
	MatchingLength     *float64
	MatchingPitch      *float64
	MatchingBayCount   *int
	MatchingEaveHeight *float64
	MatchingMaxHeight  *float64
}

// Result is the complete output of one analyze run.
type Result struct {
	CorrelationID string
	Filename      string

	Primitives model.PagePrimitives
	Views      []model.View
	Grid       model.GridSystem
	Dimensions []model.Dimension
	Heights    []model.HeightParam
	Quality    model.QualityReport
	Matching   model.MatchingResult

	Structural *model.StructuralModel
	Takeoff    *model.QuantityTakeoff

	Koyafuse   *model.LeaderPageResult
	AxialY1    *model.LeaderPageResult
	AxialY2    *model.LeaderPageResult
	AxialX1    *model.LeaderPageResult
	AxialXn1   *model.LeaderPageResult
	AxialX2Xn  *model.LeaderPageResult
	MemberWeights map[string]float64

	Diagnostics Diagnostics
}

// Run executes the full pipeline against one PDF's raw bytes. The only
// error it can return is an input-invalid/unreadable-PDF AppError (§7);
// every other component degrades to a zero-value result rather than
// aborting the run.
func Run(pdfBytes []byte, filename string, cfg *config.Config) (*Result, error) {
	start := time.Now()
	correlationID := uuid.New().String()
	logger.Info("[%s] analyzing %s", correlationID, filename)

	doc, err := pdfdoc.Open(pdfBytes)
	if err != nil {
		metrics.AnalysisErrorsTotal.WithLabelValues(errCode(err)).Inc()
		return nil, err
	}

	page0, err := doc.Page(0)
	if err != nil {
		metrics.AnalysisErrorsTotal.WithLabelValues("UNREADABLE_PAGE").Inc()
		return nil, apperrors.New(apperrors.CodeUnreadablePDF, "could not read first page", err)
	}

	prims := primitives.Extract(page0, cfg)
	foundViews := views.Detect(prims, page0.Rotation, cfg)
	if len(foundViews) == 0 {
		// Component no-data (§7): no titled view recognised on the sheet
		// still yields one UNKNOWN view covering the full page, rather
		// than an empty view set that starves every downstream component.
		foundViews = []model.View{{
			ViewType: model.ViewUnknown,
			Region:   geometry.BBox{X0: 0, Y0: 0, X1: prims.PageWidth, Y1: prims.PageHeight},
			Texts:    prims.Texts,
			Lines:    prims.Lines,
		}}
	}

	viewGrids := make([]model.GridSystem, len(foundViews))
	viewDims := make([][]model.Dimension, len(foundViews))
	var allDims []model.Dimension
	for i, v := range foundViews {
		viewGrids[i] = grids.Build(v, page0.Rotation, cfg)
		viewDims[i] = dimensions.Extract(v, cfg)
		allDims = append(allDims, viewDims[i]...)
	}

	heightParams := heights.Extract(foundViews)

	canonical := pickBestGrid(viewGrids)
	assocRatio := grids.AssociationRatio(canonical)
	qualityReport := quality.Report(foundViews, &canonical, assocRatio, allDims, heightParams)

	matchResult := matching.Match(foundViews, viewGrids, viewDims, heightParams, cfg)

	structural := reconstruction.Reconstruct(matchResult, canonical, cfg)
	var takeoffResult *model.QuantityTakeoff
	if structural != nil {
		tr := takeoff.Compute(*structural, cfg.TakeoffGroupTolerance)
		takeoffResult = &tr
	}

	koyafuse, err := leader.DetectKoyafuse(doc, cfg)
	if err != nil {
		logger.Warn("[%s] koyafuse tracing: %v", correlationID, err)
	}
	axialY1, _ := leader.DetectAxialFrameY1(doc, cfg)
	axialY2, _ := leader.DetectAxialFrameY2(doc, cfg)
	axialX1, _ := leader.DetectAxialFrameX1(doc, cfg)
	axialXn1, _ := leader.DetectAxialFrameXn1(doc, cfg)
	axialX2Xn, _ := leader.DetectAxialFrameX2Xn(doc, cfg)

	memberWeights := weighDetectedMembers(koyafuse)

	result := &Result{
		CorrelationID: correlationID,
		Filename:      filename,
		Primitives:    prims,
		Views:         foundViews,
		Grid:          canonical,
		Dimensions:    allDims,
		Heights:       heightParams,
		Quality:       qualityReport,
		Matching:      matchResult,
		Structural:    structural,
		Takeoff:       takeoffResult,
		Koyafuse:      koyafuse,
		AxialY1:       axialY1,
		AxialY2:       axialY2,
		AxialX1:       axialX1,
		AxialXn1:      axialXn1,
		AxialX2Xn:     axialX2Xn,
		MemberWeights: memberWeights,
		Diagnostics:   buildDiagnostics(prims, foundViews, canonical, allDims, heightParams, matchResult),
	}

	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	metrics.AnalysisTotal.WithLabelValues(string(qualityReport.Overall)).Inc()
	logger.Info("[%s] analysis complete in %s, verdict=%s", correlationID, time.Since(start), qualityReport.Overall)

	return result, nil
}

// weighDetectedMembers looks up each detected leader-traced member's
// section-text annotation (when present) against the steel-section
// catalog parser, returning a label->unit-weight map for the members that
// carried a recognizable notation.
func weighDetectedMembers(page *model.LeaderPageResult) map[string]float64 {
	if page == nil {
		return nil
	}
	out := map[string]float64{}
	for _, m := range page.DetectedMembers {
		if m.SectionText == "" {
			continue
		}
		sec, lattice, weight := catalog.ParseMemberEntry(m.SectionText)
		if sec == nil && lattice == nil {
			continue
		}
		out[m.Label] = weight
	}
	return out
}

func pickBestGrid(grids []model.GridSystem) model.GridSystem {
	var best model.GridSystem
	bestScore := -1
	for _, g := range grids {
		score := len(g.XLabels) + len(g.YLabels)
		if score > bestScore {
			bestScore = score
			best = g
		}
	}
	return best
}

func buildDiagnostics(prims model.PagePrimitives, vs []model.View, grid model.GridSystem, dims []model.Dimension, hts []model.HeightParam, m model.MatchingResult) Diagnostics {
	d := Diagnostics{
		TextCount: len(prims.Texts),
		LineCount: len(prims.Lines),
		RectCount: len(prims.Rects),
	}
	for _, v := range vs {
		d.ViewsFound = append(d.ViewsFound, v.ViewType)
	}
	for _, l := range grid.XLabels {
		d.GridXLabels = append(d.GridXLabels, l.Label)
	}
	for _, l := range grid.YLabels {
		d.GridYLabels = append(d.GridYLabels, l.Label)
	}
	d.DimensionCount = len(dims)
	for i, dim := range dims {
		if i >= 20 {
			break
		}
		d.DimensionValues = append(d.DimensionValues, dim.Value)
	}
	for _, h := range hts {
		d.Heights = append(d.Heights, HeightDiag{Type: h.HeightType, Value: h.Value})
	}
	d.MatchingSpan = m.Span
	d.MatchingLength = m.Length
	d.MatchingPitch = m.BayPitch
	d.MatchingBayCount = m.BayCount
	d.MatchingEaveHeight = m.EaveHeight
	d.MatchingMaxHeight = m.MaxHeight
	return d
}

func errCode(err error) string {
	if ae, ok := err.(*apperrors.AppError); ok {
		return string(ae.Code)
	}
	return "INVALID_INPUT"
}
