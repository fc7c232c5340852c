// Package model holds the data types shared across every pipeline
// component, mirroring the field-for-field shape of the source analysis
// pipeline's entity model.
package model

import "github.com/steelscan/steelscan/internal/geometry"

// TextSpan is a single text element extracted from the PDF.
type TextSpan struct {
	Text   string
	BBox   geometry.BBox
	Center geometry.Point
	Font   string
	Size   float64
}

// PagePrimitives holds all raw primitives extracted from one PDF page.
type PagePrimitives struct {
	PageIndex  int
	PageWidth  float64
	PageHeight float64
	Texts      []TextSpan
	Lines      []geometry.Line
	Rects      []geometry.BBox
}

// ViewType identifies the kind of engineering-drawing panel a View covers.
type ViewType string

const (
	ViewRoofPlan ViewType = "屋根伏図"
	ViewFloorPlan ViewType = "平面図"
	ViewElevation ViewType = "立面図"
	ViewSection   ViewType = "断面図"
	ViewUnknown   ViewType = "unknown"
)

// View is one segmented drawing panel.
type View struct {
	ViewType  ViewType
	TitleText string
	TitleBBox geometry.BBox
	Region    geometry.BBox
	Scale     string // "" means not found
	Texts     []TextSpan
	Lines     []geometry.Line
}

// GridAxis distinguishes the two grid directions.
type GridAxis string

const (
	AxisX GridAxis = "X"
	AxisY GridAxis = "Y"
)

// GridLabel is one grid-axis label (通り芯), e.g. "X1", "Xn+1".
type GridLabel struct {
	Axis     GridAxis
	Label    string
	Index    int // 999 for symbolic labels like "Xn+1"
	Position float64
	TextSpan TextSpan
	Line     *geometry.Line
}

// GridSystem is the grid extracted from one view. Labels found in
// different views are not merged into a single GridSystem.
type GridSystem struct {
	XLabels    []GridLabel
	YLabels    []GridLabel
	SourceView ViewType
}

// DimensionType classifies a numeric annotation.
type DimensionType string

const (
	DimSingle DimensionType = "single"
	DimPitch  DimensionType = "pitch"
	DimRepeat DimensionType = "repeat"
)

// Dimension is one parsed numeric dimension annotation.
type Dimension struct {
	Value        float64
	RawText      string
	DimType      DimensionType
	RepeatCount  *int
	TextSpan     TextSpan
	NearestLines []geometry.Line
	SourceView   ViewType
}

// HeightType classifies an extracted height parameter.
type HeightType string

const (
	HeightEave     HeightType = "軒高"
	HeightMax      HeightType = "最高高さ"
	HeightGL       HeightType = "GL"
	HeightFL       HeightType = "FL"
	HeightDesignGL HeightType = "設計GL"
)

// HeightParam is one extracted height parameter.
type HeightParam struct {
	HeightType HeightType
	Value      *float64
	RawText    string
	TextSpan   TextSpan
	SourceView ViewType
}

// GateStatus is the advisory verdict of one quality gate.
type GateStatus string

const (
	GatePass GateStatus = "pass"
	GateWarn GateStatus = "warn"
	GateFail GateStatus = "fail"
)

// QualityCheck is one gate result.
type QualityCheck struct {
	Name    string
	Status  GateStatus
	Message string
	Detail  string
}

// QualityReport aggregates all gate results.
type QualityReport struct {
	Overall GateStatus
	Checks  []QualityCheck
}

// ViewGridInfo records the grid labels visible in a specific view.
type ViewGridInfo struct {
	ViewIndex int
	ViewType  ViewType
	ViewTitle string
	GridSide  string // "", "Y1", "X-side", "Y-side", ...
	XLabels   []string
	YLabels   []string
}

// FrameLink cross-references one X-grid position across views.
type FrameLink struct {
	XLabel           string
	PlanXPosition    *float64
	InElevationSides []string
}

// AnchoredParam is a building parameter anchored to grid positions.
type AnchoredParam struct {
	Name       string
	Value      float64
	Unit       string
	AnchorFrom string
	AnchorTo   string
	SourceView ViewType
	RawText    string
	Computed   bool
}

// MatchingResult is the cross-view matching output.
type MatchingResult struct {
	CanonicalGridSource ViewType
	ViewGridInfo        []ViewGridInfo
	FrameLinks          []FrameLink
	AnchoredParams      []AnchoredParam
	ConsistencyChecks   []QualityCheck
	Span                *float64
	Length              *float64
	BayPitch            *float64
	BayCount            *int
	EaveHeight          *float64
	MaxHeight           *float64
}

// MemberType classifies a reconstructed structural member.
type MemberType string

const (
	MemberColumn    MemberType = "column"
	MemberRafter    MemberType = "rafter"
	MemberRidgeBeam MemberType = "ridge_beam"
	MemberPurlin    MemberType = "purlin"
)

// Point3D is a point in the 3D building coordinate system, in mm.
type Point3D struct {
	X, Y, Z float64
}

// Member3D is a structural member defined by two 3D endpoints.
type Member3D struct {
	MemberType  MemberType
	Label       string
	Start       Point3D
	End         Point3D
	Length      float64
	FrameIndex  *int
}

// BuildingEnvelope carries the building's bounding dimensions.
type BuildingEnvelope struct {
	Length      float64
	Span        float64
	EaveHeight  float64
	RidgeHeight float64
}

// StructuralModel is the reconstructed 3D wireframe.
type StructuralModel struct {
	Members         []Member3D
	Envelope        BuildingEnvelope
	FrameCount      int
	BayCount        int
	BayPitch        float64
	XGridPositions  []float64
	YGridPositions  []float64
	MemberSummary   map[string]int
}

// MemberGroup is a group of identical members (same type + similar length).
type MemberGroup struct {
	MemberType    MemberType
	UnitLength    float64
	Count         int
	TotalLength   float64
	Section       string
	UnitWeight    *float64
	TotalWeight   *float64
	MemberLabels  []string
}

// QuantityTakeoff is the grouped member quantity table.
type QuantityTakeoff struct {
	Groups         []MemberGroup
	TotalMembers   int
	TotalLength    float64
	TotalWeight    *float64
	GroupTolerance float64
}

// LeaderTip is a single arrow tip of a leader line.
type LeaderTip struct {
	X, Y   float64
	Length float64
}

// DetectedMember is a member detected via leader-line tracing.
type DetectedMember struct {
	MemberNumber        string
	Modifier            string
	Label                string
	LabelX, LabelY       float64
	LeaderTips           []LeaderTip
	TipCount             int
	LineCount            int
	LinePositions        [][2]float64
	Orientation          string // "x", "y", or ""
	UnitLength           *float64
	TotalLength          *float64
	SectionText          string
	MemberKind           string
	UnitWeight           *float64
	ChordWeightPerM      *float64
	LatticeWeightPerM    *float64
	TotalWeight          *float64
}

// DrawingBBox is the visual bounding box of a traced sub-view drawing area.
type DrawingBBox struct {
	X0, Y0, X1, Y1 float64
}

// LeaderPageResult is the result of member detection on one leader-traced
// page/sub-view (小屋伏図 or one of the 軸組図/断面図 elevation panels).
type LeaderPageResult struct {
	PageIndex         int
	Scale             string
	DetectedMembers   []DetectedMember
	DrawingBBox       *DrawingBBox
	MediaboxWidth     float64
	PageVisualWidth   float64
	PageVisualHeight  float64
}
