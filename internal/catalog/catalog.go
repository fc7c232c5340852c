// Package catalog implements Component K: parsing Japanese structural-steel
// section notation (pipe, square/rectangular tube, angle, flat bar, round
// bar, and lattice-truss compound members) into per-meter unit weights.
package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SteelDensity is mild steel's density expressed per mm² of cross-section
// per linear meter, used to convert area to unit weight.
const SteelDensity = 7.85e-3 // kg/mm²/m

// ShapeKind classifies a parsed section's cross-section family.
type ShapeKind string

const (
	ShapePipe       ShapeKind = "pipe"
	ShapeSquareTube ShapeKind = "square_tube"
	ShapeRectTube   ShapeKind = "rect_tube"
	ShapeAngle      ShapeKind = "angle"
	ShapeFlatBar    ShapeKind = "flat_bar"
	ShapeRoundBar   ShapeKind = "round_bar"
)

// Section is one parsed steel-section notation with its derived area and
// per-meter unit weight.
type Section struct {
	Kind       ShapeKind
	RawText    string
	D, T       float64 // pipe: outer diameter, wall thickness
	B, H       float64 // tube/angle/flat bar: leg/flange dimensions
	Diameter   float64 // round bar
	AreaMM2    float64
	UnitWeight float64 // kg/m
}

// LatticeTrussSpec is a parsed lattice-truss compound member: two parallel
// chords (top/bottom, or distinct inner/outer chords) connected by a
// diagonal lattice web.
type LatticeTrussSpec struct {
	RawText           string
	PrimaryChord      Section
	ChordCount        int
	Lattice           Section
	Depth             float64 // mm
	AngleDeg          float64
	ChordWeightPerM   float64
	LatticeWeightPerM float64
	TotalWeightPerM   float64
}

const (
	sep  = `[×xX]`
	dash = `[\-\x{2212}\x{2013}]`
	phi  = `[\x{03c6}\x{03a6}\x{00f8}\x{0278}]`
)

var (
	pipePattern = regexp.MustCompile(`P[sS]?` + dash + `([0-9]+\.?[0-9]*)` + phi + sep + `([0-9]+\.?[0-9]*)t`)
	tubePattern = regexp.MustCompile(`\x{25a1}` + dash + `([0-9]+\.?[0-9]*)` + sep + `([0-9]+\.?[0-9]*)` + sep + `([0-9]+\.?[0-9]*)t`)
	anglePattern = regexp.MustCompile(`L` + dash + `([0-9]+\.?[0-9]*)` + sep + `([0-9]+\.?[0-9]*)` + sep + `([0-9]+\.?[0-9]*)t`)
	flatBarPattern = regexp.MustCompile(`FB` + dash + `([0-9]+\.?[0-9]*)` + sep + `([0-9]+\.?[0-9]*)t?`)
	roundBarPattern = regexp.MustCompile(`M([0-9]+\.?[0-9]*)`)
)

// Pipe area: annular ring of outer diameter D and wall thickness t,
// approximated (as the original notation convention does) via mean
// circumference times thickness: π(D-t)t.
func pipeArea(d, t float64) float64 { return math.Pi * (d - t) * t }

func tubeArea(b, h, t float64) float64 { return 2 * (b + h - 2*t) * t }

func angleArea(a, b, t float64) float64 { return (a + b - t) * t }

func roundBarArea(d float64) float64 { return math.Pi * d * d / 4 }

func flatBarArea(b, t float64) float64 { return b * t }

func toKgM(areaMM2 float64) float64 {
	return math.Round(areaMM2*SteelDensity*1000) / 1000
}

// ParseSection tries each notation family in turn: pipe, tube, angle, flat
// bar, round bar.
func ParseSection(text string) *Section {
	if m := pipePattern.FindStringSubmatch(text); m != nil {
		d := mustFloat(m[1])
		t := mustFloat(m[2])
		area := pipeArea(d, t)
		return &Section{Kind: ShapePipe, RawText: text, D: d, T: t, AreaMM2: area, UnitWeight: toKgM(area)}
	}
	if m := tubePattern.FindStringSubmatch(text); m != nil {
		b := mustFloat(m[1])
		h := mustFloat(m[2])
		t := mustFloat(m[3])
		kind := ShapeRectTube
		if b == h {
			kind = ShapeSquareTube
		}
		area := tubeArea(b, h, t)
		return &Section{Kind: kind, RawText: text, B: b, H: h, T: t, AreaMM2: area, UnitWeight: toKgM(area)}
	}
	if m := anglePattern.FindStringSubmatch(text); m != nil {
		a := mustFloat(m[1])
		b := mustFloat(m[2])
		t := mustFloat(m[3])
		area := angleArea(a, b, t)
		return &Section{Kind: ShapeAngle, RawText: text, B: a, H: b, T: t, AreaMM2: area, UnitWeight: toKgM(area)}
	}
	if m := flatBarPattern.FindStringSubmatch(text); m != nil {
		b := mustFloat(m[1])
		t := mustFloat(m[2])
		area := flatBarArea(b, t)
		return &Section{Kind: ShapeFlatBar, RawText: text, B: b, T: t, AreaMM2: area, UnitWeight: toKgM(area)}
	}
	if m := roundBarPattern.FindStringSubmatch(text); m != nil {
		d := mustFloat(m[1])
		if d > 64 {
			return nil
		}
		area := roundBarArea(d)
		return &Section{Kind: ShapeRoundBar, RawText: text, Diameter: d, AreaMM2: area, UnitWeight: toKgM(area)}
	}
	return nil
}

var countPrefixPattern = regexp.MustCompile(`^[上下角内外]?([0-9]+)`)

// extractCount reads a leading repetition count off a member-list entry,
// e.g. "2-□-100×100×4.5t" means two of that tube. Defaults to 1.
func extractCount(text string) int {
	m := countPrefixPattern.FindStringSubmatch(text)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return 1
	}
	return n
}

var depthPattern = regexp.MustCompile(`D[=＝]([0-9]+\.?[0-9]*)(?:,([0-9]+\.?[0-9]*))?`)
var anglePattern2 = regexp.MustCompile(`\x{03b8}[=＝]([0-9]+\.?[0-9]*)`)

// ParseMemberEntry parses one member-list entry, dispatching to the
// lattice-truss parser when the entry names a ラチス web.
func ParseMemberEntry(text string) (*Section, *LatticeTrussSpec, float64) {
	if strings.Contains(text, "ラチス") {
		spec := parseLatticeEntry(text)
		if spec == nil {
			return nil, nil, 0
		}
		return nil, spec, spec.TotalWeightPerM
	}

	parts := splitOnCommas(text)
	var total float64
	var last *Section
	for _, p := range parts {
		count := extractCount(p)
		sec := ParseSection(p)
		if sec == nil {
			continue
		}
		total += sec.UnitWeight * float64(count)
		last = sec
	}
	return last, nil, total
}

func splitOnCommas(s string) []string {
	return regexp.MustCompile(`[,，]`).Split(s, -1)
}

// parseLatticeEntry splits "外□-100×100×4.5t,内□-60×60×3.2tラチスL-..." style
// entries into the chord(s) and the lattice web section, then applies
// calcLatticeTruss. Chord sections are separated by commas; only the first
// section of each comma-separated part is parsed.
func parseLatticeEntry(text string) *LatticeTrussSpec {
	idx := strings.Index(text, "ラチス")
	if idx < 0 {
		return nil
	}
	chordText := text[:idx]
	latticeText := text[idx+len("ラチス"):]

	chordParts := splitOnCommas(chordText)
	var chords []*Section
	chordCountSum := 0
	for _, p := range chordParts {
		sec := ParseSection(p)
		if sec == nil {
			continue
		}
		chords = append(chords, sec)
		chordCountSum += extractCount(p)
	}
	if len(chords) == 0 {
		return nil
	}

	latticeSec := ParseSection(latticeText)
	if latticeSec == nil {
		return nil
	}

	depth := 0.0
	if m := depthPattern.FindStringSubmatch(text); m != nil {
		d1 := mustFloat(m[1])
		if m[2] != "" {
			d2 := mustFloat(m[2])
			depth = (d1 + d2) / 2
		} else {
			depth = d1
		}
	}

	angle := 45.0
	if m := anglePattern2.FindStringSubmatch(text); m != nil {
		angle = mustFloat(m[1])
	}

	primary := chords[0]
	for _, c := range chords {
		if c.AreaMM2 > primary.AreaMM2 {
			primary = c
		}
	}

	chordCount := chordCountSum
	if chordCount <= 1 {
		chordCount = 2 // a lone count=1 chord implies top+bottom
	}

	return calcLatticeTruss(text, *primary, chordCount, *latticeSec, depth, angle)
}

// calcLatticeTruss combines chord_count parallel chords with one diagonal
// lattice web (whose weight is inflated by 1/cos(angle) to account for its
// length along the diagonal) into one compound per-meter weight.
func calcLatticeTruss(rawText string, chord Section, chordCount int, lattice Section, depth, angleDeg float64) *LatticeTrussSpec {
	chordW := float64(chordCount) * chord.UnitWeight
	latticeW := lattice.UnitWeight / math.Cos(angleDeg*math.Pi/180)
	return &LatticeTrussSpec{
		RawText:           rawText,
		PrimaryChord:      chord,
		ChordCount:        chordCount,
		Lattice:           lattice,
		Depth:             depth,
		AngleDeg:          angleDeg,
		ChordWeightPerM:   chordW,
		LatticeWeightPerM: latticeW,
		TotalWeightPerM:   chordW + latticeW,
	}
}

func mustFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
