package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 42.7mm OD x 2.3mm wall pipe should weigh ~2.29 kg/m (spec §8).
func TestParseSection_Pipe_KnownUnitWeight(t *testing.T) {
	sec := ParseSection("P-42.7φ×2.3t")
	require.NotNil(t, sec)
	assert.InDelta(t, 2.29, sec.UnitWeight, 0.01)
}

func TestParseSection_Pipe(t *testing.T) {
	sec := ParseSection("P-101.6φ×4.2t")
	require.NotNil(t, sec)
	assert.Equal(t, ShapePipe, sec.Kind)
	assert.InDelta(t, 101.6, sec.D, 0.01)
	assert.InDelta(t, 4.2, sec.T, 0.01)
	assert.Greater(t, sec.UnitWeight, 0.0)
}

func TestParseSection_SquareTube(t *testing.T) {
	sec := ParseSection("□-100×100×4.5t")
	require.NotNil(t, sec)
	assert.Equal(t, ShapeSquareTube, sec.Kind)
}

func TestParseSection_RectTube(t *testing.T) {
	sec := ParseSection("□-100×75×3.2t")
	require.NotNil(t, sec)
	assert.Equal(t, ShapeRectTube, sec.Kind)
}

func TestParseSection_Angle(t *testing.T) {
	sec := ParseSection("L-75×75×6t")
	require.NotNil(t, sec)
	assert.Equal(t, ShapeAngle, sec.Kind)
}

func TestParseSection_RoundBar_RejectsOversize(t *testing.T) {
	assert.Nil(t, ParseSection("M100"))
	sec := ParseSection("M16")
	require.NotNil(t, sec)
	assert.Equal(t, ShapeRoundBar, sec.Kind)
}

func TestParseSection_FlatBar(t *testing.T) {
	sec := ParseSection("FB-50×9t")
	require.NotNil(t, sec)
	assert.Equal(t, ShapeFlatBar, sec.Kind)
}

func TestParseMemberEntry_SumsMultipleParts(t *testing.T) {
	_, lattice, weight := ParseMemberEntry("外□-100×100×4.5t,内□-60×60×3.2t")
	assert.Nil(t, lattice)
	assert.Greater(t, weight, 0.0)
}

// S5: "2Ps-42.7φ×2.3t, D=450, ラチスP-42.7φ×1.9t, θ=45°" — chord_count must
// come from the explicit leading "2" multiplier, not just the single-part
// top+bottom fallback.
func TestParseMemberEntry_LatticeTruss_ExplicitChordCount(t *testing.T) {
	sec, lattice, weight := ParseMemberEntry("2Ps-42.7φ×2.3t, D=450, ラチスP-42.7φ×1.9t, θ=45°")
	assert.Nil(t, sec)
	require.NotNil(t, lattice)
	assert.Equal(t, 2, lattice.ChordCount)
	assert.InDelta(t, 450.0, lattice.Depth, 0.1)
	assert.InDelta(t, 45.0, lattice.AngleDeg, 0.1)
	assert.InDelta(t, 2.29, lattice.PrimaryChord.UnitWeight, 0.01)
	assert.InDelta(t, 7.27, weight, 0.05)
}

func TestParseMemberEntry_LatticeTruss(t *testing.T) {
	sec, lattice, weight := ParseMemberEntry("□-100×100×4.5tラチスL-50×50×6t D=450 θ=45°")
	assert.Nil(t, sec)
	require.NotNil(t, lattice)
	assert.Equal(t, 2, lattice.ChordCount)
	assert.InDelta(t, 450.0, lattice.Depth, 0.1)
	assert.InDelta(t, 45.0, lattice.AngleDeg, 0.1)
	assert.InDelta(t, lattice.ChordWeightPerM+lattice.LatticeWeightPerM, weight, 1e-9)
}

// fixR15Catalog is the reference member list for drawing FIX-R-15, ported
// from the original member-catalog fixture used to validate notation
// parsing end-to-end.
var fixR15Catalog = []struct {
	label string
	entry string
}{
	{"①", "□-100×100×4.5t"},
	{"②", "□-75×75×3.2t"},
	{"③", "P-101.6φ×4.2t"},
	{"④", "L-75×75×6t"},
	{"⑤a", "FB-50×9t"},
	{"⑤b", "FB-65×9t"},
	{"⑥", "M16"},
	{"⑦", "□-60×60×3.2t"},
	{"⑧", "□-125×125×4.5t"},
	{"⑨", "L-65×65×6t"},
	{"⑩", "□-90×90×4.5t"},
	{"⑪", "P-76.3φ×3.2t"},
	{"⑫", "外□-100×100×4.5tラチスL-40×40×4t D=450,375 θ=45°"},
}

func TestFixR15Catalog_AllEntriesParse(t *testing.T) {
	for _, entry := range fixR15Catalog {
		sec, lattice, weight := ParseMemberEntry(entry.entry)
		assert.Truef(t, sec != nil || lattice != nil, "entry %s (%s) failed to parse", entry.label, entry.entry)
		assert.Greaterf(t, weight, 0.0, "entry %s (%s) produced zero weight", entry.label, entry.entry)
	}
}
