package takeoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelscan/steelscan/internal/model"
)

func TestCompute_GroupsByTypeAndRoundedLength(t *testing.T) {
	sm := model.StructuralModel{
		Members: []model.Member3D{
			{MemberType: model.MemberColumn, Label: "C-F0-Y1", Length: 3000.2},
			{MemberType: model.MemberColumn, Label: "C-F0-Y2", Length: 3001.8},
			{MemberType: model.MemberColumn, Label: "C-F1-Y1", Length: 2500.0},
			{MemberType: model.MemberRafter, Label: "R-F0-L", Length: 4500.0},
		},
	}
	tk := Compute(sm, 10.0)
	assert.Equal(t, 4, tk.TotalMembers)
	require.Len(t, tk.Groups, 3)

	// Columns sort first, then by descending unit length.
	assert.Equal(t, model.MemberColumn, tk.Groups[0].MemberType)
	assert.Equal(t, 2, tk.Groups[0].Count)
	assert.Equal(t, model.MemberColumn, tk.Groups[1].MemberType)
	assert.Equal(t, 1, tk.Groups[1].Count)
	assert.Equal(t, model.MemberRafter, tk.Groups[2].MemberType)
}

func TestCompute_ZeroToleranceRoundsToOneDecimal(t *testing.T) {
	sm := model.StructuralModel{
		Members: []model.Member3D{{MemberType: model.MemberPurlin, Length: 1234.56}},
	}
	tk := Compute(sm, 0)
	require.Len(t, tk.Groups, 1)
	assert.InDelta(t, 1234.6, tk.Groups[0].UnitLength, 1e-9)
}
