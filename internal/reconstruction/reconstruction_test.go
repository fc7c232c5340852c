package reconstruction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/model"
)

func TestReconstruct_NilWhenParametersMissing(t *testing.T) {
	cfg := config.DefaultConfig()
	m := model.MatchingResult{}
	assert.Nil(t, Reconstruct(m, model.GridSystem{}, cfg))
}

func TestReconstruct_BasicFrame(t *testing.T) {
	cfg := config.DefaultConfig()
	span, eave, maxH, pitch := 6000.0, 3000.0, 5000.0, 1800.0
	bayCount := 4
	m := model.MatchingResult{
		Span: &span, EaveHeight: &eave, MaxHeight: &maxH, BayPitch: &pitch, BayCount: &bayCount,
	}
	sm := Reconstruct(m, model.GridSystem{}, cfg)
	require.NotNil(t, sm)
	assert.Equal(t, bayCount+1, sm.FrameCount)
	assert.InDelta(t, span, sm.Envelope.Span, 1e-9)
	assert.InDelta(t, pitch*float64(bayCount), sm.Envelope.Length, 1e-9)

	assert.Equal(t, bayCount+1, sm.MemberSummary[string(model.MemberColumn)]/2)
	assert.Equal(t, 1, sm.MemberSummary[string(model.MemberRidgeBeam)])
	assert.Equal(t, bayCount*cfg.PurlinsPerSlope*2, sm.MemberSummary[string(model.MemberPurlin)])
}
