package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/model"
	"github.com/steelscan/steelscan/internal/views"
)

// S1: a single-page plan with title "平面図 S=1/150" at visual y=700,
// rotation 0 (mediabox == visual). Expect one View of type FLOOR_PLAN with
// scale "1/150" and a region covering the title.
func TestDetect_SinglePlanTitle(t *testing.T) {
	cfg := config.DefaultConfig()
	title := model.TextSpan{
		Text:   "平面図 S=1/150",
		BBox:   geometry.BBox{X0: 90, Y0: 695, X1: 260, Y1: 710},
		Center: geometry.Point{X: 175, Y: 702},
	}
	prims := model.PagePrimitives{
		PageWidth:  1000,
		PageHeight: 800,
		Texts:      []model.TextSpan{title},
	}

	got := views.Detect(prims, 0, cfg)

	require.Len(t, got, 1)
	assert.Equal(t, model.ViewFloorPlan, got[0].ViewType)
	assert.Equal(t, "1/150", got[0].Scale)
	assert.True(t, got[0].Region.Contains(title.Center), "region must contain the title it was built from")
}

// A span matching more than one title pattern (e.g. the sheet title-block
// text) gets score -20 and is suppressed.
func TestDetect_AmbiguousTitleSuppressed(t *testing.T) {
	cfg := config.DefaultConfig()
	prims := model.PagePrimitives{
		PageWidth:  1000,
		PageHeight: 800,
		Texts: []model.TextSpan{
			{Text: "平面図断面図一覧", Center: geometry.Point{X: 500, Y: 50}, BBox: geometry.BBox{X0: 480, Y0: 45, X1: 600, Y1: 60}},
		},
	}
	got := views.Detect(prims, 0, cfg)
	assert.Empty(t, got)
}

func TestDetect_NoCandidatesReturnsNoViews(t *testing.T) {
	cfg := config.DefaultConfig()
	prims := model.PagePrimitives{PageWidth: 500, PageHeight: 500}
	got := views.Detect(prims, 0, cfg)
	assert.Empty(t, got)
}
