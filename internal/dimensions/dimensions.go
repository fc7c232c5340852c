// Package dimensions implements Component D: parsing numeric dimension
// annotations (plain spans, "@" pitch callouts, and "N×M"/"N×n" repeat
// callouts) out of a view's text and attaching the nearest dimension line.
package dimensions

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/model"
	"github.com/steelscan/steelscan/internal/primitives"
)

var (
	pitchPattern          = regexp.MustCompile(`^[@＠]\s*([0-9]{2,6})$`)
	repeatPattern         = regexp.MustCompile(`^([0-9]{2,6})[×xX\x{ff58}\x{ff38}]([0-9]{1,3})$`)
	repeatSymbolicPattern = regexp.MustCompile(`^([0-9]{2,6})[×xX\x{ff58}\x{ff38}]([nN\x{ff4e}\x{ff2e}])$`)
	plainPattern          = regexp.MustCompile(`^([0-9]{2,6})$`)
)

// Extract parses every dimension annotation visible in a view.
func Extract(v model.View, cfg *config.Config) []model.Dimension {
	var out []model.Dimension
	for _, t := range v.Texts {
		text := trimSpace(t.Text)

		if m := pitchPattern.FindStringSubmatch(text); m != nil {
			val, _ := strconv.ParseFloat(m[1], 64)
			out = append(out, makeDim(v, t, val, text, model.DimPitch, nil, cfg))
			continue
		}
		if m := repeatPattern.FindStringSubmatch(text); m != nil {
			val, _ := strconv.ParseFloat(m[1], 64)
			count, _ := strconv.Atoi(m[2])
			out = append(out, makeDim(v, t, val, text, model.DimRepeat, &count, cfg))
			continue
		}
		if m := repeatSymbolicPattern.FindStringSubmatch(text); m != nil {
			val, _ := strconv.ParseFloat(m[1], 64)
			out = append(out, makeDim(v, t, val, text, model.DimRepeat, nil, cfg))
			continue
		}
		if m := plainPattern.FindStringSubmatch(text); m != nil {
			val, _ := strconv.ParseFloat(m[1], 64)
			if val < 10 {
				continue
			}
			out = append(out, makeDim(v, t, val, text, model.DimSingle, nil, cfg))
			continue
		}
	}
	return out
}

func makeDim(v model.View, t model.TextSpan, val float64, raw string, dt model.DimensionType, count *int, cfg *config.Config) model.Dimension {
	lines := primitives.NearbyLines(v.Lines, t.Center.X, t.Center.Y, cfg.DimLineSearchRadius)
	return model.Dimension{
		Value:        val,
		RawText:      raw,
		DimType:      dt,
		RepeatCount:  count,
		TextSpan:     t,
		NearestLines: lines,
		SourceView:   v.ViewType,
	}
}

func trimSpace(s string) string {
	return strings.Trim(s, " \t\n\r　")
}
