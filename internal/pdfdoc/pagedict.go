package pdfdoc

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/steelscan/steelscan/internal/geometry"
)

// pageMediaBox reads the page's /MediaBox, falling back to US Letter if the
// page dict omits it (inherited boxes already resolved by PageDict).
func pageMediaBox(ctx *model.Context, pageDict types.Dict) (float64, float64) {
	arr := pageDict.ArrayEntry("MediaBox")
	if len(arr) == 4 {
		x0 := numberValue(arr[0])
		y0 := numberValue(arr[1])
		x1 := numberValue(arr[2])
		y1 := numberValue(arr[3])
		return x1 - x0, y1 - y0
	}
	return 612, 792
}

// pageRotation reads /Rotate, normalized to one of 0/90/180/270.
func pageRotation(pageDict types.Dict) int {
	r := pageDict.IntEntry("Rotate")
	if r == nil {
		return 0
	}
	v := *r % 360
	if v < 0 {
		v += 360
	}
	return v
}

func numberValue(o types.Object) float64 {
	switch n := o.(type) {
	case types.Float:
		return float64(n)
	case types.Integer:
		return float64(n)
	default:
		return 0
	}
}

// pageAnnotations reads free-text annotation content and rects, recovering
// AutoCAD SHX-font text that is exported as annotations rather than page
// text content.
func pageAnnotations(ctx *model.Context, pageDict types.Dict) []Annotation {
	var out []Annotation
	arr, err := pageDict.ArrayEntryErr("Annots")
	if err != nil || arr == nil {
		return out
	}
	for _, ref := range arr {
		annotDict, err := dereferenceDict(ctx, ref)
		if err != nil || annotDict == nil {
			continue
		}
		content := stringEntry(annotDict, "Contents")
		if content == "" {
			continue
		}
		rectArr := annotDict.ArrayEntry("Rect")
		var bbox geometry.BBox
		if len(rectArr) == 4 {
			bbox = geometry.BBox{
				X0: numberValue(rectArr[0]),
				Y0: numberValue(rectArr[1]),
				X1: numberValue(rectArr[2]),
				Y1: numberValue(rectArr[3]),
			}
		}
		out = append(out, Annotation{Content: content, Rect: bbox})
	}
	return out
}

func dereferenceDict(ctx *model.Context, o types.Object) (types.Dict, error) {
	if ref, ok := o.(types.IndirectRef); ok {
		resolved, err := ctx.XRefTable.Dereference(ref)
		if err != nil {
			return nil, err
		}
		d, _ := resolved.(types.Dict)
		return d, nil
	}
	d, _ := o.(types.Dict)
	return d, nil
}

func stringEntry(d types.Dict, key string) string {
	o, ok := d[key]
	if !ok {
		return ""
	}
	switch s := o.(type) {
	case types.StringLiteral:
		return string(s)
	case types.HexLiteral:
		b, err := s.Bytes()
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}
