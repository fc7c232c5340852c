// Package pdfdoc is the PDF backend collaborator for Component A. It wraps
// github.com/pdfcpu/pdfcpu for document structure (page count, mediabox,
// rotation, annotations) and layers a small content-stream scanner on top
// to recover the text/line/rectangle primitives pdfcpu itself does not
// expose at a high level — the same gap arx-os-arxos/internal/pdf's
// extractPageText leaves as a documented simplification.
package pdfdoc

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/steelscan/steelscan/internal/apperrors"
	"github.com/steelscan/steelscan/internal/geometry"
	"github.com/steelscan/steelscan/internal/logger"
)

// Document is an opened PDF, ready for page-by-page primitive extraction.
type Document struct {
	ctx *model.Context
}

// Open reads raw PDF bytes and validates the file can be parsed at all.
// A failure here is the one case analyze() aborts on (§7 input-invalid).
func Open(pdfBytes []byte) (*Document, error) {
	ctx, err := api.ReadContext(bytes.NewReader(pdfBytes), model.NewDefaultConfiguration())
	if err != nil {
		return nil, apperrors.New(apperrors.CodeUnreadablePDF, "could not parse PDF", fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err))
	}
	if ctx.PageCount == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "PDF has no pages", apperrors.ErrInvalidInput)
	}
	logger.Info("opened PDF with %d pages", ctx.PageCount)
	return &Document{ctx: ctx}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Page describes one page's coordinate frame plus its raw primitives.
type Page struct {
	Index       int // 0-based
	MediaWidth  float64
	MediaHeight float64
	Rotation    int // 0, 90, 180, or 270
	Texts       []RawText
	Lines       []geometry.Line
	Rects       []geometry.BBox
	Annotations []Annotation
}

// RawText is a text run located in mediabox coordinates, before any
// normalization TextSpan building applies.
type RawText struct {
	Text string
	BBox geometry.BBox
	Font string
	Size float64
}

// Annotation is a PDF annotation carrying free text content — used to
// recover AutoCAD SHX-font text, which AutoCAD's PDF export stores as
// Square-type annotations rather than page text.
type Annotation struct {
	Content string
	Rect    geometry.BBox
}

// Page loads the given 0-based page index.
func (d *Document) Page(index int) (*Page, error) {
	pageNr := index + 1 // pdfcpu page numbers are 1-based
	pageDict, _, err := d.ctx.XRefTable.PageDict(pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index, err)
	}

	mw, mh := pageMediaBox(d.ctx, pageDict)
	rot := pageRotation(pageDict)

	content, err := d.ctx.XRefTable.PageContent(pageDict)
	if err != nil {
		logger.Warn("page %d: no readable content stream: %v", index, err)
		content = nil
	}

	texts, lines, rects := scanContentStream(content)
	annots := pageAnnotations(d.ctx, pageDict)

	return &Page{
		Index:       index,
		MediaWidth:  mw,
		MediaHeight: mh,
		Rotation:    rot,
		Texts:       texts,
		Lines:       lines,
		Rects:       rects,
		Annotations: annots,
	}, nil
}

// GetText returns the page's plain text, space-joined, used by the
// leader-tracing page finders to search for a Japanese view-title
// substring without needing positional data.
func (p *Page) GetText() string {
	var b bytes.Buffer
	for i, t := range p.Texts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	for _, a := range p.Annotations {
		b.WriteByte(' ')
		b.WriteString(a.Content)
	}
	return b.String()
}
