package pdfdoc

import (
	"strconv"
	"strings"

	"github.com/steelscan/steelscan/internal/geometry"
)

// scanContentStream interprets a decoded page content stream and recovers
// text runs, line segments, and rectangles. It implements just the operator
// subset engineering-drawing PDFs actually emit (BT/ET text blocks with
// Tf/Tm/Tj/TJ, and m/l/re/w path construction) — a deliberately narrow
// interpreter, the same scope arx-os-arxos/internal/pdf's content-stream
// strategy occupies ("simplified... real implementation would parse PDF
// operators").
func scanContentStream(content []byte) ([]RawText, []geometry.Line, []geometry.BBox) {
	var texts []RawText
	var lines []geometry.Line
	var rects []geometry.BBox

	toks := tokenize(string(content))

	var stack []string
	var inText bool
	var tm [6]float64 // a b c d e f
	var fontSize float64
	var fontName string
	var lineWidth float64 = 1.0
	var curX, curY float64
	var havePoint bool

	flush := func() { stack = stack[:0] }

	for _, tok := range toks {
		switch tok {
		case "BT":
			inText = true
			tm = [6]float64{1, 0, 0, 1, 0, 0}
			flush()
		case "ET":
			inText = false
			flush()
		case "Tf":
			if len(stack) >= 2 {
				fontName = strings.Trim(stack[len(stack)-2], "/")
				fontSize = parseFloat(stack[len(stack)-1])
			}
			flush()
		case "Tm":
			if len(stack) >= 6 {
				for i := 0; i < 6; i++ {
					tm[i] = parseFloat(stack[len(stack)-6+i])
				}
			}
			flush()
		case "Td", "TD":
			if len(stack) >= 2 {
				tm[4] += parseFloat(stack[len(stack)-2])
				tm[5] += parseFloat(stack[len(stack)-1])
			}
			flush()
		case "Tj":
			if inText && len(stack) >= 1 {
				s := decodeLiteral(stack[len(stack)-1])
				if t := buildRawText(s, tm, fontName, fontSize); t != nil {
					texts = append(texts, *t)
				}
			}
			flush()
		case "TJ":
			if inText {
				var sb strings.Builder
				for _, el := range stack {
					if strings.HasPrefix(el, "(") {
						sb.WriteString(decodeLiteral(el))
					}
				}
				if t := buildRawText(sb.String(), tm, fontName, fontSize); t != nil {
					texts = append(texts, *t)
				}
			}
			flush()
		case "w":
			if len(stack) >= 1 {
				lineWidth = parseFloat(stack[len(stack)-1])
			}
			flush()
		case "m":
			if len(stack) >= 2 {
				curX = parseFloat(stack[len(stack)-2])
				curY = parseFloat(stack[len(stack)-1])
				havePoint = true
			}
			flush()
		case "l":
			if len(stack) >= 2 && havePoint {
				x := parseFloat(stack[len(stack)-2])
				y := parseFloat(stack[len(stack)-1])
				p1 := geometry.Point{X: curX, Y: curY}
				p2 := geometry.Point{X: x, Y: y}
				ln := geometry.NewLine(p1, p2, lineWidth, nil)
				if ln.Length >= 0.5 {
					lines = append(lines, ln)
				}
				curX, curY = x, y
			}
			flush()
		case "re":
			if len(stack) >= 4 {
				x := parseFloat(stack[len(stack)-4])
				y := parseFloat(stack[len(stack)-3])
				w := parseFloat(stack[len(stack)-2])
				h := parseFloat(stack[len(stack)-1])
				rects = append(rects, geometry.BBox{X0: x, Y0: y, X1: x + w, Y1: y + h})
			}
			flush()
		case "S", "s", "f", "F", "f*", "n", "h", "W", "W*", "c", "v", "y":
			flush()
		default:
			stack = append(stack, tok)
		}
	}

	return texts, lines, rects
}

func buildRawText(s string, tm [6]float64, font string, size float64) *RawText {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	// No font metrics are available from a bare content-stream scan; the
	// advance width is approximated from character count and font size,
	// adequate for the centroid-based matching every downstream component
	// performs against TextSpan.Center.
	width := size * 0.6 * float64(len([]rune(s)))
	if width <= 0 {
		width = float64(len(s))
	}
	if size <= 0 {
		size = 10
	}
	x0, y0 := tm[4], tm[5]
	bbox := geometry.BBox{X0: x0, Y0: y0, X1: x0 + width, Y1: y0 + size}
	return &RawText{Text: s, BBox: bbox, Font: font, Size: size}
}

// tokenize splits a content stream into operators/operands, keeping
// parenthesized literal strings and bracketed arrays intact as single
// tokens so Tj/TJ decoding can handle them.
func tokenize(s string) []string {
	var toks []string
	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		switch {
		case c == ' ' || c == '\n' || c == '\r' || c == '\t':
			i++
		case c == '(':
			depth := 1
			j := i + 1
			for j < n && depth > 0 {
				if s[j] == '\\' && j+1 < n {
					j += 2
					continue
				}
				if s[j] == '(' {
					depth++
				} else if s[j] == ')' {
					depth--
				}
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		case c == '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				j = n - i - 1
			}
			inner := s[i+1 : i+j]
			for _, t := range tokenize(inner) {
				toks = append(toks, t)
			}
			i += j + 1
		case c == '<':
			j := strings.IndexByte(s[i:], '>')
			if j < 0 {
				j = n - i - 1
			}
			toks = append(toks, s[i:i+j+1])
			i += j + 1
		case c == '/':
			j := i + 1
			for j < n && !isDelim(s[j]) {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		default:
			j := i
			for j < n && !isDelim(s[j]) {
				j++
			}
			if j > i {
				toks = append(toks, s[i:j])
			} else {
				i++
			}
			i = j
		}
	}
	return toks
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '(', ')', '[', ']', '<', '>', '/':
		return true
	}
	return false
}

func decodeLiteral(tok string) string {
	tok = strings.TrimPrefix(tok, "(")
	tok = strings.TrimSuffix(tok, ")")
	var sb strings.Builder
	for i := 0; i < len(tok); i++ {
		if tok[i] == '\\' && i+1 < len(tok) {
			i++
			switch tok[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(tok[i])
			}
			continue
		}
		sb.WriteByte(tok[i])
	}
	return sb.String()
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
