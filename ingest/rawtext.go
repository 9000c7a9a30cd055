package ingest

import (
	"pdfmd/contentstream"
	"pdfmd/core"
	"pdfmd/graphicsstate"
	"pdfmd/model"
)

// rawTextRecord mirrors the "per-page text-content iterator" record
// spec.md §6(c) assumes an external PDF library hands the ingestion
// adapter: a device-space rendering transform, the glyph run's width and
// height in device units, the decoded string, and the font resource name
// active when it was painted.
type rawTextRecord struct {
	Transform model.Matrix
	Width     float64
	Height    float64
	Str       string
	FontName  string
}

// rawImagePaint mirrors one paint-image-XObject occurrence from the
// operator list, carrying the CTM in effect at paint time.
type rawImagePaint struct {
	Name string
	CTM  model.Matrix
}

// walkContentStream replays a decoded content stream, tracking the graphics
// state stack, and reports every text-show and image-paint operation. This
// is the internal stand-in for the external PDF library's text-content and
// operator-list iterators that spec.md §6 treats as consumed, not authored.
func walkContentStream(data []byte, fonts map[string]*resolvedFont) ([]rawTextRecord, []rawImagePaint, error) {
	parser := contentstream.NewParser(data)
	ops, err := parser.Parse()
	if err != nil {
		return nil, nil, err
	}

	gs := graphicsstate.NewGraphicsState()
	var texts []rawTextRecord
	var images []rawImagePaint
	var curFont *resolvedFont

	num := func(o core.Object) float64 {
		switch v := o.(type) {
		case core.Int:
			return float64(v)
		case core.Real:
			return float64(v)
		}
		return 0
	}

	for _, op := range ops {
		switch op.Operator {
		case "q":
			gs.Save()
		case "Q":
			gs.Restore()
		case "cm":
			if len(op.Operands) == 6 {
				m := model.Matrix{num(op.Operands[0]), num(op.Operands[1]), num(op.Operands[2]),
					num(op.Operands[3]), num(op.Operands[4]), num(op.Operands[5])}
				gs.Transform(m)
			}
		case "Tf":
			if len(op.Operands) == 2 {
				if name, ok := op.Operands[0].(core.Name); ok {
					gs.SetFont(string(name), num(op.Operands[1]))
					curFont = fonts[string(name)]
				}
			}
		case "Tm":
			if len(op.Operands) == 6 {
				m := model.Matrix{num(op.Operands[0]), num(op.Operands[1]), num(op.Operands[2]),
					num(op.Operands[3]), num(op.Operands[4]), num(op.Operands[5])}
				gs.SetTextMatrix(m)
			}
		case "BT":
			gs.BeginText()
		case "ET":
			gs.EndText()
		case "Td":
			if len(op.Operands) == 2 {
				gs.TranslateText(num(op.Operands[0]), num(op.Operands[1]))
			}
		case "TD":
			if len(op.Operands) == 2 {
				gs.TranslateTextSetLeading(num(op.Operands[0]), num(op.Operands[1]))
			}
		case "T*":
			gs.NextLine()
		case "Tc":
			if len(op.Operands) == 1 {
				gs.SetCharSpacing(num(op.Operands[0]))
			}
		case "Tw":
			if len(op.Operands) == 1 {
				gs.SetWordSpacing(num(op.Operands[0]))
			}
		case "Tz":
			if len(op.Operands) == 1 {
				gs.SetHorizontalScaling(num(op.Operands[0]))
			}
		case "TL":
			if len(op.Operands) == 1 {
				gs.SetLeading(num(op.Operands[0]))
			}
		case "Tj":
			if len(op.Operands) == 1 {
				if s, ok := op.Operands[0].(core.String); ok {
					texts = append(texts, emitRun(gs, curFont, string(s)))
				}
			}
		case "'":
			if len(op.Operands) == 1 {
				gs.NextLine()
				if s, ok := op.Operands[0].(core.String); ok {
					texts = append(texts, emitRun(gs, curFont, string(s)))
				}
			}
		case "\"":
			if len(op.Operands) == 3 {
				gs.SetWordSpacing(num(op.Operands[0]))
				gs.SetCharSpacing(num(op.Operands[1]))
				gs.NextLine()
				if s, ok := op.Operands[2].(core.String); ok {
					texts = append(texts, emitRun(gs, curFont, string(s)))
				}
			}
		case "TJ":
			if len(op.Operands) == 1 {
				if arr, ok := op.Operands[0].(core.Array); ok {
					for _, el := range arr {
						switch v := el.(type) {
						case core.String:
							texts = append(texts, emitRun(gs, curFont, string(v)))
						case core.Int:
							adj := -float64(v) * gs.Text.FontSize / 1000.0
							gs.Text.TextMatrix[4] += adj
						case core.Real:
							adj := -float64(v) * gs.Text.FontSize / 1000.0
							gs.Text.TextMatrix[4] += adj
						}
					}
				}
			}
		case "Do":
			if len(op.Operands) == 1 {
				if name, ok := op.Operands[0].(core.Name); ok {
					images = append(images, rawImagePaint{Name: string(name), CTM: gs.CTM})
				}
			}
		}
	}

	return texts, images, nil
}

// emitRun decodes a shown string with the active font, computes its device
// width via the effective text-rendering matrix, and advances the text
// matrix, mirroring ShowTextWithWidth's bookkeeping.
func emitRun(gs *graphicsstate.GraphicsState, f *resolvedFont, raw string) rawTextRecord {
	var decoded string
	var w1000 float64
	if f != nil {
		decoded = f.decode([]byte(raw))
		w1000 = f.width(decoded)
	} else {
		decoded = raw
		w1000 = float64(len([]rune(raw))) * 500
	}

	fontSize := gs.Text.FontSize
	widthUser := w1000 / 1000.0 * fontSize * (gs.Text.HorizontalScaling / 100.0)

	effective := gs.Text.TextMatrix.Multiply(gs.CTM)
	origin := effective.Transform(model.Point{X: 0, Y: 0})
	corner := effective.Transform(model.Point{X: widthUser, Y: fontSize})

	rec := rawTextRecord{
		Transform: effective,
		Width:     abs64(corner.X - origin.X),
		Height:    abs64(corner.Y - origin.Y),
		Str:       decoded,
		FontName:  gs.Text.FontName,
	}

	gs.ShowTextWithWidth(decoded, widthUser)
	return rec
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
