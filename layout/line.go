package layout

import (
	"strconv"
	"strings"

	"pdfmd/model"
	"pdfmd/text"
)

// lineTolerance is the maximum baseline delta for two runs to be considered
// part of the same visual line. spec.md §4.3 says only that body-distance
// defines the tolerance; a fraction of it keeps genuinely separate lines
// from merging while still tolerating superscript/subscript baseline
// offsets within one line.
func lineTolerance(bodyDistance float64) float64 {
	t := bodyDistance * 0.5
	if t < 2 {
		t = 2
	}
	return t
}

// GroupLines implements spec.md §4.3: it groups TextRuns by baseline into
// Lines and runs inline analysis (word merging, footnote/link detection,
// format attachment) within each line. Image items pass through untouched.
func GroupLines(result *model.ParseResult) {
	tol := lineTolerance(result.Globals.BodyDistance)

	for pi := range result.Pages {
		page := &result.Pages[pi]
		var out []model.Item
		var runs []model.TextRun

		flush := func() {
			if len(runs) == 0 {
				return
			}
			out = append(out, model.LineItem(buildLine(runs, result.Globals)))
			runs = nil
		}

		for _, it := range page.Items {
			if it.Image != nil {
				flush()
				out = append(out, it)
				continue
			}
			if it.TextRun == nil {
				continue
			}
			if len(runs) > 0 && absF(runs[0].Y-it.TextRun.Y) > tol {
				flush()
			}
			runs = append(runs, *it.TextRun)
		}
		flush()

		page.Items = out
	}
}

func buildLine(runs []model.TextRun, g model.Globals) model.Line {
	sorted := append([]model.TextRun(nil), runs...)
	sortRunsByX(sorted)

	groupFirstY := sorted[0].Y

	// Merge consecutive runs sharing (format, isNumeric).
	type segment struct {
		text   string
		x      float64
		y      float64
		height float64
		format model.WordFormat
	}
	var segments []segment

	sameKind := func(a, b model.TextRun) bool {
		return g.FontStyle[a.FontID].Format == g.FontStyle[b.FontID].Format && isNumeric(a.Text) == isNumeric(b.Text)
	}

	for i, r := range sorted {
		if i > 0 && sameKind(sorted[i-1], r) {
			prev := &segments[len(segments)-1]
			gap := r.X - (prev.x + estimateTextWidth(prev.text, prev.height))
			if shouldInsertSpace(gap, prev.text, r.Text) {
				prev.text += " " + r.Text
			} else {
				prev.text += r.Text
			}
			if r.Height > prev.height {
				prev.height = r.Height
			}
			continue
		}
		segments = append(segments, segment{
			text:   r.Text,
			x:      r.X,
			y:      r.Y,
			height: r.Height,
			format: g.FontStyle[r.FontID].Format,
		})
	}

	line := model.Line{
		X: sorted[0].X,
		Y: sorted[0].Y,
	}

	var totalWidth, maxHeight float64
	footID := 0
	for _, s := range segments {
		if s.x+estimateTextWidth(s.text, s.height) > totalWidth {
			totalWidth = s.x + estimateTextWidth(s.text, s.height) - sorted[0].X
		}
		if s.height > maxHeight {
			maxHeight = s.height
		}

		trimmed := strings.TrimSpace(s.text)
		if trimmed == "" {
			continue
		}

		if isNumeric(trimmed) && s.y != groupFirstY {
			footID++
			if s.y > groupFirstY {
				line.Words = append(line.Words, model.Word{Text: trimmed, Kind: model.WordFootnoteAnchor, FootID: mustAtoi(trimmed)})
			} else {
				line.Words = append(line.Words, model.Word{Text: trimmed, Kind: model.WordFootnoteDef, FootID: mustAtoi(trimmed)})
				line.Type = model.FOOTNOTES
			}
			continue
		}

		if strings.HasPrefix(trimmed, "http:") {
			line.Words = append(line.Words, model.Word{Text: trimmed, Kind: model.WordLink, LinkURL: trimmed, Format: s.format})
			continue
		}
		if strings.HasPrefix(trimmed, "www.") {
			line.Words = append(line.Words, model.Word{Text: trimmed, Kind: model.WordLink, LinkURL: "http://" + trimmed, Format: s.format})
			continue
		}

		line.Words = append(line.Words, model.Word{Text: trimmed, Format: s.format})
	}

	line.Width = totalWidth
	line.MaxHeight = maxHeight
	line.Direction = text.DetectDirection(line.Text())
	if len(line.Words) == 0 {
		line.Removed = true
	}
	return line
}

func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// shouldInsertSpace implements spec.md §4.3's merge-time spacing rule: a
// space is inserted iff the X-gap exceeds 5 units, or neither side already
// carries one.
func shouldInsertSpace(gapX float64, prevText, nextText string) bool {
	if gapX > 5 {
		return true
	}
	prevEndsSpace := strings.HasSuffix(prevText, " ")
	nextStartsSpace := strings.HasPrefix(nextText, " ")
	return !prevEndsSpace && !nextStartsSpace
}

// estimateTextWidth approximates a run's device-space width from its
// height when only concatenated text (not the original per-glyph width) is
// available, using a typical glyph aspect ratio.
func estimateTextWidth(s string, height float64) float64 {
	return float64(len([]rune(s))) * height * 0.5
}

func sortRunsByX(runs []model.TextRun) {
	for i := 1; i < len(runs); i++ {
		for j := i; j > 0 && runs[j].X < runs[j-1].X; j-- {
			runs[j], runs[j-1] = runs[j-1], runs[j]
		}
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
