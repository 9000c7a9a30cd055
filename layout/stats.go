package layout

import (
	"strings"

	"pdfmd/ingest"
	"pdfmd/model"
)

// ComputeGlobals implements spec.md §4.2. It scans every TextRun on every
// page (image records are ignored) and fills in body-height, body-font,
// body-distance, max-height, per-font average character width, and
// per-font StyleConfidence.
func ComputeGlobals(result *model.ParseResult) {
	g := model.NewGlobals()

	heightCounts := map[float64]int{}
	fontCounts := map[string]int{}
	maxHeight := 0.0
	maxHeightFont := ""

	for _, page := range result.Pages {
		for _, it := range page.Items {
			if it.TextRun == nil {
				continue
			}
			t := it.TextRun
			heightCounts[t.Height]++
			fontCounts[t.FontID]++
			if t.Height > maxHeight {
				maxHeight = t.Height
				maxHeightFont = t.FontID
			}
		}
	}

	bodyHeight := modeFloat(heightCounts)
	bodyFont := modeString(fontCounts)

	g.BodyHeight = bodyHeight
	g.BodyFontID = bodyFont
	g.MaxHeight = maxHeight
	g.MaxHeightFontID = maxHeightFont
	g.BodyDistance = computeBodyDistance(result, bodyHeight)

	avgWidth, widthSamples := computeAvgCharWidth(result, bodyHeight)
	g.FontAvgCharWidth = avgWidth
	g.FontStyle = computeStyleConfidence(result, avgWidth, widthSamples, bodyFont, maxHeightFont)

	result.Globals = g
}

func modeFloat(counts map[float64]int) float64 {
	best := 0.0
	bestCount := -1
	for v, c := range counts {
		if c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

func modeString(counts map[string]int) string {
	best := ""
	bestCount := -1
	for v, c := range counts {
		if c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

// computeBodyDistance is the mode of positive inter-line Y-deltas among
// consecutive runs of body-height with non-empty trimmed text; a run whose
// height differs from body-height resets the running anchor.
func computeBodyDistance(result *model.ParseResult, bodyHeight float64) float64 {
	deltaCounts := map[float64]int{}

	for _, page := range result.Pages {
		var anchorY float64
		haveAnchor := false
		for _, it := range page.Items {
			if it.TextRun == nil {
				continue
			}
			t := it.TextRun
			if t.Height != bodyHeight || strings.TrimSpace(t.Text) == "" {
				haveAnchor = false
				continue
			}
			if haveAnchor {
				d := anchorY - t.Y
				if d > 0 {
					deltaCounts[d]++
				}
			}
			anchorY = t.Y
			haveAnchor = true
		}
	}

	return modeFloat(deltaCounts)
}

// computeAvgCharWidth returns, per font, the mean of width/trimmed-text-length
// across runs whose height is within 0.5 of body-height.
func computeAvgCharWidth(result *model.ParseResult, bodyHeight float64) (map[string]float64, map[string]int) {
	sums := map[string]float64{}
	counts := map[string]int{}

	for _, page := range result.Pages {
		for _, it := range page.Items {
			if it.TextRun == nil {
				continue
			}
			t := it.TextRun
			if abs(t.Height-bodyHeight) > 0.5 {
				continue
			}
			n := len(strings.TrimSpace(t.Text))
			if n == 0 {
				continue
			}
			sums[t.FontID] += t.Width / float64(n)
			counts[t.FontID]++
		}
	}

	avg := map[string]float64{}
	for font, sum := range sums {
		avg[font] = sum / float64(counts[font])
	}
	return avg, counts
}

// computeStyleConfidence implements spec.md §4.2's weighted StyleConfidence
// formula.
func computeStyleConfidence(result *model.ParseResult, avgWidth map[string]float64, widthSamples map[string]int, bodyFont, maxHeightFont string) map[string]model.StyleConfidence {
	out := map[string]model.StyleConfidence{}
	bodyAvgWidth := avgWidth[bodyFont]

	fonts := map[string]bool{}
	for _, page := range result.Pages {
		for _, it := range page.Items {
			if it.TextRun != nil {
				fonts[it.TextRun.FontID] = true
			}
		}
	}

	for id := range fonts {
		if id == bodyFont {
			out[id] = model.StyleConfidence{Bold: 0, Italic: 0, Format: model.FormatNone}
			continue
		}

		desc, haveDesc := result.Fonts[id]

		var bold, italic float64

		// descriptor-weight >= 600 => bold; italic-angle != 0 => italic; * 0.40
		if haveDesc {
			if desc.Weight >= 600 {
				bold += 0.40
			}
			if desc.ItalicAngle != 0 {
				italic += 0.40
			}
		}

		// per-font avg-width / body-avg-width >= 1.1, normalized over 0.2, * 0.35
		if bodyAvgWidth > 0 {
			ratio := avgWidth[id] / bodyAvgWidth
			if ratio >= 1.1 {
				score := (ratio - 1.1) / 0.2
				if score > 1 {
					score = 1
				}
				bold += 0.35 * score
			}
		}

		// relative-width score * 0.20 (a softer variant of the same ratio,
		// scaled so a font noticeably wider than body still contributes
		// even below the 1.1 gate above)
		if bodyAvgWidth > 0 {
			ratio := avgWidth[id] / bodyAvgWidth
			rel := (ratio - 1.0)
			if rel < 0 {
				rel = 0
			}
			if rel > 1 {
				rel = 1
			}
			bold += 0.20 * rel
		}

		// font-name substring match for bold/italic/oblique, * 0.05
		if haveDesc {
			if ingest.NameIndicatesStyle(desc.Name, "bold") {
				bold += 0.05
			}
			if ingest.NameIndicatesStyle(desc.Name, "italic") || ingest.NameIndicatesStyle(desc.Name, "oblique") {
				italic += 0.05
			}
		}

		// weak fallback: +0.1 bold if this font equals the max-height font
		if id == maxHeightFont && maxHeightFont != "" {
			bold += 0.1
		}

		bold = clamp01(bold)
		italic = clamp01(italic)

		format := model.FormatNone
		switch {
		case bold >= 0.3 && italic >= 0.3:
			format = model.FormatBoldItalic
		case bold >= 0.3:
			format = model.FormatBold
		case italic >= 0.3:
			format = model.FormatItalic
		}

		out[id] = model.StyleConfidence{Bold: bold, Italic: italic, Format: format}
	}

	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
