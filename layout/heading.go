package layout

import (
	"sort"
	"strings"
	"unicode"

	"pdfmd/model"
)

const headerRetainThreshold = 0.4
const headerClusterTolerance = 0.5
const maxHeaderLevels = 4

type headerCandidate struct {
	pageIdx int
	itemIdx int
	line    *model.Line
}

// DetectHeaders implements spec.md §4.6: a multi-feature weighted score over
// untyped, non-list candidate lines, followed by fontSize clustering into
// up to four heading levels, a table-of-contents exact-height override, and
// a max-height overlay.
func DetectHeaders(result *model.ParseResult) {
	g := result.Globals

	var candidates []headerCandidate
	for pi := range result.Pages {
		page := &result.Pages[pi]
		for ii := range page.Items {
			it := &page.Items[ii]
			if it.Line == nil || it.Line.Removed || it.Line.Type != model.Untyped || len(it.Line.Words) == 0 {
				continue
			}
			candidates = append(candidates, headerCandidate{pageIdx: pi, itemIdx: ii, line: it.Line})
		}
	}
	if len(candidates) == 0 {
		applyMaxHeightOverlay(result)
		return
	}

	pageYRange := computePageYRanges(result)
	heightCounts := map[float64]int{}
	maxHeightCount := 0
	for _, c := range candidates {
		heightCounts[c.line.MaxHeight]++
		if heightCounts[c.line.MaxHeight] > maxHeightCount {
			maxHeightCount = heightCounts[c.line.MaxHeight]
		}
	}

	var retained []headerCandidate
	for _, c := range candidates {
		score := headerScore(c, candidates, pageYRange, heightCounts, maxHeightCount, g)
		if lvl, ok := g.FontSizeToLevel[c.line.MaxHeight]; ok {
			c.line.Type = levelToType(lvl)
			continue
		}
		if score >= headerRetainThreshold {
			retained = append(retained, c)
		}
	}

	assignClusterLevels(retained, g.BodyHeight)
	applyMaxHeightOverlay(result)
}

func computePageYRanges(result *model.ParseResult) map[int][2]float64 {
	ranges := map[int][2]float64{}
	for pi, page := range result.Pages {
		minY, maxY := 0.0, 0.0
		first := true
		for _, it := range page.Items {
			if it.Line == nil || it.Line.Removed {
				continue
			}
			if first {
				minY, maxY = it.Line.Y, it.Line.Y
				first = false
				continue
			}
			if it.Line.Y < minY {
				minY = it.Line.Y
			}
			if it.Line.Y > maxY {
				maxY = it.Line.Y
			}
		}
		ranges[pi] = [2]float64{minY, maxY}
	}
	return ranges
}

// headerScore computes spec.md §4.6's weighted feature score. fontSizeRatio
// is "gated" at 1.15: below that ratio the feature scores 0 rather than
// being dropped from the average, so it still counts in weightTotal and
// remains the discriminator that keeps ordinary body-height lines below the
// retention threshold.
func headerScore(c headerCandidate, all []headerCandidate, pageYRange map[int][2]float64, heightCounts map[float64]int, maxHeightCount int, g model.Globals) float64 {
	var weightedSum, weightTotal float64

	if g.BodyHeight > 0 {
		ratio := c.line.MaxHeight / g.BodyHeight
		value := 0.0
		if ratio >= 1.15 {
			value = clamp01(ratio - 1)
		}
		weightedSum += 0.35 * value
		weightTotal += 0.35
	}

	spaceBefore, spaceAfter := neighborSpacing(c, all)
	if g.BodyDistance > 0 {
		vs := spaceBefore
		if spaceAfter > vs {
			vs = spaceAfter
		}
		value := clamp01(vs / (g.BodyDistance * 1.5))
		weightedSum += 0.20 * value
		weightTotal += 0.20
	}

	standalone := isStandaloneCandidate(c, all)
	weightedSum += 0.15 * boolF(standalone)
	weightTotal += 0.15

	if yr, ok := pageYRange[c.pageIdx]; ok && yr[1] != yr[0] {
		value := clamp01((yr[1] - c.line.Y) / (yr[1] - yr[0]))
		weightedSum += 0.10 * value
		weightTotal += 0.10
	}

	if maxHeightCount > 0 {
		value := float64(heightCounts[c.line.MaxHeight]) / float64(maxHeightCount)
		weightedSum += 0.10 * value
		weightTotal += 0.10
	}

	text := strings.TrimSpace(c.line.Text())
	isUpper := text != "" && text == strings.ToUpper(text) && containsLetter(text)
	weightedSum += 0.05 * boolF(isUpper)
	weightTotal += 0.05

	fontFamilyDiff := c.line.Words[0].Text != "" && g.BodyFontID != "" && !sameFontFamily(c, g)
	weightedSum += 0.05 * boolF(fontFamilyDiff)
	weightTotal += 0.05

	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}

// sameFontFamily approximates "font == body-font" using the first word's
// observed format, since Word doesn't retain the source font ID after
// stage 3 merges; callers comparing formats distinguishes genuinely
// different font usage from the common body-font case well enough for this
// weak (0.05) feature.
func sameFontFamily(c headerCandidate, g model.Globals) bool {
	return c.line.Words[0].Format == model.FormatNone
}

func neighborSpacing(c headerCandidate, all []headerCandidate) (before, after float64) {
	var prevY, nextY float64
	havePrev, haveNext := false, false
	for _, other := range all {
		if other.pageIdx != c.pageIdx || other.line == c.line {
			continue
		}
		if other.line.Y > c.line.Y && (!havePrev || other.line.Y < prevY) {
			prevY, havePrev = other.line.Y, true
		}
		if other.line.Y < c.line.Y && (!haveNext || other.line.Y > nextY) {
			nextY, haveNext = other.line.Y, true
		}
	}
	if havePrev {
		before = prevY - c.line.Y
	}
	if haveNext {
		after = c.line.Y - nextY
	}
	return
}

func isStandaloneCandidate(c headerCandidate, all []headerCandidate) bool {
	band := c.line.MaxHeight * 0.5
	for _, other := range all {
		if other.pageIdx != c.pageIdx || other.line == c.line {
			continue
		}
		if absF(other.line.Y-c.line.Y) <= band {
			return false
		}
	}
	return true
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// assignClusterLevels clusters retained candidates by height (tolerance
// 0.5), ranks clusters by height/body-height descending, and assigns the
// top four clusters levels H1..H4 in order.
func assignClusterLevels(retained []headerCandidate, bodyHeight float64) {
	if len(retained) == 0 {
		return
	}

	sorted := append([]headerCandidate(nil), retained...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].line.MaxHeight > sorted[j].line.MaxHeight })

	type cluster struct {
		height  float64
		members []headerCandidate
	}
	var clusters []*cluster
	for _, c := range sorted {
		if len(clusters) > 0 && absF(clusters[len(clusters)-1].height-c.line.MaxHeight) <= headerClusterTolerance {
			last := clusters[len(clusters)-1]
			last.members = append(last.members, c)
			continue
		}
		clusters = append(clusters, &cluster{height: c.line.MaxHeight, members: []headerCandidate{c}})
	}

	sort.Slice(clusters, func(i, j int) bool { return clusters[i].height > clusters[j].height })

	// A cluster at or below body-height never gets promoted, regardless of
	// how it scored: a retained candidate can still be body-sized (e.g. a
	// short isolated line near the 0.4 threshold on its non-size features),
	// and spec.md's headings are by definition larger than body text.
	var promotable []*cluster
	for _, cl := range clusters {
		if cl.height > bodyHeight+headerClusterTolerance {
			promotable = append(promotable, cl)
		}
	}

	levels := maxHeaderLevels
	if len(promotable) < levels {
		levels = len(promotable)
	}
	for i := 0; i < levels; i++ {
		t := levelToType(i + 1)
		for _, m := range promotable[i].members {
			m.line.Type = t
		}
	}
}

func levelToType(level int) model.BlockType {
	switch level {
	case 1:
		return model.H1
	case 2:
		return model.H2
	case 3:
		return model.H3
	case 4:
		return model.H4
	default:
		return model.H4
	}
}

// applyMaxHeightOverlay implements spec.md §4.6's final rule: pages
// containing max-height runs additionally promote max-height lines to H1
// and lines between body-height and max-height (past the one-third mark)
// to H2, regardless of the cluster assignment above.
//
// MaxHeight is document-global, not per-page, so this applies everywhere
// rather than being scoped to only the pages that carry a max-height run;
// in practice that's the same set of lines, since no other page has a line
// at that height to match the first overlay branch.
func applyMaxHeightOverlay(result *model.ParseResult) {
	g := result.Globals
	if g.MaxHeight <= 0 || g.MaxHeight == g.BodyHeight {
		return
	}
	h2Floor := g.BodyHeight + (g.MaxHeight-g.BodyHeight)/3

	for pi := range result.Pages {
		page := &result.Pages[pi]
		for ii := range page.Items {
			it := &page.Items[ii]
			if it.Line == nil || it.Line.Removed || it.Line.Type == model.LIST {
				continue
			}
			switch {
			case it.Line.MaxHeight == g.MaxHeight:
				it.Line.Type = model.H1
			case it.Line.MaxHeight > h2Floor:
				it.Line.Type = model.H2
			}
		}
	}
}
