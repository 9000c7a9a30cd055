package ingest

import (
	"strconv"
	"strings"

	"pdfmd/model"
)

const positionTolerance = 10.0

// stripPageNumbers implements spec.md §4.1's page-number heuristic: using
// the first maxProbePages pages, find a text item that is a bare integer,
// appears at a consistent X position near a page edge, and increases
// monotonically page over page. Once such a position is found, the
// matching item is removed from every page from the first matching page
// onward. Grounded on the teacher's header/footer "repeated position
// across pages" detection idea, narrowed to integer-only candidates.
func stripPageNumbers(result *model.ParseResult, maxProbePages int) {
	if len(result.Pages) < 2 {
		return
	}
	probeCount := maxProbePages
	if probeCount > len(result.Pages) {
		probeCount = len(result.Pages)
	}

	type candidate struct {
		x       float64
		numbers []int // per probed page, -1 if absent
	}

	var candidates []*candidate

	for pageOffset := 0; pageOffset < probeCount; pageOffset++ {
		page := result.Pages[pageOffset]
		for _, it := range page.Items {
			if it.TextRun == nil {
				continue
			}
			n, ok := bareInteger(it.TextRun.Text)
			if !ok {
				continue
			}
			if !nearPageEdge(page, *it.TextRun) {
				continue
			}
			found := false
			for _, c := range candidates {
				if absDiff(c.x, it.TextRun.X) <= positionTolerance {
					c.numbers[pageOffset] = n
					found = true
					break
				}
			}
			if !found {
				c := &candidate{x: it.TextRun.X, numbers: make([]int, probeCount)}
				for i := range c.numbers {
					c.numbers[i] = -1
				}
				c.numbers[pageOffset] = n
				candidates = append(candidates, c)
			}
		}
	}

	var best *candidate
	bestFirstPage := -1
	for _, c := range candidates {
		firstPage, ok := monotonicRun(c.numbers)
		if !ok {
			continue
		}
		if best == nil {
			best = c
			bestFirstPage = firstPage
		}
	}
	if best == nil {
		return
	}

	for i := bestFirstPage; i < len(result.Pages); i++ {
		page := &result.Pages[i]
		filtered := page.Items[:0]
		for _, it := range page.Items {
			if it.TextRun != nil && absDiff(it.TextRun.X, best.x) <= positionTolerance {
				if _, ok := bareInteger(it.TextRun.Text); ok {
					continue // drop the page-number artifact
				}
			}
			filtered = append(filtered, it)
		}
		page.Items = filtered
	}
}

func bareInteger(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// nearPageEdge reports whether a run sits in the top or bottom band of the
// page's observed Y extent, where page numbers conventionally live.
func nearPageEdge(page model.PageContext, run model.TextRun) bool {
	minY, maxY := run.Y, run.Y
	for _, it := range page.Items {
		if it.TextRun == nil {
			continue
		}
		if it.TextRun.Y < minY {
			minY = it.TextRun.Y
		}
		if it.TextRun.Y > maxY {
			maxY = it.TextRun.Y
		}
	}
	span := maxY - minY
	if span <= 0 {
		return true
	}
	band := span * 0.08
	return run.Y >= maxY-band || run.Y <= minY+band
}

// monotonicRun reports whether numbers, ignoring leading -1 (absent) gaps,
// form a run that is strictly increasing wherever present. It returns the
// index of the first present value.
func monotonicRun(numbers []int) (firstIndex int, ok bool) {
	firstIndex = -1
	last := -1
	present := 0
	for i, n := range numbers {
		if n == -1 {
			continue
		}
		if firstIndex == -1 {
			firstIndex = i
		}
		present++
		if last != -1 && n <= last {
			return -1, false
		}
		last = n
	}
	return firstIndex, present >= 2
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
