package layout

import "pdfmd/model"

// DetectCode implements spec.md §4.8: among a page's still-untyped blocks,
// one that is indented relative to every other block (single short line, or
// multiple lines none of which reach the page's left margin) is treated as
// a code/quote block.
func DetectCode(result *model.ParseResult) {
	bodyHeight := result.Globals.BodyHeight

	for pi := range result.Pages {
		page := &result.Pages[pi]
		minX := blockMinX(page.Items)

		for ii := range page.Items {
			it := &page.Items[ii]
			if it.Block == nil || it.Block.Type != model.Untyped || len(it.Block.Lines) == 0 {
				continue
			}
			if isCodeBlock(*it.Block, minX, bodyHeight) {
				it.Block.Type = model.CODE
			}
		}
	}
}

func blockMinX(items []model.Item) float64 {
	minX := 0.0
	first := true
	for _, it := range items {
		if it.Block == nil || len(it.Block.Lines) == 0 {
			continue
		}
		for _, l := range it.Block.Lines {
			if first || l.X < minX {
				minX = l.X
				first = false
			}
		}
	}
	return minX
}

func isCodeBlock(b model.Block, minX, bodyHeight float64) bool {
	if len(b.Lines) == 1 {
		l := b.Lines[0]
		return l.X > minX && l.MaxHeight <= bodyHeight+1
	}
	if len(b.Lines) >= 2 {
		for _, l := range b.Lines {
			if l.X == minX {
				return false
			}
		}
		return true
	}
	return false
}
