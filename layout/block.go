package layout

import (
	"sort"

	"pdfmd/model"
)

const bigDistanceSlack = 1.0

// GatherBlocks implements spec.md §4.7: it folds a page's Lines into Blocks
// under the type-compatibility and "big distance" rules, holding Image
// items aside, then re-interleaves images back into reading order using
// Y-range overlap rather than a bare point comparison.
func GatherBlocks(result *model.ParseResult) {
	for pi := range result.Pages {
		page := &result.Pages[pi]
		page.Items = gatherPage(page.Items, result.Globals.BodyDistance)
	}
}

func gatherPage(items []model.Item, bodyDistance float64) []model.Item {
	var lines []model.Line
	var images []model.ImageRecord
	for _, it := range items {
		switch {
		case it.Line != nil:
			if it.Line.Removed {
				continue
			}
			lines = append(lines, *it.Line)
		case it.Image != nil:
			images = append(images, *it.Image)
		}
	}

	minX := pageMinX(lines)
	blocks := foldBlocks(lines, bodyDistance, minX)

	return interleaveImages(blocks, images)
}

func pageMinX(lines []model.Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	minX := lines[0].X
	for _, l := range lines[1:] {
		if l.X < minX {
			minX = l.X
		}
	}
	return minX
}

func foldBlocks(lines []model.Line, bodyDistance, minX float64) []model.Block {
	var blocks []model.Block
	var stash model.Block

	flush := func() {
		if len(stash.Lines) > 0 {
			blocks = append(blocks, stash)
		}
		stash = model.Block{}
	}

	for _, line := range lines {
		if len(stash.Lines) == 0 {
			stash = model.Block{Type: line.Type, Lines: []model.Line{line}}
			continue
		}

		if startsNewBlock(stash, line, bodyDistance, minX) {
			flush()
			stash = model.Block{Type: line.Type, Lines: []model.Line{line}}
			continue
		}

		stash.Lines = append(stash.Lines, line)
	}
	flush()

	return blocks
}

func startsNewBlock(stash model.Block, line model.Line, bodyDistance, minX float64) bool {
	last := stash.Lines[len(stash.Lines)-1]

	if line.Type != stash.Type {
		if stash.Type != model.Untyped && line.Type == model.Untyped {
			flags := stash.Type.Flags()
			if flags.MergeFollowingUntyped {
				return false
			}
			if flags.MergeFollowingUntypedSmallDistance {
				return isBigDistance(last, line, bodyDistance, minX)
			}
		}
		return true
	}

	if stash.Type != model.Untyped {
		return !stash.Type.Flags().MergeToBlock
	}

	return isBigDistance(last, line, bodyDistance, minX)
}

// isBigDistance implements spec.md §4.7's "big distance" formula: reverse
// flow (next line above the last) or an excessive forward gap; indented
// lines get a looser forward threshold.
func isBigDistance(last, next model.Line, bodyDistance, minX float64) bool {
	d := last.Y - next.Y
	if d < -bodyDistance/2 {
		return true
	}
	threshold := bodyDistance + bigDistanceSlack
	if last.X > minX && next.X > minX {
		threshold = bodyDistance*1.5 + bigDistanceSlack
	}
	return d > threshold
}

type rangedItem struct {
	item      model.Item
	top       float64
	bottom    float64
	centerY   float64
	height    float64
	x         float64
}

// interleaveImages implements spec.md §4.7's image re-interleaving: each
// block/image gets a (top,bottom) Y-range, items are ordered center-Y
// descending except that pairs whose ranges overlap by more than 20% of
// their average height are ordered by X ascending instead (side-by-side
// content, e.g. text wrapping around a figure).
func interleaveImages(blocks []model.Block, images []model.ImageRecord) []model.Item {
	var ranged []rangedItem

	for _, b := range blocks {
		if len(b.Lines) == 0 {
			continue
		}
		top, bottom := b.Lines[0].Y, b.Lines[0].Y-b.Lines[0].MaxHeight
		minLineX := b.Lines[0].X
		for _, l := range b.Lines[1:] {
			if l.Y > top {
				top = l.Y
			}
			if l.Y-l.MaxHeight < bottom {
				bottom = l.Y - l.MaxHeight
			}
			if l.X < minLineX {
				minLineX = l.X
			}
		}
		ranged = append(ranged, rangedItem{
			item:    model.BlockItem(b),
			top:     top,
			bottom:  bottom,
			centerY: (top + bottom) / 2,
			height:  top - bottom,
			x:       minLineX,
		})
	}

	for _, img := range images {
		top := img.Y + img.Height/2
		bottom := img.Y - img.Height/2
		ranged = append(ranged, rangedItem{
			item:    model.ImageItem(img),
			top:     top,
			bottom:  bottom,
			centerY: img.Y,
			height:  img.Height,
			x:       img.X - img.Width/2,
		})
	}

	sort.SliceStable(ranged, func(i, j int) bool {
		a, b := ranged[i], ranged[j]
		avgHeight := (a.height + b.height) / 2
		overlap := minF(a.top, b.top) - maxF(a.bottom, b.bottom)
		if avgHeight > 0 && overlap > 0 && overlap/avgHeight > 0.2 {
			return a.x < b.x
		}
		return a.centerY > b.centerY
	})

	out := make([]model.Item, len(ranged))
	for i, r := range ranged {
		out[i] = r.item
	}
	return out
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
