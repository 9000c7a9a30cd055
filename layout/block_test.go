package layout

import (
	"testing"

	"pdfmd/model"
)

func plainLine(x, y, maxHeight float64, text string) model.Line {
	return model.Line{X: x, Y: y, MaxHeight: maxHeight, Words: []model.Word{{Text: text}}}
}

func TestGatherBlocksMergesConsecutiveBodyLines(t *testing.T) {
	items := []model.Item{
		model.LineItem(plainLine(0, 700, 10, "one")),
		model.LineItem(plainLine(0, 686, 10, "two")),
		model.LineItem(plainLine(0, 672, 10, "three")),
	}

	out := gatherPage(items, 14)

	if len(out) != 1 || out[0].Block == nil {
		t.Fatalf("expected single merged block, got %d items", len(out))
	}
	if len(out[0].Block.Lines) != 3 {
		t.Fatalf("expected 3 lines in block, got %d", len(out[0].Block.Lines))
	}
}

func TestGatherBlocksSplitsOnBigForwardGap(t *testing.T) {
	items := []model.Item{
		model.LineItem(plainLine(0, 700, 10, "one")),
		model.LineItem(plainLine(0, 600, 10, "two")), // gap way beyond bodyDistance+slack
	}

	out := gatherPage(items, 14)

	if len(out) != 2 {
		t.Fatalf("expected two separate blocks, got %d", len(out))
	}
}

func TestGatherBlocksSplitsOnReverseFlow(t *testing.T) {
	items := []model.Item{
		model.LineItem(plainLine(0, 600, 10, "one")),
		model.LineItem(plainLine(0, 700, 10, "two")), // next line above last -> new column/block
	}

	out := gatherPage(items, 14)

	if len(out) != 2 {
		t.Fatalf("expected reverse flow to split into two blocks, got %d", len(out))
	}
}

func TestInterleaveImagesOrdersByCenterYWhenNoOverlap(t *testing.T) {
	blocks := []model.Block{
		{Type: model.Untyped, Lines: []model.Line{plainLine(0, 700, 10, "top")}},
		{Type: model.Untyped, Lines: []model.Line{plainLine(0, 500, 10, "bottom")}},
	}
	images := []model.ImageRecord{
		{X: 0, Y: 600, Width: 10, Height: 10, Name: "1"},
	}

	out := interleaveImages(blocks, images)

	if len(out) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out))
	}
	if out[0].Block == nil || out[0].Block.Lines[0].Text() != "top" {
		t.Fatalf("expected top block first, got %#v", out[0])
	}
	if out[1].Image == nil {
		t.Fatalf("expected image second (between top and bottom by center-Y), got %#v", out[1])
	}
	if out[2].Block == nil || out[2].Block.Lines[0].Text() != "bottom" {
		t.Fatalf("expected bottom block last, got %#v", out[2])
	}
}

func TestIsBigDistanceIndentedLinesGetLooserThreshold(t *testing.T) {
	bodyDistance := 14.0
	minX := 0.0
	last := plainLine(20, 700, 10, "a")
	next := plainLine(20, 700-bodyDistance-1.5, 10, "b") // within 1.5*body+slack, beyond body+slack

	if isBigDistance(last, next, bodyDistance, minX) {
		t.Fatalf("expected indented lines to tolerate a larger forward gap")
	}
}
