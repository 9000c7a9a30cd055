package layout

import (
	"testing"

	"pdfmd/model"
)

func TestDetectListsBulletDuplicatesAndMarksOriginalRemoved(t *testing.T) {
	result := &model.ParseResult{Pages: []model.PageContext{{Index: 0, Items: []model.Item{
		model.LineItem(model.Line{Words: []model.Word{{Text: "•"}, {Text: "item"}, {Text: "1"}}}),
	}}}}

	DetectLists(result)

	items := result.Pages[0].Items
	if len(items) != 2 {
		t.Fatalf("expected original + duplicate, got %d items", len(items))
	}
	if !items[0].Line.Removed {
		t.Fatalf("expected original line marked removed")
	}
	if items[1].Line.Type != model.LIST || items[1].Line.Words[0].Text != "-" {
		t.Fatalf("expected duplicate LIST line starting with -, got %#v", items[1].Line)
	}
}

func TestDetectListsNumberedPatternTagsInPlace(t *testing.T) {
	result := &model.ParseResult{Pages: []model.PageContext{{Index: 0, Items: []model.Item{
		model.LineItem(model.Line{Words: []model.Word{{Text: "1."}, {Text: "First"}}}),
	}}}}

	DetectLists(result)

	items := result.Pages[0].Items
	if len(items) != 1 || items[0].Line.Type != model.LIST {
		t.Fatalf("expected single LIST line, got %#v", items)
	}
}
