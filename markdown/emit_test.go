package markdown

import (
	"strings"
	"testing"

	"pdfmd/model"
)

func TestEmitBlockHeading(t *testing.T) {
	b := model.Block{Type: model.H2, Lines: []model.Line{
		{Words: []model.Word{{Text: "Section"}, {Text: "Title"}}},
	}}
	got := emitBlock(b, nil)
	if got != "## Section Title" {
		t.Fatalf("got %q", got)
	}
}

func TestEmitBlockCodeStripsBackticksAndFences(t *testing.T) {
	b := model.Block{Type: model.CODE, Lines: []model.Line{
		{Words: []model.Word{{Text: "`func"}, {Text: "main()`"}}},
	}}
	got := emitBlock(b, nil)
	if !strings.HasPrefix(got, "```\n") || !strings.HasSuffix(got, "\n```") {
		t.Fatalf("expected fenced code block, got %q", got)
	}
	if got != "```\nfunc main()\n```" {
		t.Fatalf("expected backticks stripped inside the fence, got %q", got)
	}
}

func TestEmitBlockListJoinsLinesWithNewline(t *testing.T) {
	b := model.Block{Type: model.LIST, Lines: []model.Line{
		{Words: []model.Word{{Text: "-"}, {Text: "first"}}},
		{Words: []model.Word{{Text: "-"}, {Text: "second"}}},
	}}
	got := emitBlock(b, nil)
	if got != "- first\n- second" {
		t.Fatalf("got %q", got)
	}
}

func TestEmitResultJoinsPageBlocksWithBlankLine(t *testing.T) {
	result := &model.ParseResult{
		Pages: []model.PageContext{
			{Index: 0, Items: []model.Item{
				model.BlockItem(model.Block{Type: model.H1, Lines: []model.Line{
					{Words: []model.Word{{Text: "Title"}}},
				}}),
				model.BlockItem(model.Block{Type: model.Untyped, Lines: []model.Line{
					{Words: []model.Word{{Text: "Body"}, {Text: "paragraph."}}},
				}}),
			}},
		},
	}

	out := Emit(result, Config{ImageMode: model.ImageNone})

	if len(out.Pages) != 1 {
		t.Fatalf("expected one page, got %d", len(out.Pages))
	}
	want := "# Title\n\nBody paragraph."
	if out.Pages[0] != want {
		t.Fatalf("got %q, want %q", out.Pages[0], want)
	}
}

func TestEmitResultDropsImageOnSaveFailureAsWarning(t *testing.T) {
	result := &model.ParseResult{
		Pages: []model.PageContext{
			{Index: 0, Items: []model.Item{
				model.ImageItem(model.ImageRecord{Name: "1", Format: "png", Data: []byte("x")}),
			}},
		},
	}

	out := Emit(result, Config{ImageMode: model.ImageSave, ImageSavePath: "/nonexistent/\x00/bad"})

	if len(out.Warnings) != 1 {
		t.Fatalf("expected one warning for failed image save, got %d: %#v", len(out.Warnings), out.Warnings)
	}
	if out.Pages[0] != "" {
		t.Fatalf("expected empty page after dropped image, got %q", out.Pages[0])
	}
}
