package markdown

import (
	"testing"

	"pdfmd/model"
)

func TestEmitInlinePlainWords(t *testing.T) {
	got := emitInline([]model.Word{{Text: "Hello"}, {Text: "world"}})
	if got != "Hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestEmitInlineBoldRunGetsMarkers(t *testing.T) {
	words := []model.Word{
		{Text: "plain"},
		{Text: "bold", Format: model.FormatBold},
		{Text: "text", Format: model.FormatBold},
	}
	got := emitInline(words)
	if got != "plain **bold text**" {
		t.Fatalf("got %q", got)
	}
}

func TestEmitInlineLinkWord(t *testing.T) {
	words := []model.Word{{Text: "example.com", Kind: model.WordLink, LinkURL: "http://example.com"}}
	got := emitInline(words)
	if got != "[example.com](http://example.com)" {
		t.Fatalf("got %q", got)
	}
}

func TestEmitInlineFootnoteAnchor(t *testing.T) {
	words := []model.Word{{Text: "word"}, {Kind: model.WordFootnoteAnchor, FootID: 3}}
	got := emitInline(words)
	if got != "word [^3]" {
		t.Fatalf("got %q", got)
	}
}

func TestEmitInlineNoSpaceBeforeSentencePunctuation(t *testing.T) {
	words := []model.Word{{Text: "done"}, {Text: "."}}
	got := emitInline(words)
	if got != "done." {
		t.Fatalf("got %q", got)
	}
}
