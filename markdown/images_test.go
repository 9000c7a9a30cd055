package markdown

import (
	"encoding/base64"
	"strings"
	"testing"

	"pdfmd/model"
)

func TestTitlePrefixOverrideWins(t *testing.T) {
	got := TitlePrefix("custom", model.Metadata{Title: "Document Title"})
	if got != "custom" {
		t.Fatalf("got %q", got)
	}
}

func TestTitlePrefixFallsBackToSanitizedMetadata(t *testing.T) {
	got := TitlePrefix("", model.Metadata{Title: "Report #1: Q3!!"})
	if got != "Report 1 Q3" {
		t.Fatalf("got %q", got)
	}
}

func TestTitlePrefixDefaultsToPdf(t *testing.T) {
	got := TitlePrefix("", model.Metadata{})
	if got != "pdf" {
		t.Fatalf("got %q", got)
	}
}

func TestImageNameScheme(t *testing.T) {
	got := imageName("report", "3", 0, "png")
	if got != "report_image3_p1.png" {
		t.Fatalf("got %q", got)
	}
}

func TestEmitImageBase64Mode(t *testing.T) {
	img := &model.ImageRecord{Name: "1", Format: "png", Data: []byte("fakepngbytes")}
	ref, mapEntry, warn := emitImage(img, model.ImageBase64, "", "doc", 0)
	if warn != "" {
		t.Fatalf("unexpected warning: %s", warn)
	}
	if mapEntry != nil {
		t.Fatalf("expected no image map entry for base64 mode")
	}
	encoded := base64.StdEncoding.EncodeToString(img.Data)
	if !strings.Contains(ref, encoded) {
		t.Fatalf("ref missing base64 payload: %s", ref)
	}
	if !strings.HasPrefix(ref, "![doc_image1_p1.png]") {
		t.Fatalf("ref has unexpected name: %s", ref)
	}
}

func TestEmitImageRelativeModeReturnsMapEntry(t *testing.T) {
	img := &model.ImageRecord{Name: "2", Format: "jpg", Data: []byte("jpgbytes")}
	ref, mapEntry, warn := emitImage(img, model.ImageRelative, "", "doc", 2)
	if warn != "" {
		t.Fatalf("unexpected warning: %s", warn)
	}
	name := "doc_image2_p3.jpg"
	if ref != "![" + name + "](./" + name + ")" {
		t.Fatalf("ref = %q", ref)
	}
	if string(mapEntry[name]) != "jpgbytes" {
		t.Fatalf("map entry missing image bytes")
	}
}

func TestEmitImageNoneModeReturnsNothing(t *testing.T) {
	img := &model.ImageRecord{Name: "1", Format: "png"}
	ref, mapEntry, warn := emitImage(img, model.ImageNone, "", "doc", 0)
	if ref != "" || mapEntry != nil || warn != "" {
		t.Fatalf("expected no-op for ImageNone mode, got ref=%q map=%v warn=%q", ref, mapEntry, warn)
	}
}
