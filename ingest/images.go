package ingest

import (
	"bytes"
	"strconv"

	"pdfmd/model"
	"pdfmd/pages"
	"pdfmd/reader"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}
var jpegMagic = []byte{0xFF, 0xD8}

// extractImages resolves every image-paint operation on a page into a
// model.ImageRecord, per spec.md §4.1: dimensions and position come from
// the CTM in effect at paint time, format is settled by a magic-number
// check, and records that fail the check are dropped rather than aborting
// the page.
func (a *Adapter) extractImages(page *pages.Page, paints []rawImagePaint) ([]model.ImageRecord, []model.Warning) {
	if len(paints) == 0 {
		return nil, nil
	}

	pageImages, err := a.reader.ExtractPageImages(page)
	if err != nil || len(pageImages) == 0 {
		return nil, nil
	}
	byName := map[string]reader.PageImage{}
	for _, pi := range pageImages {
		byName[pi.Name] = pi
	}

	var out []model.ImageRecord
	var warnings []model.Warning

	for _, paint := range paints {
		pi, ok := byName[paint.Name]
		if !ok {
			continue // missing XObject; drop per spec.md §7
		}

		data, format, ok := a.resolveImageBytes(pi)
		if !ok {
			warnings = append(warnings, model.Warning{Stage: "ingest", Message: "dropped image " + paint.Name + ": invalid magic bytes"})
			continue
		}

		minX, minY, maxX, maxY := imageBBox(paint.CTM)
		a.imageCounter++
		out = append(out, model.ImageRecord{
			X:      (minX + maxX) / 2,
			Y:      (minY + maxY) / 2,
			Width:  maxX - minX,
			Height: maxY - minY,
			Data:   data,
			Format: format,
			// Name here is a provisional per-document sequence number; the
			// markdown emitter assembles the final
			// {prefix}_image{N}_p{page}.{fmt} filename at emission time.
			Name: strconv.Itoa(a.imageCounter),
		})
	}

	return out, warnings
}

// resolveImageBytes tries, in order: the decoded stream bytes checked
// against PNG/JPEG magic numbers (covers DCTDecode JPEGs passed through
// undecoded), then a raw-pixel re-encode via PageImage.ToPNG.
func (a *Adapter) resolveImageBytes(pi reader.PageImage) (data []byte, format string, ok bool) {
	if bytes.HasPrefix(pi.Data, pngMagic) {
		return pi.Data, "png", true
	}
	if bytes.HasPrefix(pi.Data, jpegMagic) {
		return pi.Data, "jpg", true
	}

	png, err := pi.ToPNG()
	if err != nil {
		return nil, "", false
	}
	if !bytes.HasPrefix(png, pngMagic) {
		return nil, "", false
	}
	return png, "png", true
}

// imageBBox derives an axis-aligned device-space bounding box for the unit
// image square [0,1]x[0,1] under a paint-time CTM, by transforming its four
// corners rather than trusting a fixed component-pairing formula (the
// source's own transform-array convention is ambiguous on that point).
func imageBBox(ctm model.Matrix) (minX, minY, maxX, maxY float64) {
	corners := [4]model.Point{
		ctm.Transform(model.Point{X: 0, Y: 0}),
		ctm.Transform(model.Point{X: 1, Y: 0}),
		ctm.Transform(model.Point{X: 0, Y: 1}),
		ctm.Transform(model.Point{X: 1, Y: 1}),
	}
	minX, maxX = corners[0].X, corners[0].X
	minY, maxY = corners[0].Y, corners[0].Y
	for _, c := range corners[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	return
}
