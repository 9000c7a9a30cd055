// Package ingest implements spec.md §4.1, the ingestion adapter: it turns
// PDF-library output (content-stream operations and image XObjects) into
// the internal TextRun and ImageRecord primitives, applies NFKC
// normalization, and strips repeated page-number artifacts.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"pdfmd/model"
	"pdfmd/pages"
	"pdfmd/reader"
)

// Adapter runs stage 1 over an open PDF reader.
type Adapter struct {
	reader                     *reader.Reader
	logger                     *slog.Logger
	imageCounter               int
	disablePageNumberStripping bool
}

// NewAdapter creates an ingestion adapter over an already-opened reader.
func NewAdapter(r *reader.Reader, logger *slog.Logger, disablePageNumberStripping bool) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{reader: r, logger: logger, disablePageNumberStripping: disablePageNumberStripping}
}

// Run ingests every page of the document into a ParseResult whose pages
// hold only TextRun and Image items (stage 1's output variants), with
// page-number artifacts already stripped.
func (a *Adapter) Run(ctx context.Context) (*model.ParseResult, []model.Warning, error) {
	count, err := a.reader.PageCount()
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: page count: %w", err)
	}

	result := &model.ParseResult{
		Globals: model.NewGlobals(),
		Fonts:   map[string]model.Font{},
	}

	var warnings []model.Warning

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, warnings, fmt.Errorf("ingest: cancelled before page %d: %w", i, err)
		}

		page, err := a.reader.GetPage(i)
		if err != nil {
			warnings = append(warnings, model.Warning{Stage: "ingest", PageIndex: i, Message: "skipped unreadable page: " + err.Error()})
			result.Pages = append(result.Pages, model.PageContext{Index: i})
			continue
		}

		pc, fonts, pageWarnings, err := a.ingestPage(i, page)
		if err != nil {
			warnings = append(warnings, model.Warning{Stage: "ingest", PageIndex: i, Message: err.Error()})
			result.Pages = append(result.Pages, model.PageContext{Index: i})
			continue
		}
		warnings = append(warnings, pageWarnings...)
		result.Pages = append(result.Pages, pc)
		for id, f := range fonts {
			result.Fonts[id] = f
		}
	}

	if !a.disablePageNumberStripping {
		stripPageNumbers(result, 10)
	}

	return result, warnings, nil
}

func (a *Adapter) ingestPage(index int, page *pages.Page) (model.PageContext, map[string]model.Font, []model.Warning, error) {
	resources, _ := page.Resources()
	fontTable := loadFonts(resources, a.reader.ResolveReference)

	data, err := a.reader.PageContentBytes(page)
	if err != nil {
		return model.PageContext{Index: index}, nil, nil, fmt.Errorf("page %d: decode content: %w", index, err)
	}

	var items []model.Item
	modelFonts := map[string]model.Font{}

	if len(data) > 0 {
		texts, paints, err := walkContentStream(data, fontTable)
		if err != nil {
			return model.PageContext{Index: index}, nil, nil, fmt.Errorf("page %d: parse content stream: %w", index, err)
		}

		for _, t := range texts {
			run := toTextRun(t)
			if strings.TrimSpace(run.Text) == "" {
				continue
			}
			items = append(items, model.TextRunItem(run))
		}

		for _, rf := range fontTable {
			modelFonts[rf.id] = rf.toModelFont()
		}

		images, imgWarnings := a.extractImages(page, paints)
		for _, img := range images {
			items = append(items, model.ImageItem(img))
		}
		sortItems(items)
		return model.PageContext{Index: index, Items: items}, modelFonts, imgWarnings, nil
	}

	return model.PageContext{Index: index}, modelFonts, nil, nil
}

// toTextRun applies spec.md §4.1's text-extraction rules: integer-rounded
// position, NFKC normalization, and the sqrt(a²+b²) height correction for
// font-scaled heights.
func toTextRun(t rawTextRecord) model.TextRun {
	origin := t.Transform.Transform(model.Point{X: 0, Y: 0})
	x := math.Round(origin.X)
	y := math.Round(origin.Y)

	a, b := t.Transform[0], t.Transform[1]
	denom := math.Sqrt(a*a + b*b)
	height := t.Height
	if denom > 0 {
		if q := height / denom; q > 1 {
			height = q
		}
	}

	return model.TextRun{
		X:      x,
		Y:      y,
		Width:  t.Width,
		Height: height,
		Text:   norm.NFKC.String(t.Str),
		FontID: t.FontName,
	}
}

// sortItems merges and orders a page's TextRun/Image items by Y descending,
// tie-broken by X ascending, per spec.md §4.1's "per-page output" rule.
func sortItems(items []model.Item) {
	y := func(it model.Item) float64 {
		if it.TextRun != nil {
			return it.TextRun.Y
		}
		return it.Image.Y
	}
	x := func(it model.Item) float64 {
		if it.TextRun != nil {
			return it.TextRun.X
		}
		return it.Image.X
	}
	sort.SliceStable(items, func(i, j int) bool {
		yi, yj := y(items[i]), y(items[j])
		if yi != yj {
			return yi > yj
		}
		return x(items[i]) < x(items[j])
	})
}
