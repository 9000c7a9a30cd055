// Package pdfmd reconstructs a PDF's structure — headings, lists, code
// blocks, tables, footnotes, inline emphasis, vertical text, and in-flow
// images — into Markdown.
//
// Basic usage:
//
//	md, err := pdfmd.Open("report.pdf").Convert(context.Background())
//	if err != nil {
//	    // handle error
//	}
//	for _, page := range md.Pages {
//	    fmt.Println(page)
//	}
package pdfmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"pdfmd/ingest"
	"pdfmd/layout"
	"pdfmd/markdown"
	"pdfmd/model"
	"pdfmd/reader"
	"pdfmd/tables"
)

// Converter provides a fluent interface for configuring a conversion run.
// Configuration methods return the same Converter for chaining; Convert is
// the terminal operation.
type Converter struct {
	filename string
	data     []byte

	reader       *reader.Reader
	ownsReader   bool
	readerOpened bool

	imageMode                  model.ImageMode
	imageSavePath              string
	titlePrefix                string
	tableKeywords              []string
	disablePageNumberStripping bool
	callbacks                  model.Callbacks
	logger                     *slog.Logger

	err error
}

// Open configures a Converter to read the PDF at filename when Convert runs.
func Open(filename string) *Converter {
	return &Converter{filename: filename}
}

// FromBytes configures a Converter to read the given in-memory PDF bytes,
// matching spec.md §6's `convert(pdfBytes, config)` entry point. The
// retained decoder layer reads from an *os.File, so bytes are bridged
// through a temp file created and removed around the Convert call.
func FromBytes(data []byte) *Converter {
	return &Converter{data: data}
}

// FromReader creates a Converter from an already-opened reader.Reader. The
// caller retains ownership and must close it.
func FromReader(r *reader.Reader) *Converter {
	return &Converter{reader: r, readerOpened: true}
}

// ImageMode sets how decoded images are disposed of in the output.
func (c *Converter) ImageMode(mode model.ImageMode) *Converter {
	c.imageMode = mode
	return c
}

// ImageSavePath sets the directory image bytes are written to when
// ImageMode is model.ImageSave. Required in that mode; validated in
// Convert.
func (c *Converter) ImageSavePath(path string) *Converter {
	c.imageSavePath = path
	return c
}

// TitlePrefix overrides the metadata-derived image filename prefix.
func (c *Converter) TitlePrefix(prefix string) *Converter {
	c.titlePrefix = prefix
	return c
}

// TableKeywords overrides the default Chinese table-header keyword list
// used by the table detector's text-shape heuristics.
func (c *Converter) TableKeywords(keywords []string) *Converter {
	c.tableKeywords = keywords
	return c
}

// DisablePageNumberStripping turns off the first-ten-pages page-number
// heuristic, for documents whose pagination begins later in the document.
func (c *Converter) DisablePageNumberStripping() *Converter {
	c.disablePageNumberStripping = true
	return c
}

// Callbacks registers observability hooks fired during conversion; they
// never affect output.
func (c *Converter) Callbacks(cb model.Callbacks) *Converter {
	c.callbacks = cb
	return c
}

// Logger sets the structured logger used for internal diagnostics.
// Defaults to slog.Default().
func (c *Converter) Logger(l *slog.Logger) *Converter {
	c.logger = l
	return c
}

// Close releases the underlying reader if the Converter opened it.
func (c *Converter) Close() error {
	if c.ownsReader && c.reader != nil {
		err := c.reader.Close()
		c.reader = nil
		c.ownsReader = false
		return err
	}
	return nil
}

func (c *Converter) ensureReader() error {
	if c.readerOpened {
		return nil
	}
	switch {
	case c.filename != "":
		r, err := reader.Open(c.filename)
		if err != nil {
			return fmt.Errorf("pdfmd: open %s: %w", c.filename, err)
		}
		c.reader = r
	case c.data != nil:
		r, err := openFromBytes(c.data)
		if err != nil {
			return fmt.Errorf("pdfmd: open in-memory PDF: %w", err)
		}
		c.reader = r
	default:
		return fmt.Errorf("pdfmd: no PDF source configured")
	}
	c.ownsReader = true
	c.readerOpened = true
	return nil
}

// openFromBytes bridges spec.md §6's byte-slice entry point onto the
// retained decoder layer's file-based Reader.
func openFromBytes(data []byte) (*reader.Reader, error) {
	tmp, err := os.CreateTemp("", "pdfmd-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	return reader.Open(tmp.Name())
}

// Convert runs the full 11-stage pipeline and returns the assembled
// Markdown pages and, in relative image mode, the image byte map. Only
// document-load failure and invalid configuration are returned as errors;
// every other defect is absorbed into Result.Warnings.
func (c *Converter) Convert(ctx context.Context) (model.Result, error) {
	if c.imageMode == model.ImageSave && c.imageSavePath == "" {
		return model.Result{}, fmt.Errorf("pdfmd: imageSavePath is required when imageMode is save")
	}

	if err := c.ensureReader(); err != nil {
		return model.Result{}, err
	}
	if c.ownsReader {
		defer c.Close()
	}

	logger := c.logger
	if logger == nil {
		logger = slog.Default()
	}

	adapter := ingest.NewAdapter(c.reader, logger, c.disablePageNumberStripping)
	result, warnings, err := adapter.Run(ctx)
	if err != nil {
		return model.Result{}, fmt.Errorf("pdfmd: ingest: %w", err)
	}

	result.Metadata = c.loadMetadata()
	c.fireCallbacks(result)

	layout.Run(result, layout.DefaultPipeline())
	tables.DetectTables(result, tables.Config{Keywords: c.tableKeywords})

	out := markdown.Emit(result, markdown.Config{
		ImageMode:     c.imageMode,
		ImageSavePath: c.imageSavePath,
		TitlePrefix:   c.titlePrefix,
		TableKeywords: c.tableKeywords,
	})
	out.Warnings = append(warnings, out.Warnings...)

	return out, nil
}

func (c *Converter) loadMetadata() model.Metadata {
	info, err := c.reader.GetInfo()
	if err != nil {
		return model.Metadata{}
	}
	title, _ := info.GetString("Title")
	return model.Metadata{Title: string(title)}
}

// fireCallbacks fires the observability hooks. Per-page/per-font callbacks
// fire after ingestion completes rather than streaming during it: ingest.Adapter
// processes a page fully before the next begins anyway (spec.md §5's
// single-threaded cooperative model), so a post-hoc pass over the finished
// result observes the same sequence a live callback would have seen.
func (c *Converter) fireCallbacks(result *model.ParseResult) {
	if c.callbacks.OnMetadata != nil && result.Metadata.Title != "" {
		c.callbacks.OnMetadata(result.Metadata.Title)
	}
	if c.callbacks.OnFont != nil {
		for _, f := range result.Fonts {
			c.callbacks.OnFont(f)
		}
	}
	if c.callbacks.OnPage != nil {
		for _, page := range result.Pages {
			c.callbacks.OnPage(page.Index)
		}
	}
	if c.callbacks.OnDocumentParsed != nil {
		c.callbacks.OnDocumentParsed()
	}
}

// Convert is the package-level convenience form of spec.md §6's entry
// point: convert(pdfBytes, config) -> { pages, images }.
func Convert(ctx context.Context, pdfBytes []byte, opts ...func(*Converter)) (model.Result, error) {
	c := FromBytes(pdfBytes)
	for _, opt := range opts {
		opt(c)
	}
	return c.Convert(ctx)
}
