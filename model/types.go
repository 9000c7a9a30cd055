package model

import "pdfmd/text"

// BlockType is the closed set of structural roles a Line or Block can carry.
// The zero value Untyped means "not yet classified."
type BlockType int

const (
	Untyped BlockType = iota
	H1
	H2
	H3
	H4
	H5
	H6
	LIST
	CODE
	TABLE
	TOC
	FOOTNOTES
	PARAGRAPH
)

func (t BlockType) String() string {
	switch t {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	case H4:
		return "H4"
	case H5:
		return "H5"
	case H6:
		return "H6"
	case LIST:
		return "LIST"
	case CODE:
		return "CODE"
	case TABLE:
		return "TABLE"
	case TOC:
		return "TOC"
	case FOOTNOTES:
		return "FOOTNOTES"
	case PARAGRAPH:
		return "PARAGRAPH"
	default:
		return "UNTYPED"
	}
}

// HeadlineLevel reports the H1-H6 depth of a header type, or 0 if not a header.
func (t BlockType) HeadlineLevel() int {
	if t >= H1 && t <= H6 {
		return int(t-H1) + 1
	}
	return 0
}

// TypeFlags captures the merge behavior spec.md §3 associates with each
// block type.
type TypeFlags struct {
	MergeToBlock                        bool
	MergeFollowingUntyped               bool
	MergeFollowingUntypedSmallDistance  bool
	HeadlineLevel                       int
}

// Flags returns the merge/headline flags for a block type.
func (t BlockType) Flags() TypeFlags {
	if lvl := t.HeadlineLevel(); lvl > 0 {
		return TypeFlags{HeadlineLevel: lvl}
	}
	switch t {
	case LIST:
		return TypeFlags{MergeToBlock: true}
	case CODE, TABLE, TOC:
		return TypeFlags{MergeToBlock: true}
	case FOOTNOTES:
		return TypeFlags{MergeToBlock: true, MergeFollowingUntyped: true}
	case PARAGRAPH:
		return TypeFlags{MergeToBlock: true, MergeFollowingUntypedSmallDistance: true}
	default:
		return TypeFlags{}
	}
}

// WordKind distinguishes ordinary text from links and footnote markers.
type WordKind int

const (
	WordPlain WordKind = iota
	WordLink
	WordFootnoteAnchor
	WordFootnoteDef
)

// WordFormat is the discrete inline emphasis a Word carries.
type WordFormat int

const (
	FormatNone WordFormat = iota
	FormatBold
	FormatItalic
	FormatBoldItalic
)

// TextRun is a single positioned glyph run as produced by the PDF library.
type TextRun struct {
	X, Y          float64 // baseline position, PDF-up coordinates
	Width, Height float64
	Text          string // NFKC-normalized
	FontID        string
}

// ImageRecord is a decoded raster image positioned on a page.
type ImageRecord struct {
	X, Y          float64 // center
	Width, Height float64
	Data          []byte
	Format        string // "png" or "jpg"
	Name          string // synthetic name, assigned at emission time
}

// Word is one token of a Line, produced during line grouping.
type Word struct {
	Text    string
	Kind    WordKind
	Format  WordFormat
	LinkURL string // populated when Kind == WordLink
	FootID  int    // populated when Kind is a footnote variant
}

// Line is the result of merging same-baseline TextRuns and running inline
// analysis over them.
type Line struct {
	X, Y      float64
	Width     float64
	MaxHeight float64
	Words     []Word
	Type      BlockType
	Removed   bool // retained for auditability, not emitted
	Direction text.Direction
}

// Text concatenates a line's surviving words with single spaces, ignoring
// inline formatting. Used by detectors that need a plain-text view.
func (l Line) Text() string {
	s := ""
	for i, w := range l.Words {
		if i > 0 {
			s += " "
		}
		s += w.Text
	}
	return s
}

// Block is a group of consecutive Lines sharing a type.
type Block struct {
	Lines      []Line
	Type       BlockType
	Annotation string
}

// Font is a PDF font descriptor as relevant to style inference.
type Font struct {
	ID          string
	Name        string
	Weight      float64 // 0 when unknown
	ItalicAngle float64
}

// StyleConfidence holds the raw bold/italic probabilities computed for a
// font-id, plus the discrete format derived from them.
type StyleConfidence struct {
	Bold   float64
	Italic float64
	Format WordFormat
}

// HeaderFeatures is the named feature snapshot backing a HeaderScore, kept
// so a misclassified header can be diagnosed feature-by-feature.
type HeaderFeatures struct {
	FontSizeRatio      float64
	VerticalSpacing    float64
	IsStandalone       bool
	PositionOnPage     float64
	RepetitionPattern  float64
	IsUppercase        bool
	FontFamilyDiff     bool
}

// HeaderScore is the per-line weighted feature score used by the header
// detector.
type HeaderScore struct {
	Score    float64
	Features HeaderFeatures
}

// Item is a tagged-variant slot in PageContext.Items. Exactly one of
// TextRun, Line, Block, Image is non-nil, matching the stage that produced
// it; do not emulate inheritance, match on the tag instead.
type ItemKind int

const (
	KindTextRun ItemKind = iota
	KindLine
	KindBlock
	KindImage
)

type Item struct {
	Kind    ItemKind
	TextRun *TextRun
	Line    *Line
	Block   *Block
	Image   *ImageRecord
}

func TextRunItem(t TextRun) Item { return Item{Kind: KindTextRun, TextRun: &t} }
func LineItem(l Line) Item       { return Item{Kind: KindLine, Line: &l} }
func BlockItem(b Block) Item     { return Item{Kind: KindBlock, Block: &b} }
func ImageItem(i ImageRecord) Item { return Item{Kind: KindImage, Image: &i} }

// PageContext holds one PDF page's items as they flow through the pipeline.
type PageContext struct {
	Index int
	Items []Item
}

// HeightRange is an inclusive [Min,Max] band of run heights, used to record
// per-level header height ranges.
type HeightRange struct {
	Min, Max float64
}

// Globals holds document-wide statistics computed once in stage 2 and
// treated as read-only thereafter. Stages that derive new maps (e.g.
// font-size to header level) extend Globals without mutating its existing
// fields.
type Globals struct {
	BodyHeight        float64
	BodyFontID        string
	BodyDistance      float64
	MaxHeight         float64
	MaxHeightFontID   string
	FontAvgCharWidth  map[string]float64
	FontStyle         map[string]StyleConfidence
	FontSizeToLevel   map[float64]int
	TOCPages          map[int]bool
	HeadlineHeightRange map[int]HeightRange
}

func NewGlobals() Globals {
	return Globals{
		FontAvgCharWidth:    map[string]float64{},
		FontStyle:           map[string]StyleConfidence{},
		FontSizeToLevel:     map[float64]int{},
		TOCPages:            map[int]bool{},
		HeadlineHeightRange: map[int]HeightRange{},
	}
}

// ImageMode controls how the image sink disposes of decoded image bytes.
type ImageMode int

const (
	ImageNone ImageMode = iota
	ImageBase64
	ImageRelative
	ImageSave
)

// Callbacks are fired synchronously during conversion for observability
// only; they never affect output.
type Callbacks struct {
	OnMetadata       func(title string)
	OnPage           func(index int)
	OnFont           func(f Font)
	OnDocumentParsed func()
}

// Metadata is the subset of PDF document metadata the pipeline consults.
type Metadata struct {
	Title string
}

// ParseResult is the shared record threaded through every pipeline stage.
type ParseResult struct {
	Pages    []PageContext
	Globals  Globals
	Metadata Metadata
	// Fonts holds the descriptor supplied with the PDF for every font-id
	// seen during ingestion. Stage 2 consults it to compute StyleConfidence;
	// it is not part of Globals because it is produced incrementally during
	// ingestion rather than in a single stage-2 pass.
	Fonts map[string]Font
}

// Warning records an absorbed per-page/per-item/per-image defect, per
// spec.md §7's propagation policy: only document-load failure and invalid
// configuration are fatal, everything else becomes a Warning.
type Warning struct {
	Stage     string
	PageIndex int
	Message   string
}

// Result is the module's public output.
type Result struct {
	Pages    []string
	Images   map[string][]byte
	Warnings []Warning
}
