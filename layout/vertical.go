package layout

import (
	"unicode"

	"pdfmd/model"
	"pdfmd/text"
)

// minStashLen is the length a stash must exceed to be recombined into a
// synthetic horizontal line (spec.md §4.4: "stashes of length > 5").
const minStashLen = 5

// charKind classifies the single rune of a single-character line so that a
// vertical stash only extends across runs of the same kind of character
// (e.g. a column of digits, or a column of CJK ideographs).
type charKind int

const (
	kindNone charKind = iota
	kindDigit
	kindLatin
	kindCJK
	kindOther
)

func classifyChar(r rune) charKind {
	switch {
	case unicode.IsDigit(r):
		return kindDigit
	case unicode.Is(unicode.Han, r):
		return kindCJK
	case unicode.IsLetter(r):
		return kindLatin
	default:
		return kindOther
	}
}

// singleChar reports the sole rune of a Line consisting of exactly one
// one-rune word, and whether the line qualifies at all.
func singleChar(l model.Line) (rune, bool) {
	if l.Removed || len(l.Words) != 1 {
		return 0, false
	}
	runes := []rune(l.Words[0].Text)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

// isVerticalCandidate gates stashing on the line's dominant direction: only
// a Neutral run (digits, punctuation, symbols) or a Han ideograph is
// eligible, so a column of single Latin initials (Direction LTR)
// is never mistaken for vertical CJK text.
func isVerticalCandidate(kind charKind, dir text.Direction) bool {
	return kind == kindCJK || dir == text.Neutral
}

// RecombineVertical implements spec.md §4.4: a stashing pass over each
// page's Lines that merges columns of single-character lines running top to
// bottom into one synthetic horizontal line.
func RecombineVertical(result *model.ParseResult) {
	for pi := range result.Pages {
		page := &result.Pages[pi]
		page.Items = recombinePage(page.Items)
	}
}

func recombinePage(items []model.Item) []model.Item {
	var out []model.Item
	var stash []model.Line
	var stashKind charKind

	flush := func() {
		defer func() { stash = nil; stashKind = kindNone }()
		if len(stash) == 0 {
			return
		}
		if len(stash) > minStashLen {
			out = append(out, model.LineItem(mergeStash(stash)))
			return
		}
		for _, l := range stash {
			out = append(out, model.LineItem(l))
		}
	}

	for _, it := range items {
		if it.Line == nil {
			flush()
			out = append(out, it)
			continue
		}
		r, ok := singleChar(*it.Line)
		if !ok {
			flush()
			out = append(out, it)
			continue
		}
		kind := classifyChar(r)
		if !isVerticalCandidate(kind, it.Line.Direction) {
			flush()
			out = append(out, it)
			continue
		}

		if len(stash) == 0 {
			stash = append(stash, *it.Line)
			stashKind = kind
			continue
		}

		prev := stash[len(stash)-1]
		if kind == stashKind && prev.Y-it.Line.Y > 5 {
			stash = append(stash, *it.Line)
			continue
		}

		flush()
		stash = append(stash, *it.Line)
		stashKind = kind
	}
	flush()

	return out
}

// mergeStash combines a run of single-character lines into one synthetic
// horizontal line, per spec.md §4.4's field formulas.
func mergeStash(stash []model.Line) model.Line {
	merged := model.Line{
		X:    stash[0].X,
		Y:    stash[0].Y,
		Type: stash[0].Type,
	}
	var text string
	for _, l := range stash {
		if l.X < merged.X {
			merged.X = l.X
		}
		if l.Y > merged.Y {
			merged.Y = l.Y
		}
		merged.Width += l.Width
		if l.MaxHeight > merged.MaxHeight {
			merged.MaxHeight = l.MaxHeight
		}
		text += l.Words[0].Text
	}
	merged.Words = []model.Word{{Text: text, Format: stash[0].Words[0].Format}}
	return merged
}
