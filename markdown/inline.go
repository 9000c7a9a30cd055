package markdown

import (
	"strconv"
	"strings"

	"pdfmd/model"
)

// formatMarker maps a discrete inline format to its CommonMark delimiter.
func formatMarker(f model.WordFormat) string {
	switch f {
	case model.FormatBold:
		return "**"
	case model.FormatItalic:
		return "*"
	case model.FormatBoldItalic:
		return "***"
	default:
		return ""
	}
}

// emitInline implements spec.md §4.10's inline emission rule: format
// markers open/close as a word's format changes, link/footnote words get
// their own shape, and a space separates adjacent words unless the next one
// starts with sentence punctuation.
func emitInline(words []model.Word) string {
	var sb strings.Builder
	current := model.FormatNone

	for i, w := range words {
		changed := w.Format != current
		if changed {
			if marker := formatMarker(current); marker != "" {
				sb.WriteString(marker)
			}
		}

		if i > 0 && !startsWithPunct(w.Text) {
			sb.WriteString(" ")
		}

		if changed {
			current = w.Format
			if marker := formatMarker(current); marker != "" {
				sb.WriteString(marker)
			}
		}

		sb.WriteString(wordText(w))
	}

	if marker := formatMarker(current); marker != "" {
		sb.WriteString(marker)
	}

	return sb.String()
}

func wordText(w model.Word) string {
	switch w.Kind {
	case model.WordLink:
		return "[" + w.Text + "](" + w.LinkURL + ")"
	case model.WordFootnoteAnchor:
		return "[^" + strconv.Itoa(w.FootID) + "]"
	case model.WordFootnoteDef:
		return "[^" + strconv.Itoa(w.FootID) + "]: "
	default:
		return w.Text
	}
}

func startsWithPunct(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '.', '!', '?':
		return true
	default:
		return false
	}
}
