package layout

import (
	"regexp"
	"strings"

	"pdfmd/model"
)

var bulletChars = map[string]bool{
	"•": true, "·": true, "●": true, "◦": true, "○": true,
	"▪": true, "■": true, "□": true, "*": true, "+": true,
}

var numberedListPattern = regexp.MustCompile(`^(\d+[.)]|[一二三四五六七八九十百千]+、)`)

// DetectLists implements spec.md §4.5: bullet and numbered-list recognition
// over lines not yet assigned a block type.
func DetectLists(result *model.ParseResult) {
	for pi := range result.Pages {
		page := &result.Pages[pi]
		page.Items = detectListsPage(page.Items)
	}
}

func detectListsPage(items []model.Item) []model.Item {
	var out []model.Item
	for _, it := range items {
		if it.Line == nil || it.Line.Removed || it.Line.Type != model.Untyped || len(it.Line.Words) == 0 {
			out = append(out, it)
			continue
		}

		first := it.Line.Words[0].Text

		switch {
		case first == "-":
			l := *it.Line
			l.Type = model.LIST
			out = append(out, model.LineItem(l))

		case bulletChars[first]:
			dup := *it.Line
			dup.Words = append([]model.Word(nil), it.Line.Words...)
			dup.Words[0] = model.Word{Text: "-", Format: it.Line.Words[0].Format}
			dup.Type = model.LIST
			dup.Removed = false

			removed := *it.Line
			removed.Removed = true
			out = append(out, model.LineItem(removed), model.LineItem(dup))

		case numberedListPattern.MatchString(strings.TrimSpace(it.Line.Text())):
			l := *it.Line
			l.Type = model.LIST
			out = append(out, model.LineItem(l))

		default:
			out = append(out, it)
		}
	}
	return out
}
