package markdown

import (
	"regexp"
	"strings"
)

var whitespaceRunPattern = regexp.MustCompile(`\s{2,}|\t+`)

// emitTable implements spec.md §4.10's TABLE rule: lines already containing
// a pipe are emitted verbatim; otherwise columns are reconstructed either
// from whitespace-run splits (multi-line blocks) or from the leading run of
// configured header-keyword tokens (single-line blocks), and rendered
// as a pipe table with a `---` separator row after the header.
func emitTable(lines []string, keywords []string) string {
	for _, l := range lines {
		if strings.Contains(l, "|") {
			return strings.Join(lines, "\n")
		}
	}

	var rows [][]string
	if len(lines) == 1 {
		rows = splitSingleLineColumns(lines[0], keywords)
	} else {
		for _, l := range lines {
			cols := whitespaceRunPattern.Split(strings.TrimSpace(l), -1)
			rows = append(rows, cols)
		}
	}
	if len(rows) == 0 {
		return strings.Join(lines, "\n")
	}

	var sb strings.Builder
	sb.WriteString(renderRow(rows[0]))
	sb.WriteString("\n")
	sb.WriteString(renderRow(separatorCells(len(rows[0]))))
	for _, r := range rows[1:] {
		sb.WriteString("\n")
		sb.WriteString(renderRow(padCells(r, len(rows[0]))))
	}
	return sb.String()
}

// splitSingleLineColumns implements the header-keyword boundary
// heuristic for single-line tables that carry no delimiter at
// all: the leading run of tokens matching a configured keyword becomes the
// header row, and the remaining tokens are chunked into rows of that same
// width.
func splitSingleLineColumns(line string, keywords []string) [][]string {
	tokens := strings.Fields(line)

	headerLen := 0
	for _, t := range tokens {
		if !tokenMatchesKeyword(t, keywords) {
			break
		}
		headerLen++
	}
	if headerLen < 2 {
		return [][]string{tokens}
	}

	header := tokens[:headerLen]
	rest := tokens[headerLen:]

	rows := [][]string{header}
	for i := 0; i < len(rest); i += headerLen {
		end := i + headerLen
		if end > len(rest) {
			end = len(rest)
		}
		rows = append(rows, rest[i:end])
	}
	return rows
}

func tokenMatchesKeyword(token string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(token, k) {
			return true
		}
	}
	return false
}

func renderRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func separatorCells(n int) []string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "---"
	}
	return cells
}

func padCells(cells []string, n int) []string {
	if len(cells) >= n {
		return cells[:n]
	}
	out := make([]string, n)
	copy(out, cells)
	for i := len(cells); i < n; i++ {
		out[i] = ""
	}
	return out
}
