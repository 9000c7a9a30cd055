// Package tables implements spec.md §4.9: classifying a page's remaining
// untyped blocks as TABLE based on text-shape heuristics (sentence
// punctuation, paragraph-cue keywords, header-keyword/status-glyph
// patterns, pipe/separator/whitespace-column detection) rather than a
// structured cell grid.
package tables

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"pdfmd/model"
)

// DefaultKeywords is spec.md §4.9's Chinese table-header keyword list.
// Corpora in other languages should supply their own via Config.
var DefaultKeywords = []string{"名称", "类型", "支持", "备注", "标题"}

var paragraphCueKeywords = []string{"这是", "用于", "说明", "但是", "所以"}
var statusGlyphs = []string{"✅", "⚠️", "❌"}
var sentencePunct = []string{"。", "！", "？"}

var headerPairPattern = regexp.MustCompile(`名称.*类型.*支持.*备注`)
var separatorLinePattern = regexp.MustCompile(`^(-{3,}|={3,})$`)
var whitespaceRunPattern = regexp.MustCompile(`\s{2,}|\t+`)

// Config controls table-detector keyword lists, kept separate from
// model.Globals since it's caller-configurable rather than document-derived.
type Config struct {
	Keywords []string
}

// DefaultConfig returns spec.md §4.9's default (Chinese-corpus) keyword set.
func DefaultConfig() Config {
	return Config{Keywords: DefaultKeywords}
}

// DetectTables implements spec.md §4.9 over every page's still-untyped
// blocks.
func DetectTables(result *model.ParseResult, cfg Config) {
	if len(cfg.Keywords) == 0 {
		cfg = DefaultConfig()
	}
	for pi := range result.Pages {
		page := &result.Pages[pi]
		for ii := range page.Items {
			it := &page.Items[ii]
			if it.Block == nil || it.Block.Type != model.Untyped || len(it.Block.Lines) == 0 {
				continue
			}
			if isTable(*it.Block, cfg) {
				it.Block.Type = model.TABLE
			}
		}
	}
}

func isTable(b model.Block, cfg Config) bool {
	lines := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = l.Text()
	}
	aggregated := strings.Join(lines, " ")

	if isExcluded(aggregated) {
		return false
	}

	if len(b.Lines) == 1 {
		return isSingleLineTable(aggregated, cfg)
	}
	return isMultiLineTable(lines, aggregated)
}

func isExcluded(text string) bool {
	runeLen := utf8.RuneCountInString(text)

	if containsAny(text, sentencePunct) && runeLen > 30 {
		return true
	}
	if containsAny(text, paragraphCueKeywords) && runeLen > 20 && !containsAny(text, statusGlyphs) {
		return true
	}
	return false
}

func isSingleLineTable(text string, cfg Config) bool {
	tokens := strings.Fields(text)
	if len(tokens) < 4 {
		return false
	}

	hasKeyword := containsAny(text, cfg.Keywords)
	hasStatus := containsAny(text, statusGlyphs)
	hasSentencePunct := containsAny(text, sentencePunct)

	shortCount := func(maxLen int) int {
		n := 0
		for _, t := range tokens {
			if utf8.RuneCountInString(t) <= maxLen {
				n++
			}
		}
		return n
	}

	// (a) header keyword + status glyph + >=4 short (<=15) tokens
	if hasKeyword && hasStatus && shortCount(15) >= 4 {
		return true
	}

	// (b) >=6 tokens, >=5 short (<=12), no sentence punctuation
	if len(tokens) >= 6 && shortCount(12) >= 5 && !hasSentencePunct {
		return true
	}

	// (c) header-pair regex + status glyph + >=8 tokens
	if headerPairPattern.MatchString(text) && hasStatus && len(tokens) >= 8 {
		return true
	}

	return false
}

func isMultiLineTable(lines []string, aggregated string) bool {
	// (a) any line contains a pipe and there are >=2 lines
	if len(lines) >= 2 {
		for _, l := range lines {
			if strings.Contains(l, "|") {
				return true
			}
		}
	}

	// (b) a separator line with consistent column counts (+/-2) across >=2 lines
	for _, l := range lines {
		if separatorLinePattern.MatchString(strings.TrimSpace(l)) {
			if consistentColumnCounts(lines, 2) {
				return true
			}
		}
	}

	// (c) no pipes, but >=2 lines with consistent whitespace-run columns,
	// provided the block isn't dominated by sentence punctuation
	if len(lines) >= 2 && !containsAny(aggregated, sentencePunct) {
		if consistentColumnCounts(lines, 2) {
			return true
		}
	}

	return false
}

// consistentColumnCounts splits each line on runs of >=2 spaces or tabs and
// reports whether at least minLines of them share the same column count
// (within +/-2) and no resulting column exceeds 30 characters.
func consistentColumnCounts(lines []string, minLines int) bool {
	counts := map[int]int{}
	for _, l := range lines {
		cols := whitespaceRunPattern.Split(strings.TrimSpace(l), -1)
		if len(cols) < 2 {
			continue
		}
		tooLong := false
		for _, c := range cols {
			if utf8.RuneCountInString(c) > 30 {
				tooLong = true
				break
			}
		}
		if tooLong {
			continue
		}
		counts[len(cols)]++
	}

	for n := range counts {
		total := 0
		for m, cc := range counts {
			if abs(m-n) <= 2 {
				total += cc
			}
		}
		if total >= minLines {
			return true
		}
	}
	return false
}

func containsAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
