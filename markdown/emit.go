package markdown

import (
	"strings"

	"pdfmd/model"
	"pdfmd/tables"
)

// Config controls image disposition and title-prefix resolution at
// emission time. It is deliberately separate from model.Globals: these are
// caller-supplied output preferences, not document-derived statistics.
type Config struct {
	ImageMode     model.ImageMode
	ImageSavePath string
	TitlePrefix   string
	TableKeywords []string
}

// Emit implements spec.md §4.10 over an already fully-classified
// ParseResult, producing the module's public Result.
func Emit(result *model.ParseResult, cfg Config) model.Result {
	if len(cfg.TableKeywords) == 0 {
		cfg.TableKeywords = tables.DefaultKeywords
	}
	prefix := TitlePrefix(cfg.TitlePrefix, result.Metadata)

	pages := make([]string, len(result.Pages))
	images := map[string][]byte{}
	var warnings []model.Warning

	for pi, page := range result.Pages {
		var parts []string
		for _, it := range page.Items {
			switch {
			case it.Image != nil:
				ref, mapEntry, warn := emitImage(it.Image, cfg.ImageMode, cfg.ImageSavePath, prefix, pi)
				if warn != "" {
					warnings = append(warnings, model.Warning{Stage: "markdown", PageIndex: pi, Message: warn})
					continue
				}
				if ref == "" {
					continue
				}
				parts = append(parts, ref)
				for name, data := range mapEntry {
					images[name] = data
				}
			case it.Block != nil:
				parts = append(parts, emitBlock(*it.Block, cfg.TableKeywords))
			}
		}
		pages[pi] = strings.Join(parts, "\n\n")
	}

	out := model.Result{Pages: pages, Warnings: warnings}
	if cfg.ImageMode == model.ImageRelative {
		out.Images = images
	}
	return out
}

func emitBlock(b model.Block, keywords []string) string {
	switch b.Type {
	case model.H1, model.H2, model.H3, model.H4, model.H5, model.H6:
		level := b.Type.HeadlineLevel()
		text := ""
		if len(b.Lines) > 0 {
			text = emitInline(b.Lines[0].Words)
		}
		return strings.Repeat("#", level) + " " + text

	case model.LIST:
		lines := make([]string, len(b.Lines))
		for i, l := range b.Lines {
			lines[i] = emitInline(l.Words)
		}
		return strings.Join(lines, "\n")

	case model.CODE:
		lines := make([]string, len(b.Lines))
		for i, l := range b.Lines {
			lines[i] = strings.ReplaceAll(l.Text(), "`", "")
		}
		return "```\n" + strings.Join(lines, "\n") + "\n```"

	case model.TABLE:
		lines := make([]string, len(b.Lines))
		for i, l := range b.Lines {
			lines[i] = l.Text()
		}
		return emitTable(lines, keywords)

	case model.TOC:
		lines := make([]string, len(b.Lines))
		for i, l := range b.Lines {
			lines[i] = l.Text()
		}
		return strings.Join(lines, "\n")

	default: // FOOTNOTES, PARAGRAPH, Untyped-survivors treated as paragraphs
		texts := make([]string, len(b.Lines))
		for i, l := range b.Lines {
			texts[i] = emitInline(l.Words)
		}
		return strings.Join(texts, " ")
	}
}
