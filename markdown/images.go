package markdown

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"pdfmd/model"
)

const maxTitlePrefixLen = 50

// TitlePrefix implements spec.md §4.10's title-prefix resolution: the
// caller-supplied override, else the metadata title sanitized to
// [A-Za-z0-9 <CJK>] and truncated to 50 runes, else "pdf".
func TitlePrefix(override string, metadata model.Metadata) string {
	if override != "" {
		return override
	}
	if sanitized := sanitizeTitle(metadata.Title); sanitized != "" {
		return sanitized
	}
	return "pdf"
}

func sanitizeTitle(title string) string {
	var sb strings.Builder
	count := 0
	for _, r := range title {
		if count >= maxTitlePrefixLen {
			break
		}
		if isASCIIAlnumOrSpace(r) || unicode.Is(unicode.Han, r) {
			sb.WriteRune(r)
			count++
		}
	}
	return strings.TrimSpace(sb.String())
}

func isASCIIAlnumOrSpace(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' '
}

// imageName implements spec.md §4.10's naming scheme.
func imageName(prefix string, seq string, pageIndex int, format string) string {
	return fmt.Sprintf("%s_image%s_p%d.%s", prefix, seq, pageIndex+1, format)
}

// emitImage renders one image's markdown reference according to the
// configured mode, per spec.md §4.10 and §7 (save-mode I/O failures drop
// that image rather than aborting).
func emitImage(img *model.ImageRecord, mode model.ImageMode, savePath, prefix string, pageIndex int) (ref string, mapEntry map[string][]byte, warning string) {
	name := imageName(prefix, img.Name, pageIndex, img.Format)

	switch mode {
	case model.ImageNone:
		return "", nil, ""

	case model.ImageBase64:
		encoded := base64.StdEncoding.EncodeToString(img.Data)
		mime := "image/png"
		if img.Format == "jpg" {
			mime = "image/jpeg"
		}
		return fmt.Sprintf("![%s](data:%s;base64,%s)", name, mime, encoded), nil, ""

	case model.ImageRelative:
		return fmt.Sprintf("![%s](./%s)", name, name), map[string][]byte{name: img.Data}, ""

	case model.ImageSave:
		if err := os.MkdirAll(savePath, 0o755); err != nil {
			return "", nil, "dropped image " + name + ": " + err.Error()
		}
		if err := os.WriteFile(filepath.Join(savePath, name), img.Data, 0o644); err != nil {
			return "", nil, "dropped image " + name + ": " + err.Error()
		}
		return fmt.Sprintf("![%s](%s)", name, name), nil, ""

	default:
		return "", nil, ""
	}
}
