package ingest

import (
	"strings"

	"pdfmd/core"
	"pdfmd/font"
	"pdfmd/model"
)

// resolvedFont is the uniform view the extractor needs over the teacher's
// three concrete font types (Type1, TrueType, Type0/CID), which don't share
// an interface beyond the embedded *font.Font.
type resolvedFont struct {
	id          string
	name        string // BaseFont, used for bold/italic/oblique substring match
	weight      float64
	italicAngle float64
	decode      func([]byte) string
	width       func(string) float64 // total width in 1000ths of em
}

func resolveObj(obj core.Object, resolve func(core.IndirectRef) (core.Object, error)) core.Object {
	if ref, ok := obj.(core.IndirectRef); ok {
		if r, err := resolve(ref); err == nil {
			return r
		}
	}
	return obj
}

// loadFonts builds a name->resolvedFont map for every entry in a page's
// /Font resource dictionary. Fonts that fail to parse degrade to name-only
// heuristics per spec.md §7 ("font resolution failure: use name-only
// heuristics; style confidence degrades") rather than being dropped.
func loadFonts(resources core.Dict, resolve func(core.IndirectRef) (core.Object, error)) map[string]*resolvedFont {
	out := map[string]*resolvedFont{}
	if resources == nil {
		return out
	}

	fontsObj := resolveObj(resources.Get("Font"), resolve)
	fontsDict, ok := fontsObj.(core.Dict)
	if !ok {
		return out
	}

	for name, ref := range fontsDict {
		dictObj := resolveObj(ref, resolve)
		dict, ok := dictObj.(core.Dict)
		if !ok {
			continue
		}
		out[name] = loadOneFont(name, dict, resolve)
	}
	return out
}

func loadOneFont(resourceName string, dict core.Dict, resolve func(core.IndirectRef) (core.Object, error)) *resolvedFont {
	subtype, _ := dict.Get("Subtype").(core.Name)

	switch string(subtype) {
	case "Type0":
		t0, err := font.NewType0Font(dict, resolve)
		if err == nil {
			rf := &resolvedFont{
				id:     resourceName,
				name:   t0.BaseFont,
				decode: t0.DecodeString,
				width:  t0.GetStringWidth,
			}
			if t0.DescendantFont != nil && t0.DescendantFont.FontDescriptor != nil {
				rf.weight = t0.DescendantFont.FontDescriptor.Weight
				rf.italicAngle = t0.DescendantFont.FontDescriptor.ItalicAngle
			}
			return rf
		}
	case "TrueType":
		tt, err := font.NewTrueTypeFont(dict, resolve)
		if err == nil {
			rf := &resolvedFont{
				id:     resourceName,
				name:   tt.BaseFont,
				decode: tt.DecodeString,
				width:  tt.GetStringWidth,
			}
			if tt.FontDescriptor != nil {
				rf.weight = tt.FontDescriptor.Weight
				rf.italicAngle = tt.FontDescriptor.ItalicAngle
			}
			return rf
		}
	}

	// Type1, MMType1, Type3, or any subtype NewType1Font tolerates.
	t1, err := font.NewType1Font(dict, resolve)
	if err == nil {
		rf := &resolvedFont{
			id:     resourceName,
			name:   t1.BaseFont,
			decode: t1.DecodeString,
			width:  t1.GetStringWidth,
		}
		if t1.FontDescriptor != nil {
			rf.weight = t1.FontDescriptor.Weight
			rf.italicAngle = t1.FontDescriptor.ItalicAngle
		}
		return rf
	}

	// Degrade to name-only heuristics: font descriptor unavailable, so
	// weight/italic stay at their zero (unknown) value and width falls back
	// to a flat estimate.
	name := resourceName
	if n, ok := dict.Get("BaseFont").(core.Name); ok {
		name = string(n)
	}
	return &resolvedFont{
		id:     resourceName,
		name:   name,
		decode: func(b []byte) string { return string(b) },
		width:  func(s string) float64 { return float64(len([]rune(s))) * 500 },
	}
}

func (rf *resolvedFont) toModelFont() model.Font {
	return model.Font{
		ID:          rf.id,
		Name:        rf.name,
		Weight:      rf.weight,
		ItalicAngle: rf.italicAngle,
	}
}

// NameIndicatesStyle reports whether a font's BaseFont name contains a
// bold/italic/oblique marker, per spec.md §4.2's "font-name substring match"
// feature.
func NameIndicatesStyle(name, marker string) bool {
	return strings.Contains(strings.ToLower(name), marker)
}
