package pdf

import (
	"log"
	"os"
	"path/filepath"

	"github.com/phpdave11/gofpdf"
)

const (
	// customFamily is the internal name the loaded typeface pair is
	// registered under.
	customFamily = "Bodoni72"

	// fallbackFamily is a built-in serif face used for the whole
	// document when the custom fonts cannot be read.
	fallbackFamily = "Times"

	regularFontFile = "bodoni-72-book.ttf"
	boldFontFile    = "bodoni-72-bold.ttf"
)

// registerFonts loads the regular/bold typeface pair from dir and registers
// it under one family with all four style slots. A missing bold file maps
// bold and bolditalic onto the regular bytes; italic always reuses regular.
// Any failure to read the regular file falls back to the built-in serif
// family for the entire document.
func registerFonts(doc *gofpdf.Fpdf, dir string) string {
	regular, err := os.ReadFile(filepath.Join(dir, regularFontFile))
	if err != nil {
		log.Printf("Custom font not found, using %s fallback: %v", fallbackFamily, err)
		return fallbackFamily
	}

	doc.AddUTF8FontFromBytes(customFamily, "", regular)
	doc.AddUTF8FontFromBytes(customFamily, "I", regular)

	bold, err := os.ReadFile(filepath.Join(dir, boldFontFile))
	if err != nil {
		bold = regular
	}
	doc.AddUTF8FontFromBytes(customFamily, "B", bold)
	doc.AddUTF8FontFromBytes(customFamily, "BI", bold)

	return customFamily
}

// Style selects the face used by a draw call. Passing it explicitly keeps
// draw calls order-independent instead of toggling shared document state.
type Style int

const (
	StyleNormal Style = iota
	StyleItalic
	StyleBold
	StyleBoldItalic
)

func (s Style) code() string {
	switch s {
	case StyleItalic:
		return "I"
	case StyleBold:
		return "B"
	case StyleBoldItalic:
		return "BI"
	default:
		return ""
	}
}
