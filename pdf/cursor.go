package pdf

import (
	"bytes"
	"image"
	"log"
	"os"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/phpdave11/gofpdf"
)

const (
	pageMargin   = 20.0
	baseFontSize = 10.0

	// headerHeightNoLogo is used when the branding image is unavailable
	// and the two-line text fallback is drawn instead.
	headerHeightNoLogo = 18.0
	logoBottomPad      = 8.0

	logoImageName = "brandlogo"

	// px to mm at the 72dpi the layout was tuned for
	pixelsToMm = 25.4 / 72.0
)

type logoAsset struct {
	wMm float64
	hMm float64
}

// loadLogo reads the branding image, validates it, and registers it with
// the document. Returns nil when the asset is missing or undecodable; the
// header then degrades to its text fallback.
func loadLogo(doc *gofpdf.Fpdf, path string) *logoAsset {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Branding logo unavailable, using text header: %v", err)
		return nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		log.Printf("Branding logo undecodable, using text header: %v", err)
		return nil
	}

	opts := gofpdf.ImageOptions{ImageType: format}
	doc.RegisterImageOptionsReader(logoImageName, opts, bytes.NewReader(data))
	if doc.Err() {
		return nil
	}

	return &logoAsset{
		wMm: float64(cfg.Width) * pixelsToMm,
		hMm: float64(cfg.Height) * pixelsToMm,
	}
}

// flow is the page-flow cursor: it tracks the vertical write offset on the
// current page and owns page breaks, so break logic lives in one place.
type flow struct {
	doc     *gofpdf.Fpdf
	family  string
	logo    *logoAsset
	y       float64
	pageW   float64
	pageH   float64
	headerH float64

	// codepage translates UTF-8 to the built-in fonts' code page. Nil
	// when the loaded typeface handles Unicode itself.
	codepage func(string) string
}

func newFlow(doc *gofpdf.Fpdf, family string, logo *logoAsset) *flow {
	w, h := doc.GetPageSize()
	headerH := headerHeightNoLogo
	if logo != nil {
		headerH = logo.hMm + logoBottomPad
	}
	fl := &flow{
		doc:     doc,
		family:  family,
		logo:    logo,
		pageW:   w,
		pageH:   h,
		headerH: headerH,
	}
	if family == fallbackFamily {
		fl.codepage = doc.UnicodeTranslatorFromDescriptor("")
	}
	return fl
}

func (fl *flow) contentWidth() float64 {
	return fl.pageW - 2*pageMargin
}

// newPage starts a page, draws the branding header on it, and resets the
// cursor below the header. Every page goes through here, the first included.
func (fl *flow) newPage() {
	fl.doc.AddPage()
	fl.drawHeader()
	fl.y = pageMargin + fl.headerH
}

// ensureSpace breaks to a new page when required vertical space would
// overflow the bottom margin. Reports whether a break happened so callers
// can avoid orphaned section titles.
func (fl *flow) ensureSpace(required float64) bool {
	if fl.y+required > fl.pageH-pageMargin {
		fl.newPage()
		return true
	}
	return false
}

func (fl *flow) advance(dy float64) {
	fl.y += dy
}

func (fl *flow) drawHeader() {
	if fl.logo != nil {
		x := (fl.pageW - fl.logo.wMm) / 2
		opts := gofpdf.ImageOptions{}
		fl.doc.ImageOptions(logoImageName, x, pageMargin, fl.logo.wMm, fl.logo.hMm, false, opts, 0, "")
		return
	}
	// text fallback when the logo failed to load
	fl.setStyle(StyleBold, baseFontSize)
	fl.setBlack()
	fl.textCentered(pageMargin, "QSS")
	fl.setStyle(StyleNormal, baseFontSize)
	fl.textCentered(pageMargin+6, "SAINT BARTH")
}

// --- draw helpers ---

func (fl *flow) setStyle(st Style, size float64) {
	fl.doc.SetFont(fl.family, st.code(), size)
}

func (fl *flow) setBlack() {
	fl.doc.SetTextColor(0, 0, 0)
}

func (fl *flow) setGray() {
	fl.doc.SetTextColor(grayLevel, grayLevel, grayLevel)
}

// latin maps every rune of s onto a position the active font's width table
// can index: code-page values below 0x100 for the built-in fonts, the basic
// plane for a loaded Unicode typeface. Idempotent, and the result stays
// valid UTF-8, so split lines can pass through here again unchanged.
func (fl *flow) latin(s string) string {
	if fl.codepage == nil {
		return strings.Map(func(c rune) rune {
			if c > 0xFFFF {
				return '.'
			}
			return c
		}, s)
	}
	return strings.Map(func(c rune) rune {
		if c < 0x100 {
			return c
		}
		if m := fl.codepage(string(c)); len(m) == 1 {
			return rune(m[0])
		}
		return '.'
	}, s)
}

// encode produces the raw byte string a built-in font expects for drawing
// and measuring.
func (fl *flow) encode(s string) string {
	if fl.codepage == nil {
		return s
	}
	s = fl.latin(s)
	b := make([]byte, 0, len(s))
	for _, c := range s {
		b = append(b, byte(c))
	}
	return string(b)
}

func (fl *flow) width(s string) float64 {
	return fl.doc.GetStringWidth(fl.encode(s))
}

func (fl *flow) text(x, y float64, s string) {
	fl.doc.Text(x, y, fl.encode(s))
}

func (fl *flow) textCentered(y float64, s string) {
	s = fl.encode(s)
	w := fl.doc.GetStringWidth(s)
	fl.doc.Text((fl.pageW-w)/2, y, s)
}

func (fl *flow) textRight(y float64, s string) {
	s = fl.encode(s)
	w := fl.doc.GetStringWidth(s)
	fl.doc.Text(fl.pageW-pageMargin-w, y, s)
}

func (fl *flow) rule(x1, y, x2 float64) {
	fl.doc.SetDrawColor(0, 0, 0)
	fl.doc.SetLineWidth(0.2)
	fl.doc.Line(x1, y, x2, y)
}

// wrap word-wraps s to maxWidth under the active font and never returns an
// empty slice. The splitter walks runes against the font's width table, so
// built-in fonts need the code-page mapping applied first; latin is
// idempotent, which keeps the returned lines safe to draw through text.
func (fl *flow) wrap(s string, maxWidth float64) []string {
	s = fl.latin(s)
	lines := fl.doc.SplitText(s, maxWidth)
	if len(lines) == 0 {
		return []string{s}
	}
	return lines
}
