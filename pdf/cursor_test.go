package pdf

import (
	"strings"
	"testing"

	"github.com/phpdave11/gofpdf"
)

func testFlow() *flow {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	return newFlow(doc, fallbackFamily, nil)
}

func TestFlowHeaderHeight(t *testing.T) {
	fl := testFlow()
	if fl.headerH != headerHeightNoLogo {
		t.Fatalf("headerH = %v, want %v", fl.headerH, headerHeightNoLogo)
	}

	fl.newPage()
	want := pageMargin + headerHeightNoLogo
	if fl.y != want {
		t.Fatalf("y after newPage = %v, want %v", fl.y, want)
	}
}

func TestEnsureSpace(t *testing.T) {
	fl := testFlow()
	fl.newPage()

	if broke := fl.ensureSpace(10); broke {
		t.Fatal("unexpected page break with plenty of space")
	}

	// walk the cursor near the bottom margin
	fl.y = fl.pageH - pageMargin - 5

	if broke := fl.ensureSpace(4); broke {
		t.Fatal("space below threshold must not break")
	}
	if broke := fl.ensureSpace(10); !broke {
		t.Fatal("expected a page break")
	}

	if got := fl.doc.PageCount(); got != 2 {
		t.Fatalf("page count = %d, want 2", got)
	}
	if fl.y != pageMargin+fl.headerH {
		t.Fatalf("y not reset after break: %v", fl.y)
	}
}

func TestLatinEncodeBuiltinFonts(t *testing.T) {
	fl := testFlow()

	if got := fl.latin("€250"); got != "250" {
		t.Fatalf("latin(\"€250\") = %q", got)
	}
	if got := fl.encode("€250"); got != "\x80250" {
		t.Fatalf("encode(\"€250\") = %q", got)
	}

	// accented Latin-1 keeps its code positions
	if got := fl.latin("LA GUÉRITE"); got != "LA GUÉRITE" {
		t.Fatalf("latin(\"LA GUÉRITE\") = %q", got)
	}

	// stable when applied to its own output, so split lines can be drawn
	once := fl.latin("Café • œufs – €9")
	if twice := fl.latin(once); twice != once {
		t.Fatalf("latin not idempotent: %q then %q", once, twice)
	}
}

func TestLatinClampsAstralRunes(t *testing.T) {
	doc := gofpdf.New("P", "mm", "A4", "")
	fl := newFlow(doc, customFamily, nil)

	if got := fl.latin("party 🎉"); got != "party ." {
		t.Fatalf("latin astral = %q", got)
	}
	// a Unicode typeface needs no code-page mapping below the astral planes
	if got := fl.encode("€250"); got != "€250" {
		t.Fatalf("encode with Unicode typeface = %q", got)
	}
}

func TestWrapBuiltinFontSymbols(t *testing.T) {
	fl := testFlow()
	fl.newPage()
	fl.setStyle(StyleNormal, baseFontSize)

	lines := fl.wrap("ISOLA: €250 per person fee, with a 30-minute courtesy policy.", 40)
	if len(lines) < 2 {
		t.Fatalf("expected the fee text to wrap, got %d line(s)", len(lines))
	}
	for _, ln := range lines {
		if strings.ContainsRune(ln, '€') {
			t.Fatalf("unmapped euro in %q", ln)
		}
	}
}

func TestWrapNeverEmpty(t *testing.T) {
	fl := testFlow()
	fl.newPage()
	fl.setStyle(StyleNormal, baseFontSize)

	lines := fl.wrap("-", 20)
	if len(lines) != 1 {
		t.Fatalf("wrap(\"-\") = %d lines, want 1", len(lines))
	}

	long := strings.Repeat("wrapped words ", 20)
	lines = fl.wrap(long, 40)
	if len(lines) < 2 {
		t.Fatalf("expected long text to wrap, got %d line(s)", len(lines))
	}
}

func TestStyleCodes(t *testing.T) {
	cases := map[Style]string{
		StyleNormal:     "",
		StyleItalic:     "I",
		StyleBold:       "B",
		StyleBoldItalic: "BI",
	}
	for st, want := range cases {
		if got := st.code(); got != want {
			t.Errorf("style %d code = %q, want %q", st, got, want)
		}
	}
}
