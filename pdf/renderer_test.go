package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"voyagerie/models"
)

func TestOrdinalSuffix(t *testing.T) {
	cases := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th",
		11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd",
		10: "th", 20: "th", 30: "th", 31: "st",
	}
	for day, want := range cases {
		if got := OrdinalSuffix(day); got != want {
			t.Errorf("OrdinalSuffix(%d) = %q, want %q", day, got, want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	cases := map[string]string{
		"14:30":    "2:30pm",
		"00:05":    "12:05am",
		"12:00":    "12:00pm",
		"09:00":    "9:00am",
		"23:59":    "11:59pm",
		"":         "",
		"noonish":  "noonish",
		"around 5": "around 5",
	}
	for in, want := range cases {
		if got := FormatTime(in); got != want {
			t.Errorf("FormatTime(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDayTitle(t *testing.T) {
	// 2024-09-18 is a Wednesday
	date := time.Date(2024, 9, 18, 0, 0, 0, 0, time.UTC)
	if got := DayTitle(date); got != "WEDNESDAY 18th" {
		t.Errorf("DayTitle = %q, want %q", got, "WEDNESDAY 18th")
	}

	// 2024-06-01 is a Saturday
	date = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := DayTitle(date); got != "SATURDAY 1st" {
		t.Errorf("DayTitle = %q, want %q", got, "SATURDAY 1st")
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

	if got := Filename("John Smith", now); got != "Itinerary_John_Smith_2024-06-01.pdf" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename("", now); got != "Itinerary_2024-06-01.pdf" {
		t.Errorf("Filename with no client = %q", got)
	}
}

func TestHeaderDate(t *testing.T) {
	if got := headerDate("2024-06-01"); got != "JUN 1, 2024" {
		t.Errorf("headerDate = %q, want %q", got, "JUN 1, 2024")
	}
	if got := headerDate(""); got != "XXX" {
		t.Errorf("headerDate empty = %q, want XXX", got)
	}
	if got := headerDate("not-a-date"); got != "XXX" {
		t.Errorf("headerDate malformed = %q, want XXX", got)
	}
}

func testGenerator() *Generator {
	// nonexistent asset paths exercise the serif/text-header fallbacks
	return &Generator{FontDir: "testdata/nofonts", LogoPath: "testdata/nologo.png"}
}

func testDays() []models.Day {
	return []models.Day{
		{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{
			Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			Items: []models.Item{
				{Time: "09:00", Event: "Breakfast", Location: "Villa"},
			},
		},
		{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
	}
}

func testItinerary() models.Itinerary {
	return models.Itinerary{
		VillaName:     "Oceanview Villa",
		ArrivalDate:   "2024-06-01",
		DepartureDate: "2024-06-03",
	}
}

func TestGenerateNothingToRender(t *testing.T) {
	g := testGenerator()

	it := testItinerary()
	it.ArrivalDate = ""
	doc, err := g.Generate(it, testDays())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != nil {
		t.Fatal("expected no document for missing arrival date")
	}

	doc, err = g.Generate(testItinerary(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != nil {
		t.Fatal("expected no document for empty day list")
	}
}

// countPages counts page objects in the raw PDF output.
func countPages(data []byte) int {
	return bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
}

func TestGenerateProducesDocument(t *testing.T) {
	g := testGenerator()

	doc, err := g.Generate(testItinerary(), testDays())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a document")
	}

	if !strings.HasPrefix(doc.Filename, "Itinerary_") || !strings.HasSuffix(doc.Filename, ".pdf") {
		t.Errorf("unexpected filename %q", doc.Filename)
	}

	if !bytes.HasPrefix(doc.Bytes, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}

	// itinerary content plus the fixed policy page
	if pages := countPages(doc.Bytes); pages < 2 {
		t.Errorf("expected at least 2 pages, got %d", pages)
	}
}

func TestGenerateBuiltinFontSymbols(t *testing.T) {
	// the serif fallback draws through one-byte width tables, so euro signs
	// and other non-Latin-1 input must survive both the fixed policy fees
	// and user-entered item text
	g := testGenerator()

	it := testItinerary()
	it.ClientName = "Zoë Müller"

	days := []models.Day{
		{
			Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Items: []models.Item{
				{Time: "13:00", Event: "Lunch, set menu at €250 per person", Location: "LA GUÉRITE"},
				{Time: "19:30", Event: "Dinner – Café de l'Été 🎉", Location: "Gustavia"},
			},
		},
	}

	doc, err := g.Generate(it, days)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a document")
	}

	// day table plus the closing policy page with the per-venue fees
	if pages := countPages(doc.Bytes); pages < 2 {
		t.Errorf("expected itinerary plus policy page, got %d pages", pages)
	}
}

func TestGenerateManyDaysPaginates(t *testing.T) {
	g := testGenerator()

	it := testItinerary()
	it.DepartureDate = "2024-06-30"

	var days []models.Day
	for d := 1; d <= 30; d++ {
		days = append(days, models.Day{
			Date: time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC),
			Items: []models.Item{
				{Time: "10:00", Event: "Beach club reservation with a long note that wraps", Location: "Shellona Beach, Gouverneur"},
				{Time: "20:00", Event: "Dinner", Location: "Bonito"},
			},
		})
	}

	doc, err := g.Generate(it, days)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a document")
	}

	if pages := countPages(doc.Bytes); pages < 3 {
		t.Errorf("expected a multi-page document, got %d pages", pages)
	}
}
