package pdf

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"voyagerie/models"
	"voyagerie/utils"

	"github.com/phpdave11/gofpdf"
)

const (
	tableIndent = 1.0
	grayLevel   = 160

	timeColOffset     = 0.0
	eventColOffset    = 35.0
	locationColOffset = 120.0

	// rowLineHeight is the per-line advance inside a table row. The
	// original layout stepped 2.5mm for single-line rows and 3.6mm per
	// line otherwise; normalized to one constant.
	rowLineHeight = 3.6

	paragraphLineHeight = 4.0
	bulletLineHeight    = 6.0

	dayLookahead = 40.0
	interDayGap  = 6.0

	dateLayout = "2006-01-02"
)

const (
	titleItinerary = "YOUR ITINERARY"
	titlePolicies  = "CANCELLATION AND DELAYS POLICIES"

	noItemsPlaceholder = "No items added for this day"
	missingValue       = "XXX"

	generalPolicyText = "All reservations must be canceled at least 24 to 48 hours in advance to avoid penalty fees. Some establishments also offer a courtesy delay of 15 to 30 minutes. Beyond this grace period, tables may be reassigned, and cancellation fees will apply."

	styledPolicyPhrase = "48 HOURS CANCELLATION POLICY"

	gypseaText = "Beach beds cannot be pre-confirmed as priority is given to hotel guests. A note has been added to your reservation, and the team will contact you in the morning to reconfirm. Once confirmed, arrival must occur between 10:30 AM and 12:30 PM. If not, the chairs will be released."

	nailsText = "Modifications or cancellations must be communicated at least 24 hours in advance of the scheduled appointment. Otherwise, a cancellation fee of 100% will apply."
)

var cancellationPolicies = []string{
	"ISOLA: €250 per person fee.",
	"SHELLONA: €250 per person fee, with a 30-minute courtesy policy.",
	"TAMARIN: €150 per person fee.",
	"LA GUÉRITE: €250 per person fee.",
	"MAMO: €260 per person fee.",
	"GYPSEA: " + styledPolicyPhrase + " - €220 per person fee, with a 15-minute courtesy policy.",
}

// Generator renders itineraries as branded PDF documents.
type Generator struct {
	FontDir  string
	LogoPath string
}

func NewGenerator() *Generator {
	fontDir := os.Getenv("PDF_FONT_DIR")
	if fontDir == "" {
		fontDir = "static/fonts"
	}
	logoPath := os.Getenv("PDF_LOGO_PATH")
	if logoPath == "" {
		logoPath = "static/branding/logo.png"
	}
	return &Generator{FontDir: fontDir, LogoPath: logoPath}
}

// Document is a rendered PDF plus its suggested download name.
type Document struct {
	Bytes    []byte
	Filename string
}

// Generate lays out the itinerary in one forward pass: header block, one
// block per day, a fixed policy page, then page numbers on every page.
// Returns (nil, nil) when there is nothing to render.
func (g *Generator) Generate(it models.Itinerary, days []models.Day) (*Document, error) {
	if it.ArrivalDate == "" || it.DepartureDate == "" || len(days) == 0 {
		return nil, nil
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)

	family := registerFonts(doc, g.FontDir)
	fl := newFlow(doc, family, loadLogo(doc, g.LogoPath))

	fl.newPage()
	renderHeaderBlock(fl, it)
	for _, day := range days {
		renderDay(fl, day)
	}
	renderPolicyPage(fl)
	stampPageNumbers(fl)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}

	return &Document{
		Bytes:    buf.Bytes(),
		Filename: Filename(it.ClientName, time.Now()),
	}, nil
}

// Filename builds the download name from the client name and export date.
func Filename(clientName string, now time.Time) string {
	date := now.Format(dateLayout)
	if clientName == "" {
		return "Itinerary_" + date + ".pdf"
	}
	return "Itinerary_" + utils.Underscore(clientName) + "_" + date + ".pdf"
}

// renderHeaderBlock draws the CLIENT/VILLA/ARRIVAL/DEPARTURE row and the
// document title.
func renderHeaderBlock(fl *flow, it models.Itinerary) {
	labelY := fl.y
	lineY := fl.y + 1

	fl.setStyle(StyleNormal, baseFontSize)
	fl.setBlack()

	labelSpacing := fl.contentWidth() / 4
	fl.text(pageMargin, labelY, "CLIENT")
	fl.text(pageMargin+labelSpacing, labelY, "VILLA")
	fl.text(pageMargin+labelSpacing*2, labelY, "ARRIVAL")
	fl.text(pageMargin+labelSpacing*3, labelY, "DEPARTURE")

	fl.rule(pageMargin, lineY, fl.pageW-pageMargin)

	fl.y = lineY + 4
	fl.setGray()
	fl.text(pageMargin, fl.y, orMissing(it.ClientName))
	fl.text(pageMargin+labelSpacing, fl.y, orMissing(it.VillaName))
	fl.text(pageMargin+labelSpacing*2, fl.y, headerDate(it.ArrivalDate))
	fl.text(pageMargin+labelSpacing*3, fl.y, headerDate(it.DepartureDate))
	fl.advance(15)

	fl.setStyle(StyleBold, baseFontSize+2)
	fl.setBlack()
	fl.textCentered(fl.y, titleItinerary)
	fl.advance(15)
}

// renderDay draws the day title followed by either the empty-day
// placeholder or the TIME/EVENT/LOCATION table.
func renderDay(fl *flow, day models.Day) {
	fl.ensureSpace(dayLookahead)

	fl.setStyle(StyleBold, baseFontSize)
	fl.setBlack()
	fl.text(pageMargin, fl.y, DayTitle(day.Date))
	fl.advance(8)

	if len(day.Items) == 0 {
		fl.setStyle(StyleItalic, baseFontSize)
		fl.setBlack()
		fl.text(pageMargin, fl.y, noItemsPlaceholder)
		fl.advance(10)
	} else {
		renderDayTable(fl, day.Items)
	}

	fl.advance(interDayGap)
}

func renderDayTable(fl *flow, items []models.Item) {
	fl.ensureSpace(20)

	tableLeft := pageMargin + tableIndent
	tableRight := fl.pageW - pageMargin - tableIndent
	timeColX := tableLeft + timeColOffset
	eventColX := tableLeft + eventColOffset
	locationColX := tableLeft + locationColOffset

	fl.setStyle(StyleNormal, baseFontSize)
	fl.setBlack()
	fl.text(timeColX, fl.y, "TIME")
	fl.text(eventColX, fl.y, "EVENT")
	fl.text(locationColX, fl.y, "LOCATION")
	fl.rule(tableLeft, fl.y+1, tableRight)
	fl.advance(5)

	for _, item := range items {
		fl.ensureSpace(12)

		fl.setStyle(StyleNormal, baseFontSize)
		fl.setGray()

		timeLines := fl.wrap(orDash(FormatTime(item.Time)), eventColX-timeColX-5)
		eventLines := fl.wrap(orDash(item.Event), locationColX-eventColX-5)
		locationLines := fl.wrap(orDash(item.Location), tableRight-locationColX-5)

		drawLines(fl, timeColX, timeLines)
		drawLines(fl, eventColX, eventLines)
		drawLines(fl, locationColX, locationLines)

		maxLines := max(len(timeLines), len(eventLines), len(locationLines), 1)
		fl.advance(float64(maxLines) * rowLineHeight)

		// separator between rows, closing rule after the last one
		fl.rule(tableLeft, fl.y-1, tableRight)
		fl.advance(3)
	}
}

func drawLines(fl *flow, x float64, lines []string) {
	for i, ln := range lines {
		fl.text(x, fl.y+float64(i)*rowLineHeight, ln)
	}
}

// renderPolicyPage draws the fixed cancellation policy content on its own
// page.
func renderPolicyPage(fl *flow) {
	fl.newPage()

	fl.setStyle(StyleBold, baseFontSize)
	fl.setBlack()
	fl.textCentered(fl.y, titlePolicies)
	fl.advance(12)

	fl.setStyle(StyleNormal, baseFontSize)
	paragraph := fl.wrap(generalPolicyText, fl.contentWidth())
	for i, ln := range paragraph {
		fl.text(pageMargin, fl.y+float64(i)*paragraphLineHeight, ln)
	}
	fl.advance(float64(len(paragraph))*paragraphLineHeight + 5)

	fl.setStyle(StyleBold, baseFontSize)
	fl.text(pageMargin, fl.y, "Fee Details and Specific Policies:")
	fl.advance(6)

	for _, policy := range cancellationPolicies {
		renderPolicyBullet(fl, policy)
	}
	fl.advance(5)

	renderPolicySection(fl, "For GYPSEA:", gypseaText)
	renderPolicySection(fl, "NAILS by Romane:", nailsText)
}

func renderPolicyBullet(fl *flow, policy string) {
	fl.ensureSpace(10)

	bulletX := pageMargin + 5
	textX := pageMargin + 10

	fl.setStyle(StyleNormal, baseFontSize)
	fl.setBlack()
	fl.text(bulletX, fl.y, "•")

	if strings.Contains(policy, styledPolicyPhrase) {
		renderStyledBullet(fl, policy, textX)
	} else {
		lines := fl.wrap(policy, fl.pageW-pageMargin-textX-5)
		for i, ln := range lines {
			fl.text(textX, fl.y+float64(i)*bulletLineHeight, ln)
		}
		if len(lines) > 1 {
			fl.advance(float64(len(lines)-1) * bulletLineHeight)
		}
	}
	fl.advance(5)
}

// renderStyledBullet draws the one list entry with an inline bolditalic
// phrase as three runs: plain prefix, styled phrase, plain suffix. The
// suffix wraps independently when it does not fit on the phrase line.
func renderStyledBullet(fl *flow, policy string, textX float64) {
	idx := strings.Index(policy, styledPolicyPhrase)
	prefix := policy[:idx]
	suffix := policy[idx+len(styledPolicyPhrase):]

	fl.setStyle(StyleNormal, baseFontSize)
	fl.text(textX, fl.y, prefix)
	prefixW := fl.width(prefix)

	fl.setStyle(StyleBoldItalic, baseFontSize)
	fl.text(textX+prefixW, fl.y, styledPolicyPhrase)
	phraseW := fl.width(styledPolicyPhrase)

	fl.setStyle(StyleNormal, baseFontSize)
	remainingWidth := fl.pageW - pageMargin - textX - prefixW - phraseW - 5
	lines := fl.wrap(suffix, remainingWidth)
	if len(lines) > 1 {
		fl.text(textX+prefixW+phraseW, fl.y, lines[0])
		fl.advance(bulletLineHeight)
		for i, ln := range lines[1:] {
			fl.text(textX, fl.y+float64(i)*paragraphLineHeight, ln)
		}
		if len(lines) > 2 {
			fl.advance(float64(len(lines)-2) * paragraphLineHeight)
		}
	} else {
		fl.text(textX+prefixW+phraseW, fl.y, suffix)
	}
}

func renderPolicySection(fl *flow, heading, body string) {
	fl.ensureSpace(15)

	fl.setStyle(StyleBold, baseFontSize)
	fl.setBlack()
	fl.text(pageMargin, fl.y, heading)
	fl.advance(6)

	fl.setStyle(StyleNormal, baseFontSize)
	lines := fl.wrap(body, fl.contentWidth())
	for i, ln := range lines {
		fl.text(pageMargin, fl.y+float64(i)*paragraphLineHeight, ln)
	}
	fl.advance(float64(len(lines))*paragraphLineHeight + 5)
}

// stampPageNumbers walks every generated page and stamps a right-aligned
// page number in the footer margin.
func stampPageNumbers(fl *flow) {
	total := fl.doc.PageCount()
	for i := 1; i <= total; i++ {
		fl.doc.SetPage(i)
		fl.setStyle(StyleNormal, baseFontSize-2)
		fl.setBlack()
		fl.textRight(fl.pageH-pageMargin, strconv.Itoa(i))
	}
}

// --- formatting helpers ---

var timeRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// FormatTime renders a 24-hour "HH:MM" string as "h:mmam/pm". Text that
// does not look like a time passes through unchanged.
func FormatTime(t string) string {
	if t == "" {
		return ""
	}
	m := timeRe.FindStringSubmatch(t)
	if m == nil {
		return t
	}

	hours, _ := strconv.Atoi(m[1])
	ampm := "am"
	if hours >= 12 {
		ampm = "pm"
	}
	hours = hours % 12
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%d:%s%s", hours, m[2], ampm)
}

// OrdinalSuffix returns the English suffix for a day of month.
func OrdinalSuffix(day int) string {
	if day > 3 && day < 21 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// DayTitle formats a date as e.g. "WEDNESDAY 18th".
func DayTitle(date time.Time) string {
	dayName := strings.ToUpper(date.Format("Monday"))
	dayNumber := date.Day()
	return fmt.Sprintf("%s %d%s", dayName, dayNumber, OrdinalSuffix(dayNumber))
}

// headerDate formats a stored "2006-01-02" date as "MMM D, YYYY" uppercased,
// or the missing-value placeholder when absent or malformed.
func headerDate(s string) string {
	if s == "" {
		return missingValue
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return missingValue
	}
	return strings.ToUpper(t.Format("Jan 2, 2006"))
}

func orMissing(s string) string {
	if s == "" {
		return missingValue
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
