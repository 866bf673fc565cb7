// internal/report/pdf.go
//
// The report package turns resolved webhook sections into a fixed-layout,
// paginated PDF: colored header band, client summary block, one section per
// resolved result section, footer with page numbers and generation date.
// Layout and formatting live here; the text content comes from the document
// formatter in internal/render.

package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"campaigndeck/internal/render"
	"campaigndeck/internal/result"
)

// ErrNoExportableResult is returned when the payload shape carried nothing a
// report could be built from. It is the only export failure surfaced to the
// user; missing optional fields substitute fallbacks instead.
var ErrNoExportableResult = errors.New("report: payload has no exportable result")

const (
	pageMargin  = 20.0
	headerDepth = 40.0
	lineHeight  = 6.0
)

// FileName derives the export file name from the client identity:
// whitespace runs become underscores, suffixed with the generation date.
func FileName(clientName string, now time.Time) string {
	name := strings.Join(strings.Fields(clientName), "_")
	if name == "" {
		name = strings.Join(strings.Fields(result.DefaultClientName), "_")
	}
	return fmt.Sprintf("%s_Report_%s.pdf", name, now.Format("2006-01-02"))
}

// Write renders the report for the resolved sections into w.
func Write(w io.Writer, s *result.Sections, now time.Time) error {
	if !s.HasResult() {
		return ErrNoExportableResult
	}
	b := newBuilder(now)
	b.header()
	b.clientBlock(s)
	b.generatedContent(s)
	b.reasoning(s.Reasoning)
	b.tasks(s.Tasks)
	if err := b.pdf.Output(w); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// Save writes the report into dir using the derived file name and returns
// the full path.
func Save(dir string, s *result.Sections, now time.Time) (string, error) {
	if !s.HasResult() {
		return "", ErrNoExportableResult
	}
	path := filepath.Join(dir, FileName(clientName(s), now))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: create %s: %w", path, err)
	}
	defer file.Close()
	if err := Write(file, s, now); err != nil {
		return "", err
	}
	return path, nil
}

func clientName(s *result.Sections) string {
	if strings.TrimSpace(s.ClientName) != "" {
		return s.ClientName
	}
	return result.DefaultClientName
}

type builder struct {
	pdf        *fpdf.Fpdf
	tr         func(string) string
	pageWidth  float64
	pageHeight float64
	width      float64 // printable width
}

func newBuilder(now time.Time) *builder {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Strategy Report", true)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(156, 163, 175)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Generated on %s | Page %d of {nb}", now.Format("2006-01-02"), pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})
	w, h := pdf.GetPageSize()
	return &builder{
		pdf:        pdf,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		pageWidth:  w,
		pageHeight: h,
		width:      w - 2*pageMargin,
	}
}

// ensureSpace starts a new page when fewer than h millimeters remain, so
// section headers never strand at a page bottom.
func (b *builder) ensureSpace(h float64) {
	if b.pdf.GetY()+h > b.pageHeight-pageMargin {
		b.pdf.AddPage()
	}
}

func (b *builder) header() {
	b.pdf.AddPage()
	// Purple band with a pink right half, echoing the live view's gradient.
	b.pdf.SetFillColor(139, 92, 246)
	b.pdf.Rect(0, 0, b.pageWidth, headerDepth, "F")
	b.pdf.SetFillColor(236, 72, 153)
	b.pdf.Rect(b.pageWidth/2, 0, b.pageWidth/2, headerDepth, "F")

	b.pdf.SetTextColor(255, 255, 255)
	b.pdf.SetFont("Helvetica", "B", 24)
	b.pdf.Text(pageMargin, 25, "Strategy Report")
}

func (b *builder) clientBlock(s *result.Sections) {
	top := headerDepth + 10
	b.pdf.SetFillColor(249, 250, 251)
	b.pdf.Rect(pageMargin, top, b.width, 35, "F")

	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.SetTextColor(107, 114, 128)
	b.pdf.Text(pageMargin+5, top+8, "DELIVERABLE TYPE")

	b.pdf.SetFont("Helvetica", "B", 12)
	b.pdf.SetTextColor(139, 92, 246)
	b.pdf.Text(pageMargin+5, top+15, b.tr(s.DeliverableType))

	b.pdf.SetFont("Helvetica", "B", 16)
	b.pdf.SetTextColor(0, 0, 0)
	b.pdf.Text(pageMargin+5, top+25, b.tr(clientName(s)))

	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.SetTextColor(107, 114, 128)
	b.pdf.SetXY(pageMargin+5, top+28)
	b.pdf.MultiCell(b.width-10, 5, b.tr(s.DeliverablesRequested), "", "L", false)
	b.pdf.SetY(b.pdf.GetY() + 10)
}

func (b *builder) generatedContent(s *result.Sections) {
	b.sectionHeading("Generated Content", 0, 0, 0)
	if len(s.Deliverables) > 0 {
		b.deliverables(s)
		return
	}
	b.brandStrategy(s)
	b.campaignCalendar(s)
}

func (b *builder) sectionHeading(title string, r, g, bl int) {
	b.ensureSpace(20)
	b.pdf.SetFont("Helvetica", "B", 14)
	b.pdf.SetTextColor(r, g, bl)
	b.pdf.SetX(pageMargin)
	b.pdf.CellFormat(b.width, 8, b.tr(title), "", 1, "L", false, 0, "")
	b.pdf.SetY(b.pdf.GetY() + 2)
}

func (b *builder) deliverables(s *result.Sections) {
	for i, item := range s.Deliverables {
		b.ensureSpace(30)
		b.boxedLabel(fmt.Sprintf("Deliverable %d", i+1))
		b.bodyText(render.Document(item, 0))
		b.pdf.SetY(b.pdf.GetY() + 6)
	}
}

func (b *builder) brandStrategy(s *result.Sections) {
	if s.Strategy == nil {
		return
	}
	b.ensureSpace(25)
	b.pdf.SetFont("Helvetica", "B", 12)
	b.pdf.SetTextColor(139, 92, 246)
	b.pdf.SetX(pageMargin)
	b.pdf.CellFormat(b.width, 7, "Brand Strategy", "", 1, "L", false, 0, "")
	b.bodyText(render.Document(s.Strategy, 0))
	b.pdf.SetY(b.pdf.GetY() + 8)
}

func (b *builder) campaignCalendar(s *result.Sections) {
	if len(s.CampaignDays) == 0 {
		return
	}
	b.ensureSpace(25)
	b.pdf.SetFont("Helvetica", "B", 12)
	b.pdf.SetTextColor(59, 130, 246)
	b.pdf.SetX(pageMargin)
	b.pdf.CellFormat(b.width, 7, "Campaign Calendar", "", 1, "L", false, 0, "")
	b.pdf.SetY(b.pdf.GetY() + 2)

	for i, day := range s.CampaignDays {
		b.ensureSpace(40)
		title := day.Day
		if strings.TrimSpace(title) == "" {
			title = fmt.Sprintf("Day %d", i+1)
		}
		platform := day.Platform
		if strings.TrimSpace(platform) == "" {
			platform = "Platform"
		}
		b.boxedLabel(fmt.Sprintf("%s - %s", title, platform))

		b.dayLine("Theme", day.Theme)
		b.dayLine("Post Idea", day.PostIdea)
		b.dayLine("Content Type", day.ContentType)
		b.dayLine("CTA", day.CTA)
		b.pdf.SetY(b.pdf.GetY() + 6)
	}
}

func (b *builder) dayLine(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	b.pdf.SetFont("Helvetica", "", 9)
	b.pdf.SetTextColor(55, 65, 81)
	b.pdf.SetX(pageMargin + 5)
	b.pdf.MultiCell(b.width-10, 5, b.tr(fmt.Sprintf("%s: %s", label, value)), "", "L", false)
}

func (b *builder) reasoning(reasons []string) {
	if len(reasons) == 0 {
		return
	}
	b.sectionHeading("Strategic Reasoning", 0, 0, 0)
	for i, reason := range reasons {
		b.ensureSpace(20)
		b.numberBadge(fmt.Sprintf("%d", i+1), 16, 185, 129)
		b.pdf.SetFont("Helvetica", "", 10)
		b.pdf.SetTextColor(55, 65, 81)
		b.pdf.SetX(pageMargin + 12)
		b.pdf.MultiCell(b.width-14, lineHeight, b.tr(reason), "", "L", false)
		b.pdf.SetY(b.pdf.GetY() + 3)
	}
}

func (b *builder) tasks(tasks []result.Task) {
	if len(tasks) == 0 {
		return
	}
	b.sectionHeading("Task Breakdown", 0, 0, 0)
	for _, task := range tasks {
		b.ensureSpace(20)
		b.numberBadge(fmt.Sprintf("%d", task.Index), 139, 92, 246)
		b.pdf.SetFont("Helvetica", "", 10)
		b.pdf.SetTextColor(55, 65, 81)
		b.pdf.SetX(pageMargin + 12)
		b.pdf.MultiCell(b.width-14, lineHeight, b.tr(task.Detail), "", "L", false)
		b.pdf.SetY(b.pdf.GetY() + 3)
	}
}

// boxedLabel draws the light blue banner used for deliverable and day
// headers.
func (b *builder) boxedLabel(text string) {
	y := b.pdf.GetY()
	b.pdf.SetFillColor(239, 246, 255)
	b.pdf.SetDrawColor(191, 219, 254)
	b.pdf.Rect(pageMargin, y, b.width, 10, "FD")
	b.pdf.SetFont("Helvetica", "B", 10)
	b.pdf.SetTextColor(59, 130, 246)
	b.pdf.Text(pageMargin+5, y+7, b.tr(text))
	b.pdf.SetY(y + 13)
}

// numberBadge draws a small filled square holding an ordinal.
func (b *builder) numberBadge(text string, r, g, bl int) {
	y := b.pdf.GetY()
	b.pdf.SetFillColor(r, g, bl)
	b.pdf.Rect(pageMargin+2, y, 8, 8, "F")
	b.pdf.SetFont("Helvetica", "B", 9)
	b.pdf.SetTextColor(255, 255, 255)
	b.pdf.Text(pageMargin+4, y+6, b.tr(text))
}

// bodyText flows formatter output into the page at the standard body style.
func (b *builder) bodyText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.SetTextColor(55, 65, 81)
	b.pdf.SetX(pageMargin + 5)
	b.pdf.MultiCell(b.width-10, lineHeight, b.tr(text), "", "L", false)
}
