// Package report renders inspections into paginated PDF documents.
package report

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"github.com/fieldsafe/safecheck"
)

// Page geometry in millimeters.
const (
	pageW    = 210.0
	margin   = 15.0
	contentW = pageW - margin*2

	itemPageBreakY  = 265.0
	photoPageBreakY = 275.0
	footerY         = 287.0
)

// maxPhotoWidth bounds embedded photo pixels so a report with many photos
// stays a reasonable size.
const maxPhotoWidth = 800

// Compile-time interface check
var _ safecheck.ReportGenerator = (*Generator)(nil)

// Generator builds inspection report PDFs. Photos are fetched over HTTP,
// re-encoded as JPEG, and embedded; a photo that cannot be fetched or
// decoded is logged and skipped, any other failure aborts generation.
type Generator struct {
	client *http.Client
	logger *slog.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(logger *slog.Logger) *Generator {
	return &Generator{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Generate renders the inspection against the given checklist items and
// returns the finished PDF bytes.
func (g *Generator) Generate(ctx context.Context, inspection *safecheck.Inspection, items []safecheck.CheckItem) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetFillColor(248, 250, 252)
		pdf.Rect(0, footerY, pageW, 10, "F")
		pdf.SetTextColor(148, 163, 184)
		pdf.SetFont("Helvetica", "", 7)
		pdf.Text(margin, footerY+6, "SafeCheck Inspection System")
		label := fmt.Sprintf("Page %d / {nb}", pdf.PageNo())
		pdf.Text(pageW-margin-pdf.GetStringWidth(label), footerY+6, label)
	})

	pdf.AddPage()

	g.drawHeader(pdf, inspection)
	y := g.drawInfoPanel(pdf, tr, inspection, 38.0)
	y = g.drawItems(pdf, tr, inspection, items, y)
	y = g.drawSummary(pdf, inspection, items, y)
	g.drawPhotos(ctx, pdf, inspection, y)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, safecheck.Internal("Failed to render report", err)
	}
	return buf.Bytes(), nil
}

// drawHeader paints the full-width banner with title, subtitle, and status
// badge on the first page.
func (g *Generator) drawHeader(pdf *fpdf.Fpdf, inspection *safecheck.Inspection) {
	pdf.SetFillColor(37, 99, 235) // #2563eb
	pdf.Rect(0, 0, pageW, 28, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(margin, 12, "Safety Inspection Report")

	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(margin, 20, "Facility Safety Checklist System")

	label := "IN PROGRESS"
	pdf.SetFillColor(245, 158, 11) // #f59e0b
	if inspection.Status == safecheck.InspectionStatusSubmitted {
		label = "SUBMITTED"
		pdf.SetFillColor(16, 185, 129) // #10b981
	}
	pdf.RoundedRect(pageW-55, 8, 40, 10, 2, "1234", "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(pageW-50, 14.5, label)
}

// drawInfoPanel renders the two-column facility/date/inspector/template grid
// and returns the y position below it.
func (g *Generator) drawInfoPanel(pdf *fpdf.Fpdf, tr func(string) string, inspection *safecheck.Inspection, y float64) float64 {
	pdf.SetFillColor(248, 250, 252) // #f8fafc
	pdf.RoundedRect(margin, y, contentW, 36, 3, "1234", "F")
	pdf.SetDrawColor(226, 232, 240) // #e2e8f0
	pdf.SetLineWidth(0.3)
	pdf.RoundedRect(margin, y, contentW, 36, 3, "1234", "D")

	col1 := margin + 5
	col2 := margin + contentW/2 + 5

	cell := func(label, value string, x, yPos float64) {
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(100, 116, 139)
		pdf.Text(x, yPos, label)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(30, 41, 59)
		pdf.Text(x, yPos+7, tr(value))
	}

	cell("Facility", inspection.FacilityName, col1, y+8)
	cell("Date", inspection.Date, col2, y+8)
	cell("Inspector", inspection.InspectorName, col1, y+24)
	cell("Template", inspection.TemplateName, col2, y+24)

	return y + 44
}

// drawItems renders one row per checklist item in template order, paging as
// needed, and returns the y position below the last row.
func (g *Generator) drawItems(pdf *fpdf.Fpdf, tr func(string) string, inspection *safecheck.Inspection, items []safecheck.CheckItem, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(30, 41, 59)
	pdf.Text(margin, y, "Inspection Items")
	y += 6
	g.rule(pdf, y)
	y += 5

	answers := make(map[string]safecheck.AnswerValue, len(inspection.Results))
	for _, r := range inspection.Results {
		answers[r.ItemID] = r.Value
	}

	const rowH = 9.0
	for idx, item := range items {
		if y > itemPageBreakY {
			pdf.AddPage()
			y = margin
		}

		if idx%2 == 0 {
			pdf.SetFillColor(248, 250, 252)
			pdf.Rect(margin, y-4, contentW, rowH, "F")
		}

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 116, 139)
		pdf.Text(margin+2, y+1, fmt.Sprintf("%d.", idx+1))

		title := item.Title
		if len([]rune(title)) > 55 {
			title = string([]rune(title)[:52]) + "..."
		}
		pdf.SetTextColor(30, 41, 59)
		pdf.Text(margin+10, y+1, tr(title))

		g.drawAnswer(pdf, tr, answers[item.ID], y)

		y += rowH
	}

	return y + 5
}

// drawAnswer renders the right-aligned answer cell: a Pass/Fail badge for
// booleans, truncated text otherwise, N/A when unanswered.
func (g *Generator) drawAnswer(pdf *fpdf.Fpdf, tr func(string) string, value safecheck.AnswerValue, y float64) {
	answerX := pageW - margin - 28

	if passed, ok := value.Bool(); ok {
		if passed {
			pdf.SetFillColor(209, 250, 229) // #d1fae5
			pdf.RoundedRect(answerX, y-3.5, 26, 7, 1.5, "1234", "F")
			pdf.SetFont("Helvetica", "B", 8)
			pdf.SetTextColor(6, 95, 70) // #065f46
			pdf.Text(answerX+3, y+1, "Pass")
		} else {
			pdf.SetFillColor(254, 226, 226) // #fee2e2
			pdf.RoundedRect(answerX, y-3.5, 26, 7, 1.5, "1234", "F")
			pdf.SetFont("Helvetica", "B", 8)
			pdf.SetTextColor(153, 27, 27) // #991b1b
			pdf.Text(answerX+3, y+1, "Fail")
		}
		return
	}

	text := value.String()
	if text == "" {
		text = "N/A"
	}
	if len([]rune(text)) > 20 {
		text = string([]rune(text)[:20])
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(71, 85, 105)
	pdf.Text(answerX, y+1, tr(text))
}

// drawSummary renders the pass-count panel and returns the y position below
// it.
func (g *Generator) drawSummary(pdf *fpdf.Fpdf, inspection *safecheck.Inspection, items []safecheck.CheckItem, y float64) float64 {
	if y > 250 {
		pdf.AddPage()
		y = margin
	}

	g.rule(pdf, y)
	y += 8

	passed, totalCheckbox := safecheck.PassCount(items, inspection.Results)

	pdf.SetFillColor(239, 246, 255) // #eff6ff
	pdf.RoundedRect(margin, y, contentW, 18, 3, "1234", "F")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(30, 64, 175) // #1e40af
	pdf.Text(margin+5, y+7, fmt.Sprintf("Pass: %d / %d items  |  Photos: %d", passed, totalCheckbox, len(inspection.Photos)))
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 116, 139)
	pdf.Text(margin+5, y+14, "Generated: "+time.Now().Format("2006-01-02 15:04:05"))

	return y + 26
}

// drawPhotos renders the photo gallery as a two-column grid, fetching and
// re-encoding each photo. Failed photos leave their cell empty.
func (g *Generator) drawPhotos(ctx context.Context, pdf *fpdf.Fpdf, inspection *safecheck.Inspection, y float64) {
	if len(inspection.Photos) == 0 {
		return
	}

	if y > 240 {
		pdf.AddPage()
		y = margin
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(30, 41, 59)
	pdf.Text(margin, y, "Attached Photos")
	y += 6
	g.rule(pdf, y)
	y += 6

	imgW := (contentW - 4) / 2
	imgH := imgW * 0.7

	col := 0
	for i, url := range inspection.Photos {
		if y+imgH > photoPageBreakY {
			pdf.AddPage()
			y = margin
			col = 0
		}

		if jpeg, err := g.fetchPhoto(ctx, url); err != nil {
			g.logger.Warn("skipping report photo",
				slog.String("url", url),
				slog.String("error", err.Error()),
			)
		} else {
			name := fmt.Sprintf("photo-%d", i)
			x := margin + float64(col)*(imgW+4)
			opts := fpdf.ImageOptions{ImageType: "JPG"}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(jpeg))
			pdf.ImageOptions(name, x, y, imgW, imgH, false, opts, 0, "")
		}

		col++
		if col >= 2 {
			col = 0
			y += imgH + 4
		}
	}
}

// fetchPhoto downloads a photo, bounds its width, and re-encodes it as JPEG
// quality 60.
func (g *Generator) fetchPhoto(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching photo: status %d", resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}

	if img.Bounds().Dx() > maxPhotoWidth {
		img = imaging.Resize(img, maxPhotoWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := encodeJPEG(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding photo: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(60))
}

// rule draws a light horizontal separator across the content width.
func (g *Generator) rule(pdf *fpdf.Fpdf, y float64) {
	pdf.SetDrawColor(226, 232, 240)
	pdf.SetLineWidth(0.3)
	pdf.Line(margin, y, pageW-margin, y)
}
